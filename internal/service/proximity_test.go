package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shenikar/emergency_geo/internal/config"
	"github.com/shenikar/emergency_geo/internal/geohash"
	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/shenikar/emergency_geo/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestConfig() *config.Config {
	return &config.Config{
		GeohashPrecision:            geohash.DefaultPrecision,
		StoreTimeout:                time.Second,
		NotifyTimeout:               time.Second,
		NotifyConcurrency:           4,
		ResponderSearchRadiusMeters: 5000,
		CrimeSearchRadiusMeters:     1000,
		SecretHashCost:              4,
	}
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

// newTestProximityService - сервис поиска поверх мока индекса
func newTestProximityService(t *testing.T) (*proximityService, *mocks.MockIndexStore) {
	ctrl := gomock.NewController(t)
	indexMock := mocks.NewMockIndexStore(ctrl)

	svc := NewProximityService("test", indexMock, newTestConfig(), newTestLogger(), nil)
	return svc.(*proximityService), indexMock
}

func entryAt(t *testing.T, id string, lat, lon float64) *models.IndexEntry {
	t.Helper()
	point := models.GeoPoint{Latitude: lat, Longitude: lon}
	hash, err := geohash.Encode(point, geohash.DefaultPrecision)
	require.NoError(t, err)
	return &models.IndexEntry{EntityID: id, Geohash: hash, Point: point}
}

func TestFindNear_FiltersDedupesAndSorts(t *testing.T) {
	// Подготовка
	svc, indexMock := newTestProximityService(t)
	ctx := context.Background()
	center := models.GeoPoint{Latitude: 1, Longitude: 1}

	near := entryAt(t, "near", 1, 1.0005)
	nearer := entryAt(t, "nearer", 1, 1.0001)
	far := entryAt(t, "far", 1, 1.2)

	// Ожидания: каждый диапазон отдаёт одни и те же записи, как будто они лежат на границе ячеек
	indexMock.EXPECT().
		Scan(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*models.IndexEntry{near, far, nearer, near}, nil).
		MinTimes(1)

	// Действие
	matches, err := svc.FindNear(ctx, center, 1000)

	// Проверки
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "nearer", matches[0].Entry.EntityID)
	assert.Equal(t, "near", matches[1].Entry.EntityID)
	assert.Less(t, matches[0].DistanceMeters, matches[1].DistanceMeters)
}

func TestFindNear_TiesBrokenByEntityID(t *testing.T) {
	svc, indexMock := newTestProximityService(t)

	indexMock.EXPECT().
		Scan(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*models.IndexEntry{entryAt(t, "zulu", 10, 10), entryAt(t, "alpha", 10, 10)}, nil).
		MinTimes(1)

	matches, err := svc.FindNear(context.Background(), models.GeoPoint{Latitude: 10, Longitude: 10.001}, 500)

	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "alpha", matches[0].Entry.EntityID)
	assert.Equal(t, "zulu", matches[1].Entry.EntityID)
}

func TestFindNear_ScanError_NoPartialResults(t *testing.T) {
	svc, indexMock := newTestProximityService(t)

	indexMock.EXPECT().
		Scan(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection reset")).
		MinTimes(1)

	matches, err := svc.FindNear(context.Background(), models.GeoPoint{Latitude: 55.75, Longitude: 37.61}, 2000)

	require.Error(t, err)
	assert.Nil(t, matches)
	assert.ErrorIs(t, err, ErrSearchUnavailable)
}

func TestFindNear_InvalidInput(t *testing.T) {
	svc, indexMock := newTestProximityService(t)
	indexMock.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.FindNear(context.Background(), models.GeoPoint{Latitude: 91, Longitude: 0}, 100)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)

	_, err = svc.FindNear(context.Background(), models.GeoPoint{Latitude: 0, Longitude: 0}, -1)
	assert.ErrorIs(t, err, ErrInvalidRadius)
}

func TestIndex_DerivesGeohash(t *testing.T) {
	svc, indexMock := newTestProximityService(t)
	point := models.GeoPoint{Latitude: 57.64911, Longitude: 10.40744}
	payload := map[string]string{models.PayloadAddress: "responder-1"}

	var stored *models.IndexEntry
	indexMock.EXPECT().
		Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry *models.IndexEntry) error {
			stored = entry
			return nil
		}).
		Times(1)

	entry, err := svc.Index(context.Background(), "r-1", point, payload)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "u4pruydqqv", entry.Geohash)
	assert.Equal(t, entry, stored)
	assert.Equal(t, "responder-1", stored.Payload[models.PayloadAddress])
	assert.False(t, stored.UpdatedAt.IsZero())
}

func TestIndex_Rejected(t *testing.T) {
	svc, indexMock := newTestProximityService(t)
	indexMock.EXPECT().Put(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Index(context.Background(), "", models.GeoPoint{}, nil)
	assert.ErrorIs(t, err, ErrInvalidEntity)

	_, err = svc.Index(context.Background(), "r-1", models.GeoPoint{Latitude: 0, Longitude: 181}, nil)
	assert.ErrorIs(t, err, ErrInvalidLocation)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}

func TestIndex_StoreError(t *testing.T) {
	svc, indexMock := newTestProximityService(t)
	indexMock.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errors.New("timeout")).Times(1)

	_, err := svc.Index(context.Background(), "r-1", models.GeoPoint{Latitude: 1, Longitude: 1}, nil)

	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestRemove(t *testing.T) {
	svc, indexMock := newTestProximityService(t)

	gomock.InOrder(
		indexMock.EXPECT().Remove(gomock.Any(), "r-1").Return(nil),
		indexMock.EXPECT().Remove(gomock.Any(), "r-1").Return(ErrEntryNotFound),
		indexMock.EXPECT().Remove(gomock.Any(), "r-1").Return(errors.New("broken pipe")),
	)

	require.NoError(t, svc.Remove(context.Background(), "r-1"))

	err := svc.Remove(context.Background(), "r-1")
	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)

	err = svc.Remove(context.Background(), "r-1")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
