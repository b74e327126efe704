//go:build integration

package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/shenikar/emergency_geo/internal/service"
	"github.com/shenikar/emergency_geo/pkg/testutil/containers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryIDs(entries []*models.IndexEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.EntityID)
	}
	return out
}

func testEntries() []*models.IndexEntry {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return []*models.IndexEntry{
		{EntityID: "a", Geohash: "u4n0000000", Payload: map[string]string{models.PayloadAddress: "addr-a"}, UpdatedAt: now},
		{EntityID: "b", Geohash: "u4pruydqqv", Point: models.GeoPoint{Latitude: 57.64911, Longitude: 10.40744}, UpdatedAt: now},
		{EntityID: "c", Geohash: "u4s0000000", UpdatedAt: now},
		{EntityID: "d", Geohash: "u4zzzzzzzz", UpdatedAt: now},
	}
}

func TestIncidentRepository_Postgres(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	rc := containers.NewRedisContainer(t)
	repo := NewIncidentRepository(pg.Pool, rc.Client)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	incident := &models.Incident{
		ID:            uuid.New(),
		SubjectID:     "user-1",
		Origin:        models.GeoPoint{Latitude: 1, Longitude: 1},
		OriginGeohash: "s00twy01mt",
		State:         models.StateActive,
		Responders:    []string{"responder-1"},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, repo.Create(ctx, incident))

	ok, err := repo.AppendTrackPoint(ctx, incident.ID, models.TrackPoint{RecordedAt: now, Point: incident.Origin, Geohash: incident.OriginGeohash})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.AppendMessage(ctx, incident.ID, models.Message{SenderID: "mom", Body: "on my way", CreatedAt: now})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TransitionState(ctx, incident.ID, models.StateActive, models.StateEscalated, now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TransitionState(ctx, incident.ID, models.StateActive, models.StateCanceled, now)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.AppendTrackPoint(ctx, incident.ID, models.TrackPoint{RecordedAt: now, Point: incident.Origin, Geohash: incident.OriginGeohash})
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.GetByID(ctx, incident.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateEscalated, stored.State)
	assert.Equal(t, []string{"responder-1"}, stored.Responders)
	assert.Len(t, stored.TrackPoints, 1)
	assert.Len(t, stored.Messages, 1)
	require.NotNil(t, stored.ResolvedAt)

	// закрытый вызов попадает в кеш
	cached, err := rc.Client.Exists(ctx, "incident:"+incident.ID.String()).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), cached)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrIncidentNotFound)

	_, err = repo.TransitionState(ctx, uuid.New(), models.StateActive, models.StateCanceled, now)
	assert.ErrorIs(t, err, service.ErrIncidentNotFound)
}

func TestSecretAndContactRepository_Postgres(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()

	secrets := NewSecretRepository(pg.Pool)
	_, err := secrets.GetDualSecret(ctx, "user-1")
	assert.ErrorIs(t, err, service.ErrSecretNotFound)

	secret := &models.DualSecret{SubjectID: "user-1", PrimaryHash: []byte("p1"), DuressHash: []byte("d1"), UpdatedAt: time.Now().UTC()}
	require.NoError(t, secrets.SaveDualSecret(ctx, secret))
	secret.PrimaryHash = []byte("p2")
	require.NoError(t, secrets.SaveDualSecret(ctx, secret))

	stored, err := secrets.GetDualSecret(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("p2"), stored.PrimaryHash)
	assert.Equal(t, []byte("d1"), stored.DuressHash)

	contacts := NewContactRepository(pg.Pool)
	require.NoError(t, contacts.ReplaceTrustedContacts(ctx, "user-1", []string{"mom", "dad"}))
	require.NoError(t, contacts.ReplaceTrustedContacts(ctx, "user-1", []string{"dad", "sister"}))

	list, err := contacts.ListTrustedContacts(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"dad", "sister"}, list)
}

func TestPostgresIndex(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	index := NewPostgresIndex(pg.Pool, "crimes")
	other := NewPostgresIndex(pg.Pool, "other")
	ctx := context.Background()

	for _, e := range testEntries() {
		require.NoError(t, index.Put(ctx, e))
	}
	require.NoError(t, other.Put(ctx, &models.IndexEntry{EntityID: "x", Geohash: "u4p0000000", UpdatedAt: time.Now()}))

	got, err := index.Scan(ctx, "u4n", "u4s")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, entryIDs(got))
	assert.Equal(t, "addr-a", got[0].Payload[models.PayloadAddress])
	assert.InDelta(t, 57.64911, got[1].Point.Latitude, 1e-9)

	// "~" должен сортироваться после любого символа base32
	got, err = index.Scan(ctx, "u4z", "u4~")
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, entryIDs(got))

	require.NoError(t, index.Put(ctx, &models.IndexEntry{EntityID: "a", Geohash: "zzzzzzzzzz", UpdatedAt: time.Now()}))
	got, err = index.Scan(ctx, "0", "~")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d", "a"}, entryIDs(got))

	require.NoError(t, index.Remove(ctx, "a"))
	assert.ErrorIs(t, index.Remove(ctx, "a"), service.ErrEntryNotFound)
}

func TestRedisIndex(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	index := NewRedisIndex(rc.Client, "responders")
	ctx := context.Background()

	for _, e := range testEntries() {
		require.NoError(t, index.Put(ctx, e))
	}

	got, err := index.Scan(ctx, "u4n", "u4s")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, entryIDs(got))

	got, err = index.Scan(ctx, "u4z", "u4~")
	require.NoError(t, err)
	assert.Equal(t, []string{"d"}, entryIDs(got))

	// перемещение удаляет старый ключ
	require.NoError(t, index.Put(ctx, &models.IndexEntry{EntityID: "a", Geohash: "zzzzzzzzzz", UpdatedAt: time.Now()}))
	got, err = index.Scan(ctx, "u4n", "u4s")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, entryIDs(got))

	members, err := rc.Client.ZCard(ctx, "geo:responders:keys").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(4), members)

	require.NoError(t, index.Remove(ctx, "a"))
	assert.ErrorIs(t, index.Remove(ctx, "a"), service.ErrEntryNotFound)

	got, err = index.Scan(ctx, "0", "~")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d"}, entryIDs(got))
}

func TestRedisIndex_ConcurrentPuts(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	index := NewRedisIndex(rc.Client, "responders")
	ctx := context.Background()

	const responders = 50
	hashes := []string{"ucftpufz29", "ucftpv0b5k", "ucftpuzzzz"}

	var wg sync.WaitGroup
	errs := make(chan error, responders*len(hashes))
	for i := 0; i < responders; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			// каждый спасатель несколько раз меняет позицию
			for _, hash := range hashes {
				errs <- index.Put(ctx, &models.IndexEntry{EntityID: id, Geohash: hash, UpdatedAt: time.Now().UTC()})
			}
		}(fmt.Sprintf("responder-%02d", i))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	// у каждой сущности ровно один ключ - последняя позиция
	members, err := rc.Client.ZCard(ctx, "geo:responders:keys").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(responders), members)

	got, err := index.Scan(ctx, "ucftpuzzzz", "ucftpv")
	require.NoError(t, err)
	assert.Len(t, got, responders)
}
