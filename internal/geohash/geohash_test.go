package geohash

import (
	"math"
	"math/rand"
	"testing"

	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_KnownValues(t *testing.T) {
	tests := []struct {
		name      string
		point     models.GeoPoint
		precision int
		want      string
	}{
		{"jutland", models.GeoPoint{Latitude: 57.64911, Longitude: 10.40744}, 11, "u4pruydqqvj"},
		{"spain", models.GeoPoint{Latitude: 42.6, Longitude: -5.6}, 5, "ezs42"},
		{"origin", models.GeoPoint{Latitude: 0, Longitude: 0}, 1, "s"},
		{"south west corner", models.GeoPoint{Latitude: -90, Longitude: -180}, 4, "0000"},
		{"north east corner", models.GeoPoint{Latitude: 90, Longitude: 180}, 4, "zzzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.point, tt.precision)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		point     models.GeoPoint
		precision int
		wantErr   error
	}{
		{"latitude too large", models.GeoPoint{Latitude: 90.0001, Longitude: 0}, 10, ErrInvalidCoordinate},
		{"latitude too small", models.GeoPoint{Latitude: -91, Longitude: 0}, 10, ErrInvalidCoordinate},
		{"longitude too large", models.GeoPoint{Latitude: 0, Longitude: 180.5}, 10, ErrInvalidCoordinate},
		{"latitude NaN", models.GeoPoint{Latitude: math.NaN(), Longitude: 0}, 10, ErrInvalidCoordinate},
		{"longitude NaN", models.GeoPoint{Latitude: 0, Longitude: math.NaN()}, 10, ErrInvalidCoordinate},
		{"zero precision", models.GeoPoint{}, 0, ErrInvalidPrecision},
		{"precision too large", models.GeoPoint{}, MaxPrecision + 1, ErrInvalidPrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.point, tt.precision)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecodeBounds_ContainsEncodedPoint(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		p := models.GeoPoint{
			Latitude:  rnd.Float64()*180 - 90,
			Longitude: rnd.Float64()*360 - 180,
		}
		precision := 1 + rnd.Intn(MaxPrecision)

		hash, err := Encode(p, precision)
		require.NoError(t, err)
		bounds, err := DecodeBounds(hash)
		require.NoError(t, err)

		assert.Truef(t, bounds.Contains(p), "cell %s %+v does not contain %+v", hash, bounds, p)
	}
}

func TestDecodeBounds_Edges(t *testing.T) {
	for _, p := range []models.GeoPoint{
		{Latitude: 90, Longitude: 180},
		{Latitude: -90, Longitude: -180},
		{Latitude: 90, Longitude: -180},
		{Latitude: 0, Longitude: 0},
	} {
		hash, err := Encode(p, DefaultPrecision)
		require.NoError(t, err)
		bounds, err := DecodeBounds(hash)
		require.NoError(t, err)
		assert.True(t, bounds.Contains(p))
	}
}

func TestDecodeBounds_CellSize(t *testing.T) {
	bounds, err := DecodeBounds("s")
	require.NoError(t, err)
	assert.Equal(t, models.GeoPoint{Latitude: 0, Longitude: 0}, bounds.Min)
	assert.Equal(t, models.GeoPoint{Latitude: 45, Longitude: 45}, bounds.Max)
	assert.Equal(t, models.GeoPoint{Latitude: 22.5, Longitude: 22.5}, bounds.Center())
}

func TestDecodeBounds_Invalid(t *testing.T) {
	for _, hash := range []string{"", "abc", "u4pr!", "0123456789bcdefghjkmnpq"} {
		_, err := DecodeBounds(hash)
		assert.ErrorIsf(t, err, ErrInvalidGeohash, "hash %q", hash)
	}
}

func TestDistance(t *testing.T) {
	a := models.GeoPoint{Latitude: 1.0, Longitude: 1.0}
	b := models.GeoPoint{Latitude: 1.0, Longitude: 1.2}

	assert.Equal(t, 0.0, Distance(a, a))
	assert.Equal(t, Distance(a, b), Distance(b, a))
	assert.InDelta(t, 22236, Distance(a, b), 50)

	// Москва - Санкт-Петербург ~634 км
	moscow := models.GeoPoint{Latitude: 55.7558, Longitude: 37.6173}
	spb := models.GeoPoint{Latitude: 59.9343, Longitude: 30.3351}
	assert.InDelta(t, 634_000, Distance(moscow, spb), 5_000)

	// антиподы
	assert.InDelta(t, math.Pi*earthRadiusMeters, Distance(models.GeoPoint{}, models.GeoPoint{Longitude: 180}), 1)
}

func TestDistance_Symmetric(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		p1 := models.GeoPoint{Latitude: rnd.Float64()*180 - 90, Longitude: rnd.Float64()*360 - 180}
		p2 := models.GeoPoint{Latitude: rnd.Float64()*180 - 90, Longitude: rnd.Float64()*360 - 180}
		assert.Equal(t, Distance(p1, p2), Distance(p2, p1))
		assert.Equal(t, 0.0, Distance(p1, p1))
	}
}
