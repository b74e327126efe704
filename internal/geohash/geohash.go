// Package geohash кодирует координаты в geohash-строки, декодирует границы ячеек
// и считает расстояние по большому кругу. Общие префиксы означают близость точек,
// поэтому поиск по радиусу сводится к сканированию диапазонов упорядоченного индекса.
package geohash

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shenikar/emergency_geo/internal/models"
)

const (
	base32      = "0123456789bcdefghjkmnpqrstuvwxyz"
	bitsPerChar = 5

	// DefaultPrecision - длина geohash в индексе (~1.2 м ячейка)
	DefaultPrecision = 10
	// MaxPrecision - 22 символа = 110 бит
	MaxPrecision = 22

	earthRadiusMeters = 6371000.0
)

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidPrecision  = errors.New("invalid geohash precision")
	ErrInvalidGeohash    = errors.New("invalid geohash")
)

var base32Index [256]int8

func init() {
	for i := range base32Index {
		base32Index[i] = -1
	}
	for i := 0; i < len(base32); i++ {
		base32Index[base32[i]] = int8(i)
	}
}

// Bounds - прямоугольная ячейка geohash
type Bounds struct {
	Min models.GeoPoint
	Max models.GeoPoint
}

// Contains проверяет попадание точки в ячейку включая границы
func (b Bounds) Contains(p models.GeoPoint) bool {
	return p.Latitude >= b.Min.Latitude && p.Latitude <= b.Max.Latitude &&
		p.Longitude >= b.Min.Longitude && p.Longitude <= b.Max.Longitude
}

// Center возвращает центр ячейки
func (b Bounds) Center() models.GeoPoint {
	return models.GeoPoint{
		Latitude:  (b.Min.Latitude + b.Max.Latitude) / 2,
		Longitude: (b.Min.Longitude + b.Max.Longitude) / 2,
	}
}

// ValidatePoint проверяет, что координаты конечны и лежат в допустимых диапазонах
func ValidatePoint(p models.GeoPoint) error {
	if math.IsNaN(p.Latitude) || p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinate, p.Latitude)
	}
	if math.IsNaN(p.Longitude) || p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinate, p.Longitude)
	}
	return nil
}

// Encode кодирует точку в geohash заданной длины.
// Биты чередуются: чётные - долгота, нечётные - широта; каждые 5 бит дают один символ base32.
func Encode(p models.GeoPoint, precision int) (string, error) {
	if err := ValidatePoint(p); err != nil {
		return "", err
	}
	if precision < 1 || precision > MaxPrecision {
		return "", fmt.Errorf("%w: %d", ErrInvalidPrecision, precision)
	}

	minLat, maxLat := -90.0, 90.0
	minLon, maxLon := -180.0, 180.0

	var hash strings.Builder
	hash.Grow(precision)
	isEven := true
	bit := 0
	ch := 0

	for hash.Len() < precision {
		if isEven {
			mid := (minLon + maxLon) / 2
			if p.Longitude >= mid {
				ch |= 1 << (4 - bit)
				minLon = mid
			} else {
				maxLon = mid
			}
		} else {
			mid := (minLat + maxLat) / 2
			if p.Latitude >= mid {
				ch |= 1 << (4 - bit)
				minLat = mid
			} else {
				maxLat = mid
			}
		}
		isEven = !isEven
		bit++
		if bit == bitsPerChar {
			hash.WriteByte(base32[ch])
			bit = 0
			ch = 0
		}
	}

	return hash.String(), nil
}

// DecodeBounds восстанавливает ячейку, которую представляет geohash
func DecodeBounds(hash string) (Bounds, error) {
	if hash == "" || len(hash) > MaxPrecision {
		return Bounds{}, fmt.Errorf("%w: %q", ErrInvalidGeohash, hash)
	}

	minLat, maxLat := -90.0, 90.0
	minLon, maxLon := -180.0, 180.0
	isEven := true

	for i := 0; i < len(hash); i++ {
		cd := base32Index[hash[i]]
		if cd < 0 {
			return Bounds{}, fmt.Errorf("%w: %q", ErrInvalidGeohash, hash)
		}
		for j := bitsPerChar - 1; j >= 0; j-- {
			bitSet := (cd>>j)&1 == 1
			if isEven {
				mid := (minLon + maxLon) / 2
				if bitSet {
					minLon = mid
				} else {
					maxLon = mid
				}
			} else {
				mid := (minLat + maxLat) / 2
				if bitSet {
					minLat = mid
				} else {
					maxLat = mid
				}
			}
			isEven = !isEven
		}
	}

	return Bounds{
		Min: models.GeoPoint{Latitude: minLat, Longitude: minLon},
		Max: models.GeoPoint{Latitude: maxLat, Longitude: maxLon},
	}, nil
}

// Distance - расстояние по большому кругу в метрах (гаверсинус, средний радиус Земли)
func Distance(p1, p2 models.GeoPoint) float64 {
	lat1 := degreesToRadians(p1.Latitude)
	lat2 := degreesToRadians(p2.Latitude)
	dLat := degreesToRadians(p2.Latitude - p1.Latitude)
	dLon := degreesToRadians(p2.Longitude - p1.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// погрешность округления может вывести a за [0, 1]
	a = math.Min(1, math.Max(0, a))

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
