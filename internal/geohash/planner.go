package geohash

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/shenikar/emergency_geo/internal/models"
)

// rangeSentinel сортируется после любого символа base32
const rangeSentinel = "~"

const (
	// Метров в градусе широты с запасом: реальное значение на сфере ~111195,
	// заниженная величина даёт чуть более широкий охват по широте.
	metersPerDegreeLatitude = 110574.0
	minResolutionMeters     = 1.0
	epsilon                 = 1e-12
)

var ErrInvalidRadius = errors.New("invalid radius")

// QueryBound - полуоткрытый диапазон ключей индекса [Start, End)
type QueryBound struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains проверяет, попадает ли geohash в диапазон
func (q QueryBound) Contains(hash string) bool {
	return hash >= q.Start && hash < q.End
}

// PlanRanges строит набор диапазонов geohash, объединение которых покрывает круг радиуса
// radiusMeters вокруг center. Полнота важнее точности: лишние кандидаты
// отсекаются точным расстоянием на этапе поиска.
func PlanRanges(center models.GeoPoint, radiusMeters float64, precision int) ([]QueryBound, error) {
	if err := ValidatePoint(center); err != nil {
		return nil, err
	}
	if math.IsNaN(radiusMeters) || math.IsInf(radiusMeters, 0) || radiusMeters < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radiusMeters)
	}
	if precision < 1 || precision > MaxPrecision {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPrecision, precision)
	}

	size := math.Max(radiusMeters, minResolutionMeters)

	latDelta := size / metersPerDegreeLatitude
	latNorth := math.Min(90, center.Latitude+latDelta)
	latSouth := math.Max(-90, center.Latitude-latDelta)
	lonDelta := math.Max(metersToLongitudeDegrees(size, latNorth), metersToLongitudeDegrees(size, latSouth))

	bits := queryBits(latDelta, lonDelta, precision)
	if bits <= 0 {
		// круг охватывает все долготы или почти всю широту - сканируем весь индекс
		return []QueryBound{{Start: base32[:1], End: rangeSentinel}}, nil
	}

	hashLen := (bits + bitsPerChar - 1) / bitsPerChar
	west := wrapLongitude(center.Longitude - lonDelta)
	east := wrapLongitude(center.Longitude + lonDelta)

	samples := []models.GeoPoint{
		{Latitude: center.Latitude, Longitude: center.Longitude},
		{Latitude: center.Latitude, Longitude: west},
		{Latitude: center.Latitude, Longitude: east},
		{Latitude: latNorth, Longitude: center.Longitude},
		{Latitude: latNorth, Longitude: west},
		{Latitude: latNorth, Longitude: east},
		{Latitude: latSouth, Longitude: center.Longitude},
		{Latitude: latSouth, Longitude: west},
		{Latitude: latSouth, Longitude: east},
	}

	bounds := make([]QueryBound, 0, len(samples))
	for _, p := range samples {
		hash, err := Encode(p, hashLen)
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, prefixRange(hash, bits))
	}

	return mergeBounds(bounds), nil
}

// queryBits выбирает число бит, при котором ячейка не меньше полуразмеров охватывающего
// прямоугольника по обеим осям. Долгота получает ceil(bits/2) бит, широта - floor(bits/2).
func queryBits(latDelta, lonDelta float64, precision int) int {
	latBits := bitsForExtent(180, latDelta)
	lonBits := bitsForExtent(360, lonDelta)
	if latBits <= 0 || lonBits <= 0 {
		return 0
	}
	bits := min(2*latBits, 2*lonBits-1, precision*bitsPerChar)
	return bits
}

// bitsForExtent - наибольшее число делений отрезка span пополам, при котором
// ячейка остаётся не меньше delta
func bitsForExtent(span, delta float64) int {
	if delta <= 0 {
		return MaxPrecision * bitsPerChar
	}
	if delta >= span {
		return 0
	}
	bits := int(math.Floor(math.Log2(span / delta)))
	return min(bits, MaxPrecision*bitsPerChar)
}

func metersToLongitudeDegrees(distance, latitude float64) float64 {
	metersPerDegree := math.Cos(degreesToRadians(latitude)) * earthRadiusMeters * math.Pi / 180
	if metersPerDegree < epsilon {
		if distance > 0 {
			return 360
		}
		return 0
	}
	return math.Min(360, distance/metersPerDegree)
}

func wrapLongitude(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	adjusted := lon + 180
	if adjusted > 0 {
		return math.Mod(adjusted, 360) - 180
	}
	return 180 - math.Mod(-adjusted, 360)
}

// prefixRange превращает ячейку из первых bits бит хеша в диапазон ключей
func prefixRange(hash string, bits int) QueryBound {
	base := hash[:len(hash)-1]
	last := int(base32Index[hash[len(hash)-1]])
	significant := bits - len(base)*bitsPerChar
	unused := bitsPerChar - significant

	start := (last >> unused) << unused
	end := start + 1<<unused
	if end > len(base32)-1 {
		return QueryBound{Start: base + string(base32[start]), End: base + rangeSentinel}
	}
	return QueryBound{Start: base + string(base32[start]), End: base + string(base32[end])}
}

// mergeBounds убирает дубликаты и склеивает смежные и пересекающиеся диапазоны
func mergeBounds(bounds []QueryBound) []QueryBound {
	sort.Slice(bounds, func(i, j int) bool {
		if bounds[i].Start == bounds[j].Start {
			return bounds[i].End < bounds[j].End
		}
		return bounds[i].Start < bounds[j].Start
	})

	merged := make([]QueryBound, 0, len(bounds))
	for _, b := range bounds {
		if n := len(merged); n > 0 && b.Start <= merged[n-1].End {
			if b.End > merged[n-1].End {
				merged[n-1].End = b.End
			}
			continue
		}
		merged = append(merged, b)
	}
	return merged
}
