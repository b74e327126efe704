package models

import "time"

// GeoPoint - географическая точка в градусах
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IndexEntry - запись геоиндекса для отслеживаемой сущности (спасатель, сообщение о преступлении).
// Geohash всегда вычисляется из Point и никогда не задаётся вручную.
type IndexEntry struct {
	EntityID  string            `json:"entity_id"`
	Geohash   string            `json:"geohash"`
	Point     GeoPoint          `json:"point"`
	Payload   map[string]string `json:"payload,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Match - результат поиска по радиусу
type Match struct {
	Entry          *IndexEntry `json:"entry"`
	DistanceMeters float64     `json:"distance_meters"`
}

// Ключи Payload, которые понимает сервисный слой
const (
	PayloadAddress   = "address"
	PayloadCrimeType = "crime_type"
	PayloadSeverity  = "severity"
	PayloadTitle     = "title"
)
