package v1

import (
	"time"

	"github.com/google/uuid"
)

// Координаты передаются указателями: required у значения отверг бы нулевую широту и долготу

// TriggerEmergencyRequest DTO для создания экстренного вызова
// @Description DTO для создания экстренного вызова
type TriggerEmergencyRequest struct {
	SubjectID string   `json:"subject_id" validate:"required,max=255"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// PushLocationRequest DTO для точки трека
// @Description DTO для точки трека
type PushLocationRequest struct {
	Latitude   *float64  `json:"latitude" validate:"required,latitude"`
	Longitude  *float64  `json:"longitude" validate:"required,longitude"`
	RecordedAt time.Time `json:"recorded_at,omitempty"`
}

// ResolveRequest DTO для закрытия вызова секретом
// @Description DTO для закрытия вызова секретом
type ResolveRequest struct {
	Secret string `json:"secret" validate:"required,max=72"`
}

// ResolveResponse одинаков для основного и тревожного секрета
// @Description Ответ на закрытие вызова
type ResolveResponse struct {
	Status string `json:"status"`
}

// PostMessageRequest DTO для сообщения в чат вызова
// @Description DTO для сообщения в чат вызова
type PostMessageRequest struct {
	SenderID string `json:"sender_id" validate:"required,max=255"`
	Body     string `json:"body" validate:"required,max=4096"`
}

// SetSecretsRequest DTO для установки двойного секрета
// @Description DTO для установки двойного секрета
type SetSecretsRequest struct {
	Primary string `json:"primary" validate:"required,max=72"`
	Duress  string `json:"duress" validate:"required,max=72"`
}

// SetContactsRequest DTO для списка доверенных контактов
// @Description DTO для списка доверенных контактов
type SetContactsRequest struct {
	Contacts []string `json:"contacts" validate:"max=50,dive,required,max=255"`
}

// ContactsResponse DTO со списком доверенных контактов
// @Description DTO со списком доверенных контактов
type ContactsResponse struct {
	SubjectID string   `json:"subject_id"`
	Contacts  []string `json:"contacts"`
}

// UpdateResponderLocationRequest DTO для обновления позиции спасателя
// @Description DTO для обновления позиции спасателя
type UpdateResponderLocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
	Address   string   `json:"address" validate:"required,max=255"`
}

// ReportCrimeRequest DTO для сообщения о преступлении
// @Description DTO для сообщения о преступлении
type ReportCrimeRequest struct {
	Title     string   `json:"title" validate:"required,min=2,max=255"`
	CrimeType string   `json:"crime_type" validate:"required,max=64"`
	Severity  string   `json:"severity" validate:"omitempty,oneof=low medium high"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// SearchRequest DTO для поиска по радиусу. Без radius_meters берётся радиус из конфигурации.
// @Description DTO для поиска по радиусу
type SearchRequest struct {
	Latitude     *float64 `json:"latitude" validate:"required,latitude"`
	Longitude    *float64 `json:"longitude" validate:"required,longitude"`
	RadiusMeters *float64 `json:"radius_meters,omitempty" validate:"omitempty,gte=0,lte=20000000"`
}

// PointResponse DTO с координатами
type PointResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TrackPointResponse DTO точки трека
type TrackPointResponse struct {
	RecordedAt time.Time     `json:"recorded_at"`
	Point      PointResponse `json:"point"`
	Geohash    string        `json:"geohash"`
}

// MessageResponse DTO сообщения чата
type MessageResponse struct {
	SenderID  string    `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// IncidentResponse DTO для ответа с информацией о вызове
// @Description DTO для ответа с информацией о вызове
type IncidentResponse struct {
	ID            uuid.UUID            `json:"id"`
	SubjectID     string               `json:"subject_id"`
	Origin        PointResponse        `json:"origin"`
	OriginGeohash string               `json:"origin_geohash"`
	State         string               `json:"state"`
	Responders    []string             `json:"responders"`
	TrackPoints   []TrackPointResponse `json:"track_points"`
	Messages      []MessageResponse    `json:"messages"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	ResolvedAt    *time.Time           `json:"resolved_at,omitempty"`
}

// EntryResponse DTO записи геоиндекса
// @Description DTO записи геоиндекса
type EntryResponse struct {
	EntityID  string            `json:"entity_id"`
	Geohash   string            `json:"geohash"`
	Point     PointResponse     `json:"point"`
	Payload   map[string]string `json:"payload,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// MatchResponse DTO результата поиска
// @Description DTO результата поиска
type MatchResponse struct {
	EntryResponse
	DistanceMeters float64 `json:"distance_meters"`
}
