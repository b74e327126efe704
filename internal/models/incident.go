package models

import (
	"time"

	"github.com/google/uuid"
)

// IncidentState - состояние экстренного вызова
type IncidentState string

const (
	StateActive    IncidentState = "active"
	StateCanceled  IncidentState = "canceled"
	StateEscalated IncidentState = "escalated"
)

// Terminal сообщает, что из состояния больше нет переходов
func (s IncidentState) Terminal() bool {
	return s == StateCanceled || s == StateEscalated
}

type Incident struct {
	ID            uuid.UUID     `json:"id"`
	SubjectID     string        `json:"subject_id"`
	Origin        GeoPoint      `json:"origin"`
	OriginGeohash string        `json:"origin_geohash"`
	State         IncidentState `json:"state"`
	Responders    []string      `json:"responders,omitempty"`
	TrackPoints   []TrackPoint  `json:"track_points,omitempty"`
	Messages      []Message     `json:"messages,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	ResolvedAt    *time.Time    `json:"resolved_at,omitempty"`
}

// TrackPoint - точка трека, присланная клиентом во время активного вызова.
// Время хранится как передано, упорядочивание для отображения - забота потребителя.
type TrackPoint struct {
	RecordedAt time.Time `json:"recorded_at"`
	Point      GeoPoint  `json:"point"`
	Geohash    string    `json:"geohash"`
}

// Message - сообщение в чате экстренного вызова
type Message struct {
	SenderID  string    `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
