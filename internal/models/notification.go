package models

import "github.com/google/uuid"

// NotificationKind - тип оповещения
type NotificationKind string

const (
	NotificationTriggered NotificationKind = "triggered"
	NotificationResolved  NotificationKind = "resolved"
	NotificationEscalated NotificationKind = "escalated"
)

// Notification - сообщение, рассылаемое доверенным контактам и спасателям
type Notification struct {
	IncidentID uuid.UUID        `json:"incident_id"`
	Kind       NotificationKind `json:"kind"`
	State      IncidentState    `json:"state"`
	Title      string           `json:"title"`
	Body       string           `json:"body"`
}

// DeliveryReport - агрегированный итог рассылки, носит информационный характер
type DeliveryReport struct {
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}
