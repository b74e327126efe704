package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_geo/internal/models"
)

//go:generate mockgen -source=transport.go -destination=mocks/mock_transport.go -package=mocks

// Transport доставляет одно оповещение одному получателю.
// Повторы - забота транспорта или его воркера, не рассылки.
type Transport interface {
	Send(ctx context.Context, recipient string, message models.Notification) error
}

// Envelope - сообщение, которое уходит во внешний транспорт
type Envelope struct {
	ID           uuid.UUID           `json:"id"`
	Recipient    string              `json:"recipient"`
	Notification models.Notification `json:"notification"`
	CreatedAt    time.Time           `json:"created_at"`
}

func newEnvelope(recipient string, message models.Notification) Envelope {
	return Envelope{
		ID:           uuid.New(),
		Recipient:    recipient,
		Notification: message,
		CreatedAt:    time.Now().UTC(),
	}
}
