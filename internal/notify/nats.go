package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/shenikar/emergency_geo/internal/models"
)

const natsSubjectPrefix = "notify."

// publisher - подмножество *nats.Conn, нужное транспорту
type publisher interface {
	Publish(subject string, data []byte) error
}

// NATSTransport публикует оповещения в subject notify.<адрес получателя>
type NATSTransport struct {
	conn publisher
}

// NewNATSTransport создает новый NATSTransport
func NewNATSTransport(conn *nats.Conn) *NATSTransport {
	return &NATSTransport{conn: conn}
}

// Send публикует конверт оповещения в NATS
func (t *NATSTransport) Send(ctx context.Context, recipient string, message models.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(newEnvelope(recipient, message))
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	subject := natsSubject(recipient)
	if err := t.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("failed to publish notification to %s: %w", subject, err)
	}
	return nil
}

// natsSubject заменяет символы, недопустимые в токене subject
func natsSubject(recipient string) string {
	token := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, recipient)
	return natsSubjectPrefix + token
}
