package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	subject string
	data    []byte
	err     error
}

func (p *capturePublisher) Publish(subject string, data []byte) error {
	p.subject = subject
	p.data = data
	return p.err
}

func TestNATSTransport_Send(t *testing.T) {
	pub := &capturePublisher{}
	transport := &NATSTransport{conn: pub}
	note := testNotification()

	require.NoError(t, transport.Send(context.Background(), "user.42@example.com", note))

	assert.Equal(t, "notify.user_42_example_com", pub.subject)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(pub.data, &envelope))
	assert.Equal(t, "user.42@example.com", envelope.Recipient)
	assert.Equal(t, note, envelope.Notification)
	assert.False(t, envelope.CreatedAt.IsZero())
}

func TestNATSTransport_Errors(t *testing.T) {
	pub := &capturePublisher{err: errors.New("nats: connection closed")}
	transport := &NATSTransport{conn: pub}

	err := transport.Send(context.Background(), "mom", testNotification())
	assert.ErrorContains(t, err, "failed to publish notification to notify.mom")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pub.subject = ""
	assert.ErrorIs(t, transport.Send(ctx, "mom", models.Notification{}), context.Canceled)
	assert.Empty(t, pub.subject)
}
