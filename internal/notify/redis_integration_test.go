//go:build integration

package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shenikar/emergency_geo/internal/config"
	"github.com/shenikar/emergency_geo/pkg/testutil/containers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisQueue_WorkerDeliversWebhook(t *testing.T) {
	rc := containers.NewRedisContainer(t)

	received := make(chan Envelope, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, Sign(body, "s3cr3t"), r.Header.Get(signatureHeader))

		var envelope Envelope
		assert.NoError(t, json.Unmarshal(body, &envelope))
		received <- envelope
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := &config.Config{
		WebhookURL:        server.URL,
		WebhookSecret:     "s3cr3t",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 1,
		WebhookBaseDelay:  10 * time.Millisecond,
	}

	ctx, cancel := context.WithCancel(context.Background())
	worker := NewWebhookWorker(rc.Client, newTestLogger(), cfg)
	worker.Start(ctx)

	note := testNotification()
	require.NoError(t, NewRedisQueueTransport(rc.Client).Send(ctx, "mom", note))

	select {
	case envelope := <-received:
		assert.Equal(t, "mom", envelope.Recipient)
		assert.Equal(t, note.IncidentID, envelope.Notification.IncidentID)
	case <-time.After(10 * time.Second):
		t.Fatal("webhook was not delivered")
	}

	cancel()
	select {
	case <-worker.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("worker did not stop")
	}
}
