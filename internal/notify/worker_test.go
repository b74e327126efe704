package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/emergency_geo/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(url string, retries int) *WebhookWorker {
	return NewWebhookWorker(nil, newTestLogger(), &config.Config{
		WebhookURL:        url,
		WebhookSecret:     "s3cr3t",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: retries,
		WebhookBaseDelay:  time.Millisecond,
	})
}

func testPayload(t *testing.T) (Envelope, []byte) {
	envelope := newEnvelope("mom", testNotification())
	payload, err := json.Marshal(envelope)
	require.NoError(t, err)
	return envelope, payload
}

func TestWebhookWorker_DeliverSigned(t *testing.T) {
	envelope, payload := testPayload(t)

	var received atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, Sign(body, "s3cr3t"), r.Header.Get(signatureHeader))
		assert.JSONEq(t, string(payload), string(body))
		received.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	worker := newTestWorker(server.URL, 3)

	assert.True(t, worker.deliver(context.Background(), envelope, payload))
	assert.Equal(t, int32(1), received.Load())
}

func TestWebhookWorker_RetriesUntilSuccess(t *testing.T) {
	envelope, payload := testPayload(t)

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	worker := newTestWorker(server.URL, 3)

	assert.True(t, worker.deliver(context.Background(), envelope, payload))
	assert.Equal(t, int32(3), attempts.Load())
}

func TestWebhookWorker_GivesUp(t *testing.T) {
	envelope, payload := testPayload(t)

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	worker := newTestWorker(server.URL, 2)

	assert.False(t, worker.deliver(context.Background(), envelope, payload))
	assert.Equal(t, int32(2), attempts.Load())
}

func TestWebhookWorker_NoURL(t *testing.T) {
	envelope, payload := testPayload(t)
	worker := newTestWorker("", 3)

	assert.False(t, worker.deliver(context.Background(), envelope, payload))
}

func TestSign(t *testing.T) {
	// HMAC-SHA256("key", "The quick brown fox jumps over the lazy dog")
	assert.Equal(t,
		"f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8",
		Sign([]byte("The quick brown fox jumps over the lazy dog"), "key"))
}
