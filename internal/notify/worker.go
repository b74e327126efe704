package notify

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_geo/internal/config"
	"github.com/sirupsen/logrus"
)

const (
	signatureHeader = "X-Webhook-Signature"
	// popTimeout ограничивает BRPOP, чтобы воркер замечал отмену контекста
	popTimeout = 5 * time.Second
)

// WebhookWorker забирает оповещения из очереди Redis и отправляет их на WEBHOOK_URL
type WebhookWorker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	httpClient  *http.Client

	url        string
	secret     string
	maxRetries int
	baseDelay  time.Duration

	done chan struct{}
}

// NewWebhookWorker создает новый WebhookWorker
func NewWebhookWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *WebhookWorker {
	return &WebhookWorker{
		redisClient: redisClient,
		logger:      logger,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
		url:        cfg.WebhookURL,
		secret:     cfg.WebhookSecret,
		maxRetries: max(cfg.WebhookMaxRetries, 1),
		baseDelay:  cfg.WebhookBaseDelay,
		done:       make(chan struct{}),
	}
}

// Start запускает горутину обработки очереди. Done закрывается после остановки.
func (w *WebhookWorker) Start(ctx context.Context) {
	w.logger.Info("Starting webhook worker...")
	go func() {
		defer close(w.done)
		for {
			if ctx.Err() != nil {
				w.logger.Info("Stopping webhook worker.")
				return
			}

			result, err := w.redisClient.BRPop(ctx, popTimeout, notificationQueueKey).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
					continue
				}
				w.logger.WithError(err).Error("Failed to pop notification from Redis")
				sleepContext(ctx, w.baseDelay)
				continue
			}

			// result[0] - ключ, result[1] - значение
			payload := []byte(result[1])
			var envelope Envelope
			if err := json.Unmarshal(payload, &envelope); err != nil {
				w.logger.WithError(err).Error("Failed to unmarshal notification from Redis")
				continue
			}

			w.deliver(ctx, envelope, payload)
		}
	}()
}

// Done сигнализирует об остановке воркера
func (w *WebhookWorker) Done() <-chan struct{} {
	return w.done
}

// deliver отправляет конверт с экспоненциальной задержкой между попытками
func (w *WebhookWorker) deliver(ctx context.Context, envelope Envelope, payload []byte) bool {
	log := w.logger.WithFields(logrus.Fields{
		"incident_id": envelope.Notification.IncidentID,
		"recipient":   envelope.Recipient,
		"kind":        envelope.Notification.Kind,
	})

	if w.url == "" {
		log.Warn("Webhook URL is not configured. Skipping webhook delivery.")
		return false
	}

	delay := w.baseDelay
	for i := 0; i < w.maxRetries; i++ {
		err := w.post(ctx, payload)
		if err == nil {
			log.Info("Webhook delivered successfully.")
			return true
		}

		retriesLeft := w.maxRetries - 1 - i
		if retriesLeft == 0 {
			log.WithError(err).Warn("Webhook delivery failed.")
			break
		}
		log.WithError(err).Warnf("Webhook delivery failed. Retrying in %v. Retries left: %d", delay, retriesLeft)
		if !sleepContext(ctx, delay) {
			break
		}
		delay *= 2
	}

	log.Errorf("Failed to deliver webhook after %d attempts.", w.maxRetries)
	return false
}

func (w *WebhookWorker) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// подпись добавляется только при заданном WEBHOOK_SECRET
	if w.secret != "" {
		req.Header.Set(signatureHeader, Sign(payload, w.secret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded with status code %d", resp.StatusCode)
	}
	return nil
}

// Sign возвращает HMAC-SHA256 подпись тела в hex
func Sign(payload []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// sleepContext ждёт d или отмены контекста; false означает отмену
func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
