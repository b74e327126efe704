// Package notify рассылает оповещения о переходах экстренного вызова.
// Доставка best-effort: сбой одного получателя не влияет на остальных.
package notify

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shenikar/emergency_geo/internal/config"
	"github.com/shenikar/emergency_geo/internal/metrics"
	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Fanout параллельно отправляет оповещение всем получателям через Transport
type Fanout struct {
	transport Transport
	limit     int
	timeout   time.Duration
	logger    *logrus.Logger
	metrics   *metrics.Metrics
}

// NewFanout создаёт рассылку с ограничением параллелизма NOTIFY_CONCURRENCY
func NewFanout(transport Transport, cfg *config.Config, logger *logrus.Logger, m *metrics.Metrics) *Fanout {
	limit := cfg.NotifyConcurrency
	if limit < 1 {
		limit = 1
	}
	return &Fanout{
		transport: transport,
		limit:     limit,
		timeout:   cfg.NotifyTimeout,
		logger:    logger,
		metrics:   m,
	}
}

// Notify отправляет message каждому уникальному получателю. Отчёт информационный,
// ошибки отдельных получателей только логируются.
func (f *Fanout) Notify(ctx context.Context, recipients []string, message models.Notification) models.DeliveryReport {
	log := f.logger.WithFields(logrus.Fields{
		"service":     "notify",
		"incident_id": message.IncidentID,
		"kind":        message.Kind,
	})

	unique := UniqueRecipients(recipients)
	if len(unique) == 0 {
		return models.DeliveryReport{}
	}

	var delivered, failed atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(f.limit)
	for _, recipient := range unique {
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(ctx, f.timeout)
			defer cancel()

			if err := f.transport.Send(sctx, recipient, message); err != nil {
				failed.Add(1)
				log.WithError(err).WithField("recipient", recipient).Warn("Failed to deliver notification")
				return nil
			}
			delivered.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	report := models.DeliveryReport{
		Delivered: int(delivered.Load()),
		Failed:    int(failed.Load()),
	}
	f.metrics.AddNotifications(report.Delivered, report.Failed)

	log.WithFields(logrus.Fields{
		"delivered": report.Delivered,
		"failed":    report.Failed,
	}).Debug("Notification dispatched")
	return report
}

// UniqueRecipients убирает пустые и повторяющиеся адреса, сохраняя порядок
func UniqueRecipients(recipients []string) []string {
	seen := make(map[string]struct{}, len(recipients))
	out := make([]string, 0, len(recipients))
	for _, r := range recipients {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
