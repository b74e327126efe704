package notify

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shenikar/emergency_geo/internal/config"
	"github.com/shenikar/emergency_geo/internal/metrics"
	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/shenikar/emergency_geo/internal/notify/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func newTestFanout(t *testing.T, concurrency int) (*Fanout, *mocks.MockTransport, *metrics.Metrics) {
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockTransport(ctrl)
	m := metrics.NewWithRegistry(prometheus.NewRegistry())

	cfg := &config.Config{
		NotifyTimeout:     time.Second,
		NotifyConcurrency: concurrency,
	}
	return NewFanout(transport, cfg, newTestLogger(), m), transport, m
}

func testNotification() models.Notification {
	return models.Notification{
		IncidentID: uuid.New(),
		Kind:       models.NotificationEscalated,
		State:      models.StateEscalated,
		Title:      "Emergency Escalated!",
	}
}

func TestNotify_CountsFailuresPerRecipient(t *testing.T) {
	// Подготовка
	fanout, transport, m := newTestFanout(t, 4)
	note := testNotification()

	// Ожидания
	transport.EXPECT().Send(gomock.Any(), "mom", note).Return(nil).Times(1)
	transport.EXPECT().Send(gomock.Any(), "dad", note).Return(errors.New("push gateway down")).Times(1)
	transport.EXPECT().Send(gomock.Any(), "responder-1", note).Return(nil).Times(1)

	// Действие
	report := fanout.Notify(context.Background(), []string{"mom", "dad", "mom", "", "responder-1"}, note)

	// Проверки
	assert.Equal(t, models.DeliveryReport{Delivered: 2, Failed: 1}, report)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Notifications.WithLabelValues("delivered")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("failed")))
}

func TestNotify_NoRecipients(t *testing.T) {
	fanout, transport, _ := newTestFanout(t, 4)
	transport.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	report := fanout.Notify(context.Background(), nil, testNotification())

	assert.Equal(t, models.DeliveryReport{}, report)
}

func TestNotify_RespectsConcurrencyLimit(t *testing.T) {
	fanout, transport, _ := newTestFanout(t, 2)

	var (
		mu      sync.Mutex
		current int
		peak    int
	)
	transport.EXPECT().
		Send(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, models.Notification) error {
			mu.Lock()
			current++
			peak = max(peak, current)
			mu.Unlock()

			time.Sleep(10 * time.Millisecond)

			mu.Lock()
			current--
			mu.Unlock()
			return nil
		}).
		Times(6)

	report := fanout.Notify(context.Background(), []string{"a", "b", "c", "d", "e", "f"}, testNotification())

	assert.Equal(t, 6, report.Delivered)
	assert.LessOrEqual(t, peak, 2)
}

func TestNotify_PerRecipientTimeout(t *testing.T) {
	fanout, transport, _ := newTestFanout(t, 4)
	fanout.timeout = 20 * time.Millisecond

	transport.EXPECT().
		Send(gomock.Any(), "slow", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ models.Notification) error {
			<-ctx.Done()
			return ctx.Err()
		}).
		Times(1)
	transport.EXPECT().Send(gomock.Any(), "fast", gomock.Any()).Return(nil).Times(1)

	report := fanout.Notify(context.Background(), []string{"slow", "fast"}, testNotification())

	require.Equal(t, 1, report.Delivered)
	assert.Equal(t, 1, report.Failed)
}

func TestUniqueRecipients(t *testing.T) {
	got := UniqueRecipients([]string{"mom", " dad ", "", "mom", "responder-1", "dad"})

	assert.Equal(t, []string{"mom", "dad", "responder-1"}, got)
	assert.Empty(t, UniqueRecipients(nil))
}
