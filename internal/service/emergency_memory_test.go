package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/shenikar/emergency_geo/internal/repository/memory"
	"github.com/shenikar/emergency_geo/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNotifier запоминает все рассылки
type recordingNotifier struct {
	mu    sync.Mutex
	sent  []models.Notification
	peers [][]string
}

func (n *recordingNotifier) Notify(_ context.Context, recipients []string, message models.Notification) models.DeliveryReport {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, message)
	n.peers = append(n.peers, recipients)
	return models.DeliveryReport{Delivered: len(recipients)}
}

func (n *recordingNotifier) kinds() []models.NotificationKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]models.NotificationKind, 0, len(n.sent))
	for _, note := range n.sent {
		kinds = append(kinds, note.Kind)
	}
	return kinds
}

type lifecycle struct {
	svc       service.EmergencyService
	notifier  *recordingNotifier
	incidents *memory.IncidentRepository
}

func newLifecycle(t *testing.T) lifecycle {
	t.Helper()
	cfg := testConfig()
	logger := quietLogger()

	responders := service.NewProximityService("responders", memory.NewIndex(), cfg, logger, nil)
	incidents := memory.NewIncidentRepository()
	contacts := memory.NewContactRepository()
	notifier := &recordingNotifier{}

	svc := service.NewEmergencyService(incidents, memory.NewSecretRepository(), contacts, responders, notifier, cfg, logger, nil)

	ctx := context.Background()
	_, err := responders.Index(ctx, "r-1", models.GeoPoint{Latitude: 1.01, Longitude: 1}, map[string]string{models.PayloadAddress: "responder-1"})
	require.NoError(t, err)
	_, err = responders.Index(ctx, "r-far", models.GeoPoint{Latitude: 2, Longitude: 1}, map[string]string{models.PayloadAddress: "responder-far"})
	require.NoError(t, err)
	_, err = svc.SetTrustedContacts(ctx, "user-1", []string{"mom"})
	require.NoError(t, err)
	require.NoError(t, svc.SetDualSecret(ctx, "user-1", "A1", "B2"))

	return lifecycle{svc: svc, notifier: notifier, incidents: incidents}
}

func drain(t *testing.T, svc service.EmergencyService) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, svc.Shutdown(ctx))
}

func TestLifecycle_DuressThenPrimary(t *testing.T) {
	lc := newLifecycle(t)
	ctx := context.Background()

	incident, err := lc.svc.Trigger(ctx, "user-1", models.GeoPoint{Latitude: 1, Longitude: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"responder-1"}, incident.Responders)

	state, err := lc.svc.Resolve(ctx, incident.ID, "B2")
	require.NoError(t, err)
	assert.Equal(t, models.StateEscalated, state)

	_, err = lc.svc.Resolve(ctx, incident.ID, "A1")
	assert.ErrorIs(t, err, service.ErrIncidentClosed)

	stored, err := lc.svc.GetIncident(ctx, incident.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateEscalated, stored.State)
	require.NotNil(t, stored.ResolvedAt)

	drain(t, lc.svc)
	assert.ElementsMatch(t, []models.NotificationKind{models.NotificationTriggered, models.NotificationEscalated}, lc.notifier.kinds())
	for _, recipients := range lc.notifier.peers {
		assert.Equal(t, []string{"mom", "responder-1"}, recipients)
	}
}

func TestLifecycle_WrongSecretKeepsActive(t *testing.T) {
	lc := newLifecycle(t)
	ctx := context.Background()

	incident, err := lc.svc.Trigger(ctx, "user-1", models.GeoPoint{Latitude: 1, Longitude: 1})
	require.NoError(t, err)

	_, err = lc.svc.Resolve(ctx, incident.ID, "nope")
	assert.ErrorIs(t, err, service.ErrInvalidSecret)

	stored, err := lc.svc.GetIncident(ctx, incident.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateActive, stored.State)

	state, err := lc.svc.Resolve(ctx, incident.ID, "A1")
	require.NoError(t, err)
	assert.Equal(t, models.StateCanceled, state)
	drain(t, lc.svc)
}

func TestLifecycle_ConcurrentResolve(t *testing.T) {
	lc := newLifecycle(t)
	ctx := context.Background()

	incident, err := lc.svc.Trigger(ctx, "user-1", models.GeoPoint{Latitude: 1, Longitude: 1})
	require.NoError(t, err)

	const callers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success []models.IncidentState
		closed  int
	)
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		secret := "A1"
		if i%2 == 1 {
			secret = "B2"
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			state, err := lc.svc.Resolve(ctx, incident.ID, secret)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				success = append(success, state)
				return
			}
			assert.ErrorIs(t, err, service.ErrIncidentClosed)
			closed++
		}()
	}
	close(start)
	wg.Wait()

	require.Len(t, success, 1)
	assert.Equal(t, callers-1, closed)

	stored, err := lc.svc.GetIncident(ctx, incident.ID)
	require.NoError(t, err)
	assert.Equal(t, success[0], stored.State)

	drain(t, lc.svc)
	// одно оповещение о создании и ровно одно о закрытии
	assert.Len(t, lc.notifier.kinds(), 2)
}

func TestLifecycle_TrackAndChatOnlyWhileActive(t *testing.T) {
	lc := newLifecycle(t)
	ctx := context.Background()

	incident, err := lc.svc.Trigger(ctx, "user-1", models.GeoPoint{Latitude: 1, Longitude: 1})
	require.NoError(t, err)

	recordedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, lc.svc.PushLocation(ctx, incident.ID, models.GeoPoint{Latitude: 1.001, Longitude: 1}, recordedAt))
	require.NoError(t, lc.svc.PostMessage(ctx, incident.ID, "mom", "where are you?"))

	_, err = lc.svc.Resolve(ctx, incident.ID, "A1")
	require.NoError(t, err)

	err = lc.svc.PushLocation(ctx, incident.ID, models.GeoPoint{Latitude: 1.002, Longitude: 1}, recordedAt.Add(time.Minute))
	assert.ErrorIs(t, err, service.ErrIncidentClosed)
	err = lc.svc.PostMessage(ctx, incident.ID, "mom", "ok")
	assert.ErrorIs(t, err, service.ErrIncidentClosed)

	stored, err := lc.svc.GetIncident(ctx, incident.ID)
	require.NoError(t, err)
	require.Len(t, stored.TrackPoints, 1)
	assert.Equal(t, recordedAt, stored.TrackPoints[0].RecordedAt)
	require.Len(t, stored.Messages, 1)
	assert.Equal(t, "where are you?", stored.Messages[0].Body)
	drain(t, lc.svc)
}
