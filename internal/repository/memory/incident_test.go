package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/shenikar/emergency_geo/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActive(t *testing.T, repo *IncidentRepository) uuid.UUID {
	t.Helper()
	incident := &models.Incident{ID: uuid.New(), SubjectID: "user-1", State: models.StateActive}
	require.NoError(t, repo.Create(context.Background(), incident))
	return incident.ID
}

func TestIncidentRepository_TransitionIsCompareAndSet(t *testing.T) {
	ctx := context.Background()
	repo := NewIncidentRepository()
	id := newActive(t, repo)

	var applied atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		to := models.StateCanceled
		if i%2 == 0 {
			to = models.StateEscalated
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.TransitionState(ctx, id, models.StateActive, to, time.Now())
			assert.NoError(t, err)
			if ok {
				applied.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), applied.Load())

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, stored.State.Terminal())
	assert.NotNil(t, stored.ResolvedAt)
}

func TestIncidentRepository_AppendOnlyWhileActive(t *testing.T) {
	ctx := context.Background()
	repo := NewIncidentRepository()
	id := newActive(t, repo)

	ok, err := repo.AppendTrackPoint(ctx, id, models.TrackPoint{Geohash: "u4pruydqqv"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.AppendMessage(ctx, id, models.Message{SenderID: "mom", Body: "hi"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TransitionState(ctx, id, models.StateActive, models.StateCanceled, time.Now())
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.AppendTrackPoint(ctx, id, models.TrackPoint{Geohash: "u4pruydqqw"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.AppendMessage(ctx, id, models.Message{SenderID: "mom", Body: "late"})
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, stored.TrackPoints, 1)
	assert.Len(t, stored.Messages, 1)
}

func TestIncidentRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewIncidentRepository()
	id := uuid.New()

	_, err := repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, service.ErrIncidentNotFound)

	_, err = repo.AppendTrackPoint(ctx, id, models.TrackPoint{})
	assert.ErrorIs(t, err, service.ErrIncidentNotFound)

	_, err = repo.TransitionState(ctx, id, models.StateActive, models.StateCanceled, time.Now())
	assert.ErrorIs(t, err, service.ErrIncidentNotFound)
}

func TestSecretAndContactRepositories(t *testing.T) {
	ctx := context.Background()

	secrets := NewSecretRepository()
	_, err := secrets.GetDualSecret(ctx, "user-1")
	assert.ErrorIs(t, err, service.ErrSecretNotFound)

	require.NoError(t, secrets.SaveDualSecret(ctx, &models.DualSecret{SubjectID: "user-1", PrimaryHash: []byte("p"), DuressHash: []byte("d")}))
	secret, err := secrets.GetDualSecret(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("p"), secret.PrimaryHash)

	contacts := NewContactRepository()
	require.NoError(t, contacts.ReplaceTrustedContacts(ctx, "user-1", []string{"mom", "dad"}))
	list, err := contacts.ListTrustedContacts(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"mom", "dad"}, list)

	require.NoError(t, contacts.ReplaceTrustedContacts(ctx, "user-1", nil))
	list, err = contacts.ListTrustedContacts(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}
