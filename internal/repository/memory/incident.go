package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/shenikar/emergency_geo/internal/service"
)

// IncidentRepository хранит экстренные вызовы в памяти.
// Все проверки состояния и изменения выполняются под одной блокировкой.
type IncidentRepository struct {
	mu    sync.Mutex
	items map[uuid.UUID]*models.Incident
}

func NewIncidentRepository() *IncidentRepository {
	return &IncidentRepository{items: make(map[uuid.UUID]*models.Incident)}
}

var _ service.IncidentRepository = (*IncidentRepository)(nil)

func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[incident.ID]; ok {
		return fmt.Errorf("incident with id %s already exists", incident.ID)
	}
	r.items[incident.ID] = cloneIncident(incident)
	return nil
}

func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	incident, ok := r.items[id]
	if !ok {
		return nil, service.ErrIncidentNotFound
	}
	return cloneIncident(incident), nil
}

func (r *IncidentRepository) AppendTrackPoint(ctx context.Context, id uuid.UUID, point models.TrackPoint) (bool, error) {
	return r.mutateActive(ctx, id, func(incident *models.Incident) {
		incident.TrackPoints = append(incident.TrackPoints, point)
	})
}

func (r *IncidentRepository) AppendMessage(ctx context.Context, id uuid.UUID, message models.Message) (bool, error) {
	return r.mutateActive(ctx, id, func(incident *models.Incident) {
		incident.Messages = append(incident.Messages, message)
	})
}

// TransitionState переводит вызов из from в to, если текущее состояние равно from
func (r *IncidentRepository) TransitionState(ctx context.Context, id uuid.UUID, from, to models.IncidentState, at time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	incident, ok := r.items[id]
	if !ok {
		return false, service.ErrIncidentNotFound
	}
	if incident.State != from {
		return false, nil
	}
	incident.State = to
	incident.UpdatedAt = at
	if to.Terminal() {
		resolved := at
		incident.ResolvedAt = &resolved
	}
	return true, nil
}

func (r *IncidentRepository) mutateActive(ctx context.Context, id uuid.UUID, fn func(*models.Incident)) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	incident, ok := r.items[id]
	if !ok {
		return false, service.ErrIncidentNotFound
	}
	if incident.State != models.StateActive {
		return false, nil
	}
	fn(incident)
	incident.UpdatedAt = time.Now().UTC()
	return true, nil
}

func cloneIncident(in *models.Incident) *models.Incident {
	c := *in
	c.Responders = slices.Clone(in.Responders)
	c.TrackPoints = slices.Clone(in.TrackPoints)
	c.Messages = slices.Clone(in.Messages)
	if in.ResolvedAt != nil {
		resolved := *in.ResolvedAt
		c.ResolvedAt = &resolved
	}
	return &c
}
