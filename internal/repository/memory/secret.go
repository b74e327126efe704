package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/shenikar/emergency_geo/internal/service"
)

// SecretRepository хранит хеши двойных секретов в памяти
type SecretRepository struct {
	mu    sync.RWMutex
	items map[string]models.DualSecret
}

func NewSecretRepository() *SecretRepository {
	return &SecretRepository{items: make(map[string]models.DualSecret)}
}

var _ service.SecretRepository = (*SecretRepository)(nil)

func (r *SecretRepository) GetDualSecret(ctx context.Context, subjectID string) (*models.DualSecret, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	secret, ok := r.items[subjectID]
	if !ok {
		return nil, service.ErrSecretNotFound
	}
	secret.PrimaryHash = slices.Clone(secret.PrimaryHash)
	secret.DuressHash = slices.Clone(secret.DuressHash)
	return &secret, nil
}

// SaveDualSecret заменяет обе записи атомарно
func (r *SecretRepository) SaveDualSecret(ctx context.Context, secret *models.DualSecret) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *secret
	stored.PrimaryHash = slices.Clone(secret.PrimaryHash)
	stored.DuressHash = slices.Clone(secret.DuressHash)
	r.items[secret.SubjectID] = stored
	return nil
}
