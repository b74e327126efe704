package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/shenikar/emergency_geo/internal/service"
)

// ContactRepository хранит доверенные контакты в памяти
type ContactRepository struct {
	mu    sync.RWMutex
	items map[string][]string
}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{items: make(map[string][]string)}
}

var _ service.ContactRepository = (*ContactRepository)(nil)

func (r *ContactRepository) ListTrustedContacts(ctx context.Context, subjectID string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items[subjectID]), nil
}

func (r *ContactRepository) ReplaceTrustedContacts(ctx context.Context, subjectID string, addresses []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(addresses) == 0 {
		delete(r.items, subjectID)
		return nil
	}
	r.items[subjectID] = slices.Clone(addresses)
	return nil
}
