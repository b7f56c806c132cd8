package memory

import (
	"context"
	"sync"

	"github.com/courtvision/fantasy-hoops/internal/domain/audit"
)

type AuditRepository struct {
	mu     sync.RWMutex
	items  []audit.Entry
	nextID int64
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{nextID: 1}
}

func (r *AuditRepository) Append(_ context.Context, e audit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.ID = r.nextID
	r.nextID++
	r.items = append(r.items, e)

	return nil
}

func (r *AuditRepository) ListByEntity(_ context.Context, entityType, entityID string) ([]audit.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]audit.Entry, 0, len(r.items))
	for _, e := range r.items {
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
		}
	}

	return out, nil
}
