package audit

import "context"

// Repository is an append-only audit trail.
type Repository interface {
	Append(ctx context.Context, e Entry) error
	ListByEntity(ctx context.Context, entityType, entityID string) ([]Entry, error)
}
