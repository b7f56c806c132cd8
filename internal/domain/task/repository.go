package task

import "context"

// Repository persists background tasks.
type Repository interface {
	Create(ctx context.Context, t Task) error
	GetByID(ctx context.Context, id string) (Task, bool, error)
	Update(ctx context.Context, t Task) error
}
