package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	ListActive(ctx context.Context) ([]Player, error)
	GetByIDs(ctx context.Context, playerIDs []int64) ([]Player, error)
	Upsert(ctx context.Context, players []Player) error
}
