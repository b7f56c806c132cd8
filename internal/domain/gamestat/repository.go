package gamestat

import (
	"context"
	"time"
)

// Repository describes game-log persistence needs from use cases. Rows are
// append-only from the engine's point of view.
type Repository interface {
	// ListByPlayers returns all rows for the given players with game date
	// <= until. A zero until means no date cutoff.
	ListByPlayers(ctx context.Context, playerIDs []int64, until time.Time) ([]GameStat, error)
	// InsertSkipDuplicates inserts the rows whose (player_id, game_id) is
	// not stored yet and reports how many were inserted vs skipped.
	InsertSkipDuplicates(ctx context.Context, stats []GameStat) (inserted int, skipped int, err error)
}
