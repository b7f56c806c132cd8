package standings

import (
	"context"
	"time"
)

// Repository persists daily standings. Upsert replaces any existing row for
// the same (league, team, date) so recalculation is idempotent.
type Repository interface {
	Upsert(ctx context.Context, rows []DailyStanding) error
	ListByLeagueDate(ctx context.Context, leagueID int64, date time.Time) ([]DailyStanding, error)
}
