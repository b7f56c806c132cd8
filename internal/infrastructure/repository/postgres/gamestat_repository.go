package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtvision/fantasy-hoops/internal/domain/gamestat"
	qb "github.com/courtvision/fantasy-hoops/internal/platform/querybuilder"
)

// insertChunkSize keeps multi-row inserts well under the Postgres 65535
// bind-parameter limit.
const insertChunkSize = 200

type GameStatRepository struct {
	db *sqlx.DB
}

func NewGameStatRepository(db *sqlx.DB) *GameStatRepository {
	return &GameStatRepository{db: db}
}

func (r *GameStatRepository) ListByPlayers(ctx context.Context, playerIDs []int64, until time.Time) ([]gamestat.GameStat, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}

	conditions := []qb.Condition{qb.Int64In("player_id", playerIDs)}
	if !until.IsZero() {
		conditions = append(conditions, qb.Lte("game_date", until))
	}

	query, args, err := qb.Select("*").From("player_game_stats").
		Where(conditions...).
		OrderBy("player_id", "game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select game stats query: %w", err)
	}

	var rows []gameStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select game stats: %w", err)
	}

	out := make([]gamestat.GameStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, gamestat.GameStat{
			PlayerID:    row.PlayerID,
			GameID:      row.GameID,
			GameDate:    row.GameDate,
			Matchup:     row.Matchup,
			Points:      row.Points,
			Rebounds:    row.Rebounds,
			Assists:     row.Assists,
			Steals:      row.Steals,
			Blocks:      row.Blocks,
			FGMade:      row.FGMade,
			FGAttempted: row.FGAttempted,
			FTMade:      row.FTMade,
			FTAttempted: row.FTAttempted,
			ThreesMade:  row.ThreesMade,
			Turnovers:   row.Turnovers,
		})
	}

	return out, nil
}

// InsertSkipDuplicates inserts game rows, silently skipping any (player,
// game) pair already stored. It reports how many rows actually landed and
// how many were skipped.
func (r *GameStatRepository) InsertSkipDuplicates(ctx context.Context, stats []gamestat.GameStat) (int, int, error) {
	if len(stats) == 0 {
		return 0, 0, nil
	}

	inserted := 0
	for start := 0; start < len(stats); start += insertChunkSize {
		end := min(start+insertChunkSize, len(stats))

		builder := qb.InsertInto("player_game_stats").
			Columns(
				"player_id", "game_id", "game_date", "matchup",
				"points", "rebounds", "assists", "steals", "blocks",
				"fg_made", "fg_attempted", "ft_made", "ft_attempted",
				"threes_made", "turnovers",
			).
			Suffix("ON CONFLICT (player_id, game_id) DO NOTHING")
		for _, rec := range stats[start:end] {
			builder.Values(
				rec.PlayerID, rec.GameID, rec.GameDate, rec.Matchup,
				rec.Points, rec.Rebounds, rec.Assists, rec.Steals, rec.Blocks,
				rec.FGMade, rec.FGAttempted, rec.FTMade, rec.FTAttempted,
				rec.ThreesMade, rec.Turnovers,
			)
		}

		query, args, err := builder.ToSQL()
		if err != nil {
			return inserted, 0, fmt.Errorf("build insert game stats query: %w", err)
		}

		result, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return inserted, 0, fmt.Errorf("insert game stats: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return inserted, 0, fmt.Errorf("count inserted game stats: %w", err)
		}
		inserted += int(affected)
	}

	return inserted, len(stats) - inserted, nil
}
