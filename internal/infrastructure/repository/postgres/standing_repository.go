package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/courtvision/fantasy-hoops/internal/domain/standings"
	qb "github.com/courtvision/fantasy-hoops/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

// Upsert writes one batch of standings atomically. Rows keyed to an existing
// (league, team, date) are overwritten in place, so recomputation never
// duplicates.
func (r *StandingRepository) Upsert(ctx context.Context, rows []standings.DailyStanding) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin standings tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, row := range rows {
		query, args, err := qb.InsertInto("daily_standings").
			Columns(
				"league_id", "team_id", "date",
				"total_points", "total_rebounds", "total_assists",
				"total_steals", "total_blocks", "total_threes",
				"fg_pct", "ft_pct",
				"points_pts", "points_reb", "points_ast", "points_stl",
				"points_blk", "points_tpm", "points_fg_pct", "points_ft_pct",
				"total_roto_points", "rank",
			).
			Values(
				row.LeagueID, row.TeamID, row.Date,
				row.TotalPoints, row.TotalRebounds, row.TotalAssists,
				row.TotalSteals, row.TotalBlocks, row.TotalThrees,
				row.FieldGoalPct, row.FreeThrowPct,
				row.PointsPts, row.PointsReb, row.PointsAst, row.PointsStl,
				row.PointsBlk, row.PointsTpm, row.PointsFgPct, row.PointsFtPct,
				row.TotalRotoPoints, row.Rank,
			).
			Suffix(`ON CONFLICT (league_id, team_id, date) DO UPDATE SET
				total_points = EXCLUDED.total_points,
				total_rebounds = EXCLUDED.total_rebounds,
				total_assists = EXCLUDED.total_assists,
				total_steals = EXCLUDED.total_steals,
				total_blocks = EXCLUDED.total_blocks,
				total_threes = EXCLUDED.total_threes,
				fg_pct = EXCLUDED.fg_pct,
				ft_pct = EXCLUDED.ft_pct,
				points_pts = EXCLUDED.points_pts,
				points_reb = EXCLUDED.points_reb,
				points_ast = EXCLUDED.points_ast,
				points_stl = EXCLUDED.points_stl,
				points_blk = EXCLUDED.points_blk,
				points_tpm = EXCLUDED.points_tpm,
				points_fg_pct = EXCLUDED.points_fg_pct,
				points_ft_pct = EXCLUDED.points_ft_pct,
				total_roto_points = EXCLUDED.total_roto_points,
				rank = EXCLUDED.rank,
				updated_at = NOW()`).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert standing query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert standing (league=%d team=%d): %w", row.LeagueID, row.TeamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit standings tx: %w", err)
	}

	return nil
}

func (r *StandingRepository) ListByLeagueDate(ctx context.Context, leagueID int64, date time.Time) ([]standings.DailyStanding, error) {
	query, args, err := qb.Select("*").From("daily_standings").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("date", date),
		).
		OrderBy("rank", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select standings query: %w", err)
	}

	var rows []standingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select standings: %w", err)
	}

	out := make([]standings.DailyStanding, 0, len(rows))
	for _, row := range rows {
		out = append(out, standings.DailyStanding{
			ID:              row.ID,
			LeagueID:        row.LeagueID,
			TeamID:          row.TeamID,
			Date:            row.Date,
			TotalPoints:     row.TotalPoints,
			TotalRebounds:   row.TotalRebounds,
			TotalAssists:    row.TotalAssists,
			TotalSteals:     row.TotalSteals,
			TotalBlocks:     row.TotalBlocks,
			TotalThrees:     row.TotalThrees,
			FieldGoalPct:    row.FieldGoalPct,
			FreeThrowPct:    row.FreeThrowPct,
			PointsPts:       row.PointsPts,
			PointsReb:       row.PointsReb,
			PointsAst:       row.PointsAst,
			PointsStl:       row.PointsStl,
			PointsBlk:       row.PointsBlk,
			PointsTpm:       row.PointsTpm,
			PointsFgPct:     row.PointsFgPct,
			PointsFtPct:     row.PointsFtPct,
			TotalRotoPoints: row.TotalRotoPoints,
			Rank:            row.Rank,
		})
	}

	return out, nil
}
