package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/courtvision/fantasy-hoops/internal/domain/player"
	qb "github.com/courtvision/fantasy-hoops/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListActive(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("is_active", true)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select active players: %w", err)
	}

	return playersFromRows(rows), nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []int64) ([]player.Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("*").From("players").
		Where(qb.Int64In("id", ids)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	return playersFromRows(rows), nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, players []player.Player) error {
	if len(players) == 0 {
		return nil
	}

	builder := qb.InsertInto("players").
		Columns("id", "full_name", "team_abbr", "position", "is_active").
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			team_abbr = EXCLUDED.team_abbr,
			position = EXCLUDED.position,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()`)
	for _, p := range players {
		builder.Values(p.ID, p.FullName, p.TeamAbbr, p.Position, p.IsActive)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert players query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert players: %w", err)
	}

	return nil
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:       row.ID,
			FullName: row.FullName,
			TeamAbbr: row.TeamAbbr,
			Position: row.Position,
			IsActive: row.IsActive,
		})
	}

	return out
}
