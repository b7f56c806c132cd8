package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/courtvision/fantasy-hoops/internal/domain/team"
	qb "github.com/courtvision/fantasy-hoops/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListByLeague(ctx context.Context, leagueID int64) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("fantasy_teams").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) GetByName(ctx context.Context, leagueID int64, name string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("fantasy_teams").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Expr("LOWER(name) = LOWER(?)", strings.TrimSpace(name)),
		).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team by name query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by name: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	if err := t.Validate(); err != nil {
		return team.Team{}, err
	}

	query, args, err := qb.InsertInto("fantasy_teams").
		Columns("league_id", "name", "owner_name").
		Values(t.LeagueID, t.Name, t.OwnerName).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return team.Team{}, fmt.Errorf("build insert team query: %w", err)
	}

	if err := r.db.GetContext(ctx, &t.ID, query, args...); err != nil {
		return team.Team{}, fmt.Errorf("insert team: %w", err)
	}

	return t, nil
}

func (r *TeamRepository) ListRosterPlayerIDs(ctx context.Context, teamID int64) ([]int64, error) {
	query, args, err := qb.Select("player_id").From("team_rosters").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster query: %w", err)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select roster: %w", err)
	}

	return ids, nil
}

func (r *TeamRepository) AddRosterPlayer(ctx context.Context, teamID, playerID int64) (bool, error) {
	query, args, err := qb.InsertInto("team_rosters").
		Columns("team_id", "player_id").
		Values(teamID, playerID).
		Suffix("ON CONFLICT (team_id, player_id) DO NOTHING").
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build insert roster query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert roster row: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("count roster insert: %w", err)
	}

	return affected > 0, nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:        row.ID,
		LeagueID:  row.LeagueID,
		Name:      row.Name,
		OwnerName: row.OwnerName,
	}
}
