package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/courtvision/fantasy-hoops/internal/domain/gamestat"
	"github.com/courtvision/fantasy-hoops/internal/domain/league"
	"github.com/courtvision/fantasy-hoops/internal/domain/scoring"
	"github.com/courtvision/fantasy-hoops/internal/domain/standings"
	"github.com/courtvision/fantasy-hoops/internal/domain/team"
)

// RotoService recalculates and serves a league's rotisserie standings.
// Each team earns 1..N rank points per category (ascending, ties share
// the average) and the composite total decides the final rank.
type RotoService struct {
	leagueRepo   league.Repository
	teamRepo     team.Repository
	statRepo     gamestat.Repository
	standingRepo standings.Repository
}

func NewRotoService(
	leagueRepo league.Repository,
	teamRepo team.Repository,
	statRepo gamestat.Repository,
	standingRepo standings.Repository,
) *RotoService {
	return &RotoService{
		leagueRepo:   leagueRepo,
		teamRepo:     teamRepo,
		statRepo:     statRepo,
		standingRepo: standingRepo,
	}
}

type teamTotals struct {
	teamID int64

	pts, reb, ast, stl, blk, tpm int
	fgm, fga, ftm, fta           int
}

func (t teamTotals) fgPct() float64 {
	if t.fga == 0 {
		return 0
	}
	return float64(t.fgm) / float64(t.fga)
}

func (t teamTotals) ftPct() float64 {
	if t.fta == 0 {
		return 0
	}
	return float64(t.ftm) / float64(t.fta)
}

func (t teamTotals) value(cat scoring.Category) float64 {
	switch cat {
	case scoring.CategoryPoints:
		return float64(t.pts)
	case scoring.CategoryRebounds:
		return float64(t.reb)
	case scoring.CategoryAssists:
		return float64(t.ast)
	case scoring.CategorySteals:
		return float64(t.stl)
	case scoring.CategoryBlocks:
		return float64(t.blk)
	case scoring.CategoryThrees:
		return float64(t.tpm)
	case scoring.CategoryFieldGoalPct:
		return t.fgPct()
	case scoring.CategoryFreeThrowPct:
		return t.ftPct()
	default:
		return 0
	}
}

// CalculateStandings rebuilds a league's standings as of a date and persists
// them. A zero asOf means today. Every game on or before the date counts,
// attributed to whoever currently rosters the player. Recalculating the same
// (league, date) replaces the previous rows.
func (s *RotoService) CalculateStandings(ctx context.Context, leagueID int64, asOf time.Time) ([]standings.DailyStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "RotoService.CalculateStandings")
	defer span.End()

	if leagueID <= 0 {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	asOf = normalizeDate(asOf)

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}

	teams, err := s.teamRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	if len(teams) == 0 {
		return []standings.DailyStanding{}, nil
	}

	totals, err := iter.MapErr(teams, func(t *team.Team) (teamTotals, error) {
		return s.teamTotalsAsOf(ctx, t.ID, asOf)
	})
	if err != nil {
		return nil, err
	}

	rows := make([]standings.DailyStanding, len(teams))
	for i, t := range teams {
		tot := totals[i]
		rows[i] = standings.DailyStanding{
			LeagueID:      leagueID,
			TeamID:        t.ID,
			Date:          asOf,
			TotalPoints:   tot.pts,
			TotalRebounds: tot.reb,
			TotalAssists:  tot.ast,
			TotalSteals:   tot.stl,
			TotalBlocks:   tot.blk,
			TotalThrees:   tot.tpm,
			FieldGoalPct:  tot.fgPct(),
			FreeThrowPct:  tot.ftPct(),
		}
	}

	for _, cat := range scoring.DefaultCategories() {
		values := make([]float64, len(totals))
		for i, tot := range totals {
			values[i] = tot.value(cat)
		}
		points := scoring.RankAverage(values)
		for i, pts := range points {
			setCategoryPoints(&rows[i], cat, pts)
			rows[i].TotalRotoPoints += pts
		}
	}

	composites := make([]float64, len(rows))
	for i, row := range rows {
		composites[i] = row.TotalRotoPoints
	}
	for i, rank := range scoring.RankMinDescending(composites) {
		rows[i].Rank = rank
	}

	if err := s.standingRepo.Upsert(ctx, rows); err != nil {
		return nil, fmt.Errorf("upsert standings: %w", err)
	}

	return rows, nil
}

// ListStandings returns the persisted standings for a league and date. A
// zero date means today.
func (s *RotoService) ListStandings(ctx context.Context, leagueID int64, date time.Time) ([]standings.DailyStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "RotoService.ListStandings")
	defer span.End()

	if leagueID <= 0 {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	date = normalizeDate(date)

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}

	rows, err := s.standingRepo.ListByLeagueDate(ctx, leagueID, date)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	return rows, nil
}

func (s *RotoService) teamTotalsAsOf(ctx context.Context, teamID int64, asOf time.Time) (teamTotals, error) {
	tot := teamTotals{teamID: teamID}

	playerIDs, err := s.teamRepo.ListRosterPlayerIDs(ctx, teamID)
	if err != nil {
		return tot, fmt.Errorf("list roster for team %d: %w", teamID, err)
	}
	if len(playerIDs) == 0 {
		return tot, nil
	}

	stats, err := s.statRepo.ListByPlayers(ctx, playerIDs, asOf)
	if err != nil {
		return tot, fmt.Errorf("list stats for team %d: %w", teamID, err)
	}

	for _, rec := range stats {
		tot.pts += rec.Points
		tot.reb += rec.Rebounds
		tot.ast += rec.Assists
		tot.stl += rec.Steals
		tot.blk += rec.Blocks
		tot.tpm += rec.ThreesMade
		tot.fgm += rec.FGMade
		tot.fga += rec.FGAttempted
		tot.ftm += rec.FTMade
		tot.fta += rec.FTAttempted
	}

	return tot, nil
}

func setCategoryPoints(row *standings.DailyStanding, cat scoring.Category, pts float64) {
	switch cat {
	case scoring.CategoryPoints:
		row.PointsPts = pts
	case scoring.CategoryRebounds:
		row.PointsReb = pts
	case scoring.CategoryAssists:
		row.PointsAst = pts
	case scoring.CategorySteals:
		row.PointsStl = pts
	case scoring.CategoryBlocks:
		row.PointsBlk = pts
	case scoring.CategoryThrees:
		row.PointsTpm = pts
	case scoring.CategoryFieldGoalPct:
		row.PointsFgPct = pts
	case scoring.CategoryFreeThrowPct:
		row.PointsFtPct = pts
	}
}

func normalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	t = t.UTC()

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
