package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/courtvision/fantasy-hoops/internal/domain/gamestat"
	"github.com/courtvision/fantasy-hoops/internal/domain/league"
	"github.com/courtvision/fantasy-hoops/internal/domain/team"
	"github.com/courtvision/fantasy-hoops/internal/infrastructure/repository/memory"
)

type rotoFixture struct {
	service   *RotoService
	teamRepo  *memory.TeamRepository
	standings *memory.StandingRepository
}

func newRotoFixture(t *testing.T, teams []team.Team, stats []gamestat.GameStat, rosters map[int64][]int64) rotoFixture {
	t.Helper()

	leagueRepo := memory.NewLeagueRepository([]league.League{
		{ID: 1, Name: "Test League", Season: "2025-26"},
	})
	teamRepo := memory.NewTeamRepository(teams)
	statRepo := memory.NewGameStatRepository(stats)
	standingRepo := memory.NewStandingRepository()

	ctx := context.Background()
	for teamID, playerIDs := range rosters {
		for _, playerID := range playerIDs {
			if _, err := teamRepo.AddRosterPlayer(ctx, teamID, playerID); err != nil {
				t.Fatalf("roster setup: %v", err)
			}
		}
	}

	return rotoFixture{
		service:   NewRotoService(leagueRepo, teamRepo, statRepo, standingRepo),
		teamRepo:  teamRepo,
		standings: standingRepo,
	}
}

func gameOn(playerID int64, gameID string, date time.Time, pts, reb, ast, stl, blk, fgm, fga, ftm, fta, tpm int) gamestat.GameStat {
	return gamestat.GameStat{
		PlayerID:    playerID,
		GameID:      gameID,
		GameDate:    date,
		Matchup:     "GSW vs. LAL",
		Points:      pts,
		Rebounds:    reb,
		Assists:     ast,
		Steals:      stl,
		Blocks:      blk,
		FGMade:      fgm,
		FGAttempted: fga,
		FTMade:      ftm,
		FTAttempted: fta,
		ThreesMade:  tpm,
	}
}

func TestCalculateStandingsUnknownLeague(t *testing.T) {
	t.Parallel()

	fix := newRotoFixture(t, nil, nil, nil)

	_, err := fix.service.CalculateStandings(context.Background(), 42, time.Time{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCalculateStandingsEmptyLeague(t *testing.T) {
	t.Parallel()

	fix := newRotoFixture(t, nil, nil, nil)

	rows, err := fix.service.CalculateStandings(context.Background(), 1, time.Time{})
	if err != nil {
		t.Fatalf("CalculateStandings error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows for empty league, got %d", len(rows))
	}
}

func TestCalculateStandingsDominantTeamWithOneTiedCategory(t *testing.T) {
	t.Parallel()

	asOf := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	gameDay := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)

	teams := []team.Team{
		{ID: 10, LeagueID: 1, Name: "Team A"},
		{ID: 20, LeagueID: 1, Name: "Team B"},
	}
	stats := []gamestat.GameStat{
		// Team B leads every category except steals, which ties at 2.
		gameOn(100, "g1", gameDay, 10, 5, 3, 2, 1, 4, 10, 1, 2, 1),
		gameOn(200, "g2", gameDay, 30, 10, 8, 2, 3, 12, 20, 6, 8, 4),
	}
	rosters := map[int64][]int64{10: {100}, 20: {200}}

	fix := newRotoFixture(t, teams, stats, rosters)

	rows, err := fix.service.CalculateStandings(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("CalculateStandings error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	byTeam := map[int64]int{}
	for i, row := range rows {
		byTeam[row.TeamID] = i
	}
	a := rows[byTeam[10]]
	b := rows[byTeam[20]]

	if b.Rank != 1 || a.Rank != 2 {
		t.Fatalf("expected B=1 A=2, got B=%d A=%d", b.Rank, a.Rank)
	}
	if a.PointsStl != 1.5 || b.PointsStl != 1.5 {
		t.Fatalf("tied steals should award 1.5 each, got A=%v B=%v", a.PointsStl, b.PointsStl)
	}
	if a.TotalRotoPoints != 8.5 || b.TotalRotoPoints != 15.5 {
		t.Fatalf("unexpected totals: A=%v B=%v", a.TotalRotoPoints, b.TotalRotoPoints)
	}
}

func TestCalculateStandingsCompositeTieTakesMinimumRank(t *testing.T) {
	t.Parallel()

	asOf := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	gameDay := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)

	teams := []team.Team{
		{ID: 10, LeagueID: 1, Name: "Team A"},
		{ID: 20, LeagueID: 1, Name: "Team B"},
		{ID: 30, LeagueID: 1, Name: "Team C"},
	}
	stats := []gamestat.GameStat{
		// A and B mirror each other exactly; C trails everywhere.
		gameOn(100, "g1", gameDay, 20, 8, 5, 2, 1, 8, 16, 3, 4, 2),
		gameOn(200, "g2", gameDay, 20, 8, 5, 2, 1, 8, 16, 3, 4, 2),
		gameOn(300, "g3", gameDay, 5, 2, 1, 0, 0, 2, 8, 1, 3, 0),
	}
	rosters := map[int64][]int64{10: {100}, 20: {200}, 30: {300}}

	fix := newRotoFixture(t, teams, stats, rosters)

	rows, err := fix.service.CalculateStandings(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("CalculateStandings error: %v", err)
	}

	ranks := map[int64]int{}
	for _, row := range rows {
		ranks[row.TeamID] = row.Rank
	}
	if ranks[10] != 1 || ranks[20] != 1 {
		t.Fatalf("tied leaders should both rank 1, got A=%d B=%d", ranks[10], ranks[20])
	}
	if ranks[30] != 3 {
		t.Fatalf("trailing team should rank 3, got %d", ranks[30])
	}
}

func TestCalculateStandingsEmptyRosterParticipates(t *testing.T) {
	t.Parallel()

	asOf := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	gameDay := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)

	teams := []team.Team{
		{ID: 10, LeagueID: 1, Name: "Team A"},
		{ID: 20, LeagueID: 1, Name: "Empty"},
	}
	stats := []gamestat.GameStat{
		gameOn(100, "g1", gameDay, 20, 8, 5, 2, 1, 8, 16, 3, 4, 2),
	}
	rosters := map[int64][]int64{10: {100}}

	fix := newRotoFixture(t, teams, stats, rosters)

	rows, err := fix.service.CalculateStandings(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("CalculateStandings error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected empty-roster team to get a row, got %d rows", len(rows))
	}

	var empty, full int
	for i, row := range rows {
		if row.TeamID == 20 {
			empty = i
		} else {
			full = i
		}
	}
	if rows[empty].TotalPoints != 0 || rows[empty].TotalRotoPoints != 8 {
		t.Fatalf("empty roster should earn the minimum point in all 8 categories, got %+v", rows[empty])
	}
	if rows[empty].Rank != 2 || rows[full].Rank != 1 {
		t.Fatalf("unexpected ranks: empty=%d full=%d", rows[empty].Rank, rows[full].Rank)
	}
}

func TestCalculateStandingsIgnoresGamesAfterDate(t *testing.T) {
	t.Parallel()

	asOf := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

	teams := []team.Team{{ID: 10, LeagueID: 1, Name: "Team A"}}
	stats := []gamestat.GameStat{
		gameOn(100, "g1", time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC), 20, 8, 5, 2, 1, 8, 16, 3, 4, 2),
		gameOn(100, "g2", time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC), 40, 8, 5, 2, 1, 16, 30, 3, 4, 2),
	}
	rosters := map[int64][]int64{10: {100}}

	fix := newRotoFixture(t, teams, stats, rosters)

	rows, err := fix.service.CalculateStandings(context.Background(), 1, asOf)
	if err != nil {
		t.Fatalf("CalculateStandings error: %v", err)
	}
	if rows[0].TotalPoints != 20 {
		t.Fatalf("later game leaked into totals: %d", rows[0].TotalPoints)
	}
}

func TestCalculateStandingsIdempotent(t *testing.T) {
	t.Parallel()

	asOf := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	gameDay := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)

	teams := []team.Team{
		{ID: 10, LeagueID: 1, Name: "Team A"},
		{ID: 20, LeagueID: 1, Name: "Team B"},
	}
	stats := []gamestat.GameStat{
		gameOn(100, "g1", gameDay, 10, 5, 3, 2, 1, 4, 10, 1, 2, 1),
		gameOn(200, "g2", gameDay, 30, 10, 8, 2, 3, 12, 20, 6, 8, 4),
	}
	rosters := map[int64][]int64{10: {100}, 20: {200}}

	fix := newRotoFixture(t, teams, stats, rosters)
	ctx := context.Background()

	if _, err := fix.service.CalculateStandings(ctx, 1, asOf); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, err := fix.standings.ListByLeagueDate(ctx, 1, asOf)
	if err != nil {
		t.Fatalf("list after first run: %v", err)
	}

	if _, err := fix.service.CalculateStandings(ctx, 1, asOf); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, err := fix.standings.ListByLeagueDate(ctx, 1, asOf)
	if err != nil {
		t.Fatalf("list after second run: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("recomputation changed stored rows:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if fix.standings.Count() != len(teams) {
		t.Fatalf("recomputation duplicated rows: count=%d", fix.standings.Count())
	}
}
