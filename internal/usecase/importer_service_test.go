package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/courtvision/fantasy-hoops/internal/domain/league"
	"github.com/courtvision/fantasy-hoops/internal/domain/player"
	"github.com/courtvision/fantasy-hoops/internal/infrastructure/repository/memory"
)

func newImporterFixture(t *testing.T, pool []player.Player) (*ImporterService, *memory.TeamRepository) {
	t.Helper()

	leagueRepo := memory.NewLeagueRepository([]league.League{
		{ID: 1, Name: "Test League", Season: "2025-26"},
	})
	teamRepo := memory.NewTeamRepository(nil)
	playerRepo := memory.NewPlayerRepository(pool)

	return NewImporterService(leagueRepo, teamRepo, playerRepo), teamRepo
}

func TestImportRostersValidation(t *testing.T) {
	t.Parallel()

	service, _ := newImporterFixture(t, nil)
	ctx := context.Background()

	if _, err := service.ImportRosters(ctx, 1, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty map: expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.ImportRosters(ctx, 1, map[string][]string{" ": {"Someone"}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank team name: expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.ImportRosters(ctx, 99, map[string][]string{"Warriors": nil}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown league: expected ErrNotFound, got %v", err)
	}
}

func TestImportRostersFuzzyMatching(t *testing.T) {
	t.Parallel()

	pool := []player.Player{
		{ID: 201939, FullName: "Stephen Curry", IsActive: true},
		{ID: 2544, FullName: "LeBron James", IsActive: true},
	}
	service, teamRepo := newImporterFixture(t, pool)
	ctx := context.Background()

	report, err := service.ImportRosters(ctx, 1, map[string][]string{
		"Warriors": {"Steph Curry"},
		"Lakers":   {"Lebron James", "Unknown Player"},
	})
	if err != nil {
		t.Fatalf("ImportRosters error: %v", err)
	}

	if report.TeamsCreated != 2 || report.TeamsUpdated != 0 {
		t.Errorf("teams: created=%d updated=%d, want 2/0", report.TeamsCreated, report.TeamsUpdated)
	}
	if report.PlayersAdded != 2 {
		t.Errorf("players added = %d, want 2", report.PlayersAdded)
	}
	if len(report.PlayersNotFound) != 1 {
		t.Fatalf("unmatched = %v, want exactly one", report.PlayersNotFound)
	}
	if report.PlayersNotFound[0].Team != "Lakers" || report.PlayersNotFound[0].Player != "Unknown Player" {
		t.Fatalf("unexpected unmatched entry: %+v", report.PlayersNotFound[0])
	}

	warriors, found, err := teamRepo.GetByName(ctx, 1, "Warriors")
	if err != nil || !found {
		t.Fatalf("warriors team missing: found=%v err=%v", found, err)
	}
	roster, err := teamRepo.ListRosterPlayerIDs(ctx, warriors.ID)
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	if len(roster) != 1 || roster[0] != 201939 {
		t.Fatalf("fuzzy match should roster Stephen Curry, got %v", roster)
	}
}

func TestImportRostersRepeatRunUpdatesInPlace(t *testing.T) {
	t.Parallel()

	pool := []player.Player{
		{ID: 201939, FullName: "Stephen Curry", IsActive: true},
	}
	service, _ := newImporterFixture(t, pool)
	ctx := context.Background()
	rosters := map[string][]string{"Warriors": {"Stephen Curry"}}

	if _, err := service.ImportRosters(ctx, 1, rosters); err != nil {
		t.Fatalf("first import: %v", err)
	}

	report, err := service.ImportRosters(ctx, 1, rosters)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if report.TeamsCreated != 0 || report.TeamsUpdated != 1 {
		t.Errorf("teams: created=%d updated=%d, want 0/1", report.TeamsCreated, report.TeamsUpdated)
	}
	if report.PlayersAdded != 0 {
		t.Errorf("already-rostered player counted as added: %d", report.PlayersAdded)
	}
}
