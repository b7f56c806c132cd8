package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/courtvision/fantasy-hoops/internal/domain/gamestat"
	"github.com/courtvision/fantasy-hoops/internal/domain/player"
	"github.com/courtvision/fantasy-hoops/internal/infrastructure/repository/memory"
	"github.com/courtvision/fantasy-hoops/internal/platform/logging"
)

type stubStatProvider struct {
	players  []player.Player
	logs     map[int64][]gamestat.GameStat
	failures map[int64]error
	listErr  error
}

func (p *stubStatProvider) ListActivePlayers(_ context.Context) ([]player.Player, error) {
	if p.listErr != nil {
		return nil, p.listErr
	}
	return p.players, nil
}

func (p *stubStatProvider) ListGameLogs(_ context.Context, playerID int64, _ time.Time) ([]gamestat.GameStat, error) {
	if err, ok := p.failures[playerID]; ok {
		return nil, err
	}
	return p.logs[playerID], nil
}

func TestIngestGameStatsProviderDown(t *testing.T) {
	t.Parallel()

	provider := &stubStatProvider{listErr: fmt.Errorf("connection refused")}
	service := NewIngestionService(provider, memory.NewPlayerRepository(nil), memory.NewGameStatRepository(nil), 4, logging.NewNop())

	_, err := service.IngestGameStats(context.Background(), time.Time{})
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestIngestGameStatsDeduplicatesAndCounts(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)
	existing := gameOn(1, "g0", day, 10, 3, 2, 1, 0, 4, 9, 2, 2, 0)

	provider := &stubStatProvider{
		players: []player.Player{
			{ID: 1, FullName: "Stephen Curry", IsActive: true},
			{ID: 2, FullName: "LeBron James", IsActive: true},
		},
		logs: map[int64][]gamestat.GameStat{
			1: {
				existing, // already stored
				gameOn(1, "g1", day, 30, 5, 6, 1, 0, 11, 22, 4, 4, 6),
				gameOn(1, "g1", day, 30, 5, 6, 1, 0, 11, 22, 4, 4, 6), // duplicate in batch
			},
			2: {
				gameOn(2, "g1", day, 24, 8, 9, 1, 1, 10, 18, 3, 5, 1),
			},
		},
	}

	playerRepo := memory.NewPlayerRepository(nil)
	statRepo := memory.NewGameStatRepository([]gamestat.GameStat{existing})
	service := NewIngestionService(provider, playerRepo, statRepo, 4, logging.NewNop())

	report, err := service.IngestGameStats(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("IngestGameStats error: %v", err)
	}

	if report.PlayersSynced != 2 {
		t.Errorf("players synced = %d, want 2", report.PlayersSynced)
	}
	if report.GamesInserted != 2 {
		t.Errorf("games inserted = %d, want 2", report.GamesInserted)
	}
	if report.GamesSkipped != 2 {
		t.Errorf("games skipped = %d, want 2 (one in-batch, one stored)", report.GamesSkipped)
	}
	if len(report.FailedPlayers) != 0 {
		t.Errorf("failed players = %v, want none", report.FailedPlayers)
	}

	synced, err := playerRepo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(synced) != 2 {
		t.Fatalf("player pool not synced: %d", len(synced))
	}
}

func TestIngestGameStatsCollectsPerPlayerFailures(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)
	provider := &stubStatProvider{
		players: []player.Player{
			{ID: 1, FullName: "Stephen Curry", IsActive: true},
			{ID: 2, FullName: "LeBron James", IsActive: true},
			{ID: 3, FullName: "Nikola Jokic", IsActive: true},
		},
		logs: map[int64][]gamestat.GameStat{
			2: {gameOn(2, "g1", day, 24, 8, 9, 1, 1, 10, 18, 3, 5, 1)},
		},
		failures: map[int64]error{
			1: fmt.Errorf("rate limited"),
			3: fmt.Errorf("rate limited"),
		},
	}

	service := NewIngestionService(provider, memory.NewPlayerRepository(nil), memory.NewGameStatRepository(nil), 2, logging.NewNop())

	report, err := service.IngestGameStats(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("IngestGameStats error: %v", err)
	}

	if report.GamesInserted != 1 {
		t.Errorf("games inserted = %d, want 1", report.GamesInserted)
	}
	if !reflect.DeepEqual(report.FailedPlayers, []int64{1, 3}) {
		t.Errorf("failed players = %v, want [1 3]", report.FailedPlayers)
	}
}

func TestIngestGameStatsDropsInvalidRows(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)
	bad := gameOn(1, "g1", day, 10, 3, 2, 1, 0, 4, 9, 2, 2, 0)
	bad.Points = -1

	provider := &stubStatProvider{
		players: []player.Player{{ID: 1, FullName: "Stephen Curry", IsActive: true}},
		logs:    map[int64][]gamestat.GameStat{1: {bad}},
	}

	service := NewIngestionService(provider, memory.NewPlayerRepository(nil), memory.NewGameStatRepository(nil), 2, logging.NewNop())

	report, err := service.IngestGameStats(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("IngestGameStats error: %v", err)
	}
	if report.GamesInserted != 0 {
		t.Fatalf("invalid row was inserted: %+v", report)
	}
}
