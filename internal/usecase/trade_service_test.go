package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/courtvision/fantasy-hoops/internal/domain/gamestat"
	"github.com/courtvision/fantasy-hoops/internal/domain/player"
	"github.com/courtvision/fantasy-hoops/internal/infrastructure/repository/memory"
)

func newTradeFixture(t *testing.T) *TradeService {
	t.Helper()

	players := []player.Player{
		{ID: 1, FullName: "Star Guard", IsActive: true},
		{ID: 2, FullName: "Solid Forward", IsActive: true},
		{ID: 3, FullName: "Role Player", IsActive: true},
		{ID: 4, FullName: "Bench Warmer", IsActive: true},
	}

	day := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)
	stats := []gamestat.GameStat{
		gameOn(1, "g1", day, 35, 8, 9, 2, 1, 13, 24, 5, 6, 4),
		gameOn(2, "g2", day, 24, 9, 4, 1, 1, 9, 18, 4, 5, 2),
		gameOn(3, "g3", day, 12, 4, 3, 1, 0, 5, 11, 2, 3, 0),
		gameOn(4, "g4", day, 4, 2, 1, 0, 0, 2, 7, 0, 1, 0),
	}

	values := NewPlayerValueService(
		memory.NewPlayerRepository(players),
		memory.NewGameStatRepository(stats),
		nil,
	)

	return NewTradeService(values)
}

func TestAnalyzeTradeRejectsEmptyAndOverlappingMoves(t *testing.T) {
	t.Parallel()

	service := newTradeFixture(t)
	ctx := context.Background()

	_, err := service.AnalyzeTrade(ctx, TradeInput{
		TeamARoster: []int64{1},
		TeamBRoster: []int64{2},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty moves: expected ErrInvalidInput, got %v", err)
	}

	_, err = service.AnalyzeTrade(ctx, TradeInput{
		TeamARoster: []int64{1},
		TeamBRoster: []int64{2},
		FromAToB:    []int64{1},
		FromBToA:    []int64{1},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("overlapping moves: expected ErrInvalidInput, got %v", err)
	}
}

func TestAnalyzeTradeDeltaSigns(t *testing.T) {
	t.Parallel()

	service := newTradeFixture(t)

	// Team A sheds its weakest player for Team B's star: A must come out
	// ahead and B behind, by the same amount.
	report, err := service.AnalyzeTrade(context.Background(), TradeInput{
		TeamARoster: []int64{3, 4},
		TeamBRoster: []int64{1, 2},
		FromAToB:    []int64{4},
		FromBToA:    []int64{1},
	})
	if err != nil {
		t.Fatalf("AnalyzeTrade error: %v", err)
	}

	if report.TeamA.Delta <= 0 {
		t.Errorf("team A delta = %v, want > 0", report.TeamA.Delta)
	}
	if report.TeamB.Delta >= 0 {
		t.Errorf("team B delta = %v, want < 0", report.TeamB.Delta)
	}
	if math.Abs(report.TeamA.Delta+report.TeamB.Delta) > 1e-9 {
		t.Errorf("one-for-one swap should be zero-sum, got A=%v B=%v",
			report.TeamA.Delta, report.TeamB.Delta)
	}

	if got := report.TeamA.After.TotalZ - report.TeamA.Before.TotalZ; math.Abs(got-report.TeamA.Delta) > 1e-9 {
		t.Errorf("delta %v does not match after-before %v", report.TeamA.Delta, got)
	}
}

func TestAnalyzeTradeEmptyRosterScoresZero(t *testing.T) {
	t.Parallel()

	service := newTradeFixture(t)

	report, err := service.AnalyzeTrade(context.Background(), TradeInput{
		TeamARoster: nil,
		TeamBRoster: []int64{1, 2},
		FromBToA:    []int64{2},
	})
	if err != nil {
		t.Fatalf("AnalyzeTrade error: %v", err)
	}

	if report.TeamA.Before.TotalZ != 0 || report.TeamA.Before.Players != 0 {
		t.Fatalf("empty roster should score zero, got %+v", report.TeamA.Before)
	}
	if report.TeamA.After.Players != 1 {
		t.Fatalf("incoming player should count after the trade, got %+v", report.TeamA.After)
	}
}

func TestAnalyzeTradeIgnoresUnknownPlayers(t *testing.T) {
	t.Parallel()

	service := newTradeFixture(t)

	report, err := service.AnalyzeTrade(context.Background(), TradeInput{
		TeamARoster: []int64{3, 999},
		TeamBRoster: []int64{2},
		FromAToB:    []int64{999},
	})
	if err != nil {
		t.Fatalf("AnalyzeTrade error: %v", err)
	}

	// Player 999 is not in the value table, so shipping them out changes
	// nothing for A.
	if report.TeamA.Delta != 0 {
		t.Fatalf("unknown player should contribute nothing, delta=%v", report.TeamA.Delta)
	}
}
