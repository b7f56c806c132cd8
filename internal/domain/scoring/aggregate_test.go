package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/courtvision/fantasy-hoops/internal/domain/gamestat"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func statLine(playerID int64, gameID string, pts, reb, ast, stl, blk, fgm, fga, ftm, fta, tpm, tov int) gamestat.GameStat {
	return gamestat.GameStat{
		PlayerID:    playerID,
		GameID:      gameID,
		GameDate:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
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
		Turnovers:   tov,
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	t.Parallel()

	if got := Aggregate(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestAggregatePerGameAverages(t *testing.T) {
	t.Parallel()

	records := []gamestat.GameStat{
		statLine(30, "g1", 30, 5, 6, 1, 0, 10, 20, 7, 8, 3, 2),
		statLine(30, "g2", 20, 7, 8, 3, 2, 8, 24, 2, 2, 2, 4),
	}

	aggs := Aggregate(records)
	if len(aggs) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(aggs))
	}

	agg := aggs[0]
	if agg.Games != 2 {
		t.Errorf("games = %d, want 2", agg.Games)
	}
	if !almostEqual(agg.Points, 25) {
		t.Errorf("points = %v, want 25", agg.Points)
	}
	if !almostEqual(agg.Rebounds, 6) {
		t.Errorf("rebounds = %v, want 6", agg.Rebounds)
	}
	if !almostEqual(agg.Assists, 7) {
		t.Errorf("assists = %v, want 7", agg.Assists)
	}
}

func TestAggregatePercentagesFromSummedAttempts(t *testing.T) {
	t.Parallel()

	// Per-game FG%: 100% and 25%. Averaging those would give 62.5%; the
	// correct pooled percentage is 8/20 = 40%.
	records := []gamestat.GameStat{
		statLine(30, "g1", 8, 0, 0, 0, 0, 4, 4, 0, 0, 0, 0),
		statLine(30, "g2", 8, 0, 0, 0, 0, 4, 16, 0, 0, 0, 0),
	}

	aggs := Aggregate(records)
	if !almostEqual(aggs[0].FieldGoalPct, 0.4) {
		t.Fatalf("fg_pct = %v, want 0.4", aggs[0].FieldGoalPct)
	}
}

func TestAggregateZeroAttempts(t *testing.T) {
	t.Parallel()

	records := []gamestat.GameStat{
		statLine(30, "g1", 0, 4, 2, 0, 1, 0, 0, 0, 0, 0, 1),
	}

	aggs := Aggregate(records)
	if aggs[0].FieldGoalPct != 0 || aggs[0].FreeThrowPct != 0 {
		t.Fatalf("zero-attempt percentages should be 0, got fg=%v ft=%v",
			aggs[0].FieldGoalPct, aggs[0].FreeThrowPct)
	}
}

func TestAggregateOrderedByPlayerID(t *testing.T) {
	t.Parallel()

	records := []gamestat.GameStat{
		statLine(99, "g1", 10, 0, 0, 0, 0, 5, 10, 0, 0, 0, 0),
		statLine(7, "g1", 12, 0, 0, 0, 0, 6, 12, 0, 0, 0, 0),
		statLine(30, "g1", 14, 0, 0, 0, 0, 7, 14, 0, 0, 0, 0),
	}

	aggs := Aggregate(records)
	want := []int64{7, 30, 99}
	for i, id := range want {
		if aggs[i].PlayerID != id {
			t.Fatalf("position %d: player %d, want %d", i, aggs[i].PlayerID, id)
		}
	}
}
