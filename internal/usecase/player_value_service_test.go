package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/courtvision/fantasy-hoops/internal/domain/gamestat"
	"github.com/courtvision/fantasy-hoops/internal/domain/player"
	"github.com/courtvision/fantasy-hoops/internal/domain/scoring"
	"github.com/courtvision/fantasy-hoops/internal/infrastructure/repository/memory"
	"github.com/courtvision/fantasy-hoops/internal/platform/cache"
)

func TestValueTable_SortedAndPoolRelative(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	players := []player.Player{
		{ID: 1, FullName: "Alpha", IsActive: true},
		{ID: 2, FullName: "Beta", IsActive: true},
		{ID: 3, FullName: "Benched", IsActive: false},
	}
	stats := []gamestat.GameStat{
		gameOn(1, "g1", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), 30, 10, 8, 2, 1, 11, 20, 5, 6, 3),
		gameOn(2, "g2", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), 10, 4, 2, 1, 0, 4, 12, 2, 4, 0),
	}

	svc := NewPlayerValueService(
		memory.NewPlayerRepository(players),
		memory.NewGameStatRepository(stats),
		nil,
	)

	rows, err := svc.ValueTable(ctx, nil)
	if err != nil {
		t.Fatalf("value table: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows (inactive player excluded), got %d", len(rows))
	}
	if rows[0].Player.ID != 1 {
		t.Fatalf("expected the stronger player first, got %d", rows[0].Player.ID)
	}
	if rows[0].Value.Composite <= rows[1].Value.Composite {
		t.Fatalf("expected descending composite order")
	}
	// Two-player pool: z-scores are symmetric around zero.
	if total := rows[0].Value.Composite + rows[1].Value.Composite; total > 1e-9 || total < -1e-9 {
		t.Fatalf("expected composites to sum to zero, got %f", total)
	}
}

func TestValueTable_CacheServesUntilInvalidated(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	players := []player.Player{{ID: 1, FullName: "Alpha", IsActive: true}}
	statRepo := memory.NewGameStatRepository([]gamestat.GameStat{
		gameOn(1, "g1", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), 10, 5, 5, 1, 1, 4, 8, 2, 2, 0),
	})

	svc := NewPlayerValueService(
		memory.NewPlayerRepository(players),
		statRepo,
		cache.NewStore(time.Minute),
	)

	first, err := svc.ValueTable(ctx, nil)
	if err != nil {
		t.Fatalf("value table: %v", err)
	}
	if first[0].Value.Games != 1 {
		t.Fatalf("expected 1 game, got %d", first[0].Value.Games)
	}

	inserted, _, err := statRepo.InsertSkipDuplicates(ctx, []gamestat.GameStat{
		gameOn(1, "g2", time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC), 20, 5, 5, 1, 1, 8, 16, 4, 4, 0),
	})
	if err != nil || inserted != 1 {
		t.Fatalf("insert second game: inserted=%d err=%v", inserted, err)
	}

	cached, err := svc.ValueTable(ctx, nil)
	if err != nil {
		t.Fatalf("value table: %v", err)
	}
	if cached[0].Value.Games != 1 {
		t.Fatalf("expected the cached table to still report 1 game, got %d", cached[0].Value.Games)
	}

	svc.InvalidateValues(ctx)

	fresh, err := svc.ValueTable(ctx, nil)
	if err != nil {
		t.Fatalf("value table: %v", err)
	}
	if fresh[0].Value.Games != 2 {
		t.Fatalf("expected a rebuilt table with 2 games, got %d", fresh[0].Value.Games)
	}
}

func TestValueTable_SubsetCategories(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	players := []player.Player{
		{ID: 1, FullName: "Alpha", IsActive: true},
		{ID: 2, FullName: "Beta", IsActive: true},
	}
	stats := []gamestat.GameStat{
		gameOn(1, "g1", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), 30, 2, 2, 1, 0, 11, 20, 5, 6, 3),
		gameOn(2, "g2", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), 10, 12, 9, 1, 0, 4, 12, 2, 4, 0),
	}

	svc := NewPlayerValueService(
		memory.NewPlayerRepository(players),
		memory.NewGameStatRepository(stats),
		nil,
	)

	rows, err := svc.ValueTable(ctx, []scoring.Category{scoring.CategoryRebounds, scoring.CategoryAssists})
	if err != nil {
		t.Fatalf("value table: %v", err)
	}

	if rows[0].Player.ID != 2 {
		t.Fatalf("expected the rebound/assist leader first under a narrowed set, got %d", rows[0].Player.ID)
	}
	if len(rows[0].Value.Categories) != 2 {
		t.Fatalf("expected exactly the requested categories, got %d", len(rows[0].Value.Categories))
	}
}
