package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/courtvision/fantasy-hoops/internal/domain/gamestat"
	"github.com/courtvision/fantasy-hoops/internal/domain/player"
	"github.com/courtvision/fantasy-hoops/internal/domain/scoring"
	"github.com/courtvision/fantasy-hoops/internal/platform/cache"
)

const playerValueCachePrefix = "player_values:"

// PlayerValueRow pairs a player's identity with their pool-relative value.
type PlayerValueRow struct {
	Player player.Player
	Value  scoring.PlayerValue
}

// PlayerValueService computes the league-wide player value table: per-game
// aggregates over every active player's game log, z-scored against that
// whole pool. Results are cached per category set until stats change.
type PlayerValueService struct {
	playerRepo player.Repository
	statRepo   gamestat.Repository
	cache      *cache.Store
}

func NewPlayerValueService(playerRepo player.Repository, statRepo gamestat.Repository, store *cache.Store) *PlayerValueService {
	return &PlayerValueService{
		playerRepo: playerRepo,
		statRepo:   statRepo,
		cache:      store,
	}
}

// ValueTable returns every active player ranked by composite z-score. An
// empty category list means the standard 8-cat set.
func (s *PlayerValueService) ValueTable(ctx context.Context, categories []scoring.Category) ([]PlayerValueRow, error) {
	ctx, span := startUsecaseSpan(ctx, "PlayerValueService.ValueTable")
	defer span.End()

	if len(categories) == 0 {
		categories = scoring.DefaultCategories()
	}

	if s.cache == nil {
		return s.buildTable(ctx, categories)
	}

	value, err := s.cache.GetOrLoad(ctx, valueTableCacheKey(categories), func(ctx context.Context) (any, error) {
		return s.buildTable(ctx, categories)
	})
	if err != nil {
		return nil, err
	}

	rows, ok := value.([]PlayerValueRow)
	if !ok {
		return nil, fmt.Errorf("unexpected cache entry type %T", value)
	}

	return rows, nil
}

// InvalidateValues drops every cached value table. Called after ingestion
// writes new game rows.
func (s *PlayerValueService) InvalidateValues(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.cache.DeletePrefix(ctx, playerValueCachePrefix)
}

func (s *PlayerValueService) buildTable(ctx context.Context, categories []scoring.Category) ([]PlayerValueRow, error) {
	players, err := s.playerRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active players: %w", err)
	}
	if len(players) == 0 {
		return []PlayerValueRow{}, nil
	}

	byID := make(map[int64]player.Player, len(players))
	ids := make([]int64, 0, len(players))
	for _, p := range players {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	stats, err := s.statRepo.ListByPlayers(ctx, ids, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("list game stats: %w", err)
	}

	values := scoring.ZScores(scoring.Aggregate(stats), categories)

	rows := make([]PlayerValueRow, 0, len(values))
	for _, v := range values {
		rows = append(rows, PlayerValueRow{
			Player: byID[v.PlayerID],
			Value:  v,
		})
	}

	return rows, nil
}

func valueTableCacheKey(categories []scoring.Category) string {
	parts := make([]string, 0, len(categories))
	for _, cat := range categories {
		parts = append(parts, string(cat))
	}

	return playerValueCachePrefix + strings.Join(parts, ",")
}
