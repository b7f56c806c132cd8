package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/courtvision/fantasy-hoops/internal/domain/gamestat"
)

type GameStatRepository struct {
	mu    sync.RWMutex
	items map[gamestat.Key]gamestat.GameStat
}

func NewGameStatRepository(stats []gamestat.GameStat) *GameStatRepository {
	items := make(map[gamestat.Key]gamestat.GameStat, len(stats))
	for _, rec := range stats {
		items[gamestat.Key{PlayerID: rec.PlayerID, GameID: rec.GameID}] = rec
	}

	return &GameStatRepository{items: items}
}

func (r *GameStatRepository) ListByPlayers(_ context.Context, playerIDs []int64, until time.Time) ([]gamestat.GameStat, error) {
	wanted := make(map[int64]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gamestat.GameStat, 0, len(r.items))
	for _, rec := range r.items {
		if _, ok := wanted[rec.PlayerID]; !ok {
			continue
		}
		if !until.IsZero() && rec.GameDate.After(until) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PlayerID != out[j].PlayerID {
			return out[i].PlayerID < out[j].PlayerID
		}
		return out[i].GameID < out[j].GameID
	})

	return out, nil
}

func (r *GameStatRepository) InsertSkipDuplicates(_ context.Context, stats []gamestat.GameStat) (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inserted, skipped := 0, 0
	for _, rec := range stats {
		key := gamestat.Key{PlayerID: rec.PlayerID, GameID: rec.GameID}
		if _, exists := r.items[key]; exists {
			skipped++
			continue
		}
		r.items[key] = rec
		inserted++
	}

	return inserted, skipped, nil
}
