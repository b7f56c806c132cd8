package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/courtvision/fantasy-hoops/internal/domain/standings"
)

type standingKey struct {
	leagueID int64
	teamID   int64
	date     time.Time
}

type StandingRepository struct {
	mu     sync.RWMutex
	items  map[standingKey]standings.DailyStanding
	nextID int64
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{
		items:  make(map[standingKey]standings.DailyStanding),
		nextID: 1,
	}
}

func (r *StandingRepository) Upsert(_ context.Context, rows []standings.DailyStanding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range rows {
		key := standingKey{leagueID: row.LeagueID, teamID: row.TeamID, date: row.Date}
		if existing, ok := r.items[key]; ok {
			row.ID = existing.ID
		} else {
			row.ID = r.nextID
			r.nextID++
		}
		r.items[key] = row
	}

	return nil
}

func (r *StandingRepository) ListByLeagueDate(_ context.Context, leagueID int64, date time.Time) ([]standings.DailyStanding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standings.DailyStanding, 0, len(r.items))
	for key, row := range r.items {
		if key.leagueID == leagueID && key.date.Equal(date) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].TeamID < out[j].TeamID
	})

	return out, nil
}

// Count reports how many rows are stored, handy for idempotence checks.
func (r *StandingRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}
