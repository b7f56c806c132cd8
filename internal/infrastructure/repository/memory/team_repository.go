package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/courtvision/fantasy-hoops/internal/domain/team"
)

type TeamRepository struct {
	mu      sync.RWMutex
	items   map[int64]team.Team
	rosters map[int64]map[int64]struct{}
	nextID  int64
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	items := make(map[int64]team.Team, len(teams))
	var maxID int64
	for _, t := range teams {
		items[t.ID] = t
		if t.ID > maxID {
			maxID = t.ID
		}
	}

	return &TeamRepository{
		items:   items,
		rosters: make(map[int64]map[int64]struct{}),
		nextID:  maxID + 1,
	}
}

func (r *TeamRepository) ListByLeague(_ context.Context, leagueID int64) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.items))
	for _, t := range r.items {
		if t.LeagueID == leagueID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *TeamRepository) GetByName(_ context.Context, leagueID int64, name string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.items {
		if t.LeagueID == leagueID && strings.EqualFold(t.Name, name) {
			return t, true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) (team.Team, error) {
	if err := t.Validate(); err != nil {
		return team.Team{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	r.nextID++
	r.items[t.ID] = t

	return t, nil
}

func (r *TeamRepository) ListRosterPlayerIDs(_ context.Context, teamID int64) ([]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roster := r.rosters[teamID]
	out := make([]int64, 0, len(roster))
	for id := range roster {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out, nil
}

func (r *TeamRepository) AddRosterPlayer(_ context.Context, teamID, playerID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	roster := r.rosters[teamID]
	if roster == nil {
		roster = make(map[int64]struct{})
		r.rosters[teamID] = roster
	}
	if _, exists := roster[playerID]; exists {
		return false, nil
	}
	roster[playerID] = struct{}{}

	return true, nil
}
