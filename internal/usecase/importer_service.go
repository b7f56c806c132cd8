package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/courtvision/fantasy-hoops/internal/domain/league"
	"github.com/courtvision/fantasy-hoops/internal/domain/player"
	"github.com/courtvision/fantasy-hoops/internal/domain/team"
)

// fuzzyMatchCutoff is the minimum name-similarity ratio accepted when no
// exact match exists. "Steph Curry" vs "Stephen Curry" clears it; random
// names do not.
const fuzzyMatchCutoff = 0.8

// UnmatchedPlayer names one roster entry that matched no known player.
type UnmatchedPlayer struct {
	Team   string `json:"team"`
	Player string `json:"player"`
}

// ImportReport accumulates what a roster import did. Unmatched names are
// collected here rather than failing the import.
type ImportReport struct {
	TeamsCreated     int               `json:"teams_created"`
	TeamsUpdated     int               `json:"teams_updated"`
	PlayersAdded     int               `json:"players_added"`
	PlayersNotFound  []UnmatchedPlayer `json:"players_not_found"`
}

// ImporterService loads team rosters from a name-keyed map, matching player
// names against the known pool exactly first and fuzzily second.
type ImporterService struct {
	leagueRepo league.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
}

func NewImporterService(leagueRepo league.Repository, teamRepo team.Repository, playerRepo player.Repository) *ImporterService {
	return &ImporterService{
		leagueRepo: leagueRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
	}
}

// ImportRosters creates or updates one fantasy team per map key and rosters
// the named players onto it. Teams are processed in name order so repeated
// imports of the same map behave identically.
func (s *ImporterService) ImportRosters(ctx context.Context, leagueID int64, rosters map[string][]string) (ImportReport, error) {
	ctx, span := startUsecaseSpan(ctx, "ImporterService.ImportRosters")
	defer span.End()

	report := ImportReport{PlayersNotFound: []UnmatchedPlayer{}}

	if leagueID <= 0 {
		return report, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if len(rosters) == 0 {
		return report, fmt.Errorf("%w: roster map is empty", ErrInvalidInput)
	}
	for name := range rosters {
		if strings.TrimSpace(name) == "" {
			return report, fmt.Errorf("%w: roster map contains an empty team name", ErrInvalidInput)
		}
	}

	_, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return report, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return report, fmt.Errorf("%w: league=%d", ErrNotFound, leagueID)
	}

	pool, err := s.playerRepo.ListActive(ctx)
	if err != nil {
		return report, fmt.Errorf("list active players: %w", err)
	}

	teamNames := make([]string, 0, len(rosters))
	for name := range rosters {
		teamNames = append(teamNames, name)
	}
	sort.Strings(teamNames)

	for _, teamName := range teamNames {
		t, found, err := s.teamRepo.GetByName(ctx, leagueID, teamName)
		if err != nil {
			return report, fmt.Errorf("get team %q: %w", teamName, err)
		}
		if found {
			report.TeamsUpdated++
		} else {
			t, err = s.teamRepo.Create(ctx, team.Team{LeagueID: leagueID, Name: teamName})
			if err != nil {
				return report, fmt.Errorf("create team %q: %w", teamName, err)
			}
			report.TeamsCreated++
		}

		for _, playerName := range rosters[teamName] {
			matched, ok := matchPlayer(pool, playerName)
			if !ok {
				report.PlayersNotFound = append(report.PlayersNotFound, UnmatchedPlayer{
					Team:   teamName,
					Player: playerName,
				})
				continue
			}

			added, err := s.teamRepo.AddRosterPlayer(ctx, t.ID, matched.ID)
			if err != nil {
				return report, fmt.Errorf("roster %q onto %q: %w", matched.FullName, teamName, err)
			}
			if added {
				report.PlayersAdded++
			}
		}
	}

	return report, nil
}

// matchPlayer resolves a roster name against the pool: exact
// case-insensitive match first, then the best fuzzy candidate at or above
// the cutoff.
func matchPlayer(pool []player.Player, name string) (player.Player, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return player.Player{}, false
	}

	for _, p := range pool {
		if strings.ToLower(p.FullName) == needle {
			return p, true
		}
	}

	var best player.Player
	bestRatio := 0.0
	for _, p := range pool {
		ratio := similarity(needle, strings.ToLower(p.FullName))
		if ratio > bestRatio {
			best, bestRatio = p, ratio
		}
	}
	if bestRatio >= fuzzyMatchCutoff {
		return best, true
	}

	return player.Player{}, false
}

func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}

	dist := levenshtein.ComputeDistance(a, b)

	return 1 - float64(dist)/float64(longest)
}
