package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/courtvision/fantasy-hoops/internal/domain/gamestat"
	"github.com/courtvision/fantasy-hoops/internal/domain/player"
	"github.com/courtvision/fantasy-hoops/internal/platform/logging"
)

// StatProvider is the upstream box-score source. Implementations own all
// network concerns; the rows they return are expected to be typed and
// deduplicated per call but may overlap across players or previous runs.
type StatProvider interface {
	ListActivePlayers(ctx context.Context) ([]player.Player, error)
	ListGameLogs(ctx context.Context, playerID int64, since time.Time) ([]gamestat.GameStat, error)
}

// IngestReport summarizes one ingestion run. Per-player fetch failures are
// collected rather than aborting the run; the rows that did arrive still
// land.
type IngestReport struct {
	PlayersSynced int     `json:"players_synced"`
	GamesInserted int     `json:"games_inserted"`
	GamesSkipped  int     `json:"games_skipped"`
	FailedPlayers []int64 `json:"failed_players"`
}

// IngestionService pulls player game logs from the stat provider and stores
// them, skipping rows already present. Fetches fan out over a bounded
// worker pool.
type IngestionService struct {
	provider   StatProvider
	playerRepo player.Repository
	statRepo   gamestat.Repository
	workers    int
	logger     *logging.Logger
}

func NewIngestionService(
	provider StatProvider,
	playerRepo player.Repository,
	statRepo gamestat.Repository,
	workers int,
	logger *logging.Logger,
) *IngestionService {
	if workers <= 0 {
		workers = 8
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &IngestionService{
		provider:   provider,
		playerRepo: playerRepo,
		statRepo:   statRepo,
		workers:    workers,
		logger:     logger,
	}
}

type playerFetch struct {
	playerID int64
	stats    []gamestat.GameStat
	err      error
}

// IngestGameStats syncs the active player pool and every player's game log
// since the given date. A zero since means the full history. Duplicate
// (player, game) rows, whether inside the batch or already stored, are
// skipped and counted, never double-inserted.
func (s *IngestionService) IngestGameStats(ctx context.Context, since time.Time) (IngestReport, error) {
	ctx, span := startUsecaseSpan(ctx, "IngestionService.IngestGameStats")
	defer span.End()

	report := IngestReport{FailedPlayers: []int64{}}

	players, err := s.provider.ListActivePlayers(ctx)
	if err != nil {
		return report, fmt.Errorf("%w: list active players: %v", ErrDependencyUnavailable, err)
	}
	if len(players) == 0 {
		return report, nil
	}

	if err := s.playerRepo.Upsert(ctx, players); err != nil {
		return report, fmt.Errorf("upsert players: %w", err)
	}
	report.PlayersSynced = len(players)

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return report, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan playerFetch, len(players))
	var workers sync.WaitGroup
	for _, p := range players {
		playerID := p.ID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			stats, fetchErr := s.provider.ListGameLogs(ctx, playerID, since)
			results <- playerFetch{playerID: playerID, stats: stats, err: fetchErr}
		}); err != nil {
			workers.Done()
			return report, fmt.Errorf("submit fetch to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	var batch []gamestat.GameStat
	seen := make(map[gamestat.Key]struct{})
	for fetch := range results {
		if fetch.err != nil {
			s.logger.WarnContext(ctx, "game log fetch failed",
				"player_id", fetch.playerID,
				"error", fetch.err.Error(),
			)
			report.FailedPlayers = append(report.FailedPlayers, fetch.playerID)
			continue
		}

		for _, rec := range fetch.stats {
			if err := rec.Validate(); err != nil {
				s.logger.WarnContext(ctx, "dropping invalid game row",
					"player_id", rec.PlayerID,
					"game_id", rec.GameID,
					"error", err.Error(),
				)
				continue
			}

			key := gamestat.Key{PlayerID: rec.PlayerID, GameID: rec.GameID}
			if _, dup := seen[key]; dup {
				report.GamesSkipped++
				continue
			}
			seen[key] = struct{}{}
			batch = append(batch, rec)
		}
	}

	sort.Slice(report.FailedPlayers, func(i, j int) bool {
		return report.FailedPlayers[i] < report.FailedPlayers[j]
	})

	if len(batch) > 0 {
		inserted, skipped, err := s.statRepo.InsertSkipDuplicates(ctx, batch)
		if err != nil {
			return report, fmt.Errorf("insert game stats: %w", err)
		}
		report.GamesInserted = inserted
		report.GamesSkipped += skipped
	}

	return report, nil
}
