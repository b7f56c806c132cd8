package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	_ "github.com/lib/pq"

	"github.com/courtvision/fantasy-hoops/internal/config"
	"github.com/courtvision/fantasy-hoops/internal/domain/audit"
	"github.com/courtvision/fantasy-hoops/internal/domain/gamestat"
	"github.com/courtvision/fantasy-hoops/internal/domain/league"
	"github.com/courtvision/fantasy-hoops/internal/domain/player"
	"github.com/courtvision/fantasy-hoops/internal/domain/standings"
	"github.com/courtvision/fantasy-hoops/internal/domain/task"
	"github.com/courtvision/fantasy-hoops/internal/domain/team"
	"github.com/courtvision/fantasy-hoops/internal/infrastructure/repository/memory"
	"github.com/courtvision/fantasy-hoops/internal/infrastructure/repository/postgres"
	"github.com/courtvision/fantasy-hoops/internal/infrastructure/statsource"
	"github.com/courtvision/fantasy-hoops/internal/interfaces/httpapi"
	"github.com/courtvision/fantasy-hoops/internal/platform/cache"
	idgen "github.com/courtvision/fantasy-hoops/internal/platform/id"
	"github.com/courtvision/fantasy-hoops/internal/platform/locking"
	"github.com/courtvision/fantasy-hoops/internal/platform/logging"
	"github.com/courtvision/fantasy-hoops/internal/usecase"
)

type repositories struct {
	leagues   league.Repository
	teams     team.Repository
	players   player.Repository
	stats     gamestat.Repository
	standings standings.Repository
	tasks     task.Repository
	audits    audit.Repository
}

// NewHTTPServer wires repositories, services and the HTTP router from
// configuration. The returned cleanup closes whatever the wiring opened
// (today: the database pool) and is safe to call on a nil-error path only.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	cleanup := func(context.Context) error { return nil }

	var repos repositories
	var locker locking.Locker

	switch cfg.StorageBackend {
	case config.BackendPostgres:
		db, err := otelsqlx.Connect("postgres", cfg.DBURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(5)

		repos = newPostgresRepositories(db)
		locker = newLocker(cfg, db)
		cleanup = func(context.Context) error { return db.Close() }
	case config.BackendMemory:
		repos = newMemoryRepositories()
		locker = locking.NewInProcessLocker()
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}

	var valueCache *cache.Store
	if cfg.CacheEnabled {
		valueCache = cache.NewStore(cfg.CacheTTL)
	}

	provider := statsource.NewClient(
		&http.Client{Timeout: 30 * time.Second},
		cfg.StatSourceBaseURL,
		cfg.Season,
		logger,
	)

	values := usecase.NewPlayerValueService(repos.players, repos.stats, valueCache)
	roto := usecase.NewRotoService(repos.leagues, repos.teams, repos.stats, repos.standings)
	trade := usecase.NewTradeService(values)
	importer := usecase.NewImporterService(repos.leagues, repos.teams, repos.players)
	ingestion := usecase.NewIngestionService(provider, repos.players, repos.stats, cfg.IngestWorkers, logger)
	tasks := usecase.NewTaskService(
		repos.tasks,
		repos.audits,
		locker,
		idgen.NewRandomGenerator(),
		logger,
		roto,
		importer,
		ingestion,
		values,
	)
	audits := usecase.NewAuditService(repos.audits)

	handler := httpapi.NewHandler(values, roto, trade, importer, tasks, audits, logger)
	router := httpapi.NewRouter(handler, logger)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func newPostgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		leagues:   postgres.NewLeagueRepository(db),
		teams:     postgres.NewTeamRepository(db),
		players:   postgres.NewPlayerRepository(db),
		stats:     postgres.NewGameStatRepository(db),
		standings: postgres.NewStandingRepository(db),
		tasks:     postgres.NewTaskRepository(db),
		audits:    postgres.NewAuditRepository(db),
	}
}

func newMemoryRepositories() repositories {
	return repositories{
		leagues:   memory.NewLeagueRepository(memory.SeedLeagues()),
		teams:     memory.NewTeamRepository(nil),
		players:   memory.NewPlayerRepository(memory.SeedPlayers()),
		stats:     memory.NewGameStatRepository(memory.SeedGameStats()),
		standings: memory.NewStandingRepository(),
		tasks:     memory.NewTaskRepository(),
		audits:    memory.NewAuditRepository(),
	}
}

func newLocker(cfg config.Config, db *sqlx.DB) locking.Locker {
	if cfg.LockBackend == config.LockBackendPostgres {
		return locking.NewPostgresLocker(db)
	}
	return locking.NewInProcessLocker()
}
