package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/riskibarqy/hockey-league/external/easports"
	"github.com/riskibarqy/hockey-league/internal/config"
	"github.com/riskibarqy/hockey-league/internal/domain/game"
	"github.com/riskibarqy/hockey-league/internal/domain/gamestat"
	"github.com/riskibarqy/hockey-league/internal/domain/season"
	"github.com/riskibarqy/hockey-league/internal/domain/statsqueue"
	"github.com/riskibarqy/hockey-league/internal/domain/team"
	"github.com/riskibarqy/hockey-league/internal/infrastructure/account/anubis"
	cacherepo "github.com/riskibarqy/hockey-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/hockey-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/hockey-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/hockey-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/hockey-league/internal/observability"
	"github.com/riskibarqy/hockey-league/internal/platform/cache"
	idgen "github.com/riskibarqy/hockey-league/internal/platform/id"
	"github.com/riskibarqy/hockey-league/internal/platform/logging"
	"github.com/riskibarqy/hockey-league/internal/platform/resilience"
	"github.com/riskibarqy/hockey-league/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Dependency labels for circuit breaker metrics and logs.
const (
	eaSportsDependency = "ea_sports"
	anubisDependency   = "anubis"
)

// App is the wired API process: the HTTP server plus the optional background
// queue processor.
type App struct {
	Server *http.Server

	cfg    config.Config
	logger *logging.Logger
	db     *sqlx.DB
	queue  *usecase.StatsQueueService
}

type repositories struct {
	seasons season.Repository
	teams   team.Repository
	games   game.Repository
	stats   gamestat.Repository
	queue   statsqueue.Repository
}

// New builds the application. An empty DB_URL runs on seeded in-memory
// repositories; registerer may be nil.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger, registerer prometheus.Registerer) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{cfg: cfg, logger: logger}

	repos, err := a.buildRepositories(ctx)
	if err != nil {
		return nil, err
	}

	queueMetrics, err := observability.NewQueueMetrics(registerer)
	if err != nil {
		a.closeDB()
		return nil, fmt.Errorf("register queue metrics: %w", err)
	}
	dependencyMetrics, err := observability.NewDependencyMetrics(registerer)
	if err != nil {
		a.closeDB()
		return nil, fmt.Errorf("register dependency metrics: %w", err)
	}
	dependencyMetrics.Track(eaSportsDependency, anubisDependency)

	eaClient := easports.NewClient(easports.ClientConfig{
		BaseURL:        cfg.EABaseURL,
		Platform:       cfg.EAPlatform,
		ClubIDs:        cfg.EAClubIDs,
		Timeout:        cfg.EATimeout,
		MaxRetries:     cfg.EAMaxRetries,
		MatchCacheTTL:  cfg.EAMatchCacheTTL,
		MaxConcurrency: cfg.EAMaxConcurrency,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.EACircuitEnabled,
			FailureThreshold: cfg.EACircuitFailureCount,
			OpenTimeout:      cfg.EACircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.EACircuitHalfOpenMaxReq,
			Name:             eaSportsDependency,
			OnStateChange:    dependencyMetrics.CircuitStateChanged,
		},
		Logger: logger,
	})

	ids := idgen.NewTimeOrderedGenerator()
	a.queue = usecase.NewStatsQueueService(
		usecase.StatsQueueServiceConfig{
			MaxRetries:       cfg.StatsQueueMaxRetries,
			DefaultBatchSize: cfg.StatsQueueBatchSize,
			MaxBatchSize:     cfg.StatsQueueMaxBatchSize,
			Workers:          cfg.StatsQueueWorkers,
			UpsertStats:      cfg.StatsQueueUpsert,
			ClaimLease:       cfg.StatsQueueClaimLease,
		},
		repos.queue,
		repos.stats,
		usecase.StatsProviders{
			statsqueue.ProviderEASports: eaClient,
			statsqueue.ProviderManual:   usecase.ManualStatsProvider{},
		},
		ids,
		logger,
		usecase.WithQueueObserver(queueMetrics),
	)

	handler := httpapi.NewHandler(
		usecase.NewStandingService(repos.seasons, repos.teams, repos.games, repos.stats, logger.Named("standings")),
		a.queue,
		usecase.NewGameStatService(repos.games, repos.stats, ids),
		usecase.NewProviderService(eaClient, repos.stats, cfg.StatsQueueUpsert),
		logger,
	)

	verifier := anubis.NewClient(anubis.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.AnubisTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL:           cfg.AnubisBaseURL,
		IntrospectPath:    cfg.AnubisIntrospectURL,
		AdminKey:          cfg.AnubisAdminKey,
		PrincipalCacheTTL: cfg.AuthCacheTTL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AnubisCircuitEnabled,
			FailureThreshold: cfg.AnubisCircuitFailureCount,
			OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
			Name:             anubisDependency,
			OnStateChange:    dependencyMetrics.CircuitStateChanged,
		},
		Logger: logger,
	})

	a.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(handler, verifier, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}
	return a, nil
}

func (a *App) buildRepositories(ctx context.Context) (repositories, error) {
	if a.cfg.DBURL == "" {
		a.logger.Info("using in-memory repositories", "reason", "DB_URL empty")
		return a.withCache(repositories{
			seasons: memory.NewSeasonRepository(memory.SeedSeasons()),
			teams:   memory.NewTeamRepository(memory.SeedTeams()),
			games:   memory.NewGameRepository(memory.SeedGames()),
			stats:   memory.NewGameStatRepository(memory.SeedGameStats()),
			queue:   memory.NewStatsQueueRepository(),
		}), nil
	}

	db, err := openPostgres(ctx, a.cfg)
	if err != nil {
		return repositories{}, err
	}
	a.db = db
	a.logger.Info("using postgres repositories", "db_name", dbNameFromURL(a.cfg.DBURL))

	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		a.closeDB()
		return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
	}

	return a.withCache(repositories{
		seasons: postgres.NewSeasonRepository(db),
		teams:   postgres.NewTeamRepository(db),
		games:   postgres.NewGameRepository(db),
		stats:   postgres.NewGameStatRepository(db),
		queue:   postgres.NewStatsQueueRepository(db),
	}), nil
}

// withCache wraps the read-mostly repositories. Games, stats and the queue
// change with every import and are never cached.
func (a *App) withCache(repos repositories) repositories {
	if !a.cfg.CacheEnabled {
		return repos
	}
	store := cache.NewStore(a.cfg.CacheTTL)
	repos.seasons = cacherepo.NewSeasonRepository(repos.seasons, store)
	repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
	return repos
}

// RunQueue processes the stats queue every STATS_QUEUE_PROCESS_INTERVAL until
// ctx is done. It returns immediately when the interval is zero.
func (a *App) RunQueue(ctx context.Context) {
	if a.cfg.StatsQueueProcessInterval <= 0 {
		a.logger.Info("stats queue processor disabled", "reason", "STATS_QUEUE_PROCESS_INTERVAL=0")
		return
	}
	a.queue.Run(ctx, a.cfg.StatsQueueProcessInterval)
}

// Shutdown stops the HTTP server and releases the database pool.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
	}
	if err := a.closeDB(); err != nil {
		errs = append(errs, fmt.Errorf("close postgres: %w", err))
	}
	return errors.Join(errs...)
}

func (a *App) closeDB() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}
