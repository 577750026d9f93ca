package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/league-hub/external/livefeed"
	"github.com/riskibarqy/league-hub/external/scorepage"
	"github.com/riskibarqy/league-hub/internal/config"
	"github.com/riskibarqy/league-hub/internal/domain/competition"
	"github.com/riskibarqy/league-hub/internal/domain/feed"
	"github.com/riskibarqy/league-hub/internal/infrastructure/events"
	cacherepo "github.com/riskibarqy/league-hub/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/league-hub/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-hub/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/league-hub/internal/interfaces/httpapi"
	"github.com/riskibarqy/league-hub/internal/platform/cache"
	idgen "github.com/riskibarqy/league-hub/internal/platform/id"
	"github.com/riskibarqy/league-hub/internal/platform/logging"
	"github.com/riskibarqy/league-hub/internal/usecase"
)

const janitorInterval = time.Minute

// App is the wired service. Close releases the database, cache and
// messaging connections in reverse order of acquisition.
type App struct {
	Server *http.Server

	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{}
	fail := func(err error) (*App, error) {
		_ = a.Close()
		return nil, err
	}

	repo, err := a.competitionRepository(ctx, cfg, logger)
	if err != nil {
		return fail(err)
	}

	publisher, err := a.eventPublisher(cfg, logger)
	if err != nil {
		return fail(err)
	}

	reviews := cache.NewStore(cfg.ReviewTTL)
	a.sweep(reviews, "import_reviews", logger)

	providers := feedProviders(cfg, logger)
	competitionSvc := usecase.NewCompetitionService(repo, logger)
	importSvc := usecase.NewImportService(
		repo,
		providers,
		reviews,
		idgen.NewPrefixedGenerator("rev_"),
		idgen.NewPrefixedGenerator("m_"),
		publisher,
		logger,
	)
	recomputeSvc := usecase.NewRecomputeService(repo, publisher, logger)
	recomputeSvc.SetDefaultWorkers(cfg.RecomputeWorkers)

	handler := httpapi.NewHandler(competitionSvc, importSvc, recomputeSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.AdminToken)
	if cfg.AdminToken == "" {
		logger.Warn("admin routes disabled", "reason", "ADMIN_TOKEN empty")
	}

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

// sweep runs the store janitor until Close.
func (a *App) sweep(store *cache.Store, name string, logger *logging.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	go store.RunJanitor(ctx, janitorInterval, func(removed int) {
		logger.Debug("cache entries expired", "store", name, "removed", removed)
	})
	a.closers = append(a.closers, func() error {
		cancel()
		return nil
	})
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) competitionRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (competition.Repository, error) {
	var repo competition.Repository

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)

		pgRepo := postgres.NewCompetitionRepository(db)
		if cfg.DBSeedOnStart {
			seeded, err := postgres.BootstrapSeed(ctx, pgRepo)
			if err != nil {
				return nil, fmt.Errorf("bootstrap seed: %w", err)
			}
			logger.Info("bootstrap seed finished", "inserted", seeded)
		}
		repo = pgRepo
		logger.Info("postgres connected", "dsn", redactDBURL(cfg.DBURL), "max_open_conns", cfg.DBMaxOpenConns)
	default:
		repo = memory.NewCompetitionRepository(memory.SeedCompetitions())
	}
	logger.Info("competition storage ready", "backend", cfg.StorageBackend)

	switch cfg.CacheBackend {
	case config.CacheRedis:
		client, err := cacherepo.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		repo = cacherepo.NewCompetitionRepository(repo, cacherepo.NewRedisBackend(client, cfg.RedisPrefix, cfg.CacheTTL), logger)
	case config.CacheMemory:
		store := cache.NewStore(cfg.CacheTTL)
		a.sweep(store, "competition_cache", logger)
		repo = cacherepo.NewCompetitionRepository(repo, cacherepo.NewMemoryBackend(store), logger)
	}
	logger.Info("competition cache ready", "backend", cfg.CacheBackend, "ttl", cfg.CacheTTL)

	return repo, nil
}

func (a *App) eventPublisher(cfg config.Config, logger *logging.Logger) (usecase.EventPublisher, error) {
	if !cfg.NATSEnabled {
		return usecase.NopPublisher{}, nil
	}

	publisher, err := events.NewNATSPublisher(events.NATSPublisherConfig{
		URL:     cfg.NATSURL,
		Subject: cfg.NATSSubject,
		Name:    cfg.ServiceName,
	}, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() error {
		publisher.Close()
		return nil
	})
	logger.Info("nats publisher ready", "subject", cfg.NATSSubject)
	return publisher, nil
}

func feedProviders(cfg config.Config, logger *logging.Logger) []feed.Provider {
	return []feed.Provider{
		livefeed.NewClient(livefeed.ClientConfig{
			BaseURL:        cfg.LiveFeedBaseURL,
			APIKey:         cfg.LiveFeedAPIKey,
			Timeout:        cfg.FeedTimeout,
			MaxRetries:     cfg.FeedMaxRetries,
			Backoff:        cfg.FeedBackoff,
			Logger:         logger,
			CircuitBreaker: cfg.FeedCircuit,
		}),
		scorepage.NewClient(scorepage.ClientConfig{
			PageURL:        cfg.ScorePageURL,
			Timeout:        cfg.FeedTimeout,
			MaxRetries:     cfg.FeedMaxRetries,
			Backoff:        cfg.FeedBackoff,
			Logger:         logger,
			CircuitBreaker: cfg.FeedCircuit,
		}),
	}
}
