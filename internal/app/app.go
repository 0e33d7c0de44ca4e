package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/hiredeck/hiredeck/internal/config"
	"github.com/hiredeck/hiredeck/internal/httpserver"
	"github.com/hiredeck/hiredeck/internal/httpserver/deps"
	"github.com/hiredeck/hiredeck/internal/httpserver/mw"
	"github.com/hiredeck/hiredeck/internal/index"
	"github.com/hiredeck/hiredeck/internal/ingest"
	"github.com/hiredeck/hiredeck/internal/logger"
	"github.com/hiredeck/hiredeck/internal/redis"
	"github.com/hiredeck/hiredeck/internal/scheduler"
	"github.com/hiredeck/hiredeck/internal/sources"
	"github.com/hiredeck/hiredeck/internal/sources/adzuna"
	"github.com/hiredeck/hiredeck/internal/sources/rss"
	"github.com/hiredeck/hiredeck/internal/sources/seed"
	filestore "github.com/hiredeck/hiredeck/internal/store/file"
	redisstore "github.com/hiredeck/hiredeck/internal/store/redis"
	"github.com/hiredeck/hiredeck/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	ingestCycle *scheduler.IngestCycle
	sweeper     *scheduler.ExpirySweeper
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	cache := redisstore.NewStore(redisClient)

	// Job collection on disk, plus the in-memory read index
	store := filestore.New(cfg.StorePath, cfg.BackupDir, cfg.BackupKeep)
	memIndex := index.NewMemoryIndex()

	// Warm the index from the persisted collection so queries work
	// before the first ingest cycle finishes.
	jobs, err := store.Load()
	if err != nil {
		loggerClient.Warn("failed to load job collection on startup, starting empty",
			logger.Error(err))
	} else {
		memIndex.Replace(jobs)
		loggerClient.Info("job collection loaded",
			logger.String("path", store.Path()),
			logger.Int("jobs", len(jobs)))
	}

	producers := buildProducers(cfg, loggerClient)

	pipeline := ingest.NewPipeline(
		producers,
		store,
		memIndex,
		cache,
		loggerClient,
		cfg.JobTTL,
		cfg.SourceTimeout,
	)

	// Create manual ingest trigger channel
	ingestTrigger := make(chan struct{}, 1)

	ingestCycle := scheduler.NewIngestCycle(pipeline, loggerClient, cfg.IngestSpec, ingestTrigger)
	sweeper := scheduler.NewExpirySweeper(store, memIndex, cache, loggerClient, cfg.SweepInterval)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		MemoryIndex:   memIndex,
		Store:         store,
		Cache:         cache,
		RedisClient:   redisClient,
		QueryCacheTTL: cfg.QueryCacheTTL,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		RateLimit: mw.RateLimitConfig{
			Burst:             cfg.RateBurst,
			RefillPerIPPerMin: cfg.RateRefillPerMin,
			TrustProxy:        cfg.TrustProxy,
		},
		IngestTrigger: ingestTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		memIndex:    memIndex,
		ingestCycle: ingestCycle,
		sweeper:     sweeper,
	}
}

// buildProducers registers each configured source. A source with no
// configuration is simply absent from the cycle.
func buildProducers(cfg *config.Config, log logger.Logger) []sources.Producer {
	var producers []sources.Producer

	if cfg.SeedFile != "" {
		log.Info("seed file configured", logger.String("file", cfg.SeedFile))
		producers = append(producers, seed.New(cfg.SeedFile))
	}

	if len(cfg.RSSFeeds) > 0 {
		log.Info("rss feeds configured", logger.Int("feeds", len(cfg.RSSFeeds)))
		producers = append(producers, rss.New(cfg.RSSFeeds))
	}

	if cfg.AdzunaAppID != "" && cfg.AdzunaAppKey != "" {
		log.Info("adzuna producer configured", logger.String("country", cfg.AdzunaCountry))
		producers = append(producers, adzuna.New(cfg.AdzunaAppID, cfg.AdzunaAppKey,
			cfg.AdzunaCountry, cfg.AdzunaQuery, cfg.AdzunaLocation))
	}

	if len(producers) == 0 {
		log.Warn("no producers configured, ingest cycles will be empty")
	}

	return producers
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Hiredeck v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Hiredeck %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start ingestion cycles (runs one immediately, then on the cron spec)
	if err := a.ingestCycle.Start(ctx); err != nil {
		return fmt.Errorf("failed to start ingest cycle: %w", err)
	}
	a.logger.Info("ingest cycle started",
		logger.String("spec", a.cfg.IngestSpec))

	// Start expiry sweeper
	if err := a.sweeper.Start(ctx); err != nil {
		return fmt.Errorf("failed to start expiry sweeper: %w", err)
	}
	a.logger.Info("expiry sweeper started",
		logger.Duration("interval", a.cfg.SweepInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.ingestCycle.Stop()
	a.sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Hiredeck stopped cleanly")
	return nil
}
