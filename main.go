package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"credit-pricing/config"
	httpLayer "credit-pricing/http"
	"credit-pricing/logger"
	"credit-pricing/pricing"
	"credit-pricing/repository"
	"credit-pricing/scheduler"
	"credit-pricing/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	scorer, err := pricing.NewRiskScorer(cfg.RiskScoring)
	if err != nil {
		return err
	}
	classSource, err := pricing.ParseRiskClassSource(cfg.RiskClassSource)
	if err != nil {
		return err
	}
	engine := pricing.NewEngine(scorer, classSource)

	sched := scheduler.New(log)

	cache, closeCache := newCache(cfg, log, sched)
	defer closeCache()

	proposalRepo, closeRepo, err := newProposalRepository(cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	aiService := service.NewAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel, log)
	quoteService := service.NewQuoteService(engine, cache, aiService, log)
	reportService := service.NewReportService(quoteService)
	proposalService := service.NewProposalService(engine, proposalRepo, log)

	purge := service.NewProposalPurgeJob(proposalService, cfg.ProposalRetentionDays)
	if err := sched.AddJob(cfg.PurgeSchedule, purge); err != nil {
		return fmt.Errorf("invalid PURGE_SCHEDULE: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Handlers{
		Quotes:    httpLayer.NewQuoteHandler(quoteService, reportService, log),
		Proposals: httpLayer.NewProposalHandler(proposalService, log),
		Limiter:   rateLimiter,
	}, log)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Int("port", cfg.Port).
			Str("risk_scoring", scorer.Name()).
			Str("risk_class_source", string(classSource)).
			Msg("API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("error starting server: %w", err)
	case <-quit:
		log.Info().Msg("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server exited")
	return nil
}

// newCache picks Redis when configured and reachable, otherwise an in-process
// cache whose expired entries are purged by the scheduler.
func newCache(cfg *config.Config, log zerolog.Logger, sched *scheduler.Scheduler) (repository.CacheRepository, func()) {
	if cfg.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.QuoteCacheTTL)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		err := redisCache.Ping(ctx)
		if err == nil {
			log.Info().Str("addr", cfg.RedisAddr).Msg("quote cache: redis")
			return redisCache, func() { _ = redisCache.Close() }
		}
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, using in-memory quote cache")
		_ = redisCache.Close()
	}

	memCache := repository.NewMemoryCache(cfg.QuoteCacheTTL)
	err := sched.AddJob("@every 5m", scheduler.FuncJob{
		JobName: "quote_cache_purge",
		Fn: func() error {
			if n := memCache.PurgeExpired(); n > 0 {
				log.Debug().Int("removed", n).Msg("expired quotes purged")
			}
			return nil
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to schedule quote cache purge")
	}
	return memCache, func() {}
}

func newProposalRepository(cfg *config.Config, log zerolog.Logger) (repository.ProposalRepository, func(), error) {
	if cfg.DatabasePath == "" {
		log.Info().Msg("proposal store: memory")
		return repository.NewProposalRepositoryMemory(), func() {}, nil
	}

	repo, err := repository.NewProposalRepositorySQLite(cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open proposal database: %w", err)
	}
	log.Info().Str("path", cfg.DatabasePath).Msg("proposal store: sqlite")

	return repo, func() {
		if err := repo.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close proposal database")
		}
	}, nil
}
