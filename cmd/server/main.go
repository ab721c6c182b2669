package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/payrails/internal/adapter/http"
	"github.com/iho/payrails/internal/adapter/http/handler"
	"github.com/iho/payrails/internal/adapter/rails"
	postgresRepo "github.com/iho/payrails/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/payrails/internal/adapter/repository/redis"
	"github.com/iho/payrails/internal/adapter/settlement"
	"github.com/iho/payrails/internal/domain"
	"github.com/iho/payrails/internal/infrastructure/config"
	"github.com/iho/payrails/internal/infrastructure/logger"
	"github.com/iho/payrails/internal/infrastructure/metrics"
	"github.com/iho/payrails/internal/infrastructure/notifier"
	"github.com/iho/payrails/internal/infrastructure/postgres"
	"github.com/iho/payrails/internal/infrastructure/redis"
	"github.com/iho/payrails/internal/infrastructure/reference"
	"github.com/iho/payrails/internal/scheduler"
	"github.com/iho/payrails/internal/usecase"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	slogger := logger.NewSlog(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns, cfg.DatabaseTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()
	policies := domain.DefaultPolicies()

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transferRepo := postgresRepo.NewTransferRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	scheduleRepo := postgresRepo.NewScheduleRepository(pool)
	exemptionRepo := postgresRepo.NewExemptionRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	fxCache := redisRepo.NewCache(redisClient)

	// External collaborators
	authClient := rails.NewAuthClient(rails.NewClient(cfg.AuthServiceURL, cfg.RailTimeout, slogger))
	riskGate := rails.NewRiskGateClient(rails.NewClient(cfg.RiskGateURL, cfg.RailTimeout, slogger))
	interbankRail := rails.NewInterbankRail(rails.NewClient(cfg.InterbankURL, cfg.RailTimeout, slogger))
	crossBorderRail := rails.NewCrossBorderRail(rails.NewClient(cfg.CrossBorderURL, cfg.RailTimeout, slogger))
	billerRail := rails.NewBillerRail(rails.NewClient(cfg.BillerURL, cfg.RailTimeout, slogger))

	idGen := reference.NewULIDGenerator()

	// Settlement adapters
	internalAdapter := settlement.NewInternalAdapter(accountRepo, entryRepo, idGen, policies.Channels[domain.ChannelInternal])
	interbankAdapter := settlement.NewInterbankAdapter(interbankRail, policies.Channels[domain.ChannelInterbank], m)
	crossBorderAdapter := settlement.NewCrossBorderAdapter(crossBorderRail, fxCache, policies.CrossBorder, cfg.FXRateCacheTTL, m)
	billerAdapter := settlement.NewBillerAdapter(billerRail, policies.Channels[domain.ChannelBiller], m)

	// Use cases
	orchestrator := usecase.NewOrchestrator(usecase.OrchestratorConfig{
		TxManager:    txManager,
		AccountRepo:  accountRepo,
		TransferRepo: transferRepo,
		EntryRepo:    entryRepo,
		OutboxRepo:   outboxRepo,
		AuditRepo:    auditRepo,
		Limits:       usecase.NewLimitLedger(transferRepo, exemptionRepo, policies),
		RiskGate:     riskGate,
		Verifier:     authClient,
		Adapters: []usecase.SettlementAdapter{
			internalAdapter,
			interbankAdapter,
			crossBorderAdapter,
			billerAdapter,
		},
		IDGen:      idGen,
		RefGen:     reference.NewGenerator(cfg.ReferencePrefix),
		Retrier:    postgresRepo.NewRetrier(),
		Policies:   policies,
		Metrics:    m,
		Logger:     slogger,
		MaxRetries: cfg.SettlementRetries,
	})
	scheduleUC := usecase.NewScheduleUseCase(scheduleRepo, auditRepo, idGen, policies)

	// Background workers
	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	sched := scheduler.New(scheduler.Config{
		ScheduleRepo: scheduleRepo,
		AuditRepo:    auditRepo,
		Submitter:    orchestrator,
		Logger:       slogger,
		Metrics:      m,
		Interval:     cfg.SchedulerInterval,
		BatchSize:    cfg.SchedulerBatch,
		ClaimTTL:     cfg.SchedulerClaimTTL,
	})
	go func() {
		if err := sched.Start(workerCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("scheduler stopped")
		}
	}()

	notif := notifier.New(notifier.Config{
		OutboxRepo: outboxRepo,
		Publisher:  notifier.NewLogPublisher(slogger),
		Logger:     slogger,
		Metrics:    m,
		BatchSize:  cfg.NotifierBatchSize,
		Interval:   cfg.NotifierInterval,
	})
	go func() {
		if err := notif.Start(workerCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("notifier stopped")
		}
	}()

	// Handlers
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransferHandler:  handler.NewTransferHandler(orchestrator),
		ScheduleHandler:  handler.NewScheduleHandler(scheduleUC),
		CallbackHandler:  handler.NewCallbackHandler(orchestrator),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Metrics:          m,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
