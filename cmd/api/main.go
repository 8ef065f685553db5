package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quotation_backend/internal/adapters/catalogpricing"
	"quotation_backend/internal/adapters/inquirystore"
	"quotation_backend/internal/adapters/storage"
	"quotation_backend/internal/auth"
	"quotation_backend/internal/catalog"
	"quotation_backend/internal/email"
	"quotation_backend/internal/events"
	apphttp "quotation_backend/internal/http"
	"quotation_backend/internal/http/router"
	"quotation_backend/internal/inquiries"
	"quotation_backend/internal/notification"
	"quotation_backend/internal/proposal"
	"quotation_backend/internal/quotation"
	quotationsvc "quotation_backend/internal/quotation/service"
	"quotation_backend/internal/quotation/store"
	"quotation_backend/internal/scheduler"
	"quotation_backend/platform/config"
	"quotation_backend/platform/db"
	"quotation_backend/platform/logger"
	"quotation_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	redisOpt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("failed to parse redis url", "error", err)
		panic("failed to parse redis url: " + err.Error())
	}
	redisClient := redis.NewClient(redisOpt)
	defer func() { _ = redisClient.Close() }()

	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		return redisClient.Ping(ctx).Err()
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	log.Info("redis connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// Storage service for customer document uploads (MinIO), optional
	var storageSvc storage.Service
	if cfg.IsMinIOEnabled() {
		storageSvc, err = storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		ensureBucket(ctx, log, storageSvc, "inquiry-documents", cfg.GetMinioBucketInquiryDocuments())
		log.Info("storage service initialized", "inquiryDocumentsBucket", cfg.GetMinioBucketInquiryDocuments())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; document uploads disabled")
	}

	// AI proposal generator, optional
	generator, err := proposal.NewGeminiGenerator(ctx, cfg, cfg.GetEmailFromName())
	if err != nil {
		log.Error("failed to initialize proposal generator", "error", err)
		panic("failed to initialize proposal generator: " + err.Error())
	}
	if cfg.IsProposalEnabled() {
		log.Info("proposal generator initialized", "model", cfg.GetGeminiModel())
	} else {
		log.Warn("GEMINI_API_KEY not configured; instant proposals disabled")
	}

	// Asynq client for the post-confirmation session reset
	resetScheduler, closeScheduler := initResetScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	sessionStore := store.NewRedisStore(redisClient, cfg.GetFormSessionTTL())

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notification.NewModule(eventBus, sender, log)

	authModule := auth.NewModule(pool, cfg, eventBus, val, log)
	catalogModule := catalog.NewModule(pool, val, log)
	inquiriesModule := inquiries.NewModule(pool, eventBus, storageSvc, cfg.GetMinioBucketInquiryDocuments(), val, log)

	// Anti-corruption adapters: the wizard depends on its own interfaces only
	catalogReader := catalogpricing.New(catalogModule.Repository())
	inquiryWriter := inquirystore.New(inquiriesModule.Repository(), eventBus)

	quotationModule := quotation.NewModule(quotationsvc.Deps{
		Sessions:  sessionStore,
		Catalog:   catalogReader,
		Inquiries: inquiryWriter,
		Sender:    sender,
		Generator: generator,
		Resets:    resetScheduler,
		Storage:   storageSvc,
		Bucket:    cfg.GetMinioBucketInquiryDocuments(),
		Email:     cfg,
		Logger:    log,
	}, val)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		Sessions: authModule.Service(),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			catalogModule,
			inquiriesModule,
			quotationModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// ensureBucket wraps the retry logic for verifying a MinIO bucket exists.
func ensureBucket(ctx context.Context, log *logger.Logger, storageSvc storage.Service, name, bucket string) {
	if err := withRetry(ctx, log, "ensure "+name+" bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
}

func initResetScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.SessionResetScheduler, func()) {
	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reset scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
