package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	authrepo "quotation_backend/internal/auth/repository"
	authsvc "quotation_backend/internal/auth/service"
	"quotation_backend/internal/events"
	"quotation_backend/internal/quotation/store"
	"quotation_backend/internal/scheduler"
	"quotation_backend/platform/config"
	"quotation_backend/platform/db"
	"quotation_backend/platform/logger"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// The worker process runs the asynq handlers: delayed form session resets and
// the periodic cleanup of expired login codes and sessions.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	redisOpt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Error("failed to parse redis url", "error", err)
		panic("failed to parse redis url: " + err.Error())
	}
	redisClient := redis.NewClient(redisOpt)
	defer func() { _ = redisClient.Close() }()

	sessionStore := store.NewRedisStore(redisClient, cfg.GetFormSessionTTL())

	// The auth service doubles as the expired-token purger. The worker never
	// publishes auth events, so a private bus is enough.
	authService := authsvc.New(authrepo.New(pool), cfg, events.NewInMemoryBus(log), log)

	worker, err := scheduler.NewWorker(cfg, sessionStore, authService, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	periodic, err := scheduler.NewPeriodic(cfg)
	if err != nil {
		log.Error("failed to initialize periodic scheduler", "error", err)
		panic("failed to initialize periodic scheduler: " + err.Error())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		go func() {
			<-gctx.Done()
			periodic.Shutdown()
		}()
		return periodic.Run()
	})

	if err := g.Wait(); err != nil {
		log.Error("worker stopped", "error", err)
		panic("worker stopped: " + err.Error())
	}

	log.Info("worker shut down")
}
