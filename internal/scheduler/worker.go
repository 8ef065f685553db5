package scheduler

import (
	"context"
	"errors"
	"fmt"

	"quotation_backend/internal/quotation/store"
	"quotation_backend/platform/apperr"
	"quotation_backend/platform/config"
	"quotation_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// OTPPurger removes expired admin OTP tokens.
type OTPPurger interface {
	DeleteExpiredOTPs(ctx context.Context) (int64, error)
}

type Worker struct {
	server   *asynq.Server
	mux      *asynq.ServeMux
	sessions store.Store
	otps     OTPPurger
	log      *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, sessions store.Store, otps OTPPurger, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:   server,
		mux:      mux,
		sessions: sessions,
		otps:     otps,
		log:      log,
	}

	mux.HandleFunc(TaskSessionReset, w.handleSessionReset)
	mux.HandleFunc(TaskOTPCleanup, w.handleOTPCleanup)

	return w, nil
}

// handleSessionReset restores a submitted session to its default state so
// the customer can start a new quotation. A session that already expired is
// treated as done.
func (w *Worker) handleSessionReset(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseSessionResetPayload(task)
	if err != nil {
		return err
	}

	sessionID, err := uuid.Parse(payload.SessionID)
	if err != nil {
		return err
	}

	session, err := w.sessions.Get(ctx, sessionID)
	if err != nil {
		if apperr.Is(err, apperr.KindGone) {
			return nil
		}
		return err
	}

	// Only reset sessions still sitting on the confirmation screen; the
	// customer may have started a new quotation in the meantime.
	if !session.ShowConfirmation {
		return nil
	}

	session.Reset()
	if err := w.sessions.Save(ctx, session); err != nil {
		return err
	}

	w.log.Info("form session reset", "session_id", sessionID)
	return nil
}

func (w *Worker) handleOTPCleanup(ctx context.Context, task *asynq.Task) error {
	if w.otps == nil {
		return nil
	}

	deleted, err := w.otps.DeleteExpiredOTPs(ctx)
	if err != nil {
		return err
	}

	if deleted > 0 {
		w.log.Info("expired otp tokens purged", "count", deleted)
	}
	return nil
}

func (w *Worker) Run(ctx context.Context) error {
	if w == nil || w.server == nil {
		return errors.New("worker not initialized")
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
		return err
	}
	return nil
}
