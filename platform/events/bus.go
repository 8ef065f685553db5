package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"quotation_backend/platform/logger"
)

// asyncHandlerTimeout bounds how long an async handler may run after the
// originating request context is gone.
const asyncHandlerTimeout = 30 * time.Second

// InMemoryBus is a simple in-process event bus. Handlers registered via
// Subscribe are invoked for every published event with a matching name.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
	wg       sync.WaitGroup
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the given event name.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event to all subscribed handlers asynchronously.
// Handler errors are logged, not propagated; publishing never blocks the
// caller on handler work.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.wg.Add(1)
		go func(h Handler) {
			defer b.wg.Done()
			defer b.recoverPanic(event)

			// Detach from the request context so in-flight handlers
			// survive the originating request completing.
			handlerCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), asyncHandlerTimeout)
			defer cancel()

			if err := h.Handle(handlerCtx, event); err != nil && b.log != nil {
				b.log.Error("event_handler_failed",
					"event", event.EventName(),
					"error", err.Error(),
				)
			}
		}(handler)
	}
}

// PublishSync dispatches the event and waits for every handler to finish.
// All handler errors are joined and returned.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		func() {
			defer b.recoverPanic(event)
			if err := handler.Handle(ctx, event); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", event.EventName(), err))
			}
		}()
	}

	return errors.Join(errs...)
}

// Wait blocks until all in-flight async handlers have completed.
// Used during graceful shutdown.
func (b *InMemoryBus) Wait() {
	b.wg.Wait()
}

func (b *InMemoryBus) recoverPanic(event Event) {
	if r := recover(); r != nil && b.log != nil {
		b.log.Error("event_handler_panic",
			"event", event.EventName(),
			"panic", fmt.Sprintf("%v", r),
		)
	}
}

var _ Bus = (*InMemoryBus)(nil)
