package audit

import (
	"context"
	"log/slog"
	"time"
)

// Sink persists audit events. Implementations must be safe for use
// from a single worker goroutine.
type Sink interface {
	Append(ctx context.Context, e Event) error
}

// Worker drains a publisher's event stream into one or more sinks.
// Sink failures are logged, not fatal: an audit outage must never take
// the service down with it.
type Worker struct {
	events <-chan Event
	sinks  []Sink
	logger *slog.Logger
}

func NewWorker(p *Publisher, logger *slog.Logger, sinks ...Sink) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		events: p.Events(),
		sinks:  sinks,
		logger: logger,
	}
}

// Run delivers events until the context is cancelled or the publisher
// is closed. After cancellation it drains events already buffered,
// with a short grace period per delivery.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case e, ok := <-w.events:
			if !ok {
				return nil
			}
			w.deliver(ctx, e)
		}
	}
}

func (w *Worker) drain() {
	for {
		select {
		case e, ok := <-w.events:
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			w.deliver(ctx, e)
			cancel()
		default:
			return
		}
	}
}

func (w *Worker) deliver(ctx context.Context, e Event) {
	for _, s := range w.sinks {
		if err := s.Append(ctx, e); err != nil {
			w.logger.Error("audit sink append failed",
				"action", e.Action,
				"tenant_id", e.TenantID,
				"error", err,
			)
		}
	}
}
