package audit

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"daybound/pkg/platform/middleware/metadata"
	"daybound/pkg/requestcontext"
)

var (
	eventsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daybound_audit_events_emitted_total",
		Help: "Audit events accepted into the publish buffer.",
	}, []string{"action"})
	eventsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "daybound_audit_events_dropped_total",
		Help: "Audit events dropped because the publish buffer was full.",
	}, []string{"action"})
)

// Publisher accepts events from request handlers without blocking them.
// Events are buffered on a channel and drained by a Worker; when the
// buffer is full the event is dropped and counted rather than stalling
// the request path.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Emit queues an event for delivery. A zero timestamp is filled from
// the request-scoped clock; client IP and device summary come from the
// metadata middleware so callers never thread them through.
func (p *Publisher) Emit(ctx context.Context, e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = requestcontext.Now(ctx)
	}
	if e.UserID == "" {
		if userID := requestcontext.UserID(ctx); !userID.IsNil() {
			e.UserID = userID.String()
		}
	}
	if e.ClientIP == "" {
		e.ClientIP = metadata.GetClientIP(ctx)
	}
	if e.UserAgent == "" {
		e.UserAgent = metadata.DeviceSummary(ctx)
	}
	select {
	case p.inbox <- e:
		eventsEmitted.WithLabelValues(e.Action).Inc()
	default:
		eventsDropped.WithLabelValues(e.Action).Inc()
		p.logger.Warn("audit buffer full, event dropped",
			"action", e.Action,
			"tenant_id", e.TenantID,
		)
	}
}

// Events exposes the buffered stream for the worker.
func (p *Publisher) Events() <-chan Event {
	return p.inbox
}

// Close stops accepting events. The worker drains whatever remains
// buffered before exiting.
func (p *Publisher) Close() {
	close(p.inbox)
}
