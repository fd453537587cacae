package filter

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks TimezoneReader,AuditPublisher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"daybound/internal/audit"
	"daybound/internal/filter/metrics"
	"daybound/internal/timezone"
	id "daybound/pkg/domain"
	dErrors "daybound/pkg/domain-errors"
	"daybound/pkg/platform/sentinel"
)

const tracerName = "daybound/internal/filter"

// TimezoneReader resolves a tenant's operational timezone. Backed by
// the tenant store, usually through the redis read-through cache.
type TimezoneReader interface {
	TimezoneByID(ctx context.Context, tenantID id.TenantID) (string, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, e audit.Event)
}

// ResolvedRange is a calendar-day range translated into the
// created_from_utc / created_to_utc query bounds for the tenant's
// timezone.
type ResolvedRange struct {
	From           string
	To             string
	Timezone       string
	CreatedFromUTC string
	CreatedToUTC   string
}

// Service resolves clinic-local date filters into UTC instants.
type Service struct {
	timezones      TimezoneReader
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(timezones TimezoneReader, opts ...Option) *Service {
	s := &Service{
		timezones: timezones,
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveDateRange translates [from, to] calendar days into UTC bounds
// covering the whole of both days in the tenant's timezone. The lower
// bound is the start-of-day instant of from, the upper bound the
// end-of-day instant of to.
func (s *Service) ResolveDateRange(ctx context.Context, tenantID id.TenantID, from, to string) (*ResolvedRange, error) {
	ctx, span := s.tracer.Start(ctx, "filter.ResolveDateRange",
		trace.WithAttributes(
			attribute.String("tenant.id", tenantID.String()),
			attribute.String("filter.from", from),
			attribute.String("filter.to", to),
		),
	)
	defer span.End()

	start := time.Now()
	resolved, err := s.resolve(ctx, tenantID, from, to)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "date range resolution failed")
		if s.metrics != nil {
			s.metrics.RecordResolution("error", time.Since(start))
		}
		return nil, err
	}

	span.SetAttributes(attribute.String("filter.timezone", resolved.Timezone))
	if s.metrics != nil {
		s.metrics.RecordResolution("ok", time.Since(start))
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "date range resolved",
			"tenant_id", tenantID,
			"from", from,
			"to", to,
			"timezone", resolved.Timezone,
			"created_from_utc", resolved.CreatedFromUTC,
			"created_to_utc", resolved.CreatedToUTC,
		)
	}
	if s.auditPublisher != nil {
		s.auditPublisher.Emit(ctx, audit.Event{
			TenantID: tenantID.String(),
			Action:   audit.ActionDateRangeResolved,
			Resource: "filters/date-range",
			Detail:   from + ".." + to + " " + resolved.Timezone,
		})
	}
	return resolved, nil
}

func (s *Service) resolve(ctx context.Context, tenantID id.TenantID, from, to string) (*ResolvedRange, error) {
	fromDate, err := timezone.ParseLocalDate(from)
	if err != nil {
		return nil, err
	}
	toDate, err := timezone.ParseLocalDate(to)
	if err != nil {
		return nil, err
	}
	if toDate.Before(fromDate) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "to must not precede from")
	}

	tz, err := s.timezones.TimezoneByID(ctx, tenantID)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "tenant not found")
		case errors.Is(err, sentinel.ErrInvalidState):
			return nil, dErrors.New(dErrors.CodeForbidden, "tenant is inactive")
		default:
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tenant timezone")
		}
	}

	fromUTC, toUTC, err := timezone.LocalDateToUTCRange(from, to, tz)
	if err != nil {
		return nil, err
	}
	return &ResolvedRange{
		From:           from,
		To:             to,
		Timezone:       tz,
		CreatedFromUTC: fromUTC,
		CreatedToUTC:   toUTC,
	}, nil
}
