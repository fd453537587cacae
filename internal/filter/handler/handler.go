package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"daybound/internal/filter"
	id "daybound/pkg/domain"
	dErrors "daybound/pkg/domain-errors"
	"daybound/pkg/platform/httputil"
	"daybound/pkg/requestcontext"
)

// Service defines the interface for date filter operations.
type Service interface {
	ResolveDateRange(ctx context.Context, tenantID id.TenantID, from, to string) (*filter.ResolvedRange, error)
}

// Handler wires the filter endpoints to the filter service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a filter handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts filter endpoints on the router. The caller is
// expected to guard the router with session authentication.
func (h *Handler) Register(r chi.Router) {
	r.Get("/v1/filters/date-range", h.HandleDateRange)
}

// DateRangeResponse is the resolved UTC window for a local date range.
// The created_* keys drop straight into record query parameters.
type DateRangeResponse struct {
	From           string `json:"from"`
	To             string `json:"to"`
	Timezone       string `json:"timezone"`
	CreatedFromUTC string `json:"created_from_utc"`
	CreatedToUTC   string `json:"created_to_utc"`
}

// HandleDateRange handles GET /v1/filters/date-range requests.
func (h *Handler) HandleDateRange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	tenantID := requestcontext.TenantID(ctx)
	if tenantID.IsNil() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	q := r.URL.Query()
	from := q.Get("from")
	to := q.Get("to")
	if to == "" {
		// A single-day filter may omit to.
		to = from
	}

	resolved, err := h.service.ResolveDateRange(ctx, tenantID, from, to)
	if err != nil {
		h.logger.WarnContext(ctx, "date range resolution rejected",
			"request_id", requestID,
			"tenant_id", tenantID,
			"from", from,
			"to", to,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, DateRangeResponse{
		From:           resolved.From,
		To:             resolved.To,
		Timezone:       resolved.Timezone,
		CreatedFromUTC: resolved.CreatedFromUTC,
		CreatedToUTC:   resolved.CreatedToUTC,
	})
}
