package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	dErrors "daybound/pkg/domain-errors"
)

// Validatable is implemented by request types that validate themselves
// after decoding.
type Validatable interface {
	Validate() error
}

// Normalizable is optionally implemented by request types that trim or
// canonicalize fields before validation.
type Normalizable interface {
	Normalize()
}

// DecodeAndPrepare decodes the JSON request body into T, normalizes it
// if the type supports it, and validates. On failure it writes the
// error response and returns ok=false; handlers just return.
func DecodeAndPrepare[T any, PT interface {
	*T
	Validatable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (PT, bool) {
	req := PT(new(T))
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "failed to decode request body",
				"request_id", requestID,
				"error", err,
			)
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	if n, ok := any(req).(Normalizable); ok {
		n.Normalize()
	}
	if err := req.Validate(); err != nil {
		WriteError(w, err)
		return nil, false
	}
	return req, true
}
