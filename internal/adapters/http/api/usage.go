package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/artamananda/portfolio/internal/adapters/usage"
	"github.com/artamananda/portfolio/pkg/logger"
)

// UsageDependencies defines the interface for the usage relay.
type UsageDependencies interface {
	Usage(ctx context.Context) (json.RawMessage, error)
}

// UsageHandler relays the upstream usage document.
type UsageHandler struct {
	deps   UsageDependencies
	logger logger.Logger
}

// NewUsageHandler creates a new usage handler.
func NewUsageHandler(deps UsageDependencies, log logger.Logger) *UsageHandler {
	return &UsageHandler{deps: deps, logger: log}
}

// HandleGetUsage handles GET /api/usage requests.
// No query parameters, headers or body are consumed.
func (h *UsageHandler) HandleGetUsage(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_usage"

	payload, err := h.deps.Usage(r.Context())
	if err != nil {
		status, code, kind := usageErrorStatus(err)
		h.logger.Warn(r.Context(), "usage relay failed",
			logger.Int("status", status),
			logger.Error(err),
		)
		// The cause stays in the log; callers only learn the kind.
		writeError(w, status, code, NewKind(op, kind))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// usageErrorStatus maps an upstream failure to the response status, error code
// and API error kind.
func usageErrorStatus(err error) (int, string, error) {
	if errors.Is(err, usage.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, "upstream_timeout", ErrUpstreamTimeout
	}
	return http.StatusBadGateway, "bad_gateway", ErrBadGateway
}
