package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"bimbingan_service/internal/logging"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps    map[string]Pinger
	timeout time.Duration
}

func NewHealthHandler(deps map[string]Pinger, timeout time.Duration) *HealthHandler {
	return &HealthHandler{deps: deps, timeout: timeout}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
	statusCode := http.StatusOK
	for _, name := range names {
		if err := h.deps[name].Ping(ctx); err != nil {
			logging.FromContext(ctx, logging.NewNop()).Warn(ctx, "Health check failed",
				zap.String("dependency", name), zap.Error(err))
			resp.Checks[name] = "unavailable"
			resp.Status = "degraded"
			statusCode = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}

	data, _ := json.Marshal(resp)
	writeJSON(w, statusCode, data)
}
