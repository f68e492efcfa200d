package api

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/podium/pkg/metrics"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	stats   StatsProvider
	metrics http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(stats StatsProvider) *HealthHandler {
	return &HealthHandler{
		stats:   stats,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Students any    `json:"students"`
	Store    any    `json:"store"`
}

// HandleHealth handles GET /healthz. It serves the Prometheus exposition of
// the custom registry unless the client asks for application/json.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		stats := h.stats.GetStats()
		writeJSON(w, http.StatusOK, healthResponse{
			Status:   "ok",
			Students: stats["students"],
			Store:    stats["store"],
		})
		return
	}
	h.metrics.ServeHTTP(w, r)
}
