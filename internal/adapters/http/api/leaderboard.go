package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/podium/internal/domain/model"
)

// LeaderboardDependencies returns the top of the ranking.
type LeaderboardDependencies interface {
	TopN(ctx context.Context, n int) ([]model.RankedStudent, error)
}

// LeaderboardHandler serves GET /leaderboard.
type LeaderboardHandler struct {
	deps     LeaderboardDependencies
	maxLimit int
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, maxLimit int) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetLeaderboard handles GET /leaderboard?limit=N. Without a limit the
// configured maximum is used.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	limit := h.maxLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > h.maxLimit {
			writeError(w, http.StatusBadRequest, "invalid_limit",
				NewKind("leaderboard: limit must be between 1 and "+strconv.Itoa(h.maxLimit), ErrBadRequest))
			return
		}
		limit = n
	}

	top, err := h.deps.TopN(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_limit", WrapKind("leaderboard", ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, top)
}
