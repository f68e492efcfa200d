package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/model"
)

// RankDependencies looks up one student.
type RankDependencies interface {
	Rank(ctx context.Context, id string) (model.RankedStudent, error)
}

// RankHandler serves GET /rank/{id}.
type RankHandler struct {
	deps RankDependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// HandleGetRank handles GET /rank/{id}.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/rank/"), "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind("rank: missing id", ErrBadRequest))
		return
	}

	entry, err := h.deps.Rank(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", WrapKind("rank", ErrNotFound, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap("rank", err))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
