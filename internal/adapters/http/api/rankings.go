package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/model"
)

// RankingsDependencies reads and replaces the roster.
type RankingsDependencies interface {
	Ranked() []model.RankedStudent
	Settings() model.Settings
	Save(ctx context.Context, students []model.Student, patch *model.SettingsPatch) error
	UpdateSettings(ctx context.Context, patch model.SettingsPatch) (model.Settings, error)
}

// RankingsHandler serves /rankings and /settings.
type RankingsHandler struct {
	deps     RankingsDependencies
	maxBytes int64
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps RankingsDependencies, maxBytes int64) *RankingsHandler {
	return &RankingsHandler{deps: deps, maxBytes: maxBytes}
}

type rankingsResponse struct {
	Students []model.RankedStudent `json:"students"`
	Settings model.Settings        `json:"settings"`
}

// saveRequest is the POST /rankings body. A missing students key keeps the
// roster; an empty array clears it.
type saveRequest struct {
	Students *[]model.Student    `json:"students,omitempty"`
	Settings *model.SettingsPatch `json:"settings,omitempty"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// HandleRankings handles GET and POST /rankings.
func (h *RankingsHandler) HandleRankings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, rankingsResponse{
			Students: h.deps.Ranked(),
			Settings: h.deps.Settings(),
		})
	case http.MethodPost:
		h.save(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

func (h *RankingsHandler) save(w http.ResponseWriter, r *http.Request) {
	var req saveRequest
	if err := decodeBody(w, r, h.maxBytes, &req); err != nil {
		writeDecodeError(w, "save rankings", err)
		return
	}
	if req.Students == nil && (req.Settings == nil || req.Settings.Empty()) {
		writeError(w, http.StatusBadRequest, "bad_request",
			NewKind("save rankings: students or settings required", ErrBadRequest))
		return
	}

	var students []model.Student
	if req.Students != nil {
		students = *req.Students
		if students == nil {
			students = []model.Student{}
		}
	}
	if err := h.deps.Save(r.Context(), students, req.Settings); err != nil {
		writePersistError(w, "save rankings", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// HandleSettings handles GET and PATCH /settings.
func (h *RankingsHandler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Settings())
	case http.MethodPatch:
		var patch model.SettingsPatch
		if err := decodeBody(w, r, h.maxBytes, &patch); err != nil {
			writeDecodeError(w, "update settings", err)
			return
		}
		merged, err := h.deps.UpdateSettings(r.Context(), patch)
		if err != nil {
			writePersistError(w, "update settings", err)
			return
		}
		writeJSON(w, http.StatusOK, merged)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	}
}

func writeDecodeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, ErrTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "too_large", WrapKind(op, ErrTooLarge, err))
		return
	}
	writeError(w, http.StatusBadRequest, "invalid_json", WrapKind(op, ErrBadRequest, err))
}

func writePersistError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, service.ErrPersist) {
		writeError(w, http.StatusInternalServerError, "persist_failed", Wrap(op, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
}
