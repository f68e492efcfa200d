package api

import (
	"net/http"

	"github.com/okian/podium/internal/domain/scheduler"
)

// DisplayDependencies exposes the latest frame of the display driver.
type DisplayDependencies interface {
	Frame() scheduler.Frame
}

// DisplayHandler serves GET /display.
type DisplayHandler struct {
	deps DisplayDependencies
}

// NewDisplayHandler creates a new display handler.
func NewDisplayHandler(deps DisplayDependencies) *DisplayHandler {
	return &DisplayHandler{deps: deps}
}

// HandleDisplay handles GET /display.
func (h *DisplayHandler) HandleDisplay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	frame := h.deps.Frame()
	if frame.Pedestals == nil {
		frame.Pedestals = []scheduler.Pedestal{}
	}
	writeJSON(w, http.StatusOK, frame)
}
