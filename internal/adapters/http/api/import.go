package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/podium/internal/domain/importer"
	"github.com/okian/podium/internal/domain/model"
)

// ImportDependencies turns free text into students.
type ImportDependencies interface {
	Import(ctx context.Context, text string) (importer.Result, error)
}

// ImportHandler serves POST /import.
type ImportHandler struct {
	deps     ImportDependencies
	maxBytes int64
}

// NewImportHandler creates a new import handler.
func NewImportHandler(deps ImportDependencies, maxBytes int64) *ImportHandler {
	return &ImportHandler{deps: deps, maxBytes: maxBytes}
}

// importRequest accepts the text under either key; rawText is the older name.
type importRequest struct {
	Text    string `json:"text"`
	RawText string `json:"rawText"`
}

type importResponse struct {
	Students []model.Student `json:"students"`
	Warnings []string        `json:"warnings"`
}

// HandleImport handles POST /import.
func (h *ImportHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var req importRequest
	if err := decodeBody(w, r, h.maxBytes, &req); err != nil {
		writeDecodeError(w, "import", err)
		return
	}
	text := req.Text
	if strings.TrimSpace(text) == "" {
		text = req.RawText
	}

	res, err := h.deps.Import(r.Context(), text)
	switch {
	case errors.Is(err, importer.ErrTextTooShort):
		writeJSON(w, http.StatusBadRequest, importResponse{
			Students: []model.Student{},
			Warnings: []string{importer.TooShortWarning},
		})
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, "import_failed", Wrap("import", err))
		return
	}

	out := importResponse{Students: res.Students, Warnings: res.Warnings}
	if out.Students == nil {
		out.Students = []model.Student{}
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	writeJSON(w, http.StatusOK, out)
}
