// Package site serves the embedded admin page.
package site

import (
	"context"
	"net/http"
)

// Register attaches the admin page at / to mux. Paths that no other route
// claims and no embedded file matches get a 404.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("/", NewRootHandler())
}

// RootHandler serves the embedded static files.
type RootHandler struct {
	files http.Handler
}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{files: http.FileServer(FS())}
}

// ServeHTTP serves GET and HEAD requests from the embedded files.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.files.ServeHTTP(w, r)
}
