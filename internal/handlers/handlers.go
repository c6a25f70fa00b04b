package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/wanderpost/wanderpost/internal/pipeline"
)

// Pipeline is the slice of the workflow controller the HTTP front door needs.
type Pipeline interface {
	Approve(ctx context.Context, id string) (pipeline.ApproveResult, error)
	Reject(ctx context.Context, id, adjustment string) error
}

// Handler serves the approve/reject triggers and the published static pages.
type Handler struct {
	pipeline  Pipeline
	staticDir string
}

// New creates a new HTTP handler around the pipeline
func New(p Pipeline, staticDir string) *Handler {
	return &Handler{
		pipeline:  p,
		staticDir: staticDir,
	}
}

// HandleApprove runs the approve transition for the record named by the id
// query parameter. The email is sent before persistence, so a failed record
// store write still reports the approval - just flagged as unsaved.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.writeError(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	result, err := h.pipeline.Approve(r.Context(), id)
	if err != nil {
		h.writeError(w, "Failed to approve: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if !result.Persisted {
		slog.Error("Approved but failed to persist record", "id", id, "error", result.PersistErr)
		fmt.Fprintf(w, "Approved and email sent, but failed to save the record: %v", result.PersistErr)
		return
	}

	fmt.Fprintf(w, "Approved! Page published at %s", result.Link)
}

// HandleReject runs the reject transition. Works as a plain GET link or as
// the feedback form's submission; the optional adjustment text conditions a
// revision of the previously sent page.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")
	if id == "" {
		h.writeError(w, "Missing id parameter", http.StatusBadRequest)
		return
	}
	adjustment := strings.TrimSpace(r.FormValue("adjustment"))

	if err := h.pipeline.Reject(r.Context(), id, adjustment); err != nil {
		h.writeError(w, "Failed to reject: "+err.Error(), http.StatusInternalServerError)
		return
	}

	fmt.Fprint(w, "Rejected - a new travel page is on its way!")
}

// HandleStatic serves published pages from the static directory, including
// the approved_html/ links written on approval.
func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/static/")

	// Prevent directory traversal attacks
	if path == "" || strings.Contains(path, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	if strings.HasSuffix(path, ".html") {
		w.Header().Set("Content-Type", "text/html")
	}

	http.ServeFile(w, r, filepath.Join(h.staticDir, filepath.FromSlash(path)))
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}
