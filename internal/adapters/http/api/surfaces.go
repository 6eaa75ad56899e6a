package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/okian/podium/internal/adapters/chart"
	"github.com/okian/podium/internal/adapters/surface"
	"github.com/okian/podium/internal/domain/navigation"
)

// SurfaceDependencies exposes drawn surfaces and chart selection.
type SurfaceDependencies interface {
	Select(ctx context.Context, surfaceID string, index int) (navigation.Intent, error)
	Surface(id string) (surface.Content, bool)
}

// SurfaceHandler serves raw surface content and turns clicks into redirects.
type SurfaceHandler struct {
	deps SurfaceDependencies
}

// NewSurfaceHandler creates a new surface handler.
func NewSurfaceHandler(deps SurfaceDependencies) *SurfaceHandler {
	return &SurfaceHandler{deps: deps}
}

// HandleSurface handles GET /surfaces/{id} requests.
func (h *SurfaceHandler) HandleSurface(w http.ResponseWriter, r *http.Request) {
	c, ok := h.deps.Surface(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", ErrEmptySurface)
		return
	}
	w.Header().Set("Content-Type", c.MediaType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(c.Bytes)
}

// HandleSelect handles GET /surfaces/{id}/select?index=N requests. A valid
// selection redirects to the intent's page; an invalid one is ignored.
func (h *SurfaceHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadIndex)
		return
	}
	intent, err := h.deps.Select(r.Context(), r.PathValue("id"), index)
	if err != nil {
		if errors.Is(err, chart.ErrInvalidSelection) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	http.Redirect(w, r, intent.Path(), http.StatusSeeOther)
}
