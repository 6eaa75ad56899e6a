// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/podium/internal/adapters/surface"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/navigation"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	StatsProvider

	Home(ctx context.Context) (service.HomePage, error)
	Country(ctx context.Context, name string) (service.CountryPage, error)

	// Select maps a click on a surface's chart to a navigation intent.
	Select(ctx context.Context, surfaceID string, index int) (navigation.Intent, error)
	// Surface returns what is drawn on a surface; ok is false when empty.
	Surface(id string) (surface.Content, bool)
}

// Server wires HTTP routes for the dashboard.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	pageHandler    *PageHandler
	surfaceHandler *SurfaceHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(deps),
		pageHandler:    NewPageHandler(deps),
		surfaceHandler: NewSurfaceHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", MetricsMiddleware(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /{$}", MetricsMiddleware(s.pageHandler.HandleHome, "home"))
	mux.HandleFunc("GET /country/{name}", MetricsMiddleware(s.pageHandler.HandleCountry, "country"))
	mux.HandleFunc("GET /country/", MetricsMiddleware(s.pageHandler.HandleCountry, "country"))
	mux.HandleFunc("GET /surfaces/{id}", MetricsMiddleware(s.surfaceHandler.HandleSurface, "surface"))
	mux.HandleFunc("GET /surfaces/{id}/select", MetricsMiddleware(s.surfaceHandler.HandleSelect, "select"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
