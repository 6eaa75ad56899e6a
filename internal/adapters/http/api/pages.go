package api

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/okian/podium/internal/adapters/dataset"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/pkg/logger"
)

// PageDependencies loads the dashboard pages.
type PageDependencies interface {
	Home(ctx context.Context) (service.HomePage, error)
	Country(ctx context.Context, name string) (service.CountryPage, error)
}

// PageHandler serves the HTML pages.
type PageHandler struct {
	deps PageDependencies
}

// NewPageHandler creates a new page handler.
func NewPageHandler(deps PageDependencies) *PageHandler {
	return &PageHandler{deps: deps}
}

type pageData struct {
	Title   string
	Message string
	Page    any
}

// HandleHome handles GET / requests.
func (h *PageHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	page, err := h.deps.Home(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render(w, r, http.StatusOK, homePage, pageData{Title: "Olympic Games dashboard", Page: page})
}

// HandleCountry handles GET /country/{name} requests.
func (h *PageHandler) HandleCountry(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if strings.TrimSpace(name) == "" {
		render(w, r, http.StatusBadRequest, errorPage, pageData{Title: "Bad request", Message: ErrMissingName.Error()})
		return
	}
	page, err := h.deps.Country(r.Context(), name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render(w, r, http.StatusOK, countryPage, pageData{Title: page.Country, Page: page})
}

// fail maps service errors to status pages.
func (h *PageHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrCountryNotFound):
		render(w, r, http.StatusNotFound, errorPage, pageData{Title: "Not found", Message: service.ErrCountryNotFound.Error()})
	case errors.Is(err, service.ErrEmptyName):
		render(w, r, http.StatusBadRequest, errorPage, pageData{Title: "Bad request", Message: ErrMissingName.Error()})
	case errors.Is(err, dataset.ErrFetch):
		render(w, r, http.StatusBadGateway, errorPage, pageData{Title: "Data unavailable", Message: dataset.ErrFetch.Error()})
	case errors.Is(err, service.ErrViewClosed), errors.Is(err, context.Canceled):
		render(w, r, http.StatusServiceUnavailable, errorPage, pageData{Title: "Unavailable", Message: "the dashboard is shutting down"})
	default:
		logger.Get().Error(r.Context(), "page failed", logger.String("path", r.URL.Path), logger.Error(err))
		render(w, r, http.StatusInternalServerError, errorPage, pageData{Title: "Error", Message: http.StatusText(http.StatusInternalServerError)})
	}
}

func render(w http.ResponseWriter, r *http.Request, status int, t *template.Template, data pageData) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Get().Error(r.Context(), "template failed", logger.String("path", r.URL.Path), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
