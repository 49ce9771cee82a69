package handlers

import (
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"
	"os"

	"ecom-dashboard/internal/config"
)

//go:embed dashboard.html
var dashboardHTML string

var dashboardTemplate = template.Must(template.New("dashboard").Parse(dashboardHTML))

type PageHandlers struct {
	cfg    config.DatasetConfig
	logger *slog.Logger
}

func NewPageHandlers(cfg config.DatasetConfig, logger *slog.Logger) *PageHandlers {
	return &PageHandlers{cfg: cfg, logger: logger}
}

type dashboardPage struct {
	Title   string
	HasLogo bool
	TopN    int
}

// HandleDashboard serves the single dashboard page. All data arrives later
// through the JSON API and the SSE refresh endpoint.
func (h *PageHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	page := dashboardPage{
		Title:   "E-Commerce Public Dataset Dashboard",
		HasLogo: h.logoExists(),
		TopN:    h.cfg.TopCategories,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", cacheControl)
	if err := dashboardTemplate.Execute(w, page); err != nil {
		h.logger.Error("render dashboard page", "error", err)
	}
}

// HandleLogo serves the optional logo asset. Absence is non-fatal: the page
// hides the image on 404.
func (h *PageHandlers) HandleLogo(w http.ResponseWriter, r *http.Request) {
	if !h.logoExists() {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, h.cfg.LogoFile)
}

func (h *PageHandlers) logoExists() bool {
	if h.cfg.LogoFile == "" {
		return false
	}
	info, err := os.Stat(h.cfg.LogoFile)
	return err == nil && !info.IsDir()
}
