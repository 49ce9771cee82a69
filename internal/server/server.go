package server

import (
	"log/slog"
	"net/http"

	"ecom-dashboard/internal/config"
	"ecom-dashboard/internal/dataset"
	"ecom-dashboard/internal/handlers"
	"ecom-dashboard/internal/metrics"
)

type Server struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	apiHandlers  *handlers.APIHandlers
	sseHandlers  *handlers.SSEHandlers
	pageHandlers *handlers.PageHandlers
}

func NewServer(store *dataset.Store, cfg config.DatasetConfig, logger *slog.Logger) *Server {
	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		apiHandlers:  handlers.NewAPIHandlers(store, cfg, logger),
		sseHandlers:  handlers.NewSSEHandlers(store, cfg, logger),
		pageHandlers: handlers.NewPageHandlers(cfg, logger),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Dashboard page and assets
	s.mux.HandleFunc("GET /{$}", s.pageHandlers.HandleDashboard)
	s.mux.HandleFunc("GET /assets/logo.png", s.pageHandlers.HandleLogo)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)
	s.mux.Handle("GET /metrics", metrics.Handler())

	// REST API endpoints; all accept start/end/categories filter params
	s.mux.HandleFunc("GET /api/summary", s.apiHandlers.HandleSummary)
	s.mux.HandleFunc("GET /api/monthly-volume", s.apiHandlers.HandleMonthlyVolume)
	s.mux.HandleFunc("GET /api/status-distribution", s.apiHandlers.HandleStatusDistribution)
	s.mux.HandleFunc("GET /api/review-scores", s.apiHandlers.HandleReviewScores)
	s.mux.HandleFunc("GET /api/review-words", s.apiHandlers.HandleReviewWords)
	s.mux.HandleFunc("GET /api/top-categories", s.apiHandlers.HandleTopCategories)
	s.mux.HandleFunc("GET /api/categories", s.apiHandlers.HandleCategories)
	s.mux.HandleFunc("GET /api/geo-sample", s.apiHandlers.HandleGeoSample)

	// Export downloads
	s.mux.HandleFunc("GET /api/export/top-categories.csv", s.apiHandlers.HandleExportTopCategoriesCSV)
	s.mux.HandleFunc("GET /api/export/top-categories.xlsx", s.apiHandlers.HandleExportTopCategoriesXLSX)

	// Datastar SSE refresh for the whole dashboard
	s.mux.HandleFunc("GET /sse/refresh-all", s.sseHandlers.HandleRefreshAll)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
