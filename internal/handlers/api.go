package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"ecom-dashboard/internal/config"
	"ecom-dashboard/internal/dataset"
	"ecom-dashboard/internal/errors"
	"ecom-dashboard/internal/metrics"
	"ecom-dashboard/internal/models"
	"ecom-dashboard/internal/observability"
	"ecom-dashboard/internal/report"
)

const (
	cacheControl = "public, max-age=300"

	noticeNoReviews    = "review_score and review_comment_message are not available in the current dataset"
	noticeNoCategories = "product category labels are not available in the current dataset"
	noticeNoGeo        = "geolocation data is not available in the current dataset"
)

// geoSampleSeed keeps the map sample stable across re-renders.
const geoSampleSeed = 42

type APIHandlers struct {
	store  *dataset.Store
	cfg    config.DatasetConfig
	logger *slog.Logger
}

func NewAPIHandlers(store *dataset.Store, cfg config.DatasetConfig, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// section wraps an optional dashboard section: when the backing column is
// missing the section ships a notice instead of data and the rest of the
// dashboard keeps rendering.
type section struct {
	Available bool   `json:"available"`
	Notice    string `json:"notice,omitempty"`
	Data      any    `json:"data,omitempty"`
}

func available(data any) section {
	return section{Available: true, Data: data}
}

func unavailable(notice string) section {
	return section{Available: false, Notice: notice}
}

// view runs the load-from-cache and filter stages of one render cycle.
func (h *APIHandlers) view(r *http.Request) ([]models.Order, *dataset.Dataset, error) {
	ds, err := h.store.Orders(r.Context(), h.cfg.OrdersFile)
	if err != nil {
		return nil, nil, err
	}

	dr, categories, err := parseFilter(r)
	if err != nil {
		return nil, nil, err
	}

	return report.Filter(ds.Orders, dr, categories), ds, nil
}

func (h *APIHandlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
}

func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	view, _, err := h.view(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	summary := report.Summarize(view)
	metrics.ObserveRenderCycle("summary", time.Since(start))

	errors.WriteSuccessWithHeaders(w, summary, map[string]string{"Cache-Control": cacheControl})
}

func (h *APIHandlers) HandleMonthlyVolume(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	view, _, err := h.view(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := report.MonthlyOrderVolume(view)
	metrics.ObserveRenderCycle("monthly_volume", time.Since(start))

	errors.WriteSuccessWithHeaders(w, data, map[string]string{"Cache-Control": cacheControl})
}

func (h *APIHandlers) HandleStatusDistribution(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	view, _, err := h.view(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := report.StatusDistribution(view)
	metrics.ObserveRenderCycle("status_distribution", time.Since(start))

	errors.WriteSuccessWithHeaders(w, data, map[string]string{"Cache-Control": cacheControl})
}

func (h *APIHandlers) HandleReviewScores(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	view, ds, err := h.view(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if !ds.Columns.ReviewScore {
		errors.WriteSuccessWithHeaders(w, unavailable(noticeNoReviews), map[string]string{"Cache-Control": cacheControl})
		return
	}

	data := report.ReviewScoreDistribution(view)
	metrics.ObserveRenderCycle("review_scores", time.Since(start))

	errors.WriteSuccessWithHeaders(w, available(data), map[string]string{"Cache-Control": cacheControl})
}

func (h *APIHandlers) HandleReviewWords(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	view, ds, err := h.view(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if !ds.Columns.ReviewComment {
		errors.WriteSuccessWithHeaders(w, unavailable(noticeNoReviews), map[string]string{"Cache-Control": cacheControl})
		return
	}

	data := report.ReviewWordFrequencies(view, parseTopN(r, 100))
	metrics.ObserveRenderCycle("review_words", time.Since(start))

	errors.WriteSuccessWithHeaders(w, available(data), map[string]string{"Cache-Control": cacheControl})
}

func (h *APIHandlers) HandleTopCategories(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	view, ds, err := h.view(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if !ds.Columns.Category {
		errors.WriteSuccessWithHeaders(w, unavailable(noticeNoCategories), map[string]string{"Cache-Control": cacheControl})
		return
	}

	data := report.TopCategories(view, parseTopN(r, h.cfg.TopCategories))
	metrics.ObserveRenderCycle("top_categories", time.Since(start))

	errors.WriteSuccessWithHeaders(w, available(data), map[string]string{"Cache-Control": cacheControl})
}

func (h *APIHandlers) HandleCategories(w http.ResponseWriter, r *http.Request) {
	ds, err := h.store.Orders(r.Context(), h.cfg.OrdersFile)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if !ds.Columns.Category {
		errors.WriteSuccessWithHeaders(w, unavailable(noticeNoCategories), map[string]string{"Cache-Control": cacheControl})
		return
	}

	errors.WriteSuccessWithHeaders(w, available(report.Categories(ds.Orders)), map[string]string{"Cache-Control": cacheControl})
}

func (h *APIHandlers) HandleGeoSample(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	points, err := h.store.Geolocation(r.Context(), h.cfg.GeolocationFile)
	if err != nil {
		errors.WriteSuccessWithHeaders(w, unavailable(noticeNoGeo), map[string]string{"Cache-Control": cacheControl})
		return
	}

	sample := report.SampleGeoPoints(points, h.cfg.GeoSampleSize, geoSampleSeed)
	metrics.ObserveRenderCycle("geo_sample", time.Since(start))

	errors.WriteSuccessWithHeaders(w, available(sample), map[string]string{"Cache-Control": cacheControl})
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	ds, err := h.store.Orders(r.Context(), h.cfg.OrdersFile)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	geoPoints := 0
	if points, err := h.store.Geolocation(r.Context(), h.cfg.GeolocationFile); err == nil {
		geoPoints = len(points)
	}

	errors.WriteSuccess(w, map[string]any{
		"rows":               len(ds.Orders),
		"skipped_rows":       ds.SkippedRows,
		"has_review_score":   ds.Columns.ReviewScore,
		"has_review_comment": ds.Columns.ReviewComment,
		"has_category":       ds.Columns.Category,
		"geo_points":         geoPoints,
	})
}
