package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/starfederation/datastar-go/datastar"

	"ecom-dashboard/internal/config"
	"ecom-dashboard/internal/dataset"
	"ecom-dashboard/internal/metrics"
	"ecom-dashboard/internal/models"
	"ecom-dashboard/internal/observability"
	"ecom-dashboard/internal/report"
)

var summaryTemplate = template.Must(template.New("summary").Parse(`
<div id="summary-content">
<div class="metric"><span class="metric-value">{{.Orders}}</span><span class="metric-label">Orders</span></div>
<div class="metric"><span class="metric-value">{{.Customers}}</span><span class="metric-label">Customers</span></div>
<div class="metric"><span class="metric-value">{{.FirstOrder.Format "2006-01-02"}} &rarr; {{.LastOrder.Format "2006-01-02"}}</span><span class="metric-label">Date Range</span></div>
</div>`))

var statusTableTemplate = template.Must(template.New("statusTable").Parse(`
<div id="status-content">
<table class="modern-table">
<thead><tr><th>Status</th><th>Orders</th></tr></thead>
<tbody>
{{range .}}<tr><td><span class="status-badge">{{.Status}}</span></td><td><strong>{{.Count}}</strong></td></tr>
{{end}}</tbody>
</table>
</div>`))

type SSEHandlers struct {
	store  *dataset.Store
	cfg    config.DatasetConfig
	logger *slog.Logger
}

func NewSSEHandlers(store *dataset.Store, cfg config.DatasetConfig, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

func (h *SSEHandlers) renderSummary(summary models.Summary) (string, error) {
	var buf strings.Builder
	err := summaryTemplate.Execute(&buf, summary)
	return buf.String(), err
}

func (h *SSEHandlers) renderStatusTable(counts []models.StatusCount) (string, error) {
	var buf strings.Builder
	err := statusTableTemplate.Execute(&buf, counts)
	return buf.String(), err
}

// HandleRefreshAll recomputes every dashboard section for the filter state in
// the query parameters and patches them over one SSE response. This is the
// endpoint the sidebar controls hit on every change.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := observability.StartRenderSpan(r.Context(), "refresh_all")
	defer span.Finish()
	sse := datastar.NewSSE(w, r)

	ds, err := h.store.Orders(ctx, h.cfg.OrdersFile)
	if err != nil {
		span.SetError(err)
		h.logger.Error("load orders for refresh", "error", err)
		return
	}

	dr, categories, err := parseFilter(r)
	if err != nil {
		h.logger.Warn("refresh with invalid filter", "error", err)
		return
	}

	view := report.Filter(ds.Orders, dr, categories)

	html, err := h.renderSummary(report.Summarize(view))
	if err != nil {
		h.logger.Error("render summary", "error", err)
		return
	}
	sse.PatchElements(html)

	html, err = h.renderStatusTable(report.StatusDistribution(view))
	if err != nil {
		h.logger.Error("render status table", "error", err)
		return
	}
	sse.PatchElements(html)

	signals := map[string]any{
		"monthlyData": report.MonthlyOrderVolume(view),
	}
	if ds.Columns.ReviewScore {
		signals["scoreData"] = report.ReviewScoreDistribution(view)
	}
	if ds.Columns.ReviewComment {
		signals["wordData"] = report.ReviewWordFrequencies(view, 100)
	}
	if ds.Columns.Category {
		signals["categoryData"] = report.TopCategories(view, h.cfg.TopCategories)
	}
	if points, err := h.store.Geolocation(ctx, h.cfg.GeolocationFile); err == nil {
		signals["geoData"] = report.SampleGeoPoints(points, h.cfg.GeoSampleSize, geoSampleSeed)
	}

	jsonData, err := json.Marshal(signals)
	if err != nil {
		h.logger.Error("marshal refresh signals", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	metrics.ObserveRenderCycle("refresh_all", time.Since(start))

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
