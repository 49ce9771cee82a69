package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecom-dashboard/internal/config"
	"ecom-dashboard/internal/dataset"
	"ecom-dashboard/internal/models"
)

const testOrdersCSV = `order_id,customer_id,order_purchase_timestamp,order_status,review_score,review_comment_message,product_category_name_english
o1,c1,2018-01-05 10:30:00,delivered,5,otimo produto,toys
o2,c2,2018-02-10 08:00:00,delivered,4,chegou rapido,books
o3,c3,2018-02-20 20:15:00,canceled,1,nunca chegou,toys
`

const bareOrdersCSV = `order_id,customer_id,order_purchase_timestamp,order_status
o1,c1,2018-01-05 10:30:00,delivered
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestHandlers(t *testing.T, ordersCSV string) *APIHandlers {
	t.Helper()
	cfg := config.DatasetConfig{
		OrdersFile:      writeFile(t, "orders.csv", ordersCSV),
		GeolocationFile: writeFile(t, "geo.csv", "geolocation_lat,geolocation_lng\n-23.5,-46.6\n-22.9,-47.1\n"),
		GeoSampleSize:   1000,
		TopCategories:   10,
	}
	return NewAPIHandlers(dataset.NewStore(testLogger()), cfg, testLogger())
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Success bool            `json:"success"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func doRequest(t *testing.T, handler http.HandlerFunc, url string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHandleSummary(t *testing.T) {
	h := newTestHandlers(t, testOrdersCSV)

	rec, env := doRequest(t, h.HandleSummary, "/api/summary")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	var summary models.Summary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 3, summary.Orders)
	assert.Equal(t, 3, summary.Customers)
}

func TestHandleSummary_DateFilter(t *testing.T) {
	h := newTestHandlers(t, testOrdersCSV)

	_, env := doRequest(t, h.HandleSummary, "/api/summary?start=2018-02-01&end=2018-02-28")

	var summary models.Summary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 2, summary.Orders)
}

func TestHandleSummary_PartialRangeIsNoOp(t *testing.T) {
	h := newTestHandlers(t, testOrdersCSV)

	_, env := doRequest(t, h.HandleSummary, "/api/summary?start=2018-02-01")

	var summary models.Summary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 3, summary.Orders)
}

func TestHandleSummary_InvalidDate(t *testing.T) {
	h := newTestHandlers(t, testOrdersCSV)

	rec, env := doRequest(t, h.HandleSummary, "/api/summary?start=02/01/2018&end=2018-02-28")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestHandleSummary_MissingResource(t *testing.T) {
	cfg := config.DatasetConfig{
		OrdersFile:    filepath.Join(t.TempDir(), "missing.csv"),
		GeoSampleSize: 1000,
		TopCategories: 10,
	}
	h := NewAPIHandlers(dataset.NewStore(testLogger()), cfg, testLogger())

	rec, env := doRequest(t, h.HandleSummary, "/api/summary")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "MISSING_RESOURCE", env.Error.Code)
}

func TestHandleTopCategories(t *testing.T) {
	h := newTestHandlers(t, testOrdersCSV)

	_, env := doRequest(t, h.HandleTopCategories, "/api/top-categories?n=1")

	var sec struct {
		Available bool                   `json:"available"`
		Data      []models.CategoryCount `json:"data"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sec))
	require.True(t, sec.Available)
	require.Len(t, sec.Data, 1)
	assert.Equal(t, models.CategoryCount{Category: "toys", Count: 2}, sec.Data[0])
}

func TestHandleTopCategories_CategoryFilter(t *testing.T) {
	h := newTestHandlers(t, testOrdersCSV)

	_, env := doRequest(t, h.HandleTopCategories, "/api/top-categories?categories=books")

	var sec struct {
		Available bool                   `json:"available"`
		Data      []models.CategoryCount `json:"data"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sec))
	require.Len(t, sec.Data, 1)
	assert.Equal(t, "books", sec.Data[0].Category)
}

func TestHandleReviewScores_Unavailable(t *testing.T) {
	h := newTestHandlers(t, bareOrdersCSV)

	rec, env := doRequest(t, h.HandleReviewScores, "/api/review-scores")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)
	// unavailable sections are cacheable like available ones
	assert.Equal(t, cacheControl, rec.Header().Get("Cache-Control"))

	var sec section
	require.NoError(t, json.Unmarshal(env.Data, &sec))
	assert.False(t, sec.Available)
	assert.NotEmpty(t, sec.Notice)
}

func TestHandleReviewScores_AnomaliesPreserved(t *testing.T) {
	csv := `order_id,customer_id,order_purchase_timestamp,order_status,review_score
o1,c1,2018-01-05 10:00:00,delivered,0
o2,c2,2018-01-06 10:00:00,delivered,7
`
	h := newTestHandlers(t, csv)

	_, env := doRequest(t, h.HandleReviewScores, "/api/review-scores")

	var sec struct {
		Available bool                `json:"available"`
		Data      []models.ScoreCount `json:"data"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sec))
	require.True(t, sec.Available)
	assert.Equal(t, []models.ScoreCount{
		{Score: 0, Count: 1},
		{Score: 7, Count: 1},
	}, sec.Data)
}

func TestHandleReviewScores(t *testing.T) {
	h := newTestHandlers(t, testOrdersCSV)

	_, env := doRequest(t, h.HandleReviewScores, "/api/review-scores")

	var sec struct {
		Available bool                `json:"available"`
		Data      []models.ScoreCount `json:"data"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sec))
	require.True(t, sec.Available)
	assert.Equal(t, []models.ScoreCount{
		{Score: 1, Count: 1},
		{Score: 4, Count: 1},
		{Score: 5, Count: 1},
	}, sec.Data)
}

func TestHandleGeoSample_Unavailable(t *testing.T) {
	cfg := config.DatasetConfig{
		OrdersFile:      writeFile(t, "orders.csv", testOrdersCSV),
		GeolocationFile: filepath.Join(t.TempDir(), "missing-geo.csv"),
		GeoSampleSize:   1000,
		TopCategories:   10,
	}
	h := NewAPIHandlers(dataset.NewStore(testLogger()), cfg, testLogger())

	rec, env := doRequest(t, h.HandleGeoSample, "/api/geo-sample")

	assert.Equal(t, http.StatusOK, rec.Code)
	var sec section
	require.NoError(t, json.Unmarshal(env.Data, &sec))
	assert.False(t, sec.Available)
}

func TestHandleGeoSample(t *testing.T) {
	h := newTestHandlers(t, testOrdersCSV)

	_, env := doRequest(t, h.HandleGeoSample, "/api/geo-sample")

	var sec struct {
		Available bool              `json:"available"`
		Data      []models.GeoPoint `json:"data"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sec))
	require.True(t, sec.Available)
	assert.Len(t, sec.Data, 2)
}

func TestHandleCategories(t *testing.T) {
	h := newTestHandlers(t, testOrdersCSV)

	_, env := doRequest(t, h.HandleCategories, "/api/categories")

	var sec struct {
		Available bool     `json:"available"`
		Data      []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sec))
	assert.Equal(t, []string{"books", "toys"}, sec.Data)
}

func TestHandleMonthlyVolume(t *testing.T) {
	h := newTestHandlers(t, testOrdersCSV)

	_, env := doRequest(t, h.HandleMonthlyVolume, "/api/monthly-volume")

	var data []models.MonthlyVolume
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, []models.MonthlyVolume{
		{Month: "2018-01", Orders: 1},
		{Month: "2018-02", Orders: 2},
	}, data)
}

func TestHandleStatusDistribution(t *testing.T) {
	h := newTestHandlers(t, testOrdersCSV)

	_, env := doRequest(t, h.HandleStatusDistribution, "/api/status-distribution")

	var data []models.StatusCount
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, []models.StatusCount{
		{Status: "delivered", Count: 2},
		{Status: "canceled", Count: 1},
	}, data)
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandlers(t, testOrdersCSV)

	rec, env := doRequest(t, h.HandleHealth, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}
