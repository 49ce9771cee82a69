package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"ecom-dashboard/internal/config"
)

func TestHandleDashboard(t *testing.T) {
	cfg := config.DatasetConfig{TopCategories: 10}
	h := NewPageHandlers(cfg, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.HandleDashboard(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "E-Commerce Public Dataset Dashboard")
	assert.Contains(t, body, "Top 10 Product Categories")
	// no logo configured, so the page must not reference one
	assert.NotContains(t, body, "/assets/logo.png")
}

func TestHandleDashboard_WithLogo(t *testing.T) {
	logo := writeFile(t, "logo.png", "not-really-a-png")
	cfg := config.DatasetConfig{TopCategories: 10, LogoFile: logo}
	h := NewPageHandlers(cfg, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.HandleDashboard(rec, req)

	assert.Contains(t, rec.Body.String(), "/assets/logo.png")
}

func TestHandleLogo_AbsentIsNotFound(t *testing.T) {
	cfg := config.DatasetConfig{LogoFile: filepath.Join(t.TempDir(), "missing.png")}
	h := NewPageHandlers(cfg, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/assets/logo.png", nil)
	rec := httptest.NewRecorder()
	h.HandleLogo(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
