package handlers

import (
	"net/http"
	"time"

	"ecom-dashboard/internal/errors"
	"ecom-dashboard/internal/export"
	"ecom-dashboard/internal/metrics"
	"ecom-dashboard/internal/report"
)

// Download column names follow the original export button.
const (
	exportLabelCol = "product_category"
	exportCountCol = "purchase_count"
)

// HandleExportTopCategoriesCSV serves the top-categories aggregate of the
// active filter state as a CSV download.
func (h *APIHandlers) HandleExportTopCategoriesCSV(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	view, ds, err := h.view(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !ds.Columns.Category {
		h.fail(w, r, errors.OptionalFeature("product category labels"))
		return
	}

	entries := export.CategoryEntries(report.TopCategories(view, parseTopN(r, h.cfg.TopCategories)))
	text, err := export.DelimitedText(entries, exportLabelCol, exportCountCol)
	if err != nil {
		h.fail(w, r, errors.InternalWrap(err, "failed to serialize export"))
		return
	}

	metrics.ObserveRenderCycle("export_csv", time.Since(start))
	metrics.CountExport("csv")

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="top_categories.csv"`)
	w.Write([]byte(text))
}

// HandleExportTopCategoriesXLSX serves the same table as an XLSX workbook.
func (h *APIHandlers) HandleExportTopCategoriesXLSX(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	view, ds, err := h.view(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !ds.Columns.Category {
		h.fail(w, r, errors.OptionalFeature("product category labels"))
		return
	}

	entries := export.CategoryEntries(report.TopCategories(view, parseTopN(r, h.cfg.TopCategories)))
	workbook, err := export.Workbook(entries, exportLabelCol, exportCountCol)
	if err != nil {
		h.fail(w, r, errors.InternalWrap(err, "failed to build workbook"))
		return
	}
	defer workbook.Close()

	metrics.ObserveRenderCycle("export_xlsx", time.Since(start))
	metrics.CountExport("xlsx")

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="top_categories.xlsx"`)
	if err := workbook.Write(w); err != nil {
		h.logger.Error("write workbook", "error", err)
	}
}
