package dataset

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ecom-dashboard/internal/errors"
	"ecom-dashboard/internal/models"
	"ecom-dashboard/internal/observability"
)

const ctxCheckInterval = 10000 // rows between context checks

// Columns records which optional columns the loaded resource carried, so
// handlers can disable the sections that depend on them.
type Columns struct {
	ReviewScore   bool
	ReviewComment bool
	Category      bool
}

// Dataset is the immutable in-memory orders table. It is built once per
// resource path and never mutated afterwards; every filter produces a fresh
// derived slice.
type Dataset struct {
	Orders      []models.Order
	Columns     Columns
	SkippedRows int
}

// Load reads the orders resource at path into memory. The path may point at a
// plain CSV file or at a zip archive whose first .csv entry is used. A
// missing or unreadable resource is a MISSING_RESOURCE error; a readable
// resource without the required columns is a SCHEMA_ERROR. Rows with an
// unparseable purchase timestamp are skipped and counted.
func Load(ctx context.Context, path string, logger *slog.Logger) (*Dataset, error) {
	ctx, span := observability.StartLoadSpan(ctx, path)
	defer span.Finish()

	r, closeFn, err := openResource(path)
	if err != nil {
		span.SetError(err)
		return nil, errors.MissingResource(path, err)
	}
	defer closeFn()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, errors.MissingResource(path, fmt.Errorf("read header: %w", err))
	}
	stripBOM(headers)

	required := map[string]int{
		colOrderID:           findColumn(headers, []string{colOrderID}),
		colCustomerID:        findColumn(headers, []string{colCustomerID}),
		colPurchaseTimestamp: findColumn(headers, []string{colPurchaseTimestamp}),
		colOrderStatus:       findColumn(headers, []string{colOrderStatus}),
	}
	for name, idx := range required {
		if idx < 0 {
			return nil, errors.Schema(name)
		}
	}

	scoreIdx := findColumn(headers, reviewScoreCandidates)
	commentIdx := findColumn(headers, reviewCommentCandidates)
	categoryIdx := findColumn(headers, categoryCandidates)

	ds := &Dataset{
		Columns: Columns{
			ReviewScore:   scoreIdx >= 0,
			ReviewComment: commentIdx >= 0,
			Category:      categoryIdx >= 0,
		},
	}

	start := time.Now()
	rows := 0
	for {
		if rows%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			ds.SkippedRows++
			continue
		}
		rows++

		ts, ok := parseTimestamp(field(record, required[colPurchaseTimestamp]))
		if !ok {
			ds.SkippedRows++
			continue
		}

		order := models.Order{
			OrderID:           field(record, required[colOrderID]),
			CustomerID:        field(record, required[colCustomerID]),
			PurchaseTimestamp: ts,
			Status:            field(record, required[colOrderStatus]),
		}
		if scoreIdx >= 0 {
			if score, err := strconv.Atoi(field(record, scoreIdx)); err == nil {
				order.ReviewScore = score
				order.HasReviewScore = true
			}
		}
		if commentIdx >= 0 {
			order.ReviewComment = field(record, commentIdx)
		}
		if categoryIdx >= 0 {
			order.Category = field(record, categoryIdx)
		}

		ds.Orders = append(ds.Orders, order)
	}

	logger.Info("orders dataset loaded",
		"path", path,
		"rows", len(ds.Orders),
		"skipped", ds.SkippedRows,
		"duration", time.Since(start),
	)

	return ds, nil
}

// LoadGeolocation reads the optional geolocation resource. Rows with missing
// or unparseable coordinates are dropped before the map ever sees them.
func LoadGeolocation(ctx context.Context, path string, logger *slog.Logger) ([]models.GeoPoint, error) {
	ctx, span := observability.StartLoadSpan(ctx, path)
	defer span.Finish()

	r, closeFn, err := openResource(path)
	if err != nil {
		span.SetError(err)
		return nil, errors.MissingResource(path, err)
	}
	defer closeFn()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, errors.MissingResource(path, fmt.Errorf("read header: %w", err))
	}
	stripBOM(headers)

	latIdx := findColumnFuzzy(headers, latCandidates, latSubstrings)
	lngIdx := findColumnFuzzy(headers, lngCandidates, lngSubstrings)
	if latIdx < 0 || lngIdx < 0 {
		return nil, errors.OptionalFeature("geolocation coordinates")
	}

	var points []models.GeoPoint
	dropped := 0
	rows := 0
	for {
		if rows%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			dropped++
			continue
		}
		rows++

		lat, latErr := strconv.ParseFloat(field(record, latIdx), 64)
		lng, lngErr := strconv.ParseFloat(field(record, lngIdx), 64)
		if latErr != nil || lngErr != nil {
			dropped++
			continue
		}
		points = append(points, models.GeoPoint{Lat: lat, Lng: lng})
	}

	logger.Info("geolocation dataset loaded",
		"path", path,
		"points", len(points),
		"dropped", dropped,
	)

	return points, nil
}

// openResource opens path for reading. Zip archives are unpacked in memory:
// the first .csv entry wins.
func openResource(path string) (io.Reader, func() error, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return openZipCSV(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}

func openZipCSV(path string) (io.Reader, func() error, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, err
	}

	for _, entry := range archive.File {
		if !strings.EqualFold(filepath.Ext(entry.Name), ".csv") {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			archive.Close()
			return nil, nil, err
		}
		closeFn := func() error {
			rc.Close()
			return archive.Close()
		}
		return rc, closeFn, nil
	}

	archive.Close()
	return nil, nil, fmt.Errorf("no csv entry in archive %s", path)
}

func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func stripBOM(headers []string) {
	if len(headers) > 0 {
		headers[0] = string(bytes.TrimPrefix([]byte(headers[0]), []byte{0xEF, 0xBB, 0xBF}))
	}
}
