package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"ecom-dashboard/internal/errors"
	"ecom-dashboard/internal/models"
)

const dateLayout = "2006-01-02"

// parseFilter reads the sidebar state from query parameters: start and end
// (YYYY-MM-DD, both required for the range to bind) and categories
// (comma-separated). A range with only one end set stays unbounded, matching
// a picker mid-edit. Malformed dates are a validation error, not a no-op.
func parseFilter(r *http.Request) (models.DateRange, []string, error) {
	var dr models.DateRange

	if raw := r.URL.Query().Get("start"); raw != "" {
		start, err := time.Parse(dateLayout, raw)
		if err != nil {
			return dr, nil, errors.BadRequestWrap(err, "invalid start date, want YYYY-MM-DD")
		}
		dr.Start = start
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		end, err := time.Parse(dateLayout, raw)
		if err != nil {
			return dr, nil, errors.BadRequestWrap(err, "invalid end date, want YYYY-MM-DD")
		}
		// the end date is inclusive for the whole day
		dr.End = end.Add(24*time.Hour - time.Nanosecond)
	}
	if dr.Start.IsZero() != dr.End.IsZero() {
		// partial range during interactive editing filters nothing
		dr = models.DateRange{}
	}
	if !dr.Start.IsZero() && dr.End.Before(dr.Start) {
		return dr, nil, errors.BadRequest("end date precedes start date")
	}

	var categories []string
	if raw := r.URL.Query().Get("categories"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				categories = append(categories, c)
			}
		}
	}

	return dr, categories, nil
}

// parseTopN reads the n parameter, falling back to def when absent or
// out of range.
func parseTopN(r *http.Request, def int) int {
	raw := r.URL.Query().Get("n")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
