package export

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"ecom-dashboard/internal/models"
)

// Entry is one row of a two-column (label, count) aggregate.
type Entry struct {
	Label string
	Count int
}

// CategoryEntries adapts a top-categories aggregate for export.
func CategoryEntries(counts []models.CategoryCount) []Entry {
	entries := make([]Entry, 0, len(counts))
	for _, c := range counts {
		entries = append(entries, Entry{Label: c.Category, Count: c.Count})
	}
	return entries
}

// DelimitedText serializes a two-column aggregate as UTF-8 comma-delimited
// text: a header row with the caller-supplied column names, then one row per
// entry in the given order. Embedded delimiters get standard CSV quoting.
// Identical input always produces byte-identical output.
func DelimitedText(entries []Entry, labelCol, countCol string) (string, error) {
	if labelCol == "" || countCol == "" {
		return "", fmt.Errorf("column names must not be empty")
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{labelCol, countCol}); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for i, e := range entries {
		if err := w.Write([]string{e.Label, strconv.Itoa(e.Count)}); err != nil {
			return "", fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
