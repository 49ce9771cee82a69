package report

import (
	"slices"

	"ecom-dashboard/internal/models"
)

// Filter derives a read-only view of orders: rows inside the inclusive date
// range whose category is in categories. An unbounded (or partially edited)
// range is a no-op for the date dimension; an empty category set is a no-op
// for the category dimension. The input slice is never mutated and the
// result is always a fresh slice, so repeated calls with the same arguments
// yield identical views. An empty view is a valid result.
func Filter(orders []models.Order, dr models.DateRange, categories []string) []models.Order {
	var categorySet map[string]struct{}
	if len(categories) > 0 {
		categorySet = make(map[string]struct{}, len(categories))
		for _, c := range categories {
			categorySet[c] = struct{}{}
		}
	}

	view := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if !dr.Contains(o.PurchaseTimestamp) {
			continue
		}
		if categorySet != nil {
			if _, ok := categorySet[o.Category]; !ok {
				continue
			}
		}
		view = append(view, o)
	}
	return view
}

// Categories returns the distinct non-empty category labels of orders in
// ascending label order, for the multi-select filter control.
func Categories(orders []models.Order) []string {
	seen := make(map[string]struct{})
	var labels []string
	for _, o := range orders {
		if o.Category == "" {
			continue
		}
		if _, ok := seen[o.Category]; ok {
			continue
		}
		seen[o.Category] = struct{}{}
		labels = append(labels, o.Category)
	}
	slices.Sort(labels)
	return labels
}
