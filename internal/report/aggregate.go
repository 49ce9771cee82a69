package report

import (
	"slices"
	"strings"

	"ecom-dashboard/internal/models"
)

const DefaultTopN = 10

// MonthlyOrderVolume groups the view by calendar month of the purchase
// timestamp and counts distinct order IDs per month, chronologically ordered
// with no duplicate month keys.
func MonthlyOrderVolume(view []models.Order) []models.MonthlyVolume {
	months := make(map[string]map[string]struct{})
	for _, o := range view {
		month := o.PurchaseTimestamp.Format("2006-01")
		if months[month] == nil {
			months[month] = make(map[string]struct{})
		}
		months[month][o.OrderID] = struct{}{}
	}

	result := make([]models.MonthlyVolume, 0, len(months))
	for month, orders := range months {
		result = append(result, models.MonthlyVolume{Month: month, Orders: len(orders)})
	}
	// "2006-01" keys sort chronologically as strings
	slices.SortFunc(result, func(a, b models.MonthlyVolume) int {
		return strings.Compare(a.Month, b.Month)
	})
	return result
}

// StatusDistribution counts view rows per order status, descending by count
// with ties broken by first encounter.
func StatusDistribution(view []models.Order) []models.StatusCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, o := range view {
		if _, ok := counts[o.Status]; !ok {
			firstSeen[o.Status] = i
		}
		counts[o.Status]++
	}

	result := make([]models.StatusCount, 0, len(counts))
	for status, count := range counts {
		result = append(result, models.StatusCount{Status: status, Count: count})
	}
	slices.SortFunc(result, func(a, b models.StatusCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return firstSeen[a.Status] - firstSeen[b.Status]
	})
	return result
}

// ReviewScoreDistribution counts view rows per review score, ascending by
// score value. Scores outside 1..5 come straight from the dataset and are
// preserved as-is. Rows without a score are excluded; a view with no scored
// rows yields an empty slice, and the caller shows a notice instead.
func ReviewScoreDistribution(view []models.Order) []models.ScoreCount {
	counts := make(map[int]int)
	for _, o := range view {
		if !o.HasReviewScore {
			continue
		}
		counts[o.ReviewScore]++
	}

	result := make([]models.ScoreCount, 0, len(counts))
	for score, count := range counts {
		result = append(result, models.ScoreCount{Score: score, Count: count})
	}
	slices.SortFunc(result, func(a, b models.ScoreCount) int {
		return a.Score - b.Score
	})
	return result
}

// TopCategories counts view rows per category label and returns at most n
// entries, descending by count with ties broken by first-encountered label.
// Rows without a category are excluded. n <= 0 falls back to DefaultTopN.
func TopCategories(view []models.Order, n int) []models.CategoryCount {
	if n <= 0 {
		n = DefaultTopN
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, o := range view {
		if o.Category == "" {
			continue
		}
		if _, ok := counts[o.Category]; !ok {
			firstSeen[o.Category] = i
		}
		counts[o.Category]++
	}

	result := make([]models.CategoryCount, 0, len(counts))
	for category, count := range counts {
		result = append(result, models.CategoryCount{Category: category, Count: count})
	}
	slices.SortFunc(result, func(a, b models.CategoryCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return firstSeen[a.Category] - firstSeen[b.Category]
	})

	if len(result) > n {
		result = result[:n]
	}
	return result
}

// Summarize computes the metric widgets: distinct orders, distinct customers,
// and the first/last purchase timestamps of the view.
func Summarize(view []models.Order) models.Summary {
	orders := make(map[string]struct{})
	customers := make(map[string]struct{})

	var summary models.Summary
	for _, o := range view {
		orders[o.OrderID] = struct{}{}
		customers[o.CustomerID] = struct{}{}

		if summary.FirstOrder.IsZero() || o.PurchaseTimestamp.Before(summary.FirstOrder) {
			summary.FirstOrder = o.PurchaseTimestamp
		}
		if o.PurchaseTimestamp.After(summary.LastOrder) {
			summary.LastOrder = o.PurchaseTimestamp
		}
	}

	summary.Orders = len(orders)
	summary.Customers = len(customers)
	return summary
}
