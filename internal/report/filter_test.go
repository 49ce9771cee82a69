package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecom-dashboard/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleOrders() []models.Order {
	return []models.Order{
		{OrderID: "o1", CustomerID: "c1", PurchaseTimestamp: day(2018, 1, 5), Status: "delivered", Category: "toys"},
		{OrderID: "o2", CustomerID: "c2", PurchaseTimestamp: day(2018, 2, 10), Status: "delivered", Category: "books"},
		{OrderID: "o3", CustomerID: "c3", PurchaseTimestamp: day(2018, 2, 20), Status: "canceled", Category: "toys"},
		{OrderID: "o4", CustomerID: "c1", PurchaseTimestamp: day(2018, 3, 1), Status: "shipped", Category: "garden"},
	}
}

func TestFilter_DateRangeInclusive(t *testing.T) {
	orders := sampleOrders()
	dr := models.DateRange{Start: day(2018, 1, 5), End: day(2018, 2, 10)}

	view := Filter(orders, dr, nil)

	require.Len(t, view, 2)
	for _, o := range view {
		assert.False(t, o.PurchaseTimestamp.Before(dr.Start))
		assert.False(t, o.PurchaseTimestamp.After(dr.End))
	}
	assert.LessOrEqual(t, len(view), len(orders))
}

func TestFilter_PartialRangeIsNoOp(t *testing.T) {
	orders := sampleOrders()

	tests := []struct {
		name string
		dr   models.DateRange
	}{
		{"unset range", models.DateRange{}},
		{"start only", models.DateRange{Start: day(2018, 2, 1)}},
		{"end only", models.DateRange{End: day(2018, 2, 1)}},
		{"inverted range", models.DateRange{Start: day(2018, 3, 1), End: day(2018, 1, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Filter(orders, tt.dr, nil)
			assert.Len(t, view, len(orders))
		})
	}
}

func TestFilter_CategorySet(t *testing.T) {
	orders := sampleOrders()

	view := Filter(orders, models.DateRange{}, []string{"toys"})
	require.Len(t, view, 2)
	for _, o := range view {
		assert.Equal(t, "toys", o.Category)
	}

	// empty category set filters nothing
	view = Filter(orders, models.DateRange{}, nil)
	assert.Len(t, view, len(orders))

	// unknown category yields a valid empty view
	view = Filter(orders, models.DateRange{}, []string{"does-not-exist"})
	assert.Empty(t, view)
}

func TestFilter_Idempotent(t *testing.T) {
	orders := sampleOrders()
	dr := models.DateRange{Start: day(2018, 1, 1), End: day(2018, 2, 28)}

	first := Filter(orders, dr, []string{"toys", "books"})
	second := Filter(orders, dr, []string{"toys", "books"})

	assert.Equal(t, first, second)
	// the source table is untouched
	assert.Equal(t, sampleOrders(), orders)
}

func TestFilter_EmptyInput(t *testing.T) {
	view := Filter(nil, models.DateRange{Start: day(2018, 1, 1), End: day(2018, 12, 31)}, nil)
	assert.Empty(t, view)
}

func TestCategories(t *testing.T) {
	orders := sampleOrders()
	orders = append(orders, models.Order{OrderID: "o5", PurchaseTimestamp: day(2018, 4, 1)}) // no category

	assert.Equal(t, []string{"books", "garden", "toys"}, Categories(orders))
}
