package models

import "time"

// Order is one row of the orders dataset. The dataset carries one row per
// order-item, so OrderID is not unique across rows; order counts always mean
// distinct OrderID.
type Order struct {
	OrderID           string
	CustomerID        string
	PurchaseTimestamp time.Time
	Status            string
	ReviewScore       int
	HasReviewScore    bool // the review_score cell was present and parseable
	ReviewComment     string
	Category          string
}

// GeoPoint is a customer location used by the map section.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DateRange is an inclusive [Start, End] filter bound. A range with either
// end unset is treated as unbounded for that dimension, so partially-edited
// picker state filters nothing.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Bounded reports whether both ends are set and ordered. Only bounded ranges
// participate in filtering.
func (dr DateRange) Bounded() bool {
	return !dr.Start.IsZero() && !dr.End.IsZero() && !dr.End.Before(dr.Start)
}

// Contains reports whether t falls inside the range, bounds inclusive.
// An unbounded range contains everything.
func (dr DateRange) Contains(t time.Time) bool {
	if !dr.Bounded() {
		return true
	}
	return !t.Before(dr.Start) && !t.After(dr.End)
}

type MonthlyVolume struct {
	Month  string `json:"month"` // calendar month, "2006-01"
	Orders int    `json:"orders"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type ScoreCount struct {
	Score int `json:"score"`
	Count int `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Summary backs the metric widgets at the top of the dashboard.
type Summary struct {
	Orders     int       `json:"orders"`
	Customers  int       `json:"customers"`
	FirstOrder time.Time `json:"first_order"`
	LastOrder  time.Time `json:"last_order"`
}
