package dataset

import "strings"

// Column resolution is deterministic: exact candidate names are tried in
// order, then substring fallbacks, and the first match wins. The fallback
// keeps the loader working against exports that rename headers, at the cost
// of the usual substring false positives for unknown schemas.
var (
	reviewScoreCandidates   = []string{"review_score"}
	reviewCommentCandidates = []string{"review_comment_message", "review_comment"}
	categoryCandidates      = []string{"product_category_name_english", "product_category_name", "product_category"}

	latCandidates    = []string{"geolocation_lat", "lat", "latitude"}
	latSubstrings    = []string{"lat"}
	lngCandidates    = []string{"geolocation_lng", "lng", "lon", "longitude"}
	lngSubstrings    = []string{"lng", "lon"}
	timestampLayouts = []string{"2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"}
)

// Required order columns, matched case-insensitively by exact name.
const (
	colOrderID           = "order_id"
	colCustomerID        = "customer_id"
	colPurchaseTimestamp = "order_purchase_timestamp"
	colOrderStatus       = "order_status"
)

// findColumn returns the index of the first header equal (case-insensitively)
// to one of the candidates, or -1.
func findColumn(headers []string, candidates []string) int {
	for _, want := range candidates {
		for i, h := range headers {
			if strings.EqualFold(strings.TrimSpace(h), want) {
				return i
			}
		}
	}
	return -1
}

// findColumnFuzzy tries exact candidates first, then falls back to the first
// header containing one of the substrings.
func findColumnFuzzy(headers []string, candidates, substrings []string) int {
	if idx := findColumn(headers, candidates); idx >= 0 {
		return idx
	}
	for _, sub := range substrings {
		for i, h := range headers {
			if strings.Contains(strings.ToLower(h), sub) {
				return i
			}
		}
	}
	return -1
}
