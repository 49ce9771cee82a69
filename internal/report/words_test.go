package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecom-dashboard/internal/models"
)

func TestReviewWordFrequencies(t *testing.T) {
	view := []models.Order{
		{OrderID: "o1", ReviewComment: "Great product, great delivery!"},
		{OrderID: "o2", ReviewComment: "great price"},
		{OrderID: "o3"}, // no comment
	}

	got := ReviewWordFrequencies(view, 10)

	require.NotEmpty(t, got)
	assert.Equal(t, models.WordCount{Word: "great", Count: 3}, got[0])

	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count)
	}
}

func TestReviewWordFrequencies_SkipsShortTokens(t *testing.T) {
	view := []models.Order{
		{OrderID: "o1", ReviewComment: "it is ok, arrived on time"},
	}

	got := ReviewWordFrequencies(view, 10)

	for _, wc := range got {
		assert.GreaterOrEqual(t, len(wc.Word), minWordLen)
	}
}

func TestReviewWordFrequencies_Truncates(t *testing.T) {
	view := []models.Order{
		{OrderID: "o1", ReviewComment: "alpha bravo charlie delta echo foxtrot"},
	}

	got := ReviewWordFrequencies(view, 3)
	assert.Len(t, got, 3)
}

func TestSampleGeoPoints(t *testing.T) {
	points := make([]models.GeoPoint, 50)
	for i := range points {
		points[i] = models.GeoPoint{Lat: float64(i), Lng: float64(-i)}
	}

	sample := SampleGeoPoints(points, 10, 42)
	assert.Len(t, sample, 10)

	// seeded sampling is reproducible
	again := SampleGeoPoints(points, 10, 42)
	assert.Equal(t, sample, again)

	// fewer points than requested returns them all
	small := SampleGeoPoints(points[:3], 10, 42)
	assert.Len(t, small, 3)

	assert.Nil(t, SampleGeoPoints(nil, 10, 42))
	assert.Nil(t, SampleGeoPoints(points, 0, 42))
}
