package report

import (
	"math/rand"
	"slices"
	"strings"
	"unicode"

	"ecom-dashboard/internal/models"
)

const minWordLen = 3

// ReviewWordFrequencies tokenizes the review comments of the view and
// returns the n most frequent lowercase words, descending by count with ties
// broken by first encounter. Tokens shorter than three runes are skipped.
// The renderer turns this into the word cloud; this side only counts.
func ReviewWordFrequencies(view []models.Order, n int) []models.WordCount {
	if n <= 0 {
		n = DefaultTopN
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	position := 0
	for _, o := range view {
		if o.ReviewComment == "" {
			continue
		}
		for _, word := range tokenize(o.ReviewComment) {
			if _, ok := counts[word]; !ok {
				firstSeen[word] = position
			}
			counts[word]++
			position++
		}
	}

	result := make([]models.WordCount, 0, len(counts))
	for word, count := range counts {
		result = append(result, models.WordCount{Word: word, Count: count})
	}
	slices.SortFunc(result, func(a, b models.WordCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return firstSeen[a.Word] - firstSeen[b.Word]
	})

	if len(result) > n {
		result = result[:n]
	}
	return result
}

func tokenize(comment string) []string {
	fields := strings.FieldsFunc(strings.ToLower(comment), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	words := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= minWordLen {
			words = append(words, f)
		}
	}
	return words
}

// SampleGeoPoints returns at most n points drawn without replacement. The
// sample is seeded so the same inputs always map the same points, which keeps
// responses reproducible across re-renders.
func SampleGeoPoints(points []models.GeoPoint, n int, seed int64) []models.GeoPoint {
	if n <= 0 || len(points) == 0 {
		return nil
	}
	if len(points) <= n {
		return slices.Clone(points)
	}

	rng := rand.New(rand.NewSource(seed))
	sample := make([]models.GeoPoint, 0, n)
	for _, idx := range rng.Perm(len(points))[:n] {
		sample = append(sample, points[idx])
	}
	return sample
}
