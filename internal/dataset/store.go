package dataset

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"ecom-dashboard/internal/models"
)

// Store is the process-scoped dataset cache, keyed by resource path with
// single-assignment semantics: the first load for a path wins and later
// lookups never touch the filesystem again. UI re-renders hit the cache only.
type Store struct {
	mu     sync.RWMutex
	orders map[string]*Dataset
	geo    map[string][]models.GeoPoint
	logger *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		orders: make(map[string]*Dataset),
		geo:    make(map[string][]models.GeoPoint),
		logger: logger,
	}
}

// Orders returns the cached dataset for path, loading it on first use.
func (s *Store) Orders(ctx context.Context, path string) (*Dataset, error) {
	s.mu.RLock()
	ds, ok := s.orders[path]
	s.mu.RUnlock()
	if ok {
		return ds, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ds, ok := s.orders[path]; ok {
		return ds, nil
	}

	ds, err := Load(ctx, path, s.logger)
	if err != nil {
		return nil, err
	}
	s.orders[path] = ds
	return ds, nil
}

// Geolocation returns the cached geolocation points for path, loading them on
// first use. The empty-path case means the map section was never configured.
func (s *Store) Geolocation(ctx context.Context, path string) ([]models.GeoPoint, error) {
	s.mu.RLock()
	points, ok := s.geo[path]
	s.mu.RUnlock()
	if ok {
		return points, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if points, ok := s.geo[path]; ok {
		return points, nil
	}

	points, err := LoadGeolocation(ctx, path, s.logger)
	if err != nil {
		return nil, err
	}
	s.geo[path] = points
	return points, nil
}

// Warm loads both resources concurrently at startup. A failing orders load is
// fatal; a failing geolocation load only logs, since the map section degrades
// to a notice.
func (s *Store) Warm(ctx context.Context, ordersPath, geoPath string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := s.Orders(ctx, ordersPath)
		return err
	})

	if geoPath != "" {
		g.Go(func() error {
			if _, err := s.Geolocation(ctx, geoPath); err != nil {
				s.logger.Warn("geolocation resource unavailable, map section disabled",
					"path", geoPath,
					"error", err,
				)
			}
			return nil
		})
	}

	return g.Wait()
}
