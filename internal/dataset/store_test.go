package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecom-dashboard/internal/errors"
)

func TestStore_WriteOnce(t *testing.T) {
	path := writeFile(t, "orders.csv", ordersCSV)
	store := NewStore(testLogger())

	first, err := store.Orders(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, first.Orders, 4)

	// mutating the file afterwards must not be observable: the cache is
	// keyed by path with single-assignment semantics
	require.NoError(t, os.WriteFile(path, []byte("order_id,customer_id,order_purchase_timestamp,order_status\n"), 0o644))

	second, err := store.Orders(context.Background(), path)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Len(t, second.Orders, 4)
}

func TestStore_MissingOrdersResource(t *testing.T) {
	store := NewStore(testLogger())

	_, err := store.Orders(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.CodeMissingResource, appErr.Code)
}

func TestStore_Warm(t *testing.T) {
	ordersPath := writeFile(t, "orders.csv", ordersCSV)
	geoPath := writeFile(t, "geo.csv", "geolocation_lat,geolocation_lng\n-23.5,-46.6\n")

	store := NewStore(testLogger())
	require.NoError(t, store.Warm(context.Background(), ordersPath, geoPath))

	ds, err := store.Orders(context.Background(), ordersPath)
	require.NoError(t, err)
	assert.Len(t, ds.Orders, 4)

	points, err := store.Geolocation(context.Background(), geoPath)
	require.NoError(t, err)
	assert.Len(t, points, 1)
}

func TestStore_WarmMissingOrdersIsFatal(t *testing.T) {
	store := NewStore(testLogger())

	err := store.Warm(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), "")
	assert.Error(t, err)
}

func TestStore_WarmMissingGeolocationIsNotFatal(t *testing.T) {
	ordersPath := writeFile(t, "orders.csv", ordersCSV)
	store := NewStore(testLogger())

	err := store.Warm(context.Background(), ordersPath, filepath.Join(t.TempDir(), "missing-geo.csv"))
	assert.NoError(t, err)
}
