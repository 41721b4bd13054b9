package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteStore_PutGetRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	raw := rawFixture("suv-1")
	raw.Features = []string{"Moonroof", "Heated Seats"}

	n, err := s.Put(ctx, []RawVehicle{raw})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.Get(ctx, "suv-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, raw.Make, got.Make)
	assert.Equal(t, raw.Features, got.Features)
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := newTestSQLite(t)

	got, err := s.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_PutIsUpsert(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	raw := rawFixture("suv-2")
	_, err := s.Put(ctx, []RawVehicle{raw})
	require.NoError(t, err)

	raw.Trim = "Limited"
	_, err = s.Put(ctx, []RawVehicle{raw})
	require.NoError(t, err)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := s.Get(ctx, "suv-2")
	require.NoError(t, err)
	assert.Equal(t, "Limited", got.Trim)
}

func TestSQLiteStore_ListFilters(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	truck := rawFixture("truck-1")
	truck.Type = string(TypeTrucks)
	truck.Price.BaseMSRP = "$52,000"
	truck.Year = 2022.0

	cheap := rawFixture("car-1")
	cheap.Type = string(TypeCarsMinivans)
	cheap.Price.BaseMSRP = 23000.0

	suv := rawFixture("suv-3")
	suv.Price.BaseMSRP = 36000.0

	_, err := s.Put(ctx, []RawVehicle{truck, cheap, suv})
	require.NoError(t, err)

	t.Run("by type", func(t *testing.T) {
		got, err := s.List(ctx, Filter{Type: string(TypeTrucks)})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "truck-1", got[0].ID)
	})

	t.Run("by price band", func(t *testing.T) {
		got, err := s.List(ctx, Filter{MinPrice: ptr(25000.0), MaxPrice: ptr(40000.0)})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "suv-3", got[0].ID)
	})

	t.Run("stringy msrp is indexed numerically", func(t *testing.T) {
		got, err := s.List(ctx, Filter{MinPrice: ptr(50000.0)})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "truck-1", got[0].ID)
	})

	t.Run("by year", func(t *testing.T) {
		got, err := s.List(ctx, Filter{Year: 2022})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "truck-1", got[0].ID)
	})

	t.Run("limit preserves insertion order", func(t *testing.T) {
		got, err := s.List(ctx, Filter{Limit: 2})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "truck-1", got[0].ID)
		assert.Equal(t, "car-1", got[1].ID)
	})
}

func TestSnapshot_NormalizesAndReportsDropped(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	good := rawFixture("ok-1")
	bad := rawFixture("bad-1")
	bad.Price.BaseMSRP = "TBD"

	_, err := s.Put(ctx, []RawVehicle{good, bad})
	require.NoError(t, err)

	vehicles, dropped, err := Snapshot(ctx, s, Filter{})
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "ok-1", vehicles[0].ID)
	require.Len(t, dropped, 1)

	var ierr *IntegrityError
	require.ErrorAs(t, dropped[0], &ierr)
	assert.Equal(t, "price.baseMSRP", ierr.Field)
}
