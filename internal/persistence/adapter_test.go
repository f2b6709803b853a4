package persistence_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/rental-checkout/internal/cache"
	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
	"github.com/aaravmahajanofficial/rental-checkout/internal/persistence"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storageKey = "eventRentalCart:session-1"

var fixedNow = time.Date(2025, 1, 5, 15, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAdapter(c cache.Cache, now time.Time) *persistence.Adapter {
	return persistence.New(c, storageKey,
		persistence.WithClock(func() time.Time { return now }),
		persistence.WithLogger(discardLogger()),
	)
}

func sampleSnapshot() *models.CartSnapshot {
	guests := 40

	return &models.CartSnapshot{
		Items: []models.CartLineItem{
			{
				CartID:       "line-1",
				ID:           "tent-1",
				Name:         "Tent",
				Price:        100,
				Quantity:     2,
				Duration:     3,
				BookingDates: models.DateRange{StartDate: "2025-01-10", EndDate: "2025-01-13", StartTime: "09:00", EndTime: "17:00", MultiDay: true},
				OrderMode:    models.OrderModeOrderByDate,
				AddedAt:      fixedNow,
			},
		},
		OrderMode:     models.OrderModeOrderByDate,
		SelectedDates: models.DateRange{StartDate: "2025-01-10", EndDate: "2025-01-13", StartTime: "09:00", EndTime: "17:00", MultiDay: true},
		CustomerInfo: models.CustomerInfo{
			Name:         "Ada Lovelace",
			Email:        "ada@example.com",
			Phone:        "+1 555 010 9999",
			EventType:    "wedding",
			Guests:       &guests,
			Delivery:     models.OptionYes,
			Installation: models.OptionNo,
		},
		Subtotal:    600,
		Tax:         45,
		TotalAmount: 645,
		Step:        2,
	}
}

func load(t *testing.T, adapter *persistence.Adapter) *models.CartSnapshot {
	t.Helper()

	snapshot, err := adapter.Load(t.Context())
	require.NoError(t, err)

	return snapshot
}

// flakyReadCache fails every read and counts deletes.
type flakyReadCache struct {
	cache.Cache
	err     error
	deletes int
}

func (f *flakyReadCache) Get(context.Context, string, any) (bool, error) {
	return false, f.err
}

func (f *flakyReadCache) Delete(ctx context.Context, key string) error {
	f.deletes++
	return f.Cache.Delete(ctx, key)
}

type failingCache struct {
	cache.Cache
	err error
}

func (f *failingCache) Set(context.Context, string, any, time.Duration) error {
	return f.err
}

func (f *failingCache) Get(context.Context, string, any) (bool, error) {
	return false, f.err
}

func (f *failingCache) Delete(context.Context, string) error {
	return f.err
}

func TestAdapterRoundTrip(t *testing.T) {
	t.Run("Success - Memory Cache", func(t *testing.T) {
		// Arrange
		adapter := newAdapter(cache.NewMemoryCache(0), fixedNow)
		snapshot := sampleSnapshot()

		// Act
		saved := adapter.Save(t.Context(), snapshot)
		loaded := load(t, adapter)

		// Assert
		require.True(t, saved)
		require.NotNil(t, loaded)
		assert.Equal(t, snapshot.Items, loaded.Items)
		assert.Equal(t, snapshot.OrderMode, loaded.OrderMode)
		assert.Equal(t, snapshot.SelectedDates, loaded.SelectedDates)
		assert.Equal(t, snapshot.CustomerInfo, loaded.CustomerInfo)
		assert.Equal(t, snapshot.Subtotal, loaded.Subtotal)
		assert.Equal(t, snapshot.Tax, loaded.Tax)
		assert.Equal(t, snapshot.TotalAmount, loaded.TotalAmount)
		assert.Equal(t, 2, loaded.Step)
		assert.Equal(t, models.SnapshotVersion, loaded.Version)
		assert.Equal(t, "2025-01-05T15:30:00Z", loaded.Timestamp)
		assert.Empty(t, snapshot.Timestamp, "Save should not mutate the caller's snapshot")
	})

	t.Run("Success - Redis", func(t *testing.T) {
		// Arrange
		srv := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
		adapter := newAdapter(cache.NewRedisCache(client, time.Hour), fixedNow)

		// Act
		require.True(t, adapter.Save(t.Context(), sampleSnapshot()))
		loaded := load(t, adapter)

		// Assert
		require.NotNil(t, loaded)
		assert.Equal(t, persistence.DefaultMaxAge, srv.TTL(storageKey))
		assert.Equal(t, "Tent", loaded.Items[0].Name)
	})

	t.Run("Success - Within Seven Days", func(t *testing.T) {
		// Arrange
		store := cache.NewMemoryCache(0)
		require.True(t, newAdapter(store, fixedNow).Save(t.Context(), sampleSnapshot()))

		// Act
		loaded := load(t, newAdapter(store, fixedNow.Add(6*24*time.Hour)))

		// Assert
		assert.NotNil(t, loaded)
	})
}

func TestAdapterLoad(t *testing.T) {
	t.Run("Success - Nothing Saved", func(t *testing.T) {
		adapter := newAdapter(cache.NewMemoryCache(0), fixedNow)

		assert.Nil(t, load(t, adapter))
	})

	t.Run("Failure - Record Eight Days Old", func(t *testing.T) {
		// Arrange
		store := cache.NewMemoryCache(0)
		require.True(t, newAdapter(store, fixedNow.Add(-8*24*time.Hour)).Save(t.Context(), sampleSnapshot()))

		adapter := newAdapter(store, fixedNow)

		// Act
		loaded := load(t, adapter)

		// Assert
		assert.Nil(t, loaded)

		var raw map[string]any
		found, err := store.Get(t.Context(), storageKey, &raw)
		require.NoError(t, err)
		assert.False(t, found, "expired record should be removed")
	})

	t.Run("Failure - Missing Required Field", func(t *testing.T) {
		for _, field := range models.RequiredSnapshotFields {
			t.Run(field, func(t *testing.T) {
				// Arrange
				store := cache.NewMemoryCache(0)
				record := map[string]any{
					"items":         []any{},
					"orderMode":     "booking",
					"selectedDates": map[string]any{},
					"customerInfo":  map[string]any{},
					"timestamp":     fixedNow.Format(time.RFC3339),
					"version":       models.SnapshotVersion,
				}
				delete(record, field)
				require.NoError(t, store.Set(t.Context(), storageKey, record, 0))

				// Act
				loaded := load(t, newAdapter(store, fixedNow))

				// Assert
				assert.Nil(t, loaded)

				var raw map[string]any
				found, _ := store.Get(t.Context(), storageKey, &raw)
				assert.False(t, found)
			})
		}
	})

	t.Run("Failure - Null Required Field", func(t *testing.T) {
		store := cache.NewMemoryCache(0)
		require.NoError(t, store.Set(t.Context(), storageKey, map[string]any{
			"items":         nil,
			"orderMode":     "booking",
			"selectedDates": map[string]any{},
			"customerInfo":  map[string]any{},
			"timestamp":     fixedNow.Format(time.RFC3339),
		}, 0))

		assert.Nil(t, load(t, newAdapter(store, fixedNow)))
	})

	t.Run("Failure - Invalid JSON", func(t *testing.T) {
		// Arrange
		srv := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
		adapter := newAdapter(cache.NewRedisCache(client, time.Hour), fixedNow)
		require.NoError(t, srv.Set(storageKey, "{not json"))

		// Act
		loaded := load(t, adapter)

		// Assert
		assert.Nil(t, loaded)
		assert.False(t, srv.Exists(storageKey))
	})

	t.Run("Failure - Not An Object", func(t *testing.T) {
		// Arrange
		srv := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
		adapter := newAdapter(cache.NewRedisCache(client, time.Hour), fixedNow)
		require.NoError(t, srv.Set(storageKey, `[1, 2, 3]`))

		// Act
		loaded := load(t, adapter)

		// Assert
		assert.Nil(t, loaded)
		assert.False(t, srv.Exists(storageKey))
	})

	t.Run("Failure - Unparseable Timestamp", func(t *testing.T) {
		store := cache.NewMemoryCache(0)
		require.NoError(t, store.Set(t.Context(), storageKey, map[string]any{
			"items":         []any{},
			"orderMode":     "booking",
			"selectedDates": map[string]any{},
			"customerInfo":  map[string]any{},
			"timestamp":     "last tuesday",
		}, 0))

		assert.Nil(t, load(t, newAdapter(store, fixedNow)))
	})

	t.Run("Failure - Storage Error", func(t *testing.T) {
		adapter := newAdapter(&failingCache{err: errors.New("connection refused")}, fixedNow)

		loaded, err := adapter.Load(t.Context())

		assert.Nil(t, loaded)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("Failure - Read Timeout Keeps Record", func(t *testing.T) {
		// Arrange
		store := cache.NewMemoryCache(0)
		require.True(t, newAdapter(store, fixedNow).Save(t.Context(), sampleSnapshot()))

		flaky := &flakyReadCache{Cache: store, err: errors.New("i/o timeout")}
		adapter := newAdapter(flaky, fixedNow)

		// Act
		loaded, err := adapter.Load(t.Context())

		// Assert
		assert.Nil(t, loaded)
		require.Error(t, err)
		assert.Zero(t, flaky.deletes)

		restored := load(t, newAdapter(store, fixedNow))
		require.NotNil(t, restored)
		assert.Equal(t, "Tent", restored.Items[0].Name)
	})

	t.Run("Failure - Redis Down Keeps Record", func(t *testing.T) {
		// Arrange
		srv := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
		adapter := newAdapter(cache.NewRedisCache(client, time.Hour), fixedNow)
		require.True(t, adapter.Save(t.Context(), sampleSnapshot()))
		srv.SetError("ERR server unavailable")

		// Act
		loaded, err := adapter.Load(t.Context())

		// Assert
		assert.Nil(t, loaded)
		require.Error(t, err)

		srv.SetError("")
		assert.True(t, srv.Exists(storageKey))
		assert.NotNil(t, load(t, adapter))
	})
}

func TestAdapterSave(t *testing.T) {
	t.Run("Failure - Storage Error", func(t *testing.T) {
		adapter := newAdapter(&failingCache{err: errors.New("quota exceeded")}, fixedNow)

		assert.False(t, adapter.Save(t.Context(), sampleSnapshot()))
	})

	t.Run("Failure - Nil Snapshot", func(t *testing.T) {
		adapter := newAdapter(cache.NewMemoryCache(0), fixedNow)

		assert.False(t, adapter.Save(t.Context(), nil))
	})
}

func TestAdapterClear(t *testing.T) {
	t.Run("Success - Removes Record", func(t *testing.T) {
		// Arrange
		store := cache.NewMemoryCache(0)
		adapter := newAdapter(store, fixedNow)
		require.True(t, adapter.Save(t.Context(), sampleSnapshot()))

		// Act
		adapter.Clear(t.Context())

		// Assert
		assert.Nil(t, load(t, adapter))
	})

	t.Run("Success - Swallows Storage Error", func(t *testing.T) {
		adapter := newAdapter(&failingCache{err: errors.New("connection refused")}, fixedNow)

		assert.NotPanics(t, func() { adapter.Clear(t.Context()) })
	})
}
