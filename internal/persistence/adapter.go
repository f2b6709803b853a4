package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/rental-checkout/internal/cache"
	"github.com/aaravmahajanofficial/rental-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
	"github.com/aaravmahajanofficial/rental-checkout/internal/utils"
)

// DefaultMaxAge is how long a saved cart stays restorable.
const DefaultMaxAge = 7 * 24 * time.Hour

const (
	opSave  = "save"
	opLoad  = "load"
	opClear = "clear"

	resultMiss      = "miss"
	resultDiscarded = "discarded"
)

// Adapter stores one cart snapshot under a fixed key. Every method is best
// effort: failures are logged and reported through the return value only.
type Adapter struct {
	cache  cache.Cache
	key    string
	maxAge time.Duration
	clock  func() time.Time
	logger *slog.Logger
}

type Option func(*Adapter)

func WithMaxAge(maxAge time.Duration) Option {
	return func(a *Adapter) {
		if maxAge > 0 {
			a.maxAge = maxAge
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(a *Adapter) {
		a.clock = clock
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

func New(c cache.Cache, key string, opts ...Option) *Adapter {
	a := &Adapter{
		cache:  c,
		key:    key,
		maxAge: DefaultMaxAge,
		clock:  time.Now,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.logger = a.logger.With(slog.String("storage_key", key))

	return a
}

// Save writes the snapshot with a fresh timestamp and the current schema version.
func (a *Adapter) Save(ctx context.Context, snapshot *models.CartSnapshot) bool {
	if snapshot == nil {
		return false
	}

	record := *snapshot
	record.Timestamp = a.clock().UTC().Format(time.RFC3339)
	record.Version = models.SnapshotVersion

	ctx, cancel := utils.WithStorageTimeout(ctx)
	defer cancel()

	if err := a.cache.Set(ctx, a.key, record, a.maxAge); err != nil {
		a.logger.Warn("Failed to save cart", slog.String("error", err.Error()))
		metrics.ObservePersistence(opSave, metrics.ResultFailure)
		return false
	}

	metrics.ObservePersistence(opSave, metrics.ResultSuccess)

	return true
}

// Load returns the saved snapshot, or nil when there is nothing usable. A
// record that is corrupt, expired or incomplete is deleted. An error means
// the storage could not be read and the record was left in place.
func (a *Adapter) Load(ctx context.Context) (*models.CartSnapshot, error) {
	ctx, cancel := utils.WithStorageTimeout(ctx)
	defer cancel()

	var raw json.RawMessage

	found, err := a.cache.Get(ctx, a.key, &raw)
	if err != nil {
		if isDecodeError(err) {
			a.discard(ctx, "unreadable record", err)
			return nil, nil
		}

		a.logger.Warn("Failed to read saved cart", slog.String("error", err.Error()))
		metrics.ObservePersistence(opLoad, metrics.ResultFailure)

		return nil, fmt.Errorf("read saved cart: %w", err)
	}

	if !found {
		metrics.ObservePersistence(opLoad, resultMiss)
		return nil, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		a.discard(ctx, "record is not an object", err)
		return nil, nil
	}

	for _, name := range models.RequiredSnapshotFields {
		value, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			a.discard(ctx, "missing field "+name, nil)
			return nil, nil
		}
	}

	savedAt, err := a.timestamp(fields["timestamp"])
	if err != nil {
		a.discard(ctx, "invalid timestamp", err)
		return nil, nil
	}

	if a.clock().Sub(savedAt) > a.maxAge {
		a.discard(ctx, "record expired", nil)
		return nil, nil
	}

	var snapshot models.CartSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		a.discard(ctx, "record does not match the cart schema", err)
		return nil, nil
	}

	metrics.ObservePersistence(opLoad, metrics.ResultSuccess)

	return &snapshot, nil
}

func (a *Adapter) Clear(ctx context.Context) {
	ctx, cancel := utils.WithStorageTimeout(ctx)
	defer cancel()

	a.clear(ctx)
}

func (a *Adapter) clear(ctx context.Context) {
	if err := a.cache.Delete(ctx, a.key); err != nil {
		a.logger.Warn("Failed to clear saved cart", slog.String("error", err.Error()))
		metrics.ObservePersistence(opClear, metrics.ResultFailure)
		return
	}

	metrics.ObservePersistence(opClear, metrics.ResultSuccess)
}

func (a *Adapter) discard(ctx context.Context, reason string, err error) {
	attrs := []any{slog.String("reason", reason)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	a.logger.Warn("Discarding saved cart", attrs...)
	metrics.ObservePersistence(opLoad, resultDiscarded)

	a.clear(ctx)
}

func (a *Adapter) timestamp(value json.RawMessage) (time.Time, error) {
	var ts string
	if err := json.Unmarshal(value, &ts); err != nil {
		return time.Time{}, err
	}

	return time.Parse(time.RFC3339, ts)
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
