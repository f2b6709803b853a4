package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/rental-checkout/internal/cache"
	"github.com/aaravmahajanofficial/rental-checkout/internal/cart"
	"github.com/aaravmahajanofficial/rental-checkout/internal/errors"
	"github.com/aaravmahajanofficial/rental-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/rental-checkout/internal/persistence"
	"github.com/aaravmahajanofficial/rental-checkout/pkg/backend"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

type SessionService interface {
	Get(ctx context.Context, sessionID string) (*cart.Store, error)
}

const (
	DefaultSessionIdleTTL = 30 * time.Minute
	DefaultMaxSessions    = 10000
)

type SessionConfig struct {
	KeyPrefix     string
	MaxAge        time.Duration
	SubmitTimeout time.Duration
	Clock         func() time.Time
	// IdleTTL and MaxSessions bound the in-memory carts. A dropped cart is
	// restored from the cache on its next request.
	IdleTTL     time.Duration
	MaxSessions int
}

// sessionService keeps one cart per browser session in memory while it is in use.
// The saved copy of each cart lives in the cache under KeyPrefix:sessionID.
type sessionService struct {
	cache   cache.Cache
	backend backend.Client
	cfg     SessionConfig
	logger  *slog.Logger

	sessions *expirable.LRU[string, *cart.Store]
	group    singleflight.Group
}

func NewSessionService(c cache.Cache, client backend.Client, cfg SessionConfig, logger *slog.Logger) SessionService {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = cache.CartKeyPrefix
	}

	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultSessionIdleTTL
	}

	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = DefaultMaxSessions
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &sessionService{
		cache:   c,
		backend: client,
		cfg:     cfg,
		logger:  logger,
	}

	s.sessions = expirable.NewLRU[string, *cart.Store](cfg.MaxSessions, s.evicted, cfg.IdleTTL)

	return s
}

// Get implements SessionService. Concurrent first requests for a session share
// a single restore.
func (s *sessionService) Get(ctx context.Context, sessionID string) (*cart.Store, error) {

	if sessionID == "" {
		return nil, errors.BadRequestError("Session ID is required")
	}

	if store, ok := s.lookup(sessionID); ok {
		return store, nil
	}

	v, err, _ := s.group.Do(sessionID, func() (any, error) {
		if store, ok := s.lookup(sessionID); ok {
			return store, nil
		}

		store, err := s.open(ctx, sessionID)
		if err != nil {
			return nil, err
		}

		// drop an expired entry the janitor has not collected yet
		s.sessions.Remove(sessionID)
		s.sessions.Add(sessionID, store)

		metrics.SessionOpened()

		return store, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*cart.Store), nil
}

// lookup re-adds a hit so the idle timer restarts on every request.
func (s *sessionService) lookup(sessionID string) (*cart.Store, bool) {
	store, ok := s.sessions.Get(sessionID)
	if ok {
		s.sessions.Add(sessionID, store)
	}

	return store, ok
}

func (s *sessionService) evicted(sessionID string, _ *cart.Store) {
	s.logger.Debug("Cart session dropped from memory", slog.String("session_id", sessionID))
	metrics.SessionClosed()
}

// open builds the store for a session. It fails when the saved cart could not
// be read, so an empty store never shadows a cart that is still in storage.
func (s *sessionService) open(ctx context.Context, sessionID string) (*cart.Store, error) {
	logger := s.logger.With(slog.String("session_id", sessionID))

	adapter := persistence.New(s.cache, cache.Key(s.cfg.KeyPrefix, sessionID),
		persistence.WithMaxAge(s.cfg.MaxAge),
		persistence.WithClock(s.cfg.Clock),
		persistence.WithLogger(logger),
	)

	store := cart.New(
		cart.WithPersister(adapter),
		cart.WithBackend(s.backend),
		cart.WithClock(s.cfg.Clock),
		cart.WithLogger(logger),
		cart.WithSubmitTimeout(s.cfg.SubmitTimeout),
	)

	restored, err := store.Restore(ctx)
	if err != nil {
		logger.Error("Failed to restore saved cart", slog.String("error", err.Error()))
		return nil, errors.StorageError("Saved cart is temporarily unavailable")
	}

	if restored {
		logger.Info("Resumed saved cart")
	}

	return store, nil
}
