package cart_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/rental-checkout/internal/cart"
	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2025, 1, 5, 15, 30, 0, 0, time.UTC)

type recordingPersister struct {
	mu       sync.Mutex
	saved    *models.CartSnapshot
	saves    int
	clears   int
	failSave bool
	loadErr  error
}

func (p *recordingPersister) Save(_ context.Context, snapshot *models.CartSnapshot) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.failSave {
		return false
	}

	p.saves++
	p.saved = snapshot

	return true
}

func (p *recordingPersister) Load(context.Context) (*models.CartSnapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loadErr != nil {
		return nil, p.loadErr
	}

	return p.saved, nil
}

func (p *recordingPersister) Clear(context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.clears++
	p.saved = nil
}

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) CreateBooking(ctx context.Context, payload any) (json.RawMessage, error) {
	args := m.Called(ctx, payload)
	raw, _ := args.Get(0).(json.RawMessage)

	return raw, args.Error(1)
}

func (m *mockBackend) CreateOrder(ctx context.Context, payload any) (json.RawMessage, error) {
	args := m.Called(ctx, payload)
	raw, _ := args.Get(0).(json.RawMessage)

	return raw, args.Error(1)
}

func (m *mockBackend) SendContactEmail(ctx context.Context, message any) (json.RawMessage, error) {
	args := m.Called(ctx, message)
	raw, _ := args.Get(0).(json.RawMessage)

	return raw, args.Error(1)
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0

	return func() string {
		mu.Lock()
		defer mu.Unlock()

		n++

		return fmt.Sprintf("line-%d", n)
	}
}

func newStore(t *testing.T, opts ...cart.Option) *cart.Store {
	t.Helper()

	base := []cart.Option{
		cart.WithClock(func() time.Time { return fixedNow }),
		cart.WithIDGenerator(sequentialIDs()),
		cart.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}

	return cart.New(append(base, opts...)...)
}

func tent() models.CatalogItem {
	return models.CatalogItem{"id": "tent-1", "name": "Tent", "price": 100.0}
}

func chairs() models.CatalogItem {
	return models.CatalogItem{"_id": "chair-7", "itemName": "Folding chair", "itemPrice": "4.50", "imageUrl": "https://cdn.example.com/chair.jpg"}
}

func ptr[T any](v T) *T {
	return &v
}

func validCustomer() models.CustomerInfoPatch {
	return models.CustomerInfoPatch{
		Name:         ptr("Ada Lovelace"),
		Email:        ptr("ada@example.com"),
		Phone:        ptr("+1 555 010 9999"),
		EventType:    ptr("wedding"),
		Location:     ptr("Kew Gardens"),
		Guests:       ptr(40),
		Delivery:     ptr(models.OptionYes),
		Installation: ptr(models.OptionNo),
	}
}

// sameDayBooking is an 8 hour window on 2025-01-10.
func sameDayBooking() models.DateRangePatch {
	return models.DateRangePatch{
		StartDate: ptr("2025-01-10"),
		EndDate:   ptr("2025-01-10"),
		StartTime: ptr("09:00"),
		EndTime:   ptr("17:00"),
		MultiDay:  ptr(false),
	}
}

// threeDayOrder spans 2025-01-10 to 2025-01-13.
func threeDayOrder() models.DateRangePatch {
	return models.DateRangePatch{
		StartDate: ptr("2025-01-10"),
		EndDate:   ptr("2025-01-13"),
		MultiDay:  ptr(true),
	}
}
