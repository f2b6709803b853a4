package cart

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
	"github.com/aaravmahajanofficial/rental-checkout/internal/pricing"
	"github.com/aaravmahajanofficial/rental-checkout/internal/validation"
	"github.com/aaravmahajanofficial/rental-checkout/pkg/backend"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const DefaultSubmitTimeout = 30 * time.Second

const tracerName = "github.com/aaravmahajanofficial/rental-checkout/internal/cart"

// Persister stores the cart between sessions. Save reports success and Load
// returns nil when nothing usable exists. Load errors only when the storage
// itself could not be read.
type Persister interface {
	Save(ctx context.Context, snapshot *models.CartSnapshot) bool
	Load(ctx context.Context) (*models.CartSnapshot, error)
	Clear(ctx context.Context)
}

type nopPersister struct{}

func (nopPersister) Save(context.Context, *models.CartSnapshot) bool { return false }
func (nopPersister) Load(context.Context) (*models.CartSnapshot, error) { return nil, nil }
func (nopPersister) Clear(context.Context) {}

// Store owns one cart. Commands are serialized by a mutex and never return
// errors; failures are reported through State.Error and State.ValidationErrors.
type Store struct {
	mu    sync.Mutex
	state State

	persister     Persister
	backend       backend.Client
	clock         func() time.Time
	logger        *slog.Logger
	submitTimeout time.Duration
	newID         func() string
	tracer        trace.Tracer
}

type Option func(*Store)

func WithPersister(p Persister) Option {
	return func(s *Store) {
		if p != nil {
			s.persister = p
		}
	}
}

func WithBackend(c backend.Client) Option {
	return func(s *Store) {
		s.backend = c
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

func WithSubmitTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.submitTimeout = d
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		state:         initialState(),
		persister:     nopPersister{},
		clock:         time.Now,
		logger:        slog.Default(),
		submitTimeout: DefaultSubmitTimeout,
		newID:         uuid.NewString,
		tracer:        otel.Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Restore replaces the in-memory cart with the saved one, if any. Restored
// lines are clamped back into range and pricing is recomputed. The cart is
// left untouched when the storage could not be read.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.persister.Load(ctx)
	if err != nil {
		return false, err
	}

	if snapshot == nil {
		return false, nil
	}

	next := initialState()
	next.IsOpen = s.state.IsOpen

	if snapshot.OrderMode.Valid() {
		next.OrderMode = snapshot.OrderMode
	}

	next.SelectedDates = snapshot.SelectedDates
	next.CustomerInfo = cloneCustomer(snapshot.CustomerInfo)
	next.Step = clampStep(snapshot.Step)

	for _, item := range snapshot.Items {
		if item.CartID == "" {
			item.CartID = s.newID()
		}
		item.Quantity = clampQuantity(item.Quantity)
		item.Duration = max(item.Duration, 1)
		item.Price = max(item.Price, 0)
		if !item.OrderMode.Valid() {
			item.OrderMode = next.OrderMode
		}

		next.Items = append(next.Items, item)
	}

	s.state = next
	s.recalculate()

	s.logger.Info("Cart restored", slog.Int("items", len(next.Items)), slog.Int("step", next.Step))

	return true, nil
}

func (s *Store) SetOrderMode(ctx context.Context, mode models.OrderMode) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !mode.Valid() {
		s.logger.Warn("Ignoring unknown order mode", slog.String("mode", string(mode)))
		return s.state.clone()
	}

	s.state.OrderMode = mode
	for i := range s.state.Items {
		item := &s.state.Items[i]
		item.OrderMode = mode
		item.Duration = pricing.Duration(mode, item.BookingDates)
	}

	return s.commit(ctx)
}

type addOptions struct {
	dates           *models.DateRange
	allowDuplicates bool
}

type AddOption func(*addOptions)

// WithDates prices the new line against dr instead of the cart's selected dates.
func WithDates(dr models.DateRange) AddOption {
	return func(o *addOptions) {
		o.dates = &dr
	}
}

func AllowDuplicates(allow bool) AddOption {
	return func(o *addOptions) {
		o.allowDuplicates = allow
	}
}

// AddToCart inserts a catalog item as a new line with quantity 1. Re-adding a
// catalog id already in the cart resets that line to quantity 1 unless
// duplicates are allowed.
func (s *Store) AddToCart(ctx context.Context, raw models.CatalogItem, opts ...AddOption) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	var o addOptions
	for _, opt := range opts {
		opt(&o)
	}

	item, ok := NormalizeItem(raw)
	if !ok {
		return s.fail(MsgInvalidItem)
	}

	if item.ID == "" {
		item.ID = s.newID()
	}

	dates := s.state.SelectedDates
	if o.dates != nil {
		dates = *o.dates
	}

	if !o.allowDuplicates {
		if idx := s.findByCatalogID(item.ID); idx >= 0 {
			s.state.Items[idx].Quantity = models.MinQuantity
			s.state.IsOpen = true
			return s.commit(ctx)
		}
	}

	s.state.Items = append(s.state.Items, models.CartLineItem{
		CartID:       s.newID(),
		ID:           item.ID,
		Name:         item.Name,
		Description:  item.Description,
		Image:        item.Image,
		Category:     item.Category,
		Price:        item.Price,
		Quantity:     models.MinQuantity,
		Duration:     pricing.Duration(s.state.OrderMode, dates),
		BookingDates: dates,
		OrderMode:    s.state.OrderMode,
		AddedAt:      s.clock().UTC(),
	})
	s.state.IsOpen = true

	return s.commit(ctx)
}

func (s *Store) RemoveFromCart(ctx context.Context, cartID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findByCartID(cartID)
	if idx < 0 {
		return s.fail(MsgItemNotFound)
	}

	s.state.Items = append(s.state.Items[:idx], s.state.Items[idx+1:]...)

	return s.commit(ctx)
}

func (s *Store) UpdateQuantity(ctx context.Context, cartID string, quantity int) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findByCartID(cartID)
	if idx < 0 {
		return s.fail(MsgItemNotFound)
	}

	if quantity < models.MinQuantity || quantity > models.MaxQuantity {
		return s.fail(MsgQuantityRange)
	}

	s.state.Items[idx].Quantity = quantity

	return s.commit(ctx)
}

func (s *Store) IncrementQuantity(ctx context.Context, cartID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findByCartID(cartID)
	if idx < 0 {
		return s.fail(MsgItemNotFound)
	}

	if s.state.Items[idx].Quantity >= models.MaxQuantity {
		return s.fail(MsgMaxQuantity)
	}

	s.state.Items[idx].Quantity++

	return s.commit(ctx)
}

func (s *Store) DecrementQuantity(ctx context.Context, cartID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.findByCartID(cartID)
	if idx < 0 {
		return s.fail(MsgItemNotFound)
	}

	if s.state.Items[idx].Quantity <= models.MinQuantity {
		return s.fail(MsgMinQuantity)
	}

	s.state.Items[idx].Quantity--

	return s.commit(ctx)
}

// SetSelectedDates merges the patch and commits it only if the merged range is
// valid for the current order mode. On success every line is re-priced.
func (s *Store) SetSelectedDates(ctx context.Context, patch models.DateRangePatch) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := patch.Apply(s.state.SelectedDates)

	if errs := validation.ValidateDates(s.state.OrderMode, merged, s.clock()); len(errs) > 0 {
		s.state.ValidationErrors.Dates = errs
		s.logger.Warn("Rejected date selection", slog.Any("errors", errs))
		return s.state.clone()
	}

	s.state.SelectedDates = merged
	s.state.ValidationErrors.Dates = nil

	for i := range s.state.Items {
		item := &s.state.Items[i]
		item.BookingDates = merged
		item.Duration = pricing.Duration(s.state.OrderMode, merged)
	}

	return s.commit(ctx)
}

// SetCustomerInfo always stores the merged profile; validity only shows in
// ValidationErrors.CustomerInfo.
func (s *Store) SetCustomerInfo(ctx context.Context, patch models.CustomerInfoPatch) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.CustomerInfo = patch.Apply(s.state.CustomerInfo)
	s.state.ValidationErrors.CustomerInfo = validation.ValidateCustomer(s.state.CustomerInfo)

	return s.commit(ctx)
}

// NextStep advances the wizard when the current step's gate passes.
func (s *Store) NextStep(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state.Step {
	case 1:
		if len(s.state.Items) == 0 {
			s.state.ValidationErrors.Items = []string{MsgCartEmpty}
			return s.fail(MsgCartEmpty)
		}
		s.state.ValidationErrors.Items = nil
	case 2:
		if errs := validation.ValidateDates(s.state.OrderMode, s.state.SelectedDates, s.clock()); len(errs) > 0 {
			s.state.ValidationErrors.Dates = errs
			return s.fail(MsgInvalidDates)
		}
		s.state.ValidationErrors.Dates = nil
	case 3:
		if errs := validation.ValidateCustomer(s.state.CustomerInfo); errs != nil {
			s.state.ValidationErrors.CustomerInfo = errs
			return s.fail(MsgInvalidCustomer)
		}
		s.state.ValidationErrors.CustomerInfo = nil
	}

	s.state.Step = min(s.state.Step+1, LastStep)

	return s.commit(ctx)
}

func (s *Store) PrevStep(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Step = clampStep(s.state.Step - 1)

	return s.commit(ctx)
}

func (s *Store) SetStep(ctx context.Context, step int) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Step = clampStep(step)

	return s.commit(ctx)
}

// ClearCart resets everything except the open flag and drops the saved copy.
func (s *Store) ClearCart(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset(ctx, true)

	return s.state.clone()
}

func (s *Store) ForceResetCart(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset(ctx, false)

	return s.state.clone()
}

// SetOpen toggles the cart drawer. The flag is not persisted.
func (s *Store) SetOpen(open bool) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.IsOpen = open

	return s.state.clone()
}

func (s *Store) ClearError() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Error = ""
	s.state.ValidationErrors = ValidationErrors{}

	return s.state.clone()
}

func (s *Store) reset(ctx context.Context, keepOpen bool) {
	open := s.state.IsOpen

	s.state = initialState()
	if keepOpen {
		s.state.IsOpen = open
	}

	s.persister.Clear(ctx)
}

// commit runs after every successful mutation: clear the error, reprice, save.
func (s *Store) commit(ctx context.Context) State {
	s.state.Error = ""
	s.recalculate()

	if s.persister.Save(ctx, s.state.snapshot()) {
		synced := s.clock().UTC()
		s.state.LastSyncedAt = &synced
	}

	return s.state.clone()
}

func (s *Store) fail(msg string) State {
	s.state.Error = msg
	s.logger.Warn("Cart command rejected", slog.String("error", msg))

	return s.state.clone()
}

func (s *Store) recalculate() {
	breakdown := pricing.Calculate(s.state.Items)

	s.state.Subtotal = breakdown.Subtotal
	s.state.Tax = breakdown.Tax
	s.state.TotalAmount = breakdown.Total
}

func (s *Store) findByCartID(cartID string) int {
	for i, item := range s.state.Items {
		if item.CartID == cartID {
			return i
		}
	}

	return -1
}

func (s *Store) findByCatalogID(id string) int {
	for i, item := range s.state.Items {
		if item.ID == id {
			return i
		}
	}

	return -1
}

func clampQuantity(q int) int {
	return min(max(q, models.MinQuantity), models.MaxQuantity)
}

func clampStep(step int) int {
	return min(max(step, FirstStep), LastStep)
}
