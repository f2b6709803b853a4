package cart

import (
	"slices"

	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
)

// Snapshot returns a copy of the full state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.clone()
}

func (s *Store) Items() []models.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.state.Items)
}

// ItemCount is the number of units in the cart, not the number of lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return itemCount(s.state.Items)
}

func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Subtotal
}

func (s *Store) Tax() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Tax
}

func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.TotalAmount
}

func (s *Store) SelectedDates() models.DateRange {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.SelectedDates
}

func (s *Store) CustomerInfo() models.CustomerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneCustomer(s.state.CustomerInfo)
}

func (s *Store) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Step
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Loading
}

func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Error
}

func (s *Store) OrderMode() models.OrderMode {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.OrderMode
}

func (s *Store) BookingSubmitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.BookingSubmitted
}

func (s *Store) OrderSubmitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.OrderSubmitted
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.IsOpen
}

func itemCount(items []models.CartLineItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}

	return count
}
