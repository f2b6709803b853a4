package cart

import (
	"slices"
	"time"

	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
	"github.com/aaravmahajanofficial/rental-checkout/internal/validation"
)

const (
	FirstStep = 1
	LastStep  = 4
)

const (
	MsgItemNotFound    = "Item not found in cart"
	MsgQuantityRange   = "Quantity must be between 1 and 100"
	MsgMaxQuantity     = "Maximum quantity reached"
	MsgMinQuantity     = "Minimum quantity is 1"
	MsgInvalidItem     = "Invalid item: name and price are required"
	MsgCartEmpty       = "Cart is empty"
	MsgInvalidDates    = "Please select a valid date range"
	MsgInvalidCustomer = "Please complete your contact details"
	MsgBackendMissing  = "Checkout is not available right now"
	MsgModeMismatch    = "Cart order mode does not match this checkout"
)

// ValidationErrors is the per-field error surface, kept apart from State.Error.
type ValidationErrors struct {
	Dates        []string          `json:"dates,omitempty"`
	CustomerInfo validation.Errors `json:"customerInfo,omitempty"`
	Items        []string          `json:"items,omitempty"`
}

func (v ValidationErrors) clone() ValidationErrors {
	out := ValidationErrors{
		Dates: slices.Clone(v.Dates),
		Items: slices.Clone(v.Items),
	}

	if v.CustomerInfo != nil {
		out.CustomerInfo = make(validation.Errors, len(v.CustomerInfo))
		for field, errs := range v.CustomerInfo {
			out.CustomerInfo[field] = slices.Clone(errs)
		}
	}

	return out
}

// State is the whole cart. Subtotal, Tax and TotalAmount are derived from Items.
type State struct {
	Items            []models.CartLineItem `json:"items"`
	OrderMode        models.OrderMode      `json:"orderMode"`
	SelectedDates    models.DateRange      `json:"selectedDates"`
	CustomerInfo     models.CustomerInfo   `json:"customerInfo"`
	Subtotal         float64               `json:"subtotal"`
	Tax              float64               `json:"tax"`
	TotalAmount      float64               `json:"totalAmount"`
	Step             int                   `json:"step"`
	IsOpen           bool                  `json:"isOpen"`
	Loading          bool                  `json:"loading"`
	BookingSubmitted bool                  `json:"bookingSubmitted"`
	OrderSubmitted   bool                  `json:"orderSubmitted"`
	ValidationErrors ValidationErrors      `json:"validationErrors"`
	Error            string                `json:"error,omitempty"`
	LastSyncedAt     *time.Time            `json:"lastSyncedAt,omitempty"`
}

func initialState() State {
	return State{
		Items:         []models.CartLineItem{},
		OrderMode:     models.OrderModeBooking,
		SelectedDates: models.DefaultDateRange(),
		CustomerInfo:  models.DefaultCustomerInfo(),
		Step:          FirstStep,
	}
}

// clone returns a deep copy so callers never share memory with the store.
func (s State) clone() State {
	out := s
	out.Items = slices.Clone(s.Items)
	if out.Items == nil {
		out.Items = []models.CartLineItem{}
	}

	out.CustomerInfo = cloneCustomer(s.CustomerInfo)
	out.ValidationErrors = s.ValidationErrors.clone()

	if s.LastSyncedAt != nil {
		synced := *s.LastSyncedAt
		out.LastSyncedAt = &synced
	}

	return out
}

func cloneCustomer(c models.CustomerInfo) models.CustomerInfo {
	if c.Guests != nil {
		guests := *c.Guests
		c.Guests = &guests
	}

	return c
}

func (s State) snapshot() *models.CartSnapshot {
	return &models.CartSnapshot{
		Items:         slices.Clone(s.Items),
		OrderMode:     s.OrderMode,
		SelectedDates: s.SelectedDates,
		CustomerInfo:  cloneCustomer(s.CustomerInfo),
		TotalAmount:   s.TotalAmount,
		Subtotal:      s.Subtotal,
		Tax:           s.Tax,
		Step:          s.Step,
	}
}
