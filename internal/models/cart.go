package models

import (
	"time"
)

type OrderMode string

const (
	OrderModeBooking     OrderMode = "booking"
	OrderModeOrderByDate OrderMode = "order-by-date"
)

func (m OrderMode) Valid() bool {
	return m == OrderModeBooking || m == OrderModeOrderByDate
}

// DurationUnit is the unit a line item's duration is counted in under this mode.
func (m OrderMode) DurationUnit() string {
	if m == OrderModeOrderByDate {
		return "days"
	}

	return "hours"
}

const (
	MinQuantity = 1
	MaxQuantity = 100
)

const (
	OptionYes = "yes"
	OptionNo  = "no"
)

// CatalogItem is a raw item as handed over by a catalog page. Field names vary
// between sources (name/itemName, image/imageUrl, ...).
type CatalogItem map[string]any

// DateRange is the selected rental window. Dates are YYYY-MM-DD, times HH:MM (24h).
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	MultiDay  bool   `json:"multiDay"`
}

func DefaultDateRange() DateRange {
	return DateRange{
		StartTime: "09:00",
		EndTime:   "17:00",
	}
}

// DateRangePatch carries the fields of a date selection that changed. Nil fields are kept.
type DateRangePatch struct {
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	MultiDay  *bool   `json:"multiDay,omitempty"`
}

// Apply merges the patch over dr. A single-day range without an end date ends on its start date.
func (p DateRangePatch) Apply(dr DateRange) DateRange {
	if p.StartDate != nil {
		dr.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		dr.EndDate = *p.EndDate
	}
	if p.StartTime != nil {
		dr.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		dr.EndTime = *p.EndTime
	}
	if p.MultiDay != nil {
		dr.MultiDay = *p.MultiDay
	}

	if !dr.MultiDay && dr.EndDate == "" {
		dr.EndDate = dr.StartDate
	}

	return dr
}

type CustomerInfo struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	EventType       string `json:"eventType"`
	Location        string `json:"location"`
	Guests          *int   `json:"guests,omitempty"`
	SpecialRequests string `json:"specialRequests"`
	Delivery        string `json:"delivery"`
	Installation    string `json:"installation"`
}

func DefaultCustomerInfo() CustomerInfo {
	return CustomerInfo{
		Delivery:     OptionNo,
		Installation: OptionNo,
	}
}

// Fields exposes the customer profile by field name for schema validation.
func (c CustomerInfo) Fields() map[string]any {
	fields := map[string]any{
		"name":            c.Name,
		"email":           c.Email,
		"phone":           c.Phone,
		"eventType":       c.EventType,
		"location":        c.Location,
		"guests":          nil,
		"specialRequests": c.SpecialRequests,
		"delivery":        c.Delivery,
		"installation":    c.Installation,
	}

	if c.Guests != nil {
		fields["guests"] = *c.Guests
	}

	return fields
}

type CustomerInfoPatch struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	EventType       *string `json:"eventType,omitempty"`
	Location        *string `json:"location,omitempty"`
	Guests          *int    `json:"guests,omitempty"`
	SpecialRequests *string `json:"specialRequests,omitempty"`
	Delivery        *string `json:"delivery,omitempty"`
	Installation    *string `json:"installation,omitempty"`
}

func (p CustomerInfoPatch) Apply(c CustomerInfo) CustomerInfo {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	set(&c.Name, p.Name)
	set(&c.Email, p.Email)
	set(&c.Phone, p.Phone)
	set(&c.EventType, p.EventType)
	set(&c.Location, p.Location)
	set(&c.SpecialRequests, p.SpecialRequests)
	set(&c.Delivery, p.Delivery)
	set(&c.Installation, p.Installation)

	if p.Guests != nil {
		guests := *p.Guests
		c.Guests = &guests
	}

	return c
}

type CartLineItem struct {
	CartID       string    `json:"cartId"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	Quantity     int       `json:"quantity"`
	Duration     int       `json:"duration"`
	BookingDates DateRange `json:"bookingDates"`
	OrderMode    OrderMode `json:"orderMode"`
	AddedAt      time.Time `json:"addedAt"`
}
