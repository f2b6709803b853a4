package models

import (
	"encoding/json"
	"time"
)

type PayloadCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type PayloadEvent struct {
	Type            string `json:"type"`
	Location        string `json:"location"`
	Guests          *int   `json:"guests,omitempty"`
	SpecialRequests string `json:"specialRequests"`
	Delivery        bool   `json:"delivery"`
	Installation    bool   `json:"installation"`
}

type PayloadSchedule struct {
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	StartTime    string `json:"startTime,omitempty"`
	EndTime      string `json:"endTime,omitempty"`
	MultiDay     bool   `json:"multiDay"`
	Duration     int    `json:"duration"`
	DurationUnit string `json:"durationUnit"`
}

type PayloadService struct {
	CartID    string  `json:"cartId"`
	ItemID    string  `json:"itemId"`
	Name      string  `json:"name"`
	Category  string  `json:"category,omitempty"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Duration  int     `json:"duration"`
	LineTotal float64 `json:"lineTotal"`
}

type PayloadPricing struct {
	Subtotal float64 `json:"subtotal"`
	TaxRate  float64 `json:"taxRate"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

type PayloadMetadata struct {
	OrderMode   OrderMode `json:"orderMode"`
	SubmittedAt time.Time `json:"submittedAt"`
	Source      string    `json:"source"`
	Version     string    `json:"version"`
	ItemCount   int       `json:"itemCount"`
}

// CheckoutPayload is the body posted to the bookings and orders endpoints.
type CheckoutPayload struct {
	Customer PayloadCustomer  `json:"customer"`
	Event    PayloadEvent     `json:"event"`
	Schedule PayloadSchedule  `json:"schedule"`
	Services []PayloadService `json:"services"`
	Pricing  PayloadPricing   `json:"pricing"`
	Metadata PayloadMetadata  `json:"metadata"`
}

type SubmissionResult struct {
	Workflow string          `json:"workflow"`
	Payload  CheckoutPayload `json:"payload"`
	Response json.RawMessage `json:"response,omitempty"`
}
