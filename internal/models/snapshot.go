package models

// SnapshotVersion is the schema version written with every persisted cart record.
const SnapshotVersion = "1.0"

// CartSnapshot is the persisted subset of the cart.
type CartSnapshot struct {
	Items         []CartLineItem `json:"items"`
	OrderMode     OrderMode      `json:"orderMode"`
	SelectedDates DateRange      `json:"selectedDates"`
	CustomerInfo  CustomerInfo   `json:"customerInfo"`
	TotalAmount   float64        `json:"totalAmount"`
	Subtotal      float64        `json:"subtotal"`
	Tax           float64        `json:"tax"`
	Step          int            `json:"step"`
	Timestamp     string         `json:"timestamp"`
	Version       string         `json:"version"`
}

// RequiredSnapshotFields must be present and non-null for a record to be restored.
var RequiredSnapshotFields = []string{"items", "orderMode", "selectedDates", "customerInfo"}
