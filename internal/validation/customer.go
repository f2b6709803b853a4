package validation

import (
	"regexp"

	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern  = regexp.MustCompile(`^[0-9\s\-+()]+$`)
	optionPattern = regexp.MustCompile(`^(yes|no)$`)
)

// CustomerSchema is used both by the details step of the wizard and by the
// submission workflows.
var CustomerSchema = Schema{
	"name": {
		Label:     "Name",
		Required:  true,
		MinLength: 2,
	},
	"email": {
		Label:          "Email",
		Required:       true,
		Pattern:        emailPattern,
		PatternMessage: "Please enter a valid email address",
	},
	"phone": {
		Label:          "Phone number",
		Required:       true,
		Pattern:        phonePattern,
		PatternMessage: "Please enter a valid phone number",
		MinLength:      10,
	},
	"eventType": {
		Label:    "Event type",
		Required: true,
	},
	"guests": {
		Label: "Number of guests",
		Min:   Float(1),
		Max:   Float(10000),
	},
	"specialRequests": {
		Label:     "Special requests",
		MaxLength: 500,
	},
	"delivery": {
		Label:          "Delivery",
		Required:       true,
		Pattern:        optionPattern,
		PatternMessage: "Please choose yes or no for delivery",
	},
	"installation": {
		Label:          "Installation",
		Required:       true,
		Pattern:        optionPattern,
		PatternMessage: "Please choose yes or no for installation",
	},
}

func ValidateCustomer(info models.CustomerInfo) Errors {
	return ValidateObject(info.Fields(), CustomerSchema)
}
