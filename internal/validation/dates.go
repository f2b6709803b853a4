package validation

import (
	"time"

	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
	"github.com/aaravmahajanofficial/rental-checkout/internal/pricing"
)

const (
	msgStartDateRequired = "Start date is required"
	msgEndDateRequired   = "End date is required"
	msgStartTimeRequired = "Start time is required"
	msgEndTimeRequired   = "End time is required"
	msgStartDateInvalid  = "Start date is invalid"
	msgEndDateInvalid    = "End date is invalid"
	msgStartTimeInvalid  = "Start time is invalid"
	msgEndTimeInvalid    = "End time is invalid"
	msgStartInPast       = "Start date cannot be in the past"
	MsgEndBeforeStart    = "End must be after start"
)

// ValidateDateRange checks an hourly booking window. Unlike ValidateObject it
// returns an empty, non-nil slice when the range is valid.
func ValidateDateRange(dr models.DateRange, now time.Time) []string {
	errs := []string{}

	startDate, endDate, dateErrs := parseDates(dr)
	errs = append(errs, dateErrs...)

	startTime, startOK := parseClock(dr.StartTime, msgStartTimeRequired, msgStartTimeInvalid, &errs)
	endTime, endOK := parseClock(dr.EndTime, msgEndTimeRequired, msgEndTimeInvalid, &errs)

	if startDate.IsZero() || endDate.IsZero() {
		return errs
	}

	if startDate.Before(today(now)) {
		errs = append(errs, msgStartInPast)
	}

	if startOK && endOK {
		start := startDate.Add(startTime)
		end := endDate.Add(endTime)

		if !end.After(start) {
			errs = append(errs, MsgEndBeforeStart)
		}
	}

	return errs
}

// ValidateDateOnlyRange checks a daily order window; times are ignored. A
// single-day order ends on its start date.
func ValidateDateOnlyRange(dr models.DateRange, now time.Time) []string {
	errs := []string{}

	startDate, endDate, dateErrs := parseDates(dr)
	errs = append(errs, dateErrs...)

	if startDate.IsZero() || endDate.IsZero() {
		return errs
	}

	if startDate.Before(today(now)) {
		errs = append(errs, msgStartInPast)
	}

	if endDate.Before(startDate) {
		errs = append(errs, MsgEndBeforeStart)
	}

	return errs
}

func ValidateDates(mode models.OrderMode, dr models.DateRange, now time.Time) []string {
	if mode == models.OrderModeOrderByDate {
		return ValidateDateOnlyRange(dr, now)
	}

	return ValidateDateRange(dr, now)
}

func parseDates(dr models.DateRange) (time.Time, time.Time, []string) {
	var errs []string

	start, _ := parseDate(dr.StartDate, msgStartDateRequired, msgStartDateInvalid, &errs)
	end, _ := parseDate(dr.EndDate, msgEndDateRequired, msgEndDateInvalid, &errs)

	return start, end, errs
}

func parseDate(value, requiredMsg, invalidMsg string, errs *[]string) (time.Time, bool) {
	if value == "" {
		*errs = append(*errs, requiredMsg)
		return time.Time{}, false
	}

	t, err := time.Parse(pricing.DateLayout, value)
	if err != nil {
		*errs = append(*errs, invalidMsg)
		return time.Time{}, false
	}

	return t, true
}

// parseClock returns the offset from midnight for an HH:MM value.
func parseClock(value, requiredMsg, invalidMsg string, errs *[]string) (time.Duration, bool) {
	if value == "" {
		*errs = append(*errs, requiredMsg)
		return 0, false
	}

	t, err := time.Parse(pricing.TimeLayout, value)
	if err != nil {
		*errs = append(*errs, invalidMsg)
		return 0, false
	}

	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
}

func today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
