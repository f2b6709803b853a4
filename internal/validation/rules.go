// Package validation applies declarative field rules to form data.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FieldRules lists the checks for one field. Zero values disable a rule.
type FieldRules struct {
	Label          string
	Required       bool
	MinLength      int
	MaxLength      int
	Pattern        *regexp.Regexp
	PatternMessage string
	Min            *float64
	Max            *float64
}

type Schema map[string]FieldRules

// Errors maps a field name to its violations.
type Errors map[string][]string

func Float(v float64) *float64 {
	return &v
}

// ValidateField reports every rule the value breaks. Rules other than Required
// only look at values that are present.
func ValidateField(value any, rules FieldRules) []string {
	var errs []string

	label := rules.Label
	if label == "" {
		label = "This field"
	}

	if !present(value) {
		if rules.Required {
			errs = append(errs, fmt.Sprintf("%s is required", label))
		}

		return errs
	}

	text := stringify(value)
	length := utf8.RuneCountInString(text)

	if rules.MinLength > 0 && length < rules.MinLength {
		errs = append(errs, fmt.Sprintf("%s must be at least %d characters", label, rules.MinLength))
	}

	if rules.MaxLength > 0 && length > rules.MaxLength {
		errs = append(errs, fmt.Sprintf("%s must be no more than %d characters", label, rules.MaxLength))
	}

	if rules.Pattern != nil && !rules.Pattern.MatchString(text) {
		msg := rules.PatternMessage
		if msg == "" {
			msg = fmt.Sprintf("%s format is invalid", label)
		}
		errs = append(errs, msg)
	}

	if rules.Min != nil || rules.Max != nil {
		n, ok := number(value)
		if !ok {
			errs = append(errs, fmt.Sprintf("%s must be a number", label))

			return errs
		}

		if rules.Min != nil && n < *rules.Min {
			errs = append(errs, fmt.Sprintf("%s must be at least %s", label, formatNumber(*rules.Min)))
		}

		if rules.Max != nil && n > *rules.Max {
			errs = append(errs, fmt.Sprintf("%s must be no more than %s", label, formatNumber(*rules.Max)))
		}
	}

	return errs
}

// ValidateObject runs the schema over values. It returns nil, not an empty map,
// when nothing is wrong.
func ValidateObject(values map[string]any, schema Schema) Errors {
	var errs Errors

	for field, rules := range schema {
		fieldErrs := ValidateField(values[field], rules)
		if len(fieldErrs) == 0 {
			continue
		}

		if errs == nil {
			errs = make(Errors)
		}
		errs[field] = fieldErrs
	}

	return errs
}

func present(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	default:
		return true
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	default:
		return fmt.Sprint(v)
	}
}

func number(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
