package errors

import (
	"errors"
	"net/http"
)

type SubmissionErrorType string

const (
	SubmissionValidation SubmissionErrorType = "validation"
	SubmissionTimeout    SubmissionErrorType = "timeout"
	SubmissionNetwork    SubmissionErrorType = "network"
)

// SubmissionError is returned by the checkout workflows. Validation errors are
// keyed by field ("items", "dates", or a customer field name).
type SubmissionError struct {
	Type    SubmissionErrorType `json:"type"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Err     error               `json:"-"`
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// StatusCode maps the submission failure onto the HTTP status the API answers with.
func (e *SubmissionError) StatusCode() int {
	switch e.Type {
	case SubmissionValidation:
		return http.StatusUnprocessableEntity
	case SubmissionTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func SubmissionValidationError(errs map[string][]string) *SubmissionError {
	return &SubmissionError{
		Type:    SubmissionValidation,
		Message: "Please correct the highlighted fields",
		Errors:  errs,
	}
}

func SubmissionTimeoutError(err error) *SubmissionError {
	return &SubmissionError{
		Type:    SubmissionTimeout,
		Message: "The request timed out. Please try again.",
		Err:     err,
	}
}

func SubmissionNetworkError(message string, err error) *SubmissionError {
	if message == "" {
		message = "Unable to reach the server. Please try again later."
	}

	return &SubmissionError{
		Type:    SubmissionNetwork,
		Message: message,
		Err:     err,
	}
}

func IsSubmissionError(err error) (*SubmissionError, bool) {
	var subErr *SubmissionError

	if errors.As(err, &subErr) {
		return subErr, true
	}

	return nil, false
}
