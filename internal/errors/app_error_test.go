package errors_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	appErrors "github.com/aaravmahajanofficial/rental-checkout/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	t.Run("Success - Constructors set code and status", func(t *testing.T) {
		cases := []struct {
			err    *appErrors.AppError
			code   string
			status int
		}{
			{appErrors.ValidationError("bad"), appErrors.ErrCodeValidation, http.StatusBadRequest},
			{appErrors.BadRequestError("bad"), appErrors.ErrCodeBadRequest, http.StatusBadRequest},
			{appErrors.NotFoundError("missing"), appErrors.ErrCodeNotFound, http.StatusNotFound},
			{appErrors.InternalError("boom"), appErrors.ErrCodeInternal, http.StatusInternalServerError},
			{appErrors.StorageError("boom"), appErrors.ErrCodeStorageError, http.StatusInternalServerError},
			{appErrors.TimeoutError("slow"), appErrors.ErrCodeTimeout, http.StatusGatewayTimeout},
			{appErrors.UpstreamError("down"), appErrors.ErrCodeUpstream, http.StatusBadGateway},
		}

		for _, tc := range cases {
			assert.Equal(t, tc.code, tc.err.Code)
			assert.Equal(t, tc.status, tc.err.StatusCode)
		}
	})

	t.Run("Success - Wraps and unwraps", func(t *testing.T) {
		// Arrange
		cause := fmt.Errorf("redis down")

		// Act
		err := appErrors.StorageError("Failed to load cart").WithError(cause).WithDetail("session abc")

		// Assert
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "Failed to load cart", err.Error())
		assert.Equal(t, "session abc", err.Detail)

		appErr, ok := appErrors.IsAppError(fmt.Errorf("outer: %w", err))
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeStorageError, appErr.Code)
	})

	t.Run("Success - Field validation message", func(t *testing.T) {
		err := appErrors.AddValidationError("quantity", "must be a number")
		assert.Equal(t, "Invalid field 'quantity': must be a number", err.Message)
	})
}

func TestSubmissionError(t *testing.T) {
	t.Run("Success - Validation", func(t *testing.T) {
		err := appErrors.SubmissionValidationError(map[string][]string{"items": {"Cart is empty"}})

		assert.Equal(t, appErrors.SubmissionValidation, err.Type)
		assert.Equal(t, []string{"Cart is empty"}, err.Errors["items"])
		assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode())
	})

	t.Run("Success - Timeout", func(t *testing.T) {
		err := appErrors.SubmissionTimeoutError(context.DeadlineExceeded)

		assert.Equal(t, appErrors.SubmissionTimeout, err.Type)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, http.StatusGatewayTimeout, err.StatusCode())
	})

	t.Run("Success - Network keeps server message", func(t *testing.T) {
		err := appErrors.SubmissionNetworkError("Date unavailable", nil)

		assert.Equal(t, "Date unavailable", err.Error())
		assert.Equal(t, http.StatusBadGateway, err.StatusCode())
	})

	t.Run("Success - Network default message", func(t *testing.T) {
		err := appErrors.SubmissionNetworkError("", fmt.Errorf("dial tcp"))
		assert.NotEmpty(t, err.Message)
	})

	t.Run("Failure - Not a submission error", func(t *testing.T) {
		_, ok := appErrors.IsSubmissionError(fmt.Errorf("plain"))
		assert.False(t, ok)
	})
}
