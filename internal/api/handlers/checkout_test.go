package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/rental-checkout/internal/api/handlers"
	"github.com/aaravmahajanofficial/rental-checkout/internal/cart"
	appErrors "github.com/aaravmahajanofficial/rental-checkout/internal/errors"
	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
	"github.com/aaravmahajanofficial/rental-checkout/internal/services/mocks"
	"github.com/aaravmahajanofficial/rental-checkout/internal/testutils"
	"github.com/aaravmahajanofficial/rental-checkout/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// setupCheckoutTest -> mux with mocked sessions and checkout service
func setupCheckoutTest(t *testing.T) (*http.ServeMux, *cart.Store, *mocks.CheckoutService) {
	store := cart.New()

	sessions := mocks.NewSessionService(t)
	sessions.On("Get", mock.Anything, sessionID).Return(store, nil).Maybe()

	checkout := mocks.NewCheckoutService(t)

	mux := http.NewServeMux()
	handlers.Register(mux, handlers.NewCartHandler(sessions), handlers.NewCheckoutHandler(sessions, checkout))

	return mux, store, checkout
}

func serve(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, testutils.CreateSessionRequest(method, target, strings.NewReader(body), sessionID))

	return recorder
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) *response.ErrorResponse {
	t.Helper()

	var resp response.APIResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)

	return resp.Error
}

func TestSubmitBooking(t *testing.T) {
	t.Run("Success - Accepted", func(t *testing.T) {
		// Arrange
		mux, store, checkout := setupCheckoutTest(t)
		result := &models.SubmissionResult{Workflow: cart.WorkflowBooking, Response: json.RawMessage(`{"id":"bk_1"}`)}
		checkout.On("SubmitBooking", mock.Anything, store).Return(result, nil).Once()

		// Act
		recorder := serve(mux, http.MethodPost, "/api/v1/checkout/booking", "")

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				Result models.SubmissionResult `json:"result"`
				Cart   handlers.CartView       `json:"cart"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, cart.WorkflowBooking, resp.Data.Result.Workflow)
		assert.JSONEq(t, `{"id":"bk_1"}`, string(resp.Data.Result.Response))
	})

	t.Run("Failure - Validation", func(t *testing.T) {
		// Arrange
		mux, store, checkout := setupCheckoutTest(t)
		subErr := appErrors.SubmissionValidationError(map[string][]string{"items": {cart.MsgCartEmpty}})
		checkout.On("SubmitBooking", mock.Anything, store).Return(nil, subErr).Once()

		// Act
		recorder := serve(mux, http.MethodPost, "/api/v1/checkout/booking", "")

		// Assert
		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		errResp := decodeError(t, recorder)
		assert.Equal(t, "validation", errResp.Code)
		assert.Equal(t, []string{cart.MsgCartEmpty}, errResp.Fields["items"])
	})

	t.Run("Failure - Timeout", func(t *testing.T) {
		mux, store, checkout := setupCheckoutTest(t)
		checkout.On("SubmitBooking", mock.Anything, store).
			Return(nil, appErrors.SubmissionTimeoutError(context.DeadlineExceeded)).Once()

		recorder := serve(mux, http.MethodPost, "/api/v1/checkout/booking", "")

		assert.Equal(t, http.StatusGatewayTimeout, recorder.Code)
		assert.Equal(t, "timeout", decodeError(t, recorder).Code)
	})
}

func TestSubmitOrder(t *testing.T) {
	t.Run("Failure - Network", func(t *testing.T) {
		// Arrange
		mux, store, checkout := setupCheckoutTest(t)
		checkout.On("SubmitOrderByDate", mock.Anything, store).
			Return(nil, appErrors.SubmissionNetworkError("Date not available", nil)).Once()

		// Act
		recorder := serve(mux, http.MethodPost, "/api/v1/checkout/order", "")

		// Assert
		assert.Equal(t, http.StatusBadGateway, recorder.Code)
		errResp := decodeError(t, recorder)
		assert.Equal(t, "network", errResp.Code)
		assert.Equal(t, "Date not available", errResp.Message)
	})
}

func TestContact(t *testing.T) {
	t.Run("Success - Sent", func(t *testing.T) {
		// Arrange
		mux, _, checkout := setupCheckoutTest(t)
		checkout.On("SendContactMessage", mock.Anything, mock.MatchedBy(func(msg *models.ContactMessage) bool {
			return msg.Email == "ada@example.com"
		})).Return(nil).Once()

		// Act
		recorder := serve(mux, http.MethodPost, "/api/v1/contact",
			`{"name":"Ada","email":"ada@example.com","message":"Do you deliver?"}`)

		// Assert
		assert.Equal(t, http.StatusAccepted, recorder.Code)
	})

	t.Run("Failure - Invalid Email", func(t *testing.T) {
		mux, _, checkout := setupCheckoutTest(t)

		recorder := serve(mux, http.MethodPost, "/api/v1/contact", `{"name":"Ada","email":"nope","message":"hi"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeError(t, recorder).Code)
		checkout.AssertNotCalled(t, "SendContactMessage", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Upstream", func(t *testing.T) {
		mux, _, checkout := setupCheckoutTest(t)
		checkout.On("SendContactMessage", mock.Anything, mock.Anything).
			Return(appErrors.UpstreamError("Mailer unavailable")).Once()

		recorder := serve(mux, http.MethodPost, "/api/v1/contact",
			`{"name":"Ada","email":"ada@example.com","message":"Do you deliver?"}`)

		assert.Equal(t, http.StatusBadGateway, recorder.Code)
		assert.Equal(t, "Mailer unavailable", decodeError(t, recorder).Message)
	})
}
