package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/rental-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/rental-checkout/internal/cart"
	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
	service "github.com/aaravmahajanofficial/rental-checkout/internal/services"
	"github.com/aaravmahajanofficial/rental-checkout/internal/utils"
	"github.com/aaravmahajanofficial/rental-checkout/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	sessions  service.SessionService
	checkout  service.CheckoutService
	validator *validator.Validate
}

func NewCheckoutHandler(sessions service.SessionService, checkout service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{sessions: sessions, checkout: checkout, validator: validator.New()}
}

// SubmitBooking sends the cart as a timed booking request. On success the cart
// is reset and the view reports bookingSubmitted.
func (h *CheckoutHandler) SubmitBooking() http.HandlerFunc {
	return h.submit(cart.WorkflowBooking, h.checkout.SubmitBooking)
}

// SubmitOrder sends the cart as a date-based order request.
func (h *CheckoutHandler) SubmitOrder() http.HandlerFunc {
	return h.submit(cart.WorkflowOrderByDate, h.checkout.SubmitOrderByDate)
}

type submitFunc func(context.Context, *cart.Store) (*models.SubmissionResult, error)

type submitResponse struct {
	Result *models.SubmissionResult `json:"result"`
	Cart   CartView                 `json:"cart"`
}

func (h *CheckoutHandler) submit(workflow string, run submitFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		store, logger, ok := sessionStore(w, r, h.sessions)
		if !ok {
			return
		}

		logger = logger.With(slog.String("workflow", workflow))

		result, err := run(r.Context(), store)
		if err != nil {
			logger.Warn("Submission failed", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Submission accepted")
		response.Success(w, http.StatusCreated, submitResponse{Result: result, Cart: newCartView(store.Snapshot())})
	}
}

func (h *CheckoutHandler) Contact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.ContactMessage
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid contact input")
			return
		}

		if err := h.checkout.SendContactMessage(r.Context(), &req); err != nil {
			logger.Error("Failed to send contact message", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		logger.Info("Contact message sent")
		response.Success(w, http.StatusAccepted, map[string]string{"status": "sent"})
	}
}
