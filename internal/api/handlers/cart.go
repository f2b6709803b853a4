package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/rental-checkout/internal/cart"
	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
	service "github.com/aaravmahajanofficial/rental-checkout/internal/services"
	"github.com/aaravmahajanofficial/rental-checkout/internal/utils"
	"github.com/aaravmahajanofficial/rental-checkout/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// CartHandler exposes the cart commands. Commands answer 200 with the cart
// view; a rejected command is reported in the view's error field.
type CartHandler struct {
	sessions  service.SessionService
	validator *validator.Validate
}

func NewCartHandler(sessions service.SessionService) *CartHandler {
	return &CartHandler{sessions: sessions, validator: validator.New()}
}

func (h *CartHandler) respond(w http.ResponseWriter, logger *slog.Logger, command string, st cart.State) {
	if st.Error != "" {
		logger.Info("Cart command rejected", slog.String("command", command), slog.String("reason", st.Error))
	}

	response.Success(w, http.StatusOK, newCartView(st))
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, _, ok := sessionStore(w, r, h.sessions)
		if !ok {
			return
		}

		response.Success(w, http.StatusOK, newCartView(store.Snapshot()))
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		store, logger, ok := sessionStore(w, r, h.sessions)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add item input")
			return
		}

		opts := []cart.AddOption{cart.AllowDuplicates(req.AllowDuplicates)}
		if req.Dates != nil {
			opts = append(opts, cart.WithDates(*req.Dates))
		}

		h.respond(w, logger, "addToCart", store.AddToCart(r.Context(), req.Item, opts...))
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, logger, ok := sessionStore(w, r, h.sessions)
		if !ok {
			return
		}

		h.respond(w, logger, "removeFromCart", store.RemoveFromCart(r.Context(), r.PathValue("id")))
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		store, logger, ok := sessionStore(w, r, h.sessions)
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid quantity input")
			return
		}

		h.respond(w, logger, "updateQuantity", store.UpdateQuantity(r.Context(), r.PathValue("id"), *req.Quantity))
	}
}

func (h *CartHandler) IncrementQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, logger, ok := sessionStore(w, r, h.sessions)
		if !ok {
			return
		}

		h.respond(w, logger, "incrementQuantity", store.IncrementQuantity(r.Context(), r.PathValue("id")))
	}
}

func (h *CartHandler) DecrementQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, logger, ok := sessionStore(w, r, h.sessions)
		if !ok {
			return
		}

		h.respond(w, logger, "decrementQuantity", store.DecrementQuantity(r.Context(), r.PathValue("id")))
	}
}

func (h *CartHandler) SetOrderMode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		store, logger, ok := sessionStore(w, r, h.sessions)
		if !ok {
			return
		}

		var req models.SetOrderModeRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid order mode input")
			return
		}

		h.respond(w, logger, "setOrderMode", store.SetOrderMode(r.Context(), req.Mode))
	}
}

func (h *CartHandler) SetDates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		store, logger, ok := sessionStore(w, r, h.sessions)
		if !ok {
			return
		}

		var patch models.DateRangePatch
		if !utils.ParseAndValidate(r, w, &patch, h.validator) {
			logger.Warn("Invalid date selection input")
			return
		}

		h.respond(w, logger, "setSelectedDates", store.SetSelectedDates(r.Context(), patch))
	}
}

func (h *CartHandler) SetCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		store, logger, ok := sessionStore(w, r, h.sessions)
		if !ok {
			return
		}

		var patch models.CustomerInfoPatch
		if !utils.ParseAndValidate(r, w, &patch, h.validator) {
			logger.Warn("Invalid customer input")
			return
		}

		h.respond(w, logger, "setCustomerInfo", store.SetCustomerInfo(r.Context(), patch))
	}
}

func (h *CartHandler) NextStep() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, logger, ok := sessionStore(w, r, h.sessions)
		if !ok {
			return
		}

		h.respond(w, logger, "nextStep", store.NextStep(r.Context()))
	}
}

func (h *CartHandler) PrevStep() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, logger, ok := sessionStore(w, r, h.sessions)
		if !ok {
			return
		}

		h.respond(w, logger, "prevStep", store.PrevStep(r.Context()))
	}
}

func (h *CartHandler) SetStep() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		store, logger, ok := sessionStore(w, r, h.sessions)
		if !ok {
			return
		}

		var req models.SetStepRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid step input")
			return
		}

		h.respond(w, logger, "setStep", store.SetStep(r.Context(), *req.Step))
	}
}

func (h *CartHandler) SetOpen() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		store, logger, ok := sessionStore(w, r, h.sessions)
		if !ok {
			return
		}

		var req models.SetOpenRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid open input")
			return
		}

		h.respond(w, logger, "setOpen", store.SetOpen(*req.Open))
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, logger, ok := sessionStore(w, r, h.sessions)
		if !ok {
			return
		}

		logger.Info("Clearing cart")
		h.respond(w, logger, "clearCart", store.ClearCart(r.Context()))
	}
}

func (h *CartHandler) ResetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, logger, ok := sessionStore(w, r, h.sessions)
		if !ok {
			return
		}

		logger.Info("Force resetting cart")
		h.respond(w, logger, "forceResetCart", store.ForceResetCart(r.Context()))
	}
}
