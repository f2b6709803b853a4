package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/rental-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/rental-checkout/internal/cart"
	"github.com/aaravmahajanofficial/rental-checkout/internal/errors"
	service "github.com/aaravmahajanofficial/rental-checkout/internal/services"
	"github.com/aaravmahajanofficial/rental-checkout/internal/utils/response"
)

// CartView is the cart as returned by every cart endpoint.
type CartView struct {
	cart.State
	ItemCount int `json:"itemCount"`
}

func newCartView(st cart.State) CartView {
	count := 0
	for _, item := range st.Items {
		count += item.Quantity
	}

	return CartView{State: st, ItemCount: count}
}

// sessionStore resolves the cart for the request's session. It writes the error
// response itself and reports false when there is no usable session.
func sessionStore(w http.ResponseWriter, r *http.Request, sessions service.SessionService) (*cart.Store, *slog.Logger, bool) {

	logger := middleware.LoggerFromContext(r.Context())

	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		logger.Warn("Request without a session")
		response.Error(w, errors.BadRequestError("Session ID is required"))
		return nil, logger, false
	}

	store, err := sessions.Get(r.Context(), sessionID)
	if err != nil {
		logger.Error("Failed to open cart session", slog.String("error", err.Error()))
		response.Error(w, err)
		return nil, logger, false
	}

	return store, logger, true
}
