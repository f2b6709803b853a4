package handlers

import "net/http"

// Register mounts the cart, checkout and contact endpoints on mux.
func Register(mux *http.ServeMux, cartHandler *CartHandler, checkoutHandler *CheckoutHandler) {
	mux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	mux.HandleFunc("DELETE /api/v1/cart", cartHandler.ClearCart())
	mux.HandleFunc("POST /api/v1/cart/reset", cartHandler.ResetCart())

	mux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	mux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	mux.HandleFunc("PUT /api/v1/cart/items/{id}/quantity", cartHandler.UpdateQuantity())
	mux.HandleFunc("POST /api/v1/cart/items/{id}/increment", cartHandler.IncrementQuantity())
	mux.HandleFunc("POST /api/v1/cart/items/{id}/decrement", cartHandler.DecrementQuantity())

	mux.HandleFunc("PUT /api/v1/cart/mode", cartHandler.SetOrderMode())
	mux.HandleFunc("PATCH /api/v1/cart/dates", cartHandler.SetDates())
	mux.HandleFunc("PATCH /api/v1/cart/customer", cartHandler.SetCustomer())
	mux.HandleFunc("PUT /api/v1/cart/open", cartHandler.SetOpen())

	mux.HandleFunc("POST /api/v1/cart/steps/next", cartHandler.NextStep())
	mux.HandleFunc("POST /api/v1/cart/steps/prev", cartHandler.PrevStep())
	mux.HandleFunc("PUT /api/v1/cart/steps", cartHandler.SetStep())

	mux.HandleFunc("POST /api/v1/checkout/booking", checkoutHandler.SubmitBooking())
	mux.HandleFunc("POST /api/v1/checkout/order", checkoutHandler.SubmitOrder())
	mux.HandleFunc("POST /api/v1/contact", checkoutHandler.Contact())
}
