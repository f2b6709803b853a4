package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/rental-checkout/internal/cart"
	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
	"github.com/stretchr/testify/mock"
)

// CheckoutService is a mock type for the CheckoutService type
type CheckoutService struct {
	mock.Mock
}

func (_m *CheckoutService) SubmitBooking(ctx context.Context, store *cart.Store) (*models.SubmissionResult, error) {
	ret := _m.Called(ctx, store)
	result, _ := ret.Get(0).(*models.SubmissionResult)

	return result, ret.Error(1)
}

func (_m *CheckoutService) SubmitOrderByDate(ctx context.Context, store *cart.Store) (*models.SubmissionResult, error) {
	ret := _m.Called(ctx, store)
	result, _ := ret.Get(0).(*models.SubmissionResult)

	return result, ret.Error(1)
}

func (_m *CheckoutService) SendContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	ret := _m.Called(ctx, msg)

	return ret.Error(0)
}

// NewCheckoutService registers cleanup that asserts the mock's expectations.
func NewCheckoutService(t interface {
	mock.TestingT
	Cleanup(func())
}) *CheckoutService {
	m := &CheckoutService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
