package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/rental-checkout/internal/cart"
	"github.com/stretchr/testify/mock"
)

// SessionService is a mock type for the SessionService type
type SessionService struct {
	mock.Mock
}

func (_m *SessionService) Get(ctx context.Context, sessionID string) (*cart.Store, error) {
	ret := _m.Called(ctx, sessionID)
	store, _ := ret.Get(0).(*cart.Store)

	return store, ret.Error(1)
}

func NewSessionService(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionService {
	m := &SessionService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
