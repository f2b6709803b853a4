package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

// BackendClient is a mock type for the backend.Client type
type BackendClient struct {
	mock.Mock
}

func (_m *BackendClient) CreateBooking(ctx context.Context, payload any) (json.RawMessage, error) {
	ret := _m.Called(ctx, payload)
	raw, _ := ret.Get(0).(json.RawMessage)

	return raw, ret.Error(1)
}

func (_m *BackendClient) CreateOrder(ctx context.Context, payload any) (json.RawMessage, error) {
	ret := _m.Called(ctx, payload)
	raw, _ := ret.Get(0).(json.RawMessage)

	return raw, ret.Error(1)
}

func (_m *BackendClient) SendContactEmail(ctx context.Context, message any) (json.RawMessage, error) {
	ret := _m.Called(ctx, message)
	raw, _ := ret.Get(0).(json.RawMessage)

	return raw, ret.Error(1)
}
