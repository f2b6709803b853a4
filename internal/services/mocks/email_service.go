package mocks

import (
	"context"

	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
	"github.com/sendgrid/sendgrid-go"
	"github.com/stretchr/testify/mock"
)

// EmailService is a mock type for the sendgrid.EmailService type
type EmailService struct {
	mock.Mock
}

func (_m *EmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	ret := _m.Called(ctx, req)

	return ret.Error(0)
}

func (_m *EmailService) GetSendGridClient() *sendgrid.Client {
	ret := _m.Called()
	client, _ := ret.Get(0).(*sendgrid.Client)

	return client
}
