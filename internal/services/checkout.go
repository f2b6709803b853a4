package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/rental-checkout/internal/cart"
	"github.com/aaravmahajanofficial/rental-checkout/internal/errors"
	"github.com/aaravmahajanofficial/rental-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
	"github.com/aaravmahajanofficial/rental-checkout/pkg/backend"
	"github.com/aaravmahajanofficial/rental-checkout/pkg/sendgrid"
)

type CheckoutService interface {
	SubmitBooking(ctx context.Context, store *cart.Store) (*models.SubmissionResult, error)
	SubmitOrderByDate(ctx context.Context, store *cart.Store) (*models.SubmissionResult, error)
	SendContactMessage(ctx context.Context, msg *models.ContactMessage) error
}

type checkoutService struct {
	backend      backend.Client
	emailService sendgrid.EmailService
	logger       *slog.Logger
}

// NewCheckoutService wires the submission workflows. emailService may be nil,
// in which case no confirmation emails are sent.
func NewCheckoutService(client backend.Client, emailService sendgrid.EmailService, logger *slog.Logger) CheckoutService {
	if logger == nil {
		logger = slog.Default()
	}

	return &checkoutService{backend: client, emailService: emailService, logger: logger}
}

// SubmitBooking implements CheckoutService.
func (c *checkoutService) SubmitBooking(ctx context.Context, store *cart.Store) (*models.SubmissionResult, error) {
	return c.run(ctx, cart.WorkflowBooking, store.SubmitBooking)
}

// SubmitOrderByDate implements CheckoutService.
func (c *checkoutService) SubmitOrderByDate(ctx context.Context, store *cart.Store) (*models.SubmissionResult, error) {
	return c.run(ctx, cart.WorkflowOrderByDate, store.SubmitOrderByDate)
}

func (c *checkoutService) run(ctx context.Context, workflow string, submit func(context.Context) (*models.SubmissionResult, error)) (*models.SubmissionResult, error) {

	start := time.Now()

	result, err := submit(ctx)
	if err != nil {
		outcome := metrics.ResultFailure
		if subErr, ok := errors.IsSubmissionError(err); ok {
			outcome = string(subErr.Type)
		}

		metrics.ObserveSubmission(workflow, outcome, time.Since(start))

		return nil, err
	}

	metrics.ObserveSubmission(workflow, metrics.ResultSuccess, time.Since(start))

	c.sendConfirmation(ctx, result)

	return result, nil
}

// sendConfirmation is best effort; the submission has already been accepted.
func (c *checkoutService) sendConfirmation(ctx context.Context, result *models.SubmissionResult) {

	if c.emailService == nil || result.Payload.Customer.Email == "" {
		return
	}

	req := confirmationEmail(result)

	if err := c.emailService.Send(ctx, req); err != nil {
		c.logger.Error("Failed to send confirmation email",
			slog.String("workflow", result.Workflow),
			slog.String("error", err.Error()))
		return
	}

	c.logger.Info("Confirmation email sent", slog.String("workflow", result.Workflow))
}

func confirmationEmail(result *models.SubmissionResult) *models.EmailNotificationRequest {
	p := result.Payload

	kind := "booking"
	if result.Workflow == cart.WorkflowOrderByDate {
		kind = "order"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nWe received your %s request", p.Customer.Name, kind)
	if p.Schedule.StartDate != "" {
		fmt.Fprintf(&b, " for %s", p.Schedule.StartDate)
		if p.Schedule.EndDate != "" && p.Schedule.EndDate != p.Schedule.StartDate {
			fmt.Fprintf(&b, " to %s", p.Schedule.EndDate)
		}
	}
	b.WriteString(".\n\n")

	for _, s := range p.Services {
		fmt.Fprintf(&b, "- %s x%d (%d %s): %.2f\n", s.Name, s.Quantity, s.Duration, p.Schedule.DurationUnit, s.LineTotal)
	}

	fmt.Fprintf(&b, "\nSubtotal: %.2f\nTax: %.2f\nTotal: %.2f\n", p.Pricing.Subtotal, p.Pricing.Tax, p.Pricing.Total)

	return &models.EmailNotificationRequest{
		To:      p.Customer.Email,
		Subject: fmt.Sprintf("Your %s request has been received", kind),
		Content: b.String(),
	}
}

// SendContactMessage implements CheckoutService.
func (c *checkoutService) SendContactMessage(ctx context.Context, msg *models.ContactMessage) error {

	if c.backend == nil {
		return errors.UpstreamError("Contact form is not available right now")
	}

	if _, err := c.backend.SendContactEmail(ctx, msg); err != nil {

		if stdErrors.Is(err, context.DeadlineExceeded) {
			return errors.TimeoutError("The request timed out. Please try again.").WithError(err)
		}

		var apiErr *backend.APIError
		if stdErrors.As(err, &apiErr) {
			return errors.UpstreamError(apiErr.Message).WithError(err)
		}

		return errors.UpstreamError("Failed to send message").WithError(err)
	}

	return nil
}
