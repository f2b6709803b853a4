package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"maps"
	"net"
	"slices"

	appErrors "github.com/aaravmahajanofficial/rental-checkout/internal/errors"
	"github.com/aaravmahajanofficial/rental-checkout/internal/models"
	"github.com/aaravmahajanofficial/rental-checkout/internal/validation"
	"github.com/aaravmahajanofficial/rental-checkout/pkg/backend"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	WorkflowBooking     = "booking"
	WorkflowOrderByDate = "order-by-date"
)

const payloadSource = "web"

type workflow struct {
	name     string
	spanName string
	mode     models.OrderMode
	send     func(c backend.Client, ctx context.Context, payload any) (json.RawMessage, error)
	markDone func(st *State)
}

var (
	bookingWorkflow = workflow{
		name:     WorkflowBooking,
		spanName: "cart.SubmitBooking",
		mode:     models.OrderModeBooking,
		send:     backend.Client.CreateBooking,
		markDone: func(st *State) { st.BookingSubmitted = true },
	}

	orderWorkflow = workflow{
		name:     WorkflowOrderByDate,
		spanName: "cart.SubmitOrderByDate",
		mode:     models.OrderModeOrderByDate,
		send:     backend.Client.CreateOrder,
		markDone: func(st *State) { st.OrderSubmitted = true },
	}
)

// SubmitBooking validates the cart as an hourly booking and posts it to the
// bookings endpoint. Any returned error is a *errors.SubmissionError.
func (s *Store) SubmitBooking(ctx context.Context) (*models.SubmissionResult, error) {
	return s.submit(ctx, bookingWorkflow)
}

// SubmitOrderByDate is the daily-rate counterpart of SubmitBooking.
func (s *Store) SubmitOrderByDate(ctx context.Context) (*models.SubmissionResult, error) {
	return s.submit(ctx, orderWorkflow)
}

func (s *Store) submit(ctx context.Context, wf workflow) (*models.SubmissionResult, error) {
	ctx, span := s.tracer.Start(ctx, wf.spanName)
	defer span.End()

	logger := s.logger.With(slog.String("workflow", wf.name))

	s.mu.Lock()

	if subErr := s.validateForSubmit(wf); subErr != nil {
		s.state.Error = subErr.Message
		s.mu.Unlock()

		logger.Warn("Submission rejected by validation", slog.Any("errors", subErr.Errors))
		span.SetStatus(codes.Error, subErr.Message)

		return nil, subErr
	}

	if s.backend == nil {
		s.state.Error = MsgBackendMissing
		s.mu.Unlock()

		span.SetStatus(codes.Error, MsgBackendMissing)

		return nil, appErrors.SubmissionNetworkError(MsgBackendMissing, errors.New("no backend client configured"))
	}

	payload := buildPayload(s.state, wf, s.clock())
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	span.SetAttributes(
		attribute.Int("cart.items", len(payload.Services)),
		attribute.Float64("cart.total", payload.Pricing.Total),
	)

	reqCtx, cancel := context.WithTimeout(ctx, s.submitTimeout)
	defer cancel()

	resp, err := wf.send(s.backend, reqCtx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Loading = false

	if err != nil {
		subErr := classifySubmitError(reqCtx, err)
		s.state.Error = subErr.Message

		logger.Error("Submission failed",
			slog.String("type", string(subErr.Type)),
			slog.String("error", err.Error()))
		span.RecordError(err)
		span.SetStatus(codes.Error, subErr.Message)

		return nil, subErr
	}

	s.reset(ctx, true)
	wf.markDone(&s.state)

	logger.Info("Submission accepted", slog.Int("services", len(payload.Services)))

	return &models.SubmissionResult{
		Workflow: wf.name,
		Payload:  payload,
		Response: resp,
	}, nil
}

// validateForSubmit re-checks the live state. Validation errors are mirrored
// into State.ValidationErrors.
func (s *Store) validateForSubmit(wf workflow) *appErrors.SubmissionError {
	if len(s.state.Items) == 0 {
		s.state.ValidationErrors.Items = []string{MsgCartEmpty}
		return appErrors.SubmissionValidationError(map[string][]string{
			"items": {MsgCartEmpty},
		})
	}

	s.state.ValidationErrors.Items = nil

	errs := map[string][]string{}

	if s.state.OrderMode != wf.mode {
		errs["orderMode"] = []string{MsgModeMismatch}
	}

	customerErrs := validation.ValidateCustomer(s.state.CustomerInfo)
	maps.Copy(errs, customerErrs)
	s.state.ValidationErrors.CustomerInfo = customerErrs

	dateErrs := validation.ValidateDates(wf.mode, s.state.SelectedDates, s.clock())
	if len(dateErrs) > 0 {
		errs["dates"] = slices.Clone(dateErrs)
		s.state.ValidationErrors.Dates = dateErrs
	} else {
		s.state.ValidationErrors.Dates = nil
	}

	if len(errs) == 0 {
		return nil
	}

	return appErrors.SubmissionValidationError(errs)
}

func classifySubmitError(ctx context.Context, err error) *appErrors.SubmissionError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return appErrors.SubmissionTimeoutError(err)
	}

	// the HTTP client's own timeout
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return appErrors.SubmissionTimeoutError(err)
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return appErrors.SubmissionNetworkError(apiErr.Message, err)
	}

	return appErrors.SubmissionNetworkError("", err)
}
