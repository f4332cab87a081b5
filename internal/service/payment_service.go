package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/TwinDots/tdcardsave/internal/audit"
	"github.com/TwinDots/tdcardsave/internal/gateway"
	"github.com/TwinDots/tdcardsave/internal/model"
)

// OrderStore is the order persistence collaborator. This service drives
// order state forward but does not own it.
type OrderStore interface {
	Get(ctx context.Context, orderID string) (model.OrderSnapshot, error)
	MarkPaid(ctx context.Context, orderID string) error
	RecordStatusTransition(ctx context.Context, statusID int, orderID string) error
}

// PaymentService runs card transactions end to end: validate, build,
// submit with endpoint failover, interpret, log, and drive the order
// forward or raise a classified failure. Each submission is synchronous
// within its request; the service itself holds only read-only merchant
// configuration and is safe for concurrent use across orders.
type PaymentService struct {
	creds     model.MerchantCredentials
	policy    model.TransactionPolicy
	builder   *Builder
	submitter *gateway.Submitter
	endpoints *gateway.EndpointList
	orders    OrderStore
	attempts  *audit.Logger
}

// NewPaymentService wires the processor from its collaborators.
func NewPaymentService(creds model.MerchantCredentials, policy model.TransactionPolicy,
	builder *Builder, submitter *gateway.Submitter, endpoints *gateway.EndpointList,
	orders OrderStore, attempts *audit.Logger) *PaymentService {
	return &PaymentService{
		creds:     creds,
		policy:    policy,
		builder:   builder,
		submitter: submitter,
		endpoints: endpoints,
		orders:    orders,
		attempts:  attempts,
	}
}

// Order fetches the order snapshot for a payment request.
func (s *PaymentService) Order(ctx context.Context, orderID string) (model.OrderSnapshot, error) {
	return s.orders.Get(ctx, orderID)
}

// ProcessPayment charges the order with the submitted card details. On
// success it marks the order paid and records the configured status
// transition. Every failure path writes exactly one redacted attempt record
// and returns exactly one classified error: *ValidationError,
// *ConfigurationError or *PaymentError.
func (s *PaymentService) ProcessPayment(ctx context.Context, raw model.RawPaymentInput,
	order model.OrderSnapshot, clientIP, userAgent string, backOffice bool) (gateway.SuccessFields, error) {

	input, verr := Validate(raw)
	if verr != nil {
		s.logFailure(ctx, order, verr.Error(), nil, nil)
		return gateway.SuccessFields{}, verr
	}

	req, err := s.builder.Build(ctx, input, s.creds, s.policy, order, clientIP, userAgent)
	if err != nil {
		s.logFailure(ctx, order, err.Error(), nil, nil)
		return gateway.SuccessFields{}, err
	}

	snapshot := audit.InputSnapshot(raw)

	resp, err := s.submitter.Submit(ctx, req, s.endpoints.Ordered())
	if err != nil {
		if errors.Is(err, gateway.ErrCommunicationFailure) {
			outcome := gateway.CommunicationFailureOutcome()
			s.logFailure(ctx, order, outcome.Reason, snapshot, nil)
			return gateway.SuccessFields{}, &PaymentError{Outcome: outcome, backOffice: backOffice}
		}
		return gateway.SuccessFields{}, err
	}

	outcome := gateway.Interpret(resp)
	if !outcome.IsSuccess() {
		log.Warn().
			Str("order_id", order.ID).
			Str("outcome", outcome.String()).
			Int("code", outcome.Code).
			Msg("payment not authorized")
		if err := s.attempts.Log(ctx, order, outcome.Reason, false,
			snapshot, resp.Snapshot(), resp.Message, resp.CV2Check, resp.AddressCheck); err != nil {
			log.Error().Err(err).Str("order_id", order.ID).Msg("failed to record payment attempt")
		}
		return gateway.SuccessFields{}, &PaymentError{Outcome: outcome, backOffice: backOffice}
	}

	if err := s.attempts.Log(ctx, order, "Successful payment", true,
		snapshot, resp.Snapshot(), resp.Message, outcome.Success.CV2Check, outcome.Success.AddressCheck); err != nil {
		return gateway.SuccessFields{}, fmt.Errorf("record successful attempt: %w", err)
	}

	if err := s.orders.RecordStatusTransition(ctx, s.policy.PaidOrderStatusID, order.ID); err != nil {
		return gateway.SuccessFields{}, fmt.Errorf("record order status transition: %w", err)
	}
	if err := s.orders.MarkPaid(ctx, order.ID); err != nil {
		return gateway.SuccessFields{}, fmt.Errorf("mark order paid: %w", err)
	}

	log.Info().
		Str("order_id", order.ID).
		Str("auth_code", outcome.Success.AuthCode).
		Str("card_type", outcome.Success.CardType).
		Msg("payment authorized")

	return outcome.Success, nil
}

// logFailure writes the single attempt record for a failed path. Audit
// write errors are logged but never displace the payment failure itself.
func (s *PaymentService) logFailure(ctx context.Context, order model.OrderSnapshot,
	message string, inputSnapshot, responseSnapshot map[string]string) {

	if inputSnapshot == nil {
		inputSnapshot = map[string]string{}
	}
	if err := s.attempts.Log(ctx, order, message, false, inputSnapshot, responseSnapshot, "", "", ""); err != nil {
		log.Error().Err(err).Str("order_id", order.ID).Msg("failed to record payment attempt")
	}
}
