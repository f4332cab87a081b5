package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TwinDots/tdcardsave/internal/audit"
	"github.com/TwinDots/tdcardsave/internal/gateway"
	"github.com/TwinDots/tdcardsave/internal/model"
)

type memOrderStore struct {
	order       model.OrderSnapshot
	paid        []string
	transitions []int
}

func (s *memOrderStore) Get(_ context.Context, orderID string) (model.OrderSnapshot, error) {
	return s.order, nil
}

func (s *memOrderStore) MarkPaid(_ context.Context, orderID string) error {
	s.paid = append(s.paid, orderID)
	return nil
}

func (s *memOrderStore) RecordStatusTransition(_ context.Context, statusID int, orderID string) error {
	s.transitions = append(s.transitions, statusID)
	return nil
}

type memAuditStore struct {
	records []model.AttemptLogRecord
}

func (s *memAuditStore) Append(_ context.Context, record model.AttemptLogRecord) error {
	s.records = append(s.records, record)
	return nil
}

// gatewayStub answers every request with the given raw response and counts
// requests received.
func gatewayStub(t *testing.T, resp gateway.RawResponse, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(endpoints *gateway.EndpointList, orders *memOrderStore, attempts *memAuditStore) *PaymentService {
	creds := model.MerchantCredentials{
		MerchantID: "TWIND-1234567",
		Password:   "hunter2",
		HashMethod: model.HashHMACSHA1,
		SharedKey:  "topsecret",
	}
	policy := model.DefaultPolicy()
	policy.PaidOrderStatusID = 5

	builder := NewBuilder(
		stubCurrencies{currency: model.Currency{Code: "GBP", NumericCode: 826}},
		stubCountries{codes: map[string]int{"GB": 826}},
	)
	submitter := gateway.NewSubmitter(gateway.NewClient(2 * time.Second))
	return NewPaymentService(creds, policy, builder, submitter, endpoints, orders, audit.NewLogger(attempts))
}

func TestPaymentService_ProcessPayment(t *testing.T) {
	rawInput := model.RawPaymentInput{
		CardHolderName: "J Smith",
		CardNumber:     "4111111111111111",
		ExpiryMonth:    "09",
		ExpiryYear:     "28",
		CV2:            "123",
	}

	t.Run("happy: authorized payment marks order paid and logs once", func(t *testing.T) {
		var hits atomic.Int64
		srv := gatewayStub(t, gateway.RawResponse{
			StatusCode: 0, Message: "AuthCode: 123456", AuthCode: "123456",
			CV2Check: "PASSED", AddressCheck: "PASSED", CardType: "Visa", CardIssuer: "HSBC",
		}, &hits)

		orders := &memOrderStore{order: testOrder()}
		attempts := &memAuditStore{}
		svc := newTestService(gateway.NewEndpointList(gateway.Endpoint{BaseURL: srv.URL, Priority: 100, Retries: 2}), orders, attempts)

		result, err := svc.ProcessPayment(context.Background(), rawInput, orders.order, "203.0.113.9", "test-agent", false)
		require.NoError(t, err)
		assert.Equal(t, "123456", result.AuthCode)
		assert.Equal(t, "Visa", result.CardType)

		assert.Equal(t, []string{"order-42"}, orders.paid)
		assert.Equal(t, []int{5}, orders.transitions)

		require.Len(t, attempts.records, 1)
		rec := attempts.records[0]
		assert.True(t, rec.Success)
		assert.Equal(t, "Successful payment", rec.Message)
		assert.Equal(t, "...1111", rec.InputSnapshot[audit.FieldCardNumber])
		assert.NotContains(t, rec.InputSnapshot, audit.FieldCV2)
		assert.Equal(t, "PASSED", rec.CV2CheckResult)
		assert.Equal(t, int64(1), hits.Load())
	})

	t.Run("bad: declined response raises classified failure after one log write", func(t *testing.T) {
		var hits atomic.Int64
		srv := gatewayStub(t, gateway.RawResponse{StatusCode: 5, Message: "Card declined"}, &hits)

		orders := &memOrderStore{order: testOrder()}
		attempts := &memAuditStore{}
		svc := newTestService(gateway.NewEndpointList(gateway.Endpoint{BaseURL: srv.URL, Priority: 100, Retries: 2}), orders, attempts)

		_, err := svc.ProcessPayment(context.Background(), rawInput, orders.order, "", "", false)
		var perr *PaymentError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, gateway.OutcomeDeclined, perr.Outcome.Kind)

		assert.Empty(t, orders.paid)
		assert.Empty(t, orders.transitions)
		require.Len(t, attempts.records, 1)
		assert.False(t, attempts.records[0].Success)
		assert.Contains(t, attempts.records[0].Message, "Card declined")
		// A decoded decline must not be retried.
		assert.Equal(t, int64(1), hits.Load())
	})

	t.Run("bad: decline on first endpoint never reaches the second", func(t *testing.T) {
		var hits1, hits2 atomic.Int64
		srv1 := gatewayStub(t, gateway.RawResponse{StatusCode: 5, Message: "Card declined"}, &hits1)
		srv2 := gatewayStub(t, gateway.RawResponse{StatusCode: 0, AuthCode: "999"}, &hits2)

		endpoints := gateway.NewEndpointList(
			gateway.Endpoint{BaseURL: srv1.URL, Priority: 100, Retries: 2},
			gateway.Endpoint{BaseURL: srv2.URL, Priority: 200, Retries: 2},
		)
		orders := &memOrderStore{order: testOrder()}
		svc := newTestService(endpoints, orders, &memAuditStore{})

		_, err := svc.ProcessPayment(context.Background(), rawInput, orders.order, "", "", false)
		var perr *PaymentError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, int64(1), hits1.Load())
		assert.Equal(t, int64(0), hits2.Load())
	})

	t.Run("bad: unreachable endpoints classify as communication failure", func(t *testing.T) {
		endpoints := gateway.NewEndpointList(
			gateway.Endpoint{BaseURL: "http://127.0.0.1:1", Priority: 100, Retries: 2},
			gateway.Endpoint{BaseURL: "http://127.0.0.1:1", Priority: 200, Retries: 2},
		)
		orders := &memOrderStore{order: testOrder()}
		attempts := &memAuditStore{}
		svc := newTestService(endpoints, orders, attempts)

		_, err := svc.ProcessPayment(context.Background(), rawInput, orders.order, "", "", false)
		var perr *PaymentError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, gateway.OutcomeCommunicationFailure, perr.Outcome.Kind)
		assert.Equal(t, "Payment Declined", perr.UserMessage())
		require.Len(t, attempts.records, 1)
		assert.False(t, attempts.records[0].Success)
	})

	t.Run("bad: validation failure logs once and never contacts the gateway", func(t *testing.T) {
		var hits atomic.Int64
		srv := gatewayStub(t, gateway.RawResponse{StatusCode: 0}, &hits)

		orders := &memOrderStore{order: testOrder()}
		attempts := &memAuditStore{}
		svc := newTestService(gateway.NewEndpointList(gateway.Endpoint{BaseURL: srv.URL, Priority: 100, Retries: 2}), orders, attempts)

		_, err := svc.ProcessPayment(context.Background(), model.RawPaymentInput{}, orders.order, "", "", false)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.NotEmpty(t, verr.Fields)

		assert.Equal(t, int64(0), hits.Load())
		require.Len(t, attempts.records, 1)
		assert.False(t, attempts.records[0].Success)
		assert.Empty(t, attempts.records[0].InputSnapshot)
	})

	t.Run("bad: configuration failure is distinct from validation", func(t *testing.T) {
		orders := &memOrderStore{order: testOrder()}
		orders.order.Billing.CountryCode = "XX"
		attempts := &memAuditStore{}
		svc := newTestService(gateway.NewEndpointList(gateway.Endpoint{BaseURL: "http://127.0.0.1:1", Priority: 100, Retries: 1}), orders, attempts)

		_, err := svc.ProcessPayment(context.Background(), rawInput, orders.order, "", "", false)
		var cerr *ConfigurationError
		require.ErrorAs(t, err, &cerr)
		require.Len(t, attempts.records, 1)
	})

	t.Run("happy: back-office callers see technical detail, customers do not", func(t *testing.T) {
		var hits atomic.Int64
		srv := gatewayStub(t, gateway.RawResponse{StatusCode: 5, Message: "Insufficient funds"}, &hits)
		endpoints := gateway.NewEndpointList(gateway.Endpoint{BaseURL: srv.URL, Priority: 100, Retries: 1})

		orders := &memOrderStore{order: testOrder()}
		svc := newTestService(endpoints, orders, &memAuditStore{})

		_, customerErr := svc.ProcessPayment(context.Background(), rawInput, orders.order, "", "", false)
		var perr *PaymentError
		require.ErrorAs(t, customerErr, &perr)
		assert.Equal(t, "Payment Declined", perr.UserMessage())
		assert.NotContains(t, perr.UserMessage(), "Insufficient funds")

		_, backOfficeErr := svc.ProcessPayment(context.Background(), rawInput, orders.order, "", "", true)
		require.ErrorAs(t, backOfficeErr, &perr)
		assert.Contains(t, perr.UserMessage(), "Insufficient funds")
	})

	t.Run("happy: failover reaches a later endpoint when earlier ones are down", func(t *testing.T) {
		var hits atomic.Int64
		srv := gatewayStub(t, gateway.RawResponse{StatusCode: 0, AuthCode: "555555"}, &hits)

		endpoints := gateway.NewEndpointList(
			gateway.Endpoint{BaseURL: "http://127.0.0.1:1", Priority: 100, Retries: 2},
			gateway.Endpoint{BaseURL: "http://127.0.0.1:1", Priority: 200, Retries: 2},
			gateway.Endpoint{BaseURL: srv.URL, Priority: 300, Retries: 2},
		)
		orders := &memOrderStore{order: testOrder()}
		svc := newTestService(endpoints, orders, &memAuditStore{})

		result, err := svc.ProcessPayment(context.Background(), rawInput, orders.order, "", "", false)
		require.NoError(t, err)
		assert.Equal(t, "555555", result.AuthCode)
		assert.Equal(t, int64(1), hits.Load())
	})
}
