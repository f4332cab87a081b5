package service

import (
	"fmt"
	"strings"

	"github.com/TwinDots/tdcardsave/internal/gateway"
)

// FieldError is one invalid or missing checkout field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every field failure from one validation pass so
// the checkout form can show all of them at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ConfigurationError means required reference data (currency, country) is
// missing. It is an operational problem, not a user-input one, and is never
// surfaced as field feedback.
type ConfigurationError struct {
	msg string
	err error
}

func (e *ConfigurationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.msg, e.err)
	}
	return "configuration error: " + e.msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.err
}

// PaymentError is a classified non-success payment result. The internal
// classification is always the outcome; only the externally visible message
// varies by caller context.
type PaymentError struct {
	Outcome    gateway.TransactionOutcome
	backOffice bool
}

func (e *PaymentError) Error() string {
	return e.Outcome.Reason
}

// UserMessage is what the caller may show. Back-office operators get the
// technical detail; customers get a generic decline so internal detail
// never leaks to the checkout page.
func (e *PaymentError) UserMessage() string {
	if e.backOffice {
		return "Error: " + e.Outcome.Reason
	}
	return "Payment Declined"
}
