package gateway

import (
	"fmt"
	"strings"
)

// OutcomeKind tags the result of interpreting a gateway response.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeSecureAuthRequired
	OutcomeReferred
	OutcomeDeclined
	OutcomeDuplicate
	OutcomeGatewayError
	OutcomeUnknownCode
	OutcomeCommunicationFailure
)

// CommunicationFailureOutcome is the terminal outcome when no endpoint
// produced a decodable response. Interpret never returns it; the submitter's
// caller constructs it from ErrCommunicationFailure.
func CommunicationFailureOutcome() TransactionOutcome {
	return TransactionOutcome{
		Kind:   OutcomeCommunicationFailure,
		Code:   -1,
		Reason: "unable to reach payment gateway",
	}
}

// Gateway result codes, fixed by the gateway protocol.
const (
	codeSuccess      = 0
	codeSecureAuth   = 3
	codeReferred     = 4
	codeDeclined     = 5
	codeDuplicate    = 20
	codeGatewayError = 30
)

// SuccessFields are the structured result fields extracted from a
// successful response.
type SuccessFields struct {
	AuthCode      string
	AddressCheck  string
	PostcodeCheck string
	CV2Check      string
	CardIssuer    string
	CardType      string
}

// TransactionOutcome is the interpreted result of one submission. Exactly
// one variant applies: Kind selects it, Success is set only for
// OutcomeSuccess, Reason carries the failure detail otherwise.
type TransactionOutcome struct {
	Kind    OutcomeKind
	Code    int
	Success SuccessFields
	Reason  string
}

// Interpret maps a decoded gateway response to a tagged outcome. It is a
// pure function: the same response always yields the same outcome.
func Interpret(resp *RawResponse) TransactionOutcome {
	switch resp.StatusCode {
	case codeSuccess:
		return TransactionOutcome{
			Kind: OutcomeSuccess,
			Code: resp.StatusCode,
			Success: SuccessFields{
				AuthCode:      resp.AuthCode,
				AddressCheck:  resp.AddressCheck,
				PostcodeCheck: resp.PostcodeCheck,
				CV2Check:      resp.CV2Check,
				CardIssuer:    resp.CardIssuer,
				CardType:      resp.CardType,
			},
		}
	case codeSecureAuth:
		return TransactionOutcome{
			Kind:   OutcomeSecureAuthRequired,
			Code:   resp.StatusCode,
			Reason: "card requires 3D secure but it has not been implemented",
		}
	case codeReferred:
		return TransactionOutcome{
			Kind:   OutcomeReferred,
			Code:   resp.StatusCode,
			Reason: "transaction referred",
		}
	case codeDeclined:
		return TransactionOutcome{
			Kind:   OutcomeDeclined,
			Code:   resp.StatusCode,
			Reason: fmt.Sprintf("credit card payment declined: %s", resp.Message),
		}
	case codeDuplicate:
		return TransactionOutcome{
			Kind:   OutcomeDuplicate,
			Code:   resp.StatusCode,
			Reason: fmt.Sprintf("duplicate transaction: %s", resp.Message),
		}
	case codeGatewayError:
		reason := resp.Message
		if len(resp.ErrorMessages) > 0 {
			reason = reason + ": " + strings.Join(resp.ErrorMessages, "; ")
		}
		return TransactionOutcome{
			Kind:   OutcomeGatewayError,
			Code:   resp.StatusCode,
			Reason: fmt.Sprintf("gateway error: %s", reason),
		}
	default:
		return TransactionOutcome{
			Kind:   OutcomeUnknownCode,
			Code:   resp.StatusCode,
			Reason: fmt.Sprintf("unknown error response code: %d", resp.StatusCode),
		}
	}
}

// IsSuccess reports whether the outcome authorizes the payment.
func (o TransactionOutcome) IsSuccess() bool {
	return o.Kind == OutcomeSuccess
}

// String names the outcome variant for logs.
func (o TransactionOutcome) String() string {
	switch o.Kind {
	case OutcomeSuccess:
		return "success"
	case OutcomeSecureAuthRequired:
		return "secure_auth_required"
	case OutcomeReferred:
		return "referred"
	case OutcomeDeclined:
		return "declined"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeGatewayError:
		return "gateway_error"
	case OutcomeUnknownCode:
		return "unknown_code"
	case OutcomeCommunicationFailure:
		return "communication_failure"
	}
	return "invalid"
}
