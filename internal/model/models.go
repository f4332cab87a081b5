package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawPaymentInput carries the checkout form fields exactly as submitted.
// Every field is an untrusted string until it passes through the validator.
type RawPaymentInput struct {
	CardHolderName string `json:"card_holder_name"`
	CardNumber     string `json:"card_number"`
	StartMonth     string `json:"start_month"`
	StartYear      string `json:"start_year"`
	ExpiryMonth    string `json:"expiry_month"`
	ExpiryYear     string `json:"expiry_year"`
	CV2            string `json:"cv2"`
	IssueNumber    string `json:"issue_number"`
}

// ValidatedPaymentInput is a RawPaymentInput that passed validation: fields
// are trimmed and numeric fields contain digits only. Construct it via the
// validator, never by hand.
type ValidatedPaymentInput struct {
	CardHolderName string
	CardNumber     string
	StartMonth     string
	StartYear      string
	ExpiryMonth    string
	ExpiryYear     string
	CV2            string
	IssueNumber    string
}

// HashMethod selects how gateway requests are signed.
type HashMethod string

const (
	HashSHA1     HashMethod = "SHA1"
	HashHMACMD5  HashMethod = "HMACMD5"
	HashMD5      HashMethod = "MD5"
	HashHMACSHA1 HashMethod = "HMACSHA1"
)

// TransactionKind is the type of card transaction performed at the gateway.
type TransactionKind string

const (
	KindPreAuth TransactionKind = "PREAUTH"
	KindSale    TransactionKind = "SALE"
)

// MerchantCredentials identifies the merchant account at the gateway.
// Password length (max 15) is enforced at configuration time.
type MerchantCredentials struct {
	MerchantID string
	Password   string
	HashMethod HashMethod
	SharedKey  string
}

// TransactionPolicy holds the per-merchant gateway options reused for every
// transaction. The 3-D Secure override is constructed into requests but the
// challenge flow itself is not supported.
type TransactionPolicy struct {
	Kind                 TransactionKind
	DuplicateDelay       int
	EchoCardType         bool
	EchoAmountReceived   bool
	EchoAVSCheckResult   bool
	EchoCV2CheckResult   bool
	ThreeDSecureOverride bool
	PaidOrderStatusID    int
}

// DefaultPolicy mirrors the gateway account defaults: sale transaction, one
// unit duplicate-suppression window, all response echoes on.
func DefaultPolicy() TransactionPolicy {
	return TransactionPolicy{
		Kind:                 KindSale,
		DuplicateDelay:       1,
		EchoCardType:         true,
		EchoAmountReceived:   true,
		EchoAVSCheckResult:   true,
		EchoCV2CheckResult:   true,
		ThreeDSecureOverride: true,
	}
}

// BillingAddress is the order's billing address as stored with the order.
type BillingAddress struct {
	Street      string
	Company     string
	City        string
	RegionCode  string
	PostalCode  string
	CountryCode string
}

// OrderSnapshot is the slice of an order this service needs to charge it.
type OrderSnapshot struct {
	ID           string
	Total        decimal.Decimal
	Currency     string
	Billing      BillingAddress
	BillingEmail string
	BillingPhone string
}

// Currency is a row of the ISO 4217 reference table.
type Currency struct {
	Code        string
	NumericCode int
	Name        string
}

// AttemptLogRecord is one durable audit entry per payment attempt. Snapshots
// must already be redacted when the record is built; the store never sees
// CV2, issue numbers, or full card numbers.
type AttemptLogRecord struct {
	ID               string
	OrderID          string
	Message          string
	Success          bool
	InputSnapshot    map[string]string
	ResponseSnapshot map[string]string
	GatewayMessage   string
	CV2CheckResult   string
	AddressCheck     string
	CreatedAt        time.Time
}
