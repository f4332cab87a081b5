package gateway

import (
	"github.com/TwinDots/tdcardsave/internal/model"
)

// CardDate is a card expiry or start date as two validated numeric strings.
// Values come straight from the validator; the builder never re-checks them.
type CardDate struct {
	Month string `json:"month"`
	Year  string `json:"year"`
}

// CardDetails carries the card fields of a transaction request.
type CardDetails struct {
	HolderName  string   `json:"holder_name"`
	Number      string   `json:"number"`
	ExpiryDate  CardDate `json:"expiry_date"`
	StartDate   CardDate `json:"start_date"`
	IssueNumber string   `json:"issue_number,omitempty"`
	CV2         string   `json:"cv2"`
}

// AddressDetails is the billing address sent to the gateway.
type AddressDetails struct {
	Street             string `json:"street"`
	Company            string `json:"company,omitempty"`
	City               string `json:"city"`
	RegionCode         string `json:"region_code"`
	PostalCode         string `json:"postal_code"`
	CountryNumericCode int    `json:"country_code"`
}

// CustomerDetails is the customer contact block of a transaction request.
type CustomerDetails struct {
	BillingAddress AddressDetails `json:"billing_address"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	IPAddress      string         `json:"ip_address"`
}

// BrowserDetails is the 3-D Secure browser block. It is always constructed
// (device category 0, accept */*) even though the challenge flow is not
// supported.
type BrowserDetails struct {
	DeviceCategory int    `json:"device_category"`
	AcceptHeaders  string `json:"accept_headers"`
	UserAgent      string `json:"user_agent"`
}

// TransactionControl carries the policy flags echoed to the gateway.
type TransactionControl struct {
	EchoCardType               bool `json:"echo_card_type"`
	EchoAVSCheckResult         bool `json:"echo_avs_check_result"`
	EchoCV2CheckResult         bool `json:"echo_cv2_check_result"`
	EchoAmountReceived         bool `json:"echo_amount_received"`
	DuplicateDelay             int  `json:"duplicate_delay"`
	ThreeDSecureOverridePolicy bool `json:"threedsecure_override_policy"`
}

// TransactionRequest is the complete, immutable payload for one submission
// attempt. Build it with the request builder; nothing mutates it afterwards.
type TransactionRequest struct {
	MerchantID          string             `json:"merchant_id"`
	TransactionType     string             `json:"transaction_type"`
	Amount              int64              `json:"amount"`
	CurrencyNumericCode int                `json:"currency_code"`
	OrderID             string             `json:"order_id"`
	OrderDescription    string             `json:"order_description"`
	Control             TransactionControl `json:"transaction_control"`
	Card                CardDetails        `json:"card_details"`
	Customer            CustomerDetails    `json:"customer_details"`
	Browser             BrowserDetails     `json:"browser_details"`

	credentials model.MerchantCredentials
}

// WithCredentials attaches the merchant credentials used to authenticate the
// request. Credentials never appear in the JSON body; the client derives the
// password header and body signature from them.
func (r TransactionRequest) WithCredentials(c model.MerchantCredentials) TransactionRequest {
	r.credentials = c
	return r
}

// Credentials returns the credentials attached to this request.
func (r TransactionRequest) Credentials() model.MerchantCredentials {
	return r.credentials
}
