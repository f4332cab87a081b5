package dto

import "github.com/TwinDots/tdcardsave/internal/service"

// PaymentResponse is returned for an authorized payment.
type PaymentResponse struct {
	OrderID       string `json:"order_id"`
	Status        string `json:"status"`
	AuthCode      string `json:"auth_code"`
	AddressCheck  string `json:"address_check_result,omitempty"`
	PostcodeCheck string `json:"postcode_check_result,omitempty"`
	CV2Check      string `json:"cv2_check_result,omitempty"`
	CardIssuer    string `json:"card_issuer,omitempty"`
	CardType      string `json:"card_type,omitempty"`
}

// ErrorResponse carries a failure message plus field errors when the
// failure was input validation.
type ErrorResponse struct {
	Error  string               `json:"error"`
	Fields []service.FieldError `json:"fields,omitempty"`
}
