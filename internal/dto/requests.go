package dto

// ProcessPaymentRequest is the checkout payment form. Field-level checks
// beyond presence of the order id live in the validator, which reports all
// failures at once rather than the first.
type ProcessPaymentRequest struct {
	OrderID        string `json:"order_id" binding:"required"`
	CardHolderName string `json:"card_holder_name"`
	CardNumber     string `json:"card_number"`
	StartMonth     string `json:"start_month"`
	StartYear      string `json:"start_year"`
	ExpiryMonth    string `json:"expiry_month"`
	ExpiryYear     string `json:"expiry_year"`
	CV2            string `json:"cv2"`
	IssueNumber    string `json:"issue_number"`
}
