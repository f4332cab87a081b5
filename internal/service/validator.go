package service

import (
	"regexp"
	"strings"

	"github.com/TwinDots/tdcardsave/internal/model"
)

var (
	reDigits        = regexp.MustCompile(`^[0-9]+$`)
	reDigitsOrEmpty = regexp.MustCompile(`^[0-9]*$`)
)

// Validate trims and checks raw checkout input. Every rule is applied
// independently so the caller gets one message per invalid field, not just
// the first failure. Card number, CV2 and expiry are required; start dates
// and issue number are optional but must be digits when present.
func Validate(raw model.RawPaymentInput) (model.ValidatedPaymentInput, *ValidationError) {
	v := model.ValidatedPaymentInput{
		CardHolderName: strings.TrimSpace(raw.CardHolderName),
		CardNumber:     strings.TrimSpace(raw.CardNumber),
		StartMonth:     strings.TrimSpace(raw.StartMonth),
		StartYear:      strings.TrimSpace(raw.StartYear),
		ExpiryMonth:    strings.TrimSpace(raw.ExpiryMonth),
		ExpiryYear:     strings.TrimSpace(raw.ExpiryYear),
		CV2:            strings.TrimSpace(raw.CV2),
		IssueNumber:    strings.TrimSpace(raw.IssueNumber),
	}

	var fields []FieldError
	add := func(field, message string) {
		fields = append(fields, FieldError{Field: field, Message: message})
	}

	if v.CardHolderName == "" {
		add("card_holder_name", "Please enter the name as it appears on the card")
	}

	switch {
	case v.CardNumber == "":
		add("card_number", "Please enter a credit card number")
	case !reDigits.MatchString(v.CardNumber):
		add("card_number", "Credit card number can only contain digits")
	}

	switch {
	case v.CV2 == "":
		add("cv2", "Please enter the card's security code")
	case !reDigitsOrEmpty.MatchString(v.CV2):
		add("cv2", "Card security code must contain only digits")
	}

	if !reDigitsOrEmpty.MatchString(v.StartMonth) {
		add("start_month", "Credit card start month can contain only digits")
	}
	if !reDigitsOrEmpty.MatchString(v.StartYear) {
		add("start_year", "Credit card start year can contain only digits")
	}

	switch {
	case v.ExpiryMonth == "":
		add("expiry_month", "Please specify a card expiration month")
	case !reDigitsOrEmpty.MatchString(v.ExpiryMonth):
		add("expiry_month", "Credit card expiration month can contain only digits")
	}

	switch {
	case v.ExpiryYear == "":
		add("expiry_year", "Please specify a card expiration year")
	case !reDigitsOrEmpty.MatchString(v.ExpiryYear):
		add("expiry_year", "Credit card expiration year can contain only digits")
	}

	if !reDigitsOrEmpty.MatchString(v.IssueNumber) {
		add("issue_number", "Issue number must contain only digits")
	}

	if len(fields) > 0 {
		return model.ValidatedPaymentInput{}, &ValidationError{Fields: fields}
	}
	return v, nil
}
