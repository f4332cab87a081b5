package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TwinDots/tdcardsave/internal/model"
)

func validInput() model.RawPaymentInput {
	return model.RawPaymentInput{
		CardHolderName: "J Smith",
		CardNumber:     "4111111111111111",
		ExpiryMonth:    "09",
		ExpiryYear:     "28",
		CV2:            "123",
	}
}

func fieldNames(err *ValidationError) []string {
	names := make([]string, len(err.Fields))
	for i, f := range err.Fields {
		names[i] = f.Field
	}
	return names
}

func TestValidate(t *testing.T) {
	t.Run("happy: minimal valid input passes", func(t *testing.T) {
		v, err := Validate(validInput())
		require.Nil(t, err)
		assert.Equal(t, "4111111111111111", v.CardNumber)
		assert.Equal(t, "123", v.CV2)
	})

	t.Run("happy: fields are trimmed", func(t *testing.T) {
		raw := validInput()
		raw.CardNumber = "  4111111111111111  "
		raw.CardHolderName = " J Smith "

		v, err := Validate(raw)
		require.Nil(t, err)
		assert.Equal(t, "4111111111111111", v.CardNumber)
		assert.Equal(t, "J Smith", v.CardHolderName)
	})

	t.Run("happy: start dates and issue number are optional", func(t *testing.T) {
		v, err := Validate(validInput())
		require.Nil(t, err)
		assert.Empty(t, v.StartMonth)
		assert.Empty(t, v.StartYear)
		assert.Empty(t, v.IssueNumber)
	})

	t.Run("bad: empty CV2 fails even though start fields may be empty", func(t *testing.T) {
		raw := validInput()
		raw.CV2 = ""
		_, err := Validate(raw)
		require.NotNil(t, err)
		assert.Contains(t, fieldNames(err), "cv2")
	})

	t.Run("bad: non-digit characters name the offending field", func(t *testing.T) {
		tests := []struct {
			name  string
			mut   func(*model.RawPaymentInput)
			field string
		}{
			{"card number", func(r *model.RawPaymentInput) { r.CardNumber = "4111-1111-1111-1111" }, "card_number"},
			{"cv2", func(r *model.RawPaymentInput) { r.CV2 = "12a" }, "cv2"},
			{"expiry month", func(r *model.RawPaymentInput) { r.ExpiryMonth = "Sep" }, "expiry_month"},
			{"expiry year", func(r *model.RawPaymentInput) { r.ExpiryYear = "twenty" }, "expiry_year"},
			{"start month", func(r *model.RawPaymentInput) { r.StartMonth = "x1" }, "start_month"},
			{"start year", func(r *model.RawPaymentInput) { r.StartYear = "2o" }, "start_year"},
			{"issue number", func(r *model.RawPaymentInput) { r.IssueNumber = "one" }, "issue_number"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				raw := validInput()
				tt.mut(&raw)
				_, err := Validate(raw)
				require.NotNil(t, err)
				assert.Contains(t, fieldNames(err), tt.field)
			})
		}
	})

	t.Run("bad: all violations are collected, not just the first", func(t *testing.T) {
		_, err := Validate(model.RawPaymentInput{})
		require.NotNil(t, err)
		names := fieldNames(err)
		assert.Contains(t, names, "card_holder_name")
		assert.Contains(t, names, "card_number")
		assert.Contains(t, names, "cv2")
		assert.Contains(t, names, "expiry_month")
		assert.Contains(t, names, "expiry_year")
		assert.Len(t, names, 5)
	})

	t.Run("bad: missing required fields use required messages, not digit messages", func(t *testing.T) {
		_, err := Validate(model.RawPaymentInput{})
		require.NotNil(t, err)
		for _, f := range err.Fields {
			if f.Field == "card_number" {
				assert.Equal(t, "Please enter a credit card number", f.Message)
			}
		}
	})
}
