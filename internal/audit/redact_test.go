package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactInput(t *testing.T) {
	t.Run("happy: CV2 removed, card number masked to last four", func(t *testing.T) {
		fields := map[string]string{
			FieldCardName:   "J Smith",
			FieldCardNumber: "4111111111111111",
			FieldCV2:        "123",
			FieldExpMonth:   "09",
			FieldExpYear:    "28",
		}

		got := RedactInput(fields)
		assert.NotContains(t, got, FieldCV2)
		assert.Equal(t, "...1111", got[FieldCardNumber])
		assert.Equal(t, "J Smith", got[FieldCardName])
		assert.Equal(t, "09", got[FieldExpMonth])
	})

	t.Run("happy: issue number removed when present", func(t *testing.T) {
		got := RedactInput(map[string]string{
			FieldCardNumber:  "5500000000000004",
			FieldCV2:         "321",
			FieldIssueNumber: "2",
		})
		assert.NotContains(t, got, FieldIssueNumber)
		assert.NotContains(t, got, FieldCV2)
		assert.Equal(t, "...0004", got[FieldCardNumber])
	})

	t.Run("edge: empty snapshot stays empty and does not panic", func(t *testing.T) {
		got := RedactInput(map[string]string{})
		assert.Empty(t, got)
	})

	t.Run("edge: input map is not mutated", func(t *testing.T) {
		fields := map[string]string{
			FieldCardNumber: "4111111111111111",
			FieldCV2:        "123",
		}
		_ = RedactInput(fields)
		assert.Equal(t, "4111111111111111", fields[FieldCardNumber])
		assert.Equal(t, "123", fields[FieldCV2])
	})
}

func TestMaskCardNumber(t *testing.T) {
	tests := []struct {
		name string
		pan  string
		want string
	}{
		{"sixteen digits", "4111111111111111", "...1111"},
		{"fourteen digits", "36700102000000", "...0000"},
		{"exactly four digits", "1234", "...1234"},
		{"shorter than four", "12", "...12"},
		{"empty", "", "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskCardNumber(tt.pan))
		})
	}
}
