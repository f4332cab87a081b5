package audit

// Snapshot field names as they appear in payment attempt records.
const (
	FieldCardName    = "CardName"
	FieldCardNumber  = "CardNumber"
	FieldStartMonth  = "StartMonth"
	FieldStartYear   = "StartYear"
	FieldExpMonth    = "ExpMonth"
	FieldExpYear     = "ExpYear"
	FieldCV2         = "CV2"
	FieldIssueNumber = "IssueNumber"
)

// RedactInput strips sensitive card data from an input snapshot before it
// can be stored: the CV2 and issue number are removed outright and the card
// number keeps only its last four digits. The input map is not modified.
func RedactInput(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = v
	}

	delete(out, FieldCV2)
	delete(out, FieldIssueNumber)

	if pan, ok := out[FieldCardNumber]; ok {
		out[FieldCardNumber] = MaskCardNumber(pan)
	}

	return out
}

// MaskCardNumber keeps the last four digits of a card number, replacing the
// rest with an ellipsis. Numbers of four digits or fewer are fully masked.
func MaskCardNumber(pan string) string {
	if len(pan) <= 4 {
		return "..." + pan
	}
	return "..." + pan[len(pan)-4:]
}
