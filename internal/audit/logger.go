package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/TwinDots/tdcardsave/internal/model"
)

// Store persists attempt records. Append writes exactly one fully formed
// record; implementations must make each call atomic.
type Store interface {
	Append(ctx context.Context, record model.AttemptLogRecord) error
}

// Logger records every payment attempt, redacting card data first. The
// redaction runs unconditionally, including on failure paths where the
// snapshots are empty.
type Logger struct {
	store Store
}

// NewLogger returns a logger backed by the given store.
func NewLogger(store Store) *Logger {
	return &Logger{store: store}
}

// Log appends one attempt record for the order. inputSnapshot is the raw
// form field map; it is redacted here, never by the caller.
func (l *Logger) Log(ctx context.Context, order model.OrderSnapshot, message string, success bool,
	inputSnapshot, responseSnapshot map[string]string, gatewayMessage, cv2Check, addressCheck string) error {

	if responseSnapshot == nil {
		responseSnapshot = map[string]string{}
	}

	record := model.AttemptLogRecord{
		ID:               uuid.NewString(),
		OrderID:          order.ID,
		Message:          message,
		Success:          success,
		InputSnapshot:    RedactInput(inputSnapshot),
		ResponseSnapshot: responseSnapshot,
		GatewayMessage:   gatewayMessage,
		CV2CheckResult:   cv2Check,
		AddressCheck:     addressCheck,
		CreatedAt:        time.Now().UTC(),
	}

	if err := l.store.Append(ctx, record); err != nil {
		return fmt.Errorf("append attempt record: %w", err)
	}

	log.Info().
		Str("order_id", order.ID).
		Bool("success", success).
		Str("message", message).
		Msg("payment attempt recorded")

	return nil
}

// InputSnapshot flattens raw checkout input into the audit field map. The
// result still contains sensitive values; it must pass through RedactInput
// (which Log does) before storage.
func InputSnapshot(input model.RawPaymentInput) map[string]string {
	return map[string]string{
		FieldCardName:    input.CardHolderName,
		FieldCardNumber:  input.CardNumber,
		FieldStartMonth:  input.StartMonth,
		FieldStartYear:   input.StartYear,
		FieldExpMonth:    input.ExpiryMonth,
		FieldExpYear:     input.ExpiryYear,
		FieldCV2:         input.CV2,
		FieldIssueNumber: input.IssueNumber,
	}
}
