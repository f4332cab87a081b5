package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TwinDots/tdcardsave/internal/model"
)

// AuditRepository is the append-only store for payment attempt records.
// Each Append is a single INSERT, so concurrent attempts for different
// orders never interleave partial records.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Append(ctx context.Context, record model.AttemptLogRecord) error {
	input, err := json.Marshal(record.InputSnapshot)
	if err != nil {
		return fmt.Errorf("encode input snapshot: %w", err)
	}
	response, err := json.Marshal(record.ResponseSnapshot)
	if err != nil {
		return fmt.Errorf("encode response snapshot: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO payment_attempts
		   (id, order_id, message, success, input_snapshot, response_snapshot,
		    gateway_message, cv2_check_result, address_check_result, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		record.ID, record.OrderID, record.Message, record.Success, input, response,
		record.GatewayMessage, record.CV2CheckResult, record.AddressCheck, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert payment attempt: %w", err)
	}
	return nil
}
