package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TwinDots/tdcardsave/internal/model"
)

// ErrOrderNotFound is returned when the order id does not exist.
var ErrOrderNotFound = errors.New("order not found")

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) Get(ctx context.Context, orderID string) (model.OrderSnapshot, error) {
	var o model.OrderSnapshot
	err := r.pool.QueryRow(ctx,
		`SELECT id, total, currency, billing_street, billing_company, billing_city,
		        billing_region_code, billing_postal_code, billing_country_code,
		        billing_email, billing_phone
		 FROM orders WHERE id = $1`, orderID,
	).Scan(&o.ID, &o.Total, &o.Currency, &o.Billing.Street, &o.Billing.Company,
		&o.Billing.City, &o.Billing.RegionCode, &o.Billing.PostalCode,
		&o.Billing.CountryCode, &o.BillingEmail, &o.BillingPhone)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.OrderSnapshot{}, ErrOrderNotFound
	}
	if err != nil {
		return model.OrderSnapshot{}, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return o, nil
}

func (r *OrderRepository) MarkPaid(ctx context.Context, orderID string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET payment_processed = TRUE, payment_processed_at = NOW() WHERE id = $1`,
		orderID)
	if err != nil {
		return fmt.Errorf("mark order %s paid: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) RecordStatusTransition(ctx context.Context, statusID int, orderID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO order_status_log (order_id, status_id) VALUES ($1, $2)`,
		orderID, statusID)
	if err != nil {
		return fmt.Errorf("record status transition for order %s: %w", orderID, err)
	}
	return nil
}
