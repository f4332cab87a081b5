package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TwinDots/tdcardsave/internal/model"
)

// ReferenceRepository serves the ISO currency and country reference data
// the request builder depends on.
type ReferenceRepository struct {
	pool *pgxpool.Pool
}

func NewReferenceRepository(pool *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{pool: pool}
}

// Current returns the shop's configured currency with its ISO 4217 numeric
// code.
func (r *ReferenceRepository) Current(ctx context.Context) (model.Currency, error) {
	var c model.Currency
	err := r.pool.QueryRow(ctx,
		`SELECT c.code, c.numeric_code, c.name
		 FROM currencies c
		 JOIN currency_settings s ON s.currency_code = c.code`,
	).Scan(&c.Code, &c.NumericCode, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Currency{}, fmt.Errorf("no shop currency configured")
	}
	if err != nil {
		return model.Currency{}, fmt.Errorf("get shop currency: %w", err)
	}
	return c, nil
}

// NumericCode resolves an ISO 3166 alpha-2 country code to its numeric code.
func (r *ReferenceRepository) NumericCode(ctx context.Context, alpha2 string) (int, error) {
	var code int
	err := r.pool.QueryRow(ctx,
		`SELECT numeric_code FROM countries WHERE alpha2 = $1`, alpha2,
	).Scan(&code)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("country %q not in reference data", alpha2)
	}
	if err != nil {
		return 0, fmt.Errorf("get country %s: %w", alpha2, err)
	}
	return code, nil
}
