package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var currencies = []struct {
	Code        string
	NumericCode int
	Name        string
}{
	{"GBP", 826, "Pound Sterling"},
	{"EUR", 978, "Euro"},
	{"USD", 840, "US Dollar"},
	{"AUD", 36, "Australian Dollar"},
	{"CAD", 124, "Canadian Dollar"},
	{"CHF", 756, "Swiss Franc"},
	{"JPY", 392, "Yen"},
	{"NZD", 554, "New Zealand Dollar"},
	{"SEK", 752, "Swedish Krona"},
	{"ZAR", 710, "Rand"},
}

var countries = []struct {
	Alpha2      string
	NumericCode int
	Name        string
}{
	{"GB", 826, "United Kingdom"},
	{"IE", 372, "Ireland"},
	{"FR", 250, "France"},
	{"DE", 276, "Germany"},
	{"ES", 724, "Spain"},
	{"IT", 380, "Italy"},
	{"NL", 528, "Netherlands"},
	{"US", 840, "United States"},
	{"CA", 124, "Canada"},
	{"AU", 36, "Australia"},
	{"NZ", 554, "New Zealand"},
	{"CH", 756, "Switzerland"},
	{"SE", 752, "Sweden"},
	{"ZA", 710, "South Africa"},
	{"JP", 392, "Japan"},
}

// SeedData loads the ISO currency and country reference tables and points
// the shop currency at GBP if none is configured. Inserts are idempotent.
func SeedData(ctx context.Context, pool *pgxpool.Pool) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for _, c := range currencies {
			_, err := pool.Exec(gctx,
				`INSERT INTO currencies (code, numeric_code, name) VALUES ($1, $2, $3)
				 ON CONFLICT (code) DO NOTHING`,
				c.Code, c.NumericCode, c.Name)
			if err != nil {
				return fmt.Errorf("seed currency %s: %w", c.Code, err)
			}
		}
		return nil
	})

	g.Go(func() error {
		for _, c := range countries {
			_, err := pool.Exec(gctx,
				`INSERT INTO countries (alpha2, numeric_code, name) VALUES ($1, $2, $3)
				 ON CONFLICT (alpha2) DO NOTHING`,
				c.Alpha2, c.NumericCode, c.Name)
			if err != nil {
				return fmt.Errorf("seed country %s: %w", c.Alpha2, err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO currency_settings (id, currency_code) VALUES (1, 'GBP')
		 ON CONFLICT (id) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("seed currency settings: %w", err)
	}

	log.Info().
		Int("currencies", len(currencies)).
		Int("countries", len(countries)).
		Msg("reference data seeded")

	return nil
}
