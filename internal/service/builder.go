package service

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/TwinDots/tdcardsave/internal/gateway"
	"github.com/TwinDots/tdcardsave/internal/model"
)

const (
	orderDescription = "Web Order"

	// 3-D Secure browser details are always attached even though the
	// challenge flow is not executed. Device category 0 is "computer".
	acceptHeaders  = "*/*"
	deviceCategory = 0
)

// CurrencySource resolves the shop's configured currency.
type CurrencySource interface {
	Current(ctx context.Context) (model.Currency, error)
}

// CountrySource resolves ISO 3166 alpha-2 codes to numeric codes.
type CountrySource interface {
	NumericCode(ctx context.Context, alpha2 string) (int, error)
}

// Builder assembles transaction requests from validated input and order
// data. Construction is deterministic and does no gateway I/O; the only
// external calls are the currency and country reference lookups.
type Builder struct {
	currencies CurrencySource
	countries  CountrySource
}

// NewBuilder returns a builder over the given reference data sources.
func NewBuilder(currencies CurrencySource, countries CountrySource) *Builder {
	return &Builder{currencies: currencies, countries: countries}
}

// Build composes the full transaction request. It fails only when required
// reference data is missing, which is a ConfigurationError, never a
// validation failure: well-formed input always builds.
func (b *Builder) Build(ctx context.Context, input model.ValidatedPaymentInput,
	creds model.MerchantCredentials, policy model.TransactionPolicy,
	order model.OrderSnapshot, clientIP, userAgent string) (gateway.TransactionRequest, error) {

	var (
		currency    model.Currency
		countryCode int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		currency, err = b.currencies.Current(gctx)
		if err != nil {
			return &ConfigurationError{msg: "resolve shop currency", err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		countryCode, err = b.countries.NumericCode(gctx, order.Billing.CountryCode)
		if err != nil {
			return &ConfigurationError{msg: "resolve billing country " + order.Billing.CountryCode, err: err}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return gateway.TransactionRequest{}, err
	}

	req := gateway.TransactionRequest{
		MerchantID:          creds.MerchantID,
		TransactionType:     string(policy.Kind),
		Amount:              minorUnits(order.Total),
		CurrencyNumericCode: currency.NumericCode,
		OrderID:             order.ID,
		OrderDescription:    orderDescription,
		Control: gateway.TransactionControl{
			EchoCardType:               policy.EchoCardType,
			EchoAVSCheckResult:         policy.EchoAVSCheckResult,
			EchoCV2CheckResult:         policy.EchoCV2CheckResult,
			EchoAmountReceived:         policy.EchoAmountReceived,
			DuplicateDelay:             policy.DuplicateDelay,
			ThreeDSecureOverridePolicy: policy.ThreeDSecureOverride,
		},
		Card: gateway.CardDetails{
			HolderName:  input.CardHolderName,
			Number:      input.CardNumber,
			ExpiryDate:  gateway.CardDate{Month: input.ExpiryMonth, Year: input.ExpiryYear},
			StartDate:   gateway.CardDate{Month: input.StartMonth, Year: input.StartYear},
			IssueNumber: input.IssueNumber,
			CV2:         input.CV2,
		},
		Customer: gateway.CustomerDetails{
			BillingAddress: gateway.AddressDetails{
				Street:  order.Billing.Street,
				Company: order.Billing.Company,
				City:    order.Billing.City,
				// Not every country has regions; an absent region is
				// sent as empty rather than failing the build.
				RegionCode:         order.Billing.RegionCode,
				PostalCode:         order.Billing.PostalCode,
				CountryNumericCode: countryCode,
			},
			Email:     order.BillingEmail,
			Phone:     order.BillingPhone,
			IPAddress: clientIP,
		},
		Browser: gateway.BrowserDetails{
			DeviceCategory: deviceCategory,
			AcceptHeaders:  acceptHeaders,
			UserAgent:      userAgent,
		},
	}

	return req.WithCredentials(creds), nil
}

// minorUnits converts a decimal order total to integer minor units,
// rounding half away from zero (19.99 -> 1999, 10.005 -> 1001).
func minorUnits(total decimal.Decimal) int64 {
	return total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
