package domain

import "context"

type Repository interface {
	ListCountries(ctx context.Context) ([]Country, error)
	ListCurrencies(ctx context.Context) ([]Currency, error)
	// CurrencyForCountry resolves the billing currency of a destination.
	// Returns nil when the country is unknown; the caller decides the fallback.
	CurrencyForCountry(ctx context.Context, countryCode string) (*CurrencyInfo, error)
}
