package domain

import "context"

type Repository interface {
	// SlabForAmount returns the first active slab whose range contains the
	// amount, in position order. Nil when none matches.
	SlabForAmount(ctx context.Context, amount float64) (*MarkupSlab, error)
	// RuleForCountry returns the active rule for a country, nil when absent.
	RuleForCountry(ctx context.Context, countryCode string) (*CountryMarkupRule, error)

	ListSlabs(ctx context.Context) ([]MarkupSlab, error)
	ListRules(ctx context.Context) ([]CountryMarkupRule, error)
	SaveSlab(ctx context.Context, slab *MarkupSlab) error
	SaveRule(ctx context.Context, rule *CountryMarkupRule) error
	FindSlabByID(ctx context.Context, id string) (*MarkupSlab, error)
}
