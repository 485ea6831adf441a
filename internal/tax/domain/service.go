package domain

import "context"

// Resolver returns the active tax definition for a destination and service
// type. Nil means no tax applies.
type Resolver interface {
	ResolveRate(ctx context.Context, countryCode, serviceType string) (*TaxDefinition, error)
}

type CreateRequest struct {
	CountryCode string  `json:"country_code"`
	ServiceType string  `json:"service_type"`
	Name        string  `json:"name"`
	Rate        float64 `json:"rate"`
	TaxMode     TaxMode `json:"tax_mode"`
	IsEnabled   *bool   `json:"is_enabled"`
}

type UpdateRequest struct {
	ID        string   `json:"id"`
	Name      *string  `json:"name,omitempty"`
	Rate      *float64 `json:"rate,omitempty"`
	TaxMode   *TaxMode `json:"tax_mode,omitempty"`
	IsEnabled *bool    `json:"is_enabled,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*TaxDefinition, error)
	List(ctx context.Context, filter ListFilter) ([]TaxDefinition, error)
	Update(ctx context.Context, req UpdateRequest) (*TaxDefinition, error)
	Disable(ctx context.Context, id string) (*TaxDefinition, error)
}
