package domain

import "context"

type CreateSlabRequest struct {
	Name        string          `json:"name"`
	MinAmount   float64         `json:"min_amount"`
	MaxAmount   float64         `json:"max_amount"`
	MarkupType  MarkupValueType `json:"markup_type"`
	MarkupValue float64         `json:"markup_value"`
	Position    *int            `json:"position,omitempty"`
}

type UpdateSlabRequest struct {
	ID          string           `json:"id"`
	Name        *string          `json:"name,omitempty"`
	MinAmount   *float64         `json:"min_amount,omitempty"`
	MaxAmount   *float64         `json:"max_amount,omitempty"`
	MarkupType  *MarkupValueType `json:"markup_type,omitempty"`
	MarkupValue *float64         `json:"markup_value,omitempty"`
	Position    *int             `json:"position,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

type UpsertCountryRuleRequest struct {
	CountryCode string          `json:"country_code"`
	MarkupType  MarkupValueType `json:"markup_type"`
	MarkupValue float64         `json:"markup_value"`
	IsActive    *bool           `json:"is_active,omitempty"`
}

type Service interface {
	CreateSlab(ctx context.Context, req CreateSlabRequest) (*MarkupSlab, error)
	UpdateSlab(ctx context.Context, req UpdateSlabRequest) (*MarkupSlab, error)
	ListSlabs(ctx context.Context) ([]MarkupSlab, error)
	UpsertCountryRule(ctx context.Context, req UpsertCountryRuleRequest) (*CountryMarkupRule, error)
	ListCountryRules(ctx context.Context) ([]CountryMarkupRule, error)
}
