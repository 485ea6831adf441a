package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type ListFilter struct {
	CountryCode string
	ServiceType string
	IsEnabled   *bool
}

type Repository interface {
	FindActive(ctx context.Context, countryCode, serviceType string) (*TaxDefinition, error)
	Create(ctx context.Context, def *TaxDefinition) error
	FindByID(ctx context.Context, id snowflake.ID) (*TaxDefinition, error)
	List(ctx context.Context, filter ListFilter) ([]TaxDefinition, error)
	Update(ctx context.Context, def *TaxDefinition) error
}
