package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// ServiceTypePackage is the default service type for full tour packages.
const ServiceTypePackage = "package"

// TaxMode represents how tax is applied to the package total.
type TaxMode string

const (
	TaxModeExclusive TaxMode = "exclusive" // net + tax
	TaxModeInclusive TaxMode = "inclusive" // net already includes tax
)

// TaxDefinition is a country- and service-type-scoped tax rate.
type TaxDefinition struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	CountryCode string       `gorm:"type:char(2);not null;index:idx_tax_country_service,unique" json:"country_code"`
	ServiceType string       `gorm:"type:text;not null;index:idx_tax_country_service,unique" json:"service_type"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	Rate        float64      `gorm:"type:numeric(6,4);not null" json:"rate"` // fraction, e.g. 0.09 for 9%
	TaxMode     TaxMode      `gorm:"column:tax_mode;type:text;not null" json:"tax_mode"`
	IsEnabled   bool         `gorm:"column:is_enabled;not null;default:true" json:"is_enabled"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (TaxDefinition) TableName() string { return "tax_definitions" }

func (t *TaxDefinition) Validate() error {
	if len(t.CountryCode) != 2 {
		return ErrInvalidCountryCode
	}
	if t.ServiceType == "" {
		return ErrInvalidServiceType
	}
	if t.TaxMode != TaxModeExclusive && t.TaxMode != TaxModeInclusive {
		return ErrInvalidTaxMode
	}
	if t.Rate < 0 {
		return ErrInvalidTaxRate
	}
	return nil
}
