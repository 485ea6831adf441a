package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// TermsConditions is free-text proposal copy. All fields are editable;
// empty fields can be filled from a country template.
type TermsConditions struct {
	PaymentTerms       string   `json:"payment_terms"`
	CancellationPolicy string   `json:"cancellation_policy"`
	Inclusions         []string `json:"inclusions"`
	Exclusions         []string `json:"exclusions"`
	AdditionalTerms    string   `json:"additional_terms"`
}

// IsEmpty reports whether no field carries content.
func (t TermsConditions) IsEmpty() bool {
	return t.PaymentTerms == "" &&
		t.CancellationPolicy == "" &&
		len(t.Inclusions) == 0 &&
		len(t.Exclusions) == 0 &&
		t.AdditionalTerms == ""
}

// TermsTemplate is a global named default, keyed by country. Code is a
// URL-safe slug derived from the name.
type TermsTemplate struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	Code        string          `gorm:"type:text;not null;uniqueIndex" json:"code"`
	Name        string          `gorm:"type:text;not null" json:"name"`
	CountryCode string          `gorm:"type:char(2);index" json:"country_code"`
	Data        TermsConditions `gorm:"type:jsonb;serializer:json" json:"data"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (TermsTemplate) TableName() string { return "terms_templates" }

var (
	ErrInvalidName     = errors.New("invalid_template_name")
	ErrInvalidID       = errors.New("invalid_template_id")
	ErrTemplateExists  = errors.New("template_already_exists")
	ErrTemplateMissing = errors.New("template_not_found")
)

type CreateTemplateRequest struct {
	Name        string          `json:"name"`
	CountryCode string          `json:"country_code"`
	Data        TermsConditions `json:"data"`
}

type UpdateTemplateRequest struct {
	ID          string           `json:"id"`
	Name        *string          `json:"name,omitempty"`
	CountryCode *string          `json:"country_code,omitempty"`
	Data        *TermsConditions `json:"data,omitempty"`
}

type Repository interface {
	Insert(ctx context.Context, template *TermsTemplate) error
	FindByID(ctx context.Context, id snowflake.ID) (*TermsTemplate, error)
	FindByCountry(ctx context.Context, countryCode string) (*TermsTemplate, error)
	List(ctx context.Context) ([]TermsTemplate, error)
	Update(ctx context.Context, template *TermsTemplate) error
	Delete(ctx context.Context, id snowflake.ID) error
}

type Service interface {
	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*TermsTemplate, error)
	ListTemplates(ctx context.Context) ([]TermsTemplate, error)
	UpdateTemplate(ctx context.Context, req UpdateTemplateRequest) (*TermsTemplate, error)
	DeleteTemplate(ctx context.Context, id string) error
	// ApplyDefaults fills the empty fields of terms from the destination
	// country's template. Terms already filled in are left untouched.
	ApplyDefaults(ctx context.Context, terms TermsConditions, countryCode string) (TermsConditions, error)
}
