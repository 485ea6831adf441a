package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// MarkupValueType is how a slab or country rule expresses its margin.
type MarkupValueType string

const (
	MarkupValuePercentage MarkupValueType = "percentage"
	MarkupValueFixed      MarkupValueType = "fixed"
)

// MarkupSlab is a cost-range-keyed markup rule. A base cost matches the slab
// whose [MinAmount, MaxAmount) range contains it; when ranges overlap the
// slab with the lowest Position wins.
type MarkupSlab struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:text;not null" json:"name"`
	MinAmount   float64         `gorm:"not null" json:"min_amount"`
	MaxAmount   float64         `gorm:"not null" json:"max_amount"`
	MarkupType  MarkupValueType `gorm:"type:text;not null" json:"markup_type"`
	MarkupValue float64         `gorm:"not null" json:"markup_value"`
	Position    int             `gorm:"not null;default:0" json:"position"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (MarkupSlab) TableName() string { return "markup_slabs" }

func (s *MarkupSlab) Validate() error {
	if s.Name == "" {
		return ErrInvalidName
	}
	if s.MarkupType != MarkupValuePercentage && s.MarkupType != MarkupValueFixed {
		return ErrInvalidMarkupType
	}
	if s.MinAmount < 0 || s.MaxAmount <= s.MinAmount {
		return ErrInvalidRange
	}
	if s.MarkupValue < 0 {
		return ErrInvalidMarkupValue
	}
	return nil
}

// Contains reports whether amount falls in the slab's half-open range.
func (s MarkupSlab) Contains(amount float64) bool {
	return amount >= s.MinAmount && amount < s.MaxAmount
}

// CountryMarkupRule maps a destination country to a markup rule.
type CountryMarkupRule struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	CountryCode string          `gorm:"type:char(2);not null;uniqueIndex" json:"country_code"`
	MarkupType  MarkupValueType `gorm:"type:text;not null" json:"markup_type"`
	MarkupValue float64         `gorm:"not null" json:"markup_value"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (CountryMarkupRule) TableName() string { return "country_markup_rules" }

func (r *CountryMarkupRule) Validate() error {
	if len(r.CountryCode) != 2 {
		return ErrInvalidCountryCode
	}
	if r.MarkupType != MarkupValuePercentage && r.MarkupType != MarkupValueFixed {
		return ErrInvalidMarkupType
	}
	if r.MarkupValue < 0 {
		return ErrInvalidMarkupValue
	}
	return nil
}
