package domain

import "time"

type Country struct {
	Code         string    `json:"code" gorm:"type:char(2);primaryKey;column:code"`
	Name         string    `json:"name" gorm:"type:text;not null"`
	CurrencyCode string    `json:"currency_code" gorm:"type:char(3);not null;column:currency_code"`
	CreatedAt    time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Country) TableName() string { return "countries" }

type Currency struct {
	Code      string    `json:"code" gorm:"type:char(3);primaryKey;column:code"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Symbol    *string   `json:"symbol,omitempty" gorm:"type:text"`
	MinorUnit int16     `json:"minor_unit" gorm:"type:smallint;not null"`
	IsActive  bool      `json:"is_active,omitempty" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at,omitempty" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Currency) TableName() string { return "currencies" }

// CurrencyInfo is the read-side shape handed to the pricing engine.
type CurrencyInfo struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}
