// Package domain contains the itinerary read model consumed by pricing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type ItineraryDay struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	EnquiryID         snowflake.ID `gorm:"not null;index" json:"enquiry_id"`
	DayNumber         int          `gorm:"not null" json:"day_number"`
	Title             string       `gorm:"type:text" json:"title,omitempty"`
	AccommodationCost float64      `gorm:"not null;default:0" json:"accommodation_cost"`
	ActivityCost      float64      `gorm:"not null;default:0" json:"activity_cost"`
	TransportCost     float64      `gorm:"not null;default:0" json:"transport_cost"`
	MealCost          float64      `gorm:"not null;default:0" json:"meal_cost"`
	CreatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ItineraryDay) TableName() string { return "itinerary_days" }

// TotalCost sums the per-day service costs. Absent fields are stored as 0.
func (d ItineraryDay) TotalCost() float64 {
	return d.AccommodationCost + d.ActivityCost + d.TransportCost + d.MealCost
}

// AccommodationOption is one package tier (standard/optional/alternative)
// offered against an enquiry. OptionNumber is 1..3.
type AccommodationOption struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	EnquiryID    snowflake.ID `gorm:"not null;index" json:"enquiry_id"`
	OptionNumber int          `gorm:"not null" json:"option_number"`
	Label        string       `gorm:"type:text" json:"label,omitempty"`
	BaseTotal    float64      `gorm:"not null;default:0" json:"base_total"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AccommodationOption) TableName() string { return "accommodation_options" }
