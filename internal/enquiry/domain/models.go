package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type EnquiryStatus string

const (
	EnquiryStatusNew       EnquiryStatus = "new"
	EnquiryStatusInProcess EnquiryStatus = "in_process"
	EnquiryStatusClosed    EnquiryStatus = "closed"
)

type Enquiry struct {
	ID                 snowflake.ID  `gorm:"primaryKey" json:"id"`
	CustomerName       string        `gorm:"not null" json:"customer_name"`
	CustomerEmail      string        `gorm:"type:text" json:"customer_email,omitempty"`
	CustomerPhone      string        `gorm:"type:text" json:"customer_phone,omitempty"`
	DestinationCountry string        `gorm:"type:char(2);index" json:"destination_country"`
	Adults             int           `gorm:"not null;default:0" json:"adults"`
	Children           int           `gorm:"not null;default:0" json:"children"`
	BudgetMin          float64       `gorm:"not null;default:0" json:"budget_min"`
	BudgetMax          float64       `gorm:"not null;default:0" json:"budget_max"`
	TripDays           int           `gorm:"not null;default:0" json:"trip_days"`
	Status             EnquiryStatus `gorm:"type:text;not null;default:'new'" json:"status"`
	CreatedAt          time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Enquiry) TableName() string { return "enquiries" }

// TotalPax returns the passenger count. Callers dividing by it must guard zero.
func (e Enquiry) TotalPax() int {
	return e.Adults + e.Children
}
