package domain

import (
	"context"
	"errors"

	"github.com/wouldcart/triplexa/pkg/db/pagination"
)

type CreateEnquiryRequest struct {
	CustomerName       string  `json:"customer_name"`
	CustomerEmail      string  `json:"customer_email"`
	CustomerPhone      string  `json:"customer_phone"`
	DestinationCountry string  `json:"destination_country"`
	Adults             int     `json:"adults"`
	Children           int     `json:"children"`
	BudgetMin          float64 `json:"budget_min"`
	BudgetMax          float64 `json:"budget_max"`
	TripDays           int     `json:"trip_days"`
}

type UpdateEnquiryRequest struct {
	ID                 string         `json:"id"`
	DestinationCountry *string        `json:"destination_country,omitempty"`
	Adults             *int           `json:"adults,omitempty"`
	Children           *int           `json:"children,omitempty"`
	BudgetMin          *float64       `json:"budget_min,omitempty"`
	BudgetMax          *float64       `json:"budget_max,omitempty"`
	TripDays           *int           `json:"trip_days,omitempty"`
	Status             *EnquiryStatus `json:"status,omitempty"`
}

type ListEnquiryRequest struct {
	PageToken string
	PageSize  int32
	Status    string
	Country   string
}

type ListEnquiryResponse struct {
	pagination.PageInfo
	Enquiries []Enquiry `json:"enquiries"`
}

type Service interface {
	Create(context.Context, CreateEnquiryRequest) (Enquiry, error)
	GetByID(ctx context.Context, id string) (Enquiry, error)
	List(context.Context, ListEnquiryRequest) (ListEnquiryResponse, error)
	Update(context.Context, UpdateEnquiryRequest) (Enquiry, error)
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidPax      = errors.New("invalid_pax")
	ErrInvalidBudget   = errors.New("invalid_budget")
	ErrInvalidTripDays = errors.New("invalid_trip_days")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
