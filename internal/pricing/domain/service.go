package domain

import (
	"context"
	"errors"
)

type Service interface {
	Calculate(ctx context.Context, req CalculateRequest) (*PricingSnapshot, error)
}

var (
	ErrInvalidEnquiry  = errors.New("invalid_enquiry")
	ErrEnquiryNotFound = errors.New("enquiry_not_found")
)
