package domain

import "errors"

var (
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidCountryCode = errors.New("invalid_country_code")
	ErrInvalidServiceType = errors.New("invalid_service_type")
	ErrInvalidTaxMode     = errors.New("invalid_tax_mode")
	ErrInvalidTaxRate     = errors.New("invalid_tax_rate")
)
