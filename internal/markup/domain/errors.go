package domain

import "errors"

var (
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidMarkupType  = errors.New("invalid_markup_type")
	ErrInvalidMarkupValue = errors.New("invalid_markup_value")
	ErrInvalidRange       = errors.New("invalid_range")
	ErrInvalidCountryCode = errors.New("invalid_country_code")
	ErrInvalidID          = errors.New("invalid_id")
	ErrNotFound           = errors.New("not_found")
)
