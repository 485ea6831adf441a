package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// Provider is the read-only contract the pricing resolver consumes.
type Provider interface {
	ListDays(ctx context.Context, enquiryID snowflake.ID) ([]ItineraryDay, error)
	ListOptions(ctx context.Context, enquiryID snowflake.ID) ([]AccommodationOption, error)
}

// Repository adds the write side used by the itinerary admin endpoints.
type Repository interface {
	Provider
	ReplaceDays(ctx context.Context, enquiryID snowflake.ID, days []ItineraryDay) error
	ReplaceOptions(ctx context.Context, enquiryID snowflake.ID, options []AccommodationOption) error
}
