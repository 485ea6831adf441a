// Package domain contains the pricing pipeline types. A PricingSnapshot is
// the complete computed result for one enquiry at one point in time.
package domain

import "time"

// MarkupType selects the markup strategy applied to the base cost.
type MarkupType string

const (
	MarkupPercentage   MarkupType = "percentage"
	MarkupFixed        MarkupType = "fixed"
	MarkupSlab         MarkupType = "slab"
	MarkupCountryBased MarkupType = "country_based"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// ValueKind is how a per-pax markup expresses its margin in separate
// allocation mode.
type ValueKind string

const (
	ValuePercentage ValueKind = "percentage"
	ValueFixed      ValueKind = "fixed"
)

type AllocationMode string

const (
	AllocationEqual    AllocationMode = "equal"
	AllocationSeparate AllocationMode = "separate"
)

// BaseCostSource flags where the resolver found the base cost, so budget
// estimates are distinguishable from itinerary-derived figures.
type BaseCostSource string

const (
	SourceItinerary      BaseCostSource = "itinerary"
	SourcePackageOption  BaseCostSource = "package_option"
	SourceBudgetEstimate BaseCostSource = "budget_estimate"
	SourceNone           BaseCostSource = "none"
)

type MarkupBreakdown struct {
	Type MarkupType `json:"type"`
	// Percentage is always back-computed from Amount for display
	// consistency, whatever the input mode was.
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
}

type DiscountBreakdown struct {
	Enabled bool         `json:"enabled"`
	Type    DiscountType `json:"type,omitempty"`
	Value   float64      `json:"value,omitempty"`
	Amount  float64      `json:"amount"`
}

type TaxBreakdown struct {
	Enabled   bool    `json:"enabled"`
	Rate      float64 `json:"rate,omitempty"`
	Amount    float64 `json:"amount"`
	Inclusive bool    `json:"inclusive"`
}

type PerPersonBreakdown struct {
	Adult      float64 `json:"adult"`
	Child      float64 `json:"child"`
	Average    float64 `json:"average"`
	AdultTotal float64 `json:"adult_total"`
	ChildTotal float64 `json:"child_total"`
}

type CurrencyRef struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// PricingSnapshot is the computed result of one pricing run.
type PricingSnapshot struct {
	EnquiryID      string         `json:"enquiry_id"`
	BaseCost       float64        `json:"base_cost"`
	BaseCostSource BaseCostSource `json:"base_cost_source"`

	Markup   MarkupBreakdown   `json:"markup"`
	Discount DiscountBreakdown `json:"discount"`
	Tax      TaxBreakdown      `json:"tax"`

	TotalPackageCost float64 `json:"total_package_cost"`
	NetPackageCost   float64 `json:"net_package_cost"`
	FinalPrice       float64 `json:"final_price"`

	PerPerson PerPersonBreakdown `json:"per_person"`
	Currency  CurrencyRef        `json:"currency"`

	Adults   int `json:"adults"`
	Children int `json:"children"`

	// Warnings surfaces non-fatal conditions (no matching slab, unknown
	// country, discount exceeding cost) instead of failing the run.
	Warnings []string `json:"warnings,omitempty"`

	LastCalculated time.Time `json:"last_calculated"`
}

type MarkupSettings struct {
	Type           MarkupType `json:"type"`
	Percentage     float64    `json:"percentage,omitempty"`
	FixedPerPerson float64    `json:"fixed_per_person,omitempty"`
}

type DiscountSettings struct {
	Enabled bool         `json:"enabled"`
	Type    DiscountType `json:"type,omitempty"`
	Value   float64      `json:"value,omitempty"`
}

type TaxSettings struct {
	Enabled     bool   `json:"enabled"`
	ServiceType string `json:"service_type,omitempty"`
	// Inclusive overrides the resolved definition's mode when set.
	Inclusive *bool `json:"inclusive,omitempty"`
}

type PaxMarkup struct {
	Type  ValueKind `json:"type"`
	Value float64   `json:"value"`
}

type AllocationSettings struct {
	Mode        AllocationMode `json:"mode"`
	AdultMarkup PaxMarkup      `json:"adult_markup,omitempty"`
	ChildMarkup PaxMarkup      `json:"child_markup,omitempty"`
}

// CalculateRequest drives one pipeline run for an enquiry.
type CalculateRequest struct {
	EnquiryID string `json:"enquiry_id"`
	// SelectedPackageOption picks an accommodation tier (1..3); 0 means
	// use the itinerary day sum.
	SelectedPackageOption int                `json:"selected_package_option,omitempty"`
	Markup                MarkupSettings     `json:"markup"`
	Discount              DiscountSettings   `json:"discount"`
	Tax                   TaxSettings        `json:"tax"`
	Allocation            AllocationSettings `json:"allocation"`
}
