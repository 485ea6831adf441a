package service

import (
	"math"

	enquirydomain "github.com/wouldcart/triplexa/internal/enquiry/domain"
	itinerarydomain "github.com/wouldcart/triplexa/internal/itinerary/domain"
	pricingdomain "github.com/wouldcart/triplexa/internal/pricing/domain"
)

type baseCostResolution struct {
	Amount float64
	Source pricingdomain.BaseCostSource
}

// resolveBaseCost picks the base cost in priority order: selected package
// option, itinerary day sum, budget heuristic, none. The budget path scales
// the budget midpoint by the configured factor to leave markup headroom and
// is flagged so callers can tell it apart from authoritative figures.
func resolveBaseCost(
	days []itinerarydomain.ItineraryDay,
	options []itinerarydomain.AccommodationOption,
	selectedOption int,
	enquiry enquirydomain.Enquiry,
	budgetFactor float64,
) baseCostResolution {
	if selectedOption >= 1 && selectedOption <= 3 {
		for _, option := range options {
			if option.OptionNumber == selectedOption {
				return baseCostResolution{
					Amount: sanitizeAmount(option.BaseTotal),
					Source: pricingdomain.SourcePackageOption,
				}
			}
		}
	}

	if len(days) > 0 {
		total := 0.0
		for _, day := range days {
			total += sanitizeAmount(day.TotalCost())
		}
		return baseCostResolution{
			Amount: total,
			Source: pricingdomain.SourceItinerary,
		}
	}

	budgetMin := sanitizeAmount(enquiry.BudgetMin)
	budgetMax := sanitizeAmount(enquiry.BudgetMax)
	if budgetMax > 0 {
		mid := (budgetMin + budgetMax) / 2
		return baseCostResolution{
			Amount: roundMoney(mid * budgetFactor),
			Source: pricingdomain.SourceBudgetEstimate,
		}
	}

	return baseCostResolution{Amount: 0, Source: pricingdomain.SourceNone}
}

// sanitizeAmount coerces negative and non-finite inputs to 0. Lenient by
// policy: malformed numbers degrade to zero instead of failing the run.
func sanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func roundMoney(raw float64) float64 {
	return math.Round(raw*100) / 100
}
