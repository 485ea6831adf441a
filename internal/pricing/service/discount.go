package service

import (
	"fmt"

	pricingdomain "github.com/wouldcart/triplexa/internal/pricing/domain"
)

// computeDiscount subtracts the configured discount from the total package
// cost. A net going negative is a caller warning, not an error.
func computeDiscount(
	totalPackageCost float64,
	settings pricingdomain.DiscountSettings,
) (pricingdomain.DiscountBreakdown, float64, []string) {
	if !settings.Enabled {
		return pricingdomain.DiscountBreakdown{Enabled: false}, totalPackageCost, nil
	}

	value := sanitizeAmount(settings.Value)
	amount := value
	if settings.Type != pricingdomain.DiscountFixed {
		amount = totalPackageCost * value / 100
	}
	amount = roundMoney(amount)

	net := roundMoney(totalPackageCost - amount)
	var warnings []string
	if net < 0 {
		warnings = append(warnings, fmt.Sprintf("discount %.2f exceeds package cost %.2f", amount, totalPackageCost))
	}

	discountType := settings.Type
	if discountType == "" {
		discountType = pricingdomain.DiscountPercentage
	}

	return pricingdomain.DiscountBreakdown{
		Enabled: true,
		Type:    discountType,
		Value:   value,
		Amount:  amount,
	}, net, warnings
}
