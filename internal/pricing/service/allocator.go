package service

import (
	pricingdomain "github.com/wouldcart/triplexa/internal/pricing/domain"
)

// allocate splits the final price across travellers. Equal mode divides the
// group total evenly. Separate mode applies the configured adult and child
// markups to an evenly divided per-person base, then uses the marked-up
// figures as weights to redistribute the actual final price, so the
// per-person amounts are indicative rather than exact.
func allocate(
	finalPrice float64,
	adults, children int,
	settings pricingdomain.AllocationSettings,
) (pricingdomain.PerPersonBreakdown, []string) {
	totalPax := adults + children
	if totalPax <= 0 {
		return pricingdomain.PerPersonBreakdown{
			Adult:   roundMoney(finalPrice),
			Average: roundMoney(finalPrice),
		}, []string{"enquiry has no travellers; per-person amounts are the group total"}
	}

	rawAvg := finalPrice / float64(totalPax)

	if settings.Mode != pricingdomain.AllocationSeparate {
		per := roundMoney(rawAvg)
		bd := pricingdomain.PerPersonBreakdown{
			Adult:      per,
			Average:    per,
			AdultTotal: roundMoney(rawAvg * float64(adults)),
		}
		if children > 0 {
			bd.Child = per
			bd.ChildTotal = roundMoney(rawAvg * float64(children))
		}
		return bd, nil
	}

	adultWeight := applyPaxMarkup(rawAvg, settings.AdultMarkup)
	childWeight := applyPaxMarkup(rawAvg, settings.ChildMarkup)

	totalWeight := float64(adults)*adultWeight + float64(children)*childWeight
	if totalWeight <= 0 {
		return allocate(finalPrice, adults, children, pricingdomain.AllocationSettings{
			Mode: pricingdomain.AllocationEqual,
		})
	}

	adultShare := finalPrice * adultWeight / totalWeight
	childShare := finalPrice * childWeight / totalWeight

	bd := pricingdomain.PerPersonBreakdown{
		Adult:      roundMoney(adultShare),
		AdultTotal: roundMoney(adultShare * float64(adults)),
		Average:    roundMoney(rawAvg),
	}
	if children > 0 {
		bd.Child = roundMoney(childShare)
		bd.ChildTotal = roundMoney(childShare * float64(children))
	}
	return bd, nil
}

// applyPaxMarkup computes the indicative per-person figure used as an
// allocation weight: the evenly divided base plus the configured markup.
func applyPaxMarkup(base float64, m pricingdomain.PaxMarkup) float64 {
	v := sanitizeAmount(m.Value)
	switch m.Type {
	case pricingdomain.ValueFixed:
		return base + v
	default:
		return base * (1 + v/100)
	}
}
