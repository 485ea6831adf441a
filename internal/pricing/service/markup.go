package service

import (
	"context"
	"fmt"

	markupdomain "github.com/wouldcart/triplexa/internal/markup/domain"
	pricingdomain "github.com/wouldcart/triplexa/internal/pricing/domain"
	"go.uber.org/zap"
)

// computeMarkup applies the requested strategy to the base cost. Rule
// lookup failures fall back to the configured default percentage with a
// warning rather than failing the pipeline.
func (s *Service) computeMarkup(
	ctx context.Context,
	baseCost float64,
	totalPax int,
	settings pricingdomain.MarkupSettings,
	countryCode string,
) (pricingdomain.MarkupBreakdown, []string) {
	var warnings []string
	amount := 0.0

	switch settings.Type {
	case pricingdomain.MarkupFixed:
		amount = sanitizeAmount(settings.FixedPerPerson) * float64(totalPax)

	case pricingdomain.MarkupSlab:
		slab, err := s.markupRepo.SlabForAmount(ctx, baseCost)
		if err != nil {
			s.log.Warn("slab lookup failed", zap.Error(err))
			warnings = append(warnings, "markup slab lookup failed; no markup applied")
			s.notifier.Warn(ctx, "markup slab lookup failed")
		} else if slab == nil {
			warnings = append(warnings, fmt.Sprintf("no active markup slab matches base cost %.2f", baseCost))
		} else {
			amount = applyValueRule(baseCost, totalPax, markupdomain.MarkupValueType(slab.MarkupType), slab.MarkupValue)
		}

	case pricingdomain.MarkupCountryBased:
		rule, err := s.markupRepo.RuleForCountry(ctx, countryCode)
		defaultPct := s.pricingCfg.Get().DefaultMarkupPercent
		if err != nil {
			s.log.Warn("country markup lookup failed", zap.String("country", countryCode), zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("country markup lookup failed; default %.0f%% applied", defaultPct))
			s.notifier.Warn(ctx, "country markup lookup failed; default markup applied")
			amount = baseCost * sanitizeAmount(defaultPct) / 100
		} else if rule == nil {
			warnings = append(warnings, fmt.Sprintf("no markup rule for country %q; default %.0f%% applied", countryCode, defaultPct))
			amount = baseCost * sanitizeAmount(defaultPct) / 100
		} else {
			amount = applyValueRule(baseCost, totalPax, rule.MarkupType, rule.MarkupValue)
		}

	default: // percentage
		amount = baseCost * sanitizeAmount(settings.Percentage) / 100
	}

	amount = roundMoney(amount)

	// Effective percentage is back-computed even for fixed/slab/country
	// modes so displays stay consistent.
	percentage := 0.0
	if baseCost > 0 {
		percentage = roundMoney(amount / baseCost * 100)
	}

	markupType := settings.Type
	if markupType == "" {
		markupType = pricingdomain.MarkupPercentage
	}

	return pricingdomain.MarkupBreakdown{
		Type:       markupType,
		Percentage: percentage,
		Amount:     amount,
	}, warnings
}

func applyValueRule(baseCost float64, totalPax int, kind markupdomain.MarkupValueType, value float64) float64 {
	value = sanitizeAmount(value)
	if kind == markupdomain.MarkupValueFixed {
		return value * float64(totalPax)
	}
	return baseCost * value / 100
}
