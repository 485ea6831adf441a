package service

import (
	"context"

	pricingdomain "github.com/wouldcart/triplexa/internal/pricing/domain"
	taxdomain "github.com/wouldcart/triplexa/internal/tax/domain"
	taxservice "github.com/wouldcart/triplexa/internal/tax/service"
	"go.uber.org/zap"
)

// computeTax applies the destination's tax rate to the net package cost.
// Inclusive mode only extracts the tax portion for display; the final price
// stays the net amount. Rate resolution failures degrade to no tax with a
// warning.
func (s *Service) computeTax(
	ctx context.Context,
	net float64,
	settings pricingdomain.TaxSettings,
	countryCode string,
) (pricingdomain.TaxBreakdown, float64, []string) {
	if !settings.Enabled {
		return pricingdomain.TaxBreakdown{Enabled: false}, net, nil
	}

	def, err := s.taxResolver.ResolveRate(ctx, countryCode, settings.ServiceType)
	if err != nil {
		s.log.Warn("tax rate lookup failed", zap.String("country", countryCode), zap.Error(err))
		s.notifier.Warn(ctx, "tax rate lookup failed; no tax applied")
		return pricingdomain.TaxBreakdown{Enabled: true}, net,
			[]string{"tax rate lookup failed; no tax applied"}
	}
	if def == nil {
		return pricingdomain.TaxBreakdown{Enabled: true}, net,
			[]string{"no tax definition for destination; no tax applied"}
	}

	inclusive := def.TaxMode == taxdomain.TaxModeInclusive
	if settings.Inclusive != nil {
		inclusive = *settings.Inclusive
	}

	if inclusive {
		amount := taxservice.ComputeTaxInclusive(net, def.Rate)
		return pricingdomain.TaxBreakdown{
			Enabled:   true,
			Rate:      def.Rate,
			Amount:    amount,
			Inclusive: true,
		}, net, nil
	}

	amount := taxservice.ComputeTaxExclusive(net, def.Rate)
	return pricingdomain.TaxBreakdown{
		Enabled: true,
		Rate:    def.Rate,
		Amount:  amount,
	}, roundMoney(net + amount), nil
}
