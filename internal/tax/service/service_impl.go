package service

import (
	"context"
	"math"

	taxdomain "github.com/wouldcart/triplexa/internal/tax/domain"
	"go.uber.org/fx"
)

type resolverParam struct {
	fx.In

	Repository taxdomain.Repository
}

type resolver struct {
	repo taxdomain.Repository
}

func NewResolver(p resolverParam) taxdomain.Resolver {
	return &resolver{repo: p.Repository}
}

func (r *resolver) ResolveRate(ctx context.Context, countryCode, serviceType string) (*taxdomain.TaxDefinition, error) {
	if serviceType == "" {
		serviceType = taxdomain.ServiceTypePackage
	}
	def, err := r.repo.FindActive(ctx, countryCode, serviceType)
	if err != nil {
		return nil, err
	}
	if def == nil || def.Rate <= 0 {
		return nil, nil
	}
	return def, nil
}

// ComputeTaxExclusive calculates tax added on top of the net amount.
// Rounding happens only here to keep displayed values stable at 2dp.
func ComputeTaxExclusive(net, rate float64) float64 {
	if net <= 0 || rate <= 0 {
		return 0
	}
	return roundMoney(net * rate)
}

// ComputeTaxInclusive extracts the tax portion already contained in the net
// amount. The caller does not add it again.
func ComputeTaxInclusive(net, rate float64) float64 {
	if net <= 0 || rate <= 0 {
		return 0
	}
	return roundMoney(net * (rate / (1 + rate)))
}

func roundMoney(raw float64) float64 {
	return math.Round(raw*100) / 100
}
