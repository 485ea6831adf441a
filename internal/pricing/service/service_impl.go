package service

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/wouldcart/triplexa/internal/clock"
	"github.com/wouldcart/triplexa/internal/config"
	enquirydomain "github.com/wouldcart/triplexa/internal/enquiry/domain"
	itinerarydomain "github.com/wouldcart/triplexa/internal/itinerary/domain"
	markupdomain "github.com/wouldcart/triplexa/internal/markup/domain"
	"github.com/wouldcart/triplexa/internal/notify"
	"github.com/wouldcart/triplexa/internal/pricing/domain"
	referencedomain "github.com/wouldcart/triplexa/internal/reference/domain"
	taxdomain "github.com/wouldcart/triplexa/internal/tax/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	clock       clock.Clock
	pricingCfg  *config.PricingConfigHolder
	notifier    notify.Notifier
	enquiryRepo enquirydomain.Repository
	itinerary   itinerarydomain.Provider
	markupRepo  markupdomain.Repository
	taxResolver taxdomain.Resolver
	reference   referencedomain.Repository
}

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	Clock       clock.Clock
	PricingCfg  *config.PricingConfigHolder
	Notifier    notify.Notifier
	EnquiryRepo enquirydomain.Repository
	Itinerary   itinerarydomain.Provider
	MarkupRepo  markupdomain.Repository
	TaxResolver taxdomain.Resolver
	Reference   referencedomain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("pricing.service"),
		clock:       p.Clock,
		pricingCfg:  p.PricingCfg,
		notifier:    p.Notifier,
		enquiryRepo: p.EnquiryRepo,
		itinerary:   p.Itinerary,
		markupRepo:  p.MarkupRepo,
		taxResolver: p.TaxResolver,
		reference:   p.Reference,
	}
}

// Calculate runs the full pipeline for one enquiry: resolve base cost,
// apply markup, discount and tax, then allocate per person. The pipeline
// never fails on bad pricing data; problems surface as snapshot warnings.
func (s *Service) Calculate(ctx context.Context, req domain.CalculateRequest) (*domain.PricingSnapshot, error) {
	id, err := snowflake.ParseString(req.EnquiryID)
	if err != nil {
		return nil, domain.ErrInvalidEnquiry
	}

	enquiry, err := s.enquiryRepo.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEnquiryNotFound
		}
		return nil, err
	}
	if enquiry == nil {
		return nil, domain.ErrEnquiryNotFound
	}

	var warnings []string

	days, err := s.itinerary.ListDays(ctx, id)
	if err != nil {
		s.log.Warn("itinerary day load failed", zap.String("enquiry_id", req.EnquiryID), zap.Error(err))
		warnings = append(warnings, "itinerary could not be loaded; falling back to budget estimate")
		days = nil
	}
	options, err := s.itinerary.ListOptions(ctx, id)
	if err != nil {
		s.log.Warn("accommodation option load failed", zap.String("enquiry_id", req.EnquiryID), zap.Error(err))
		options = nil
	}

	cfg := s.pricingCfg.Get()

	base := resolveBaseCost(days, options, req.SelectedPackageOption, *enquiry, cfg.BudgetEstimateFactor)
	if base.Source == domain.SourceNone {
		warnings = append(warnings, "no itinerary or budget available; base cost is zero")
	}

	totalPax := enquiry.TotalPax()

	markup, w := s.computeMarkup(ctx, base.Amount, totalPax, req.Markup, enquiry.DestinationCountry)
	warnings = append(warnings, w...)

	totalPackageCost := roundMoney(base.Amount + markup.Amount)

	discount, net, w := computeDiscount(totalPackageCost, req.Discount)
	warnings = append(warnings, w...)

	tax, finalPrice, w := s.computeTax(ctx, net, req.Tax, enquiry.DestinationCountry)
	warnings = append(warnings, w...)

	if finalPrice < 0 {
		finalPrice = 0
	}

	perPerson, w := allocate(finalPrice, enquiry.Adults, enquiry.Children, req.Allocation)
	warnings = append(warnings, w...)

	snapshot := &domain.PricingSnapshot{
		EnquiryID:        req.EnquiryID,
		BaseCost:         base.Amount,
		BaseCostSource:   base.Source,
		Markup:           markup,
		Discount:         discount,
		Tax:              tax,
		TotalPackageCost: totalPackageCost,
		NetPackageCost:   net,
		FinalPrice:       finalPrice,
		PerPerson:        perPerson,
		Currency:         s.resolveCurrency(ctx, enquiry.DestinationCountry, cfg),
		Adults:           enquiry.Adults,
		Children:         enquiry.Children,
		Warnings:         warnings,
		LastCalculated:   s.clock.Now(),
	}

	s.log.Info("pricing calculated",
		zap.String("enquiry_id", req.EnquiryID),
		zap.String("base_cost_source", string(base.Source)),
		zap.Float64("final_price", finalPrice),
	)

	return snapshot, nil
}

func (s *Service) resolveCurrency(ctx context.Context, countryCode string, cfg config.PricingConfig) domain.CurrencyRef {
	info, err := s.reference.CurrencyForCountry(ctx, countryCode)
	if err != nil {
		s.log.Warn("currency lookup failed", zap.String("country", countryCode), zap.Error(err))
		info = nil
	}
	if info == nil {
		return domain.CurrencyRef{
			Code:   cfg.DefaultCurrencyCode,
			Symbol: cfg.DefaultCurrencySymbol,
		}
	}
	return domain.CurrencyRef{Code: info.Code, Symbol: info.Symbol}
}
