package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/wouldcart/triplexa/internal/clock"
	"github.com/wouldcart/triplexa/internal/config"
	enquirydomain "github.com/wouldcart/triplexa/internal/enquiry/domain"
	itinerarydomain "github.com/wouldcart/triplexa/internal/itinerary/domain"
	markupdomain "github.com/wouldcart/triplexa/internal/markup/domain"
	"github.com/wouldcart/triplexa/internal/notify"
	"github.com/wouldcart/triplexa/internal/pricing/domain"
	referencedomain "github.com/wouldcart/triplexa/internal/reference/domain"
	taxdomain "github.com/wouldcart/triplexa/internal/tax/domain"
	"github.com/wouldcart/triplexa/pkg/db/pagination"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type enquiryRepoStub struct {
	enquiries map[snowflake.ID]*enquirydomain.Enquiry
}

func (s *enquiryRepoStub) Insert(context.Context, *gorm.DB, *enquirydomain.Enquiry) error {
	return nil
}

func (s *enquiryRepoStub) FindByID(_ context.Context, _ *gorm.DB, id snowflake.ID) (*enquirydomain.Enquiry, error) {
	e, ok := s.enquiries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (s *enquiryRepoStub) List(context.Context, *gorm.DB, enquirydomain.ListEnquiryFilter, pagination.Pagination) ([]*enquirydomain.Enquiry, error) {
	return nil, nil
}

func (s *enquiryRepoStub) Update(context.Context, *gorm.DB, *enquirydomain.Enquiry) error {
	return nil
}

type itineraryStub struct {
	days    []itinerarydomain.ItineraryDay
	options []itinerarydomain.AccommodationOption
	err     error
}

func (s *itineraryStub) ListDays(context.Context, snowflake.ID) ([]itinerarydomain.ItineraryDay, error) {
	return s.days, s.err
}

func (s *itineraryStub) ListOptions(context.Context, snowflake.ID) ([]itinerarydomain.AccommodationOption, error) {
	return s.options, s.err
}

type markupRepoStub struct {
	slab    *markupdomain.MarkupSlab
	rule    *markupdomain.CountryMarkupRule
	lookupE error
}

func (s *markupRepoStub) SlabForAmount(context.Context, float64) (*markupdomain.MarkupSlab, error) {
	return s.slab, s.lookupE
}

func (s *markupRepoStub) RuleForCountry(context.Context, string) (*markupdomain.CountryMarkupRule, error) {
	return s.rule, s.lookupE
}

func (s *markupRepoStub) ListSlabs(context.Context) ([]markupdomain.MarkupSlab, error) {
	return nil, nil
}

func (s *markupRepoStub) ListRules(context.Context) ([]markupdomain.CountryMarkupRule, error) {
	return nil, nil
}

func (s *markupRepoStub) SaveSlab(context.Context, *markupdomain.MarkupSlab) error { return nil }

func (s *markupRepoStub) SaveRule(context.Context, *markupdomain.CountryMarkupRule) error { return nil }

func (s *markupRepoStub) FindSlabByID(context.Context, string) (*markupdomain.MarkupSlab, error) {
	return nil, nil
}

type taxResolverStub struct {
	def *taxdomain.TaxDefinition
	err error
}

func (s *taxResolverStub) ResolveRate(context.Context, string, string) (*taxdomain.TaxDefinition, error) {
	return s.def, s.err
}

type referenceStub struct {
	info *referencedomain.CurrencyInfo
}

func (s *referenceStub) ListCountries(context.Context) ([]referencedomain.Country, error) {
	return nil, nil
}

func (s *referenceStub) ListCurrencies(context.Context) ([]referencedomain.Currency, error) {
	return nil, nil
}

func (s *referenceStub) CurrencyForCountry(context.Context, string) (*referencedomain.CurrencyInfo, error) {
	return s.info, nil
}

type fixture struct {
	svc       domain.Service
	enquiryID snowflake.ID
	enquiries *enquiryRepoStub
	itinerary *itineraryStub
	markups   *markupRepoStub
	taxes     *taxResolverStub
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	id := node.Generate()
	f := &fixture{
		enquiryID: id,
		enquiries: &enquiryRepoStub{
			enquiries: map[snowflake.ID]*enquirydomain.Enquiry{
				id: {
					ID:                 id,
					DestinationCountry: "TH",
					Adults:             2,
					Children:           1,
				},
			},
		},
		itinerary: &itineraryStub{},
		markups:   &markupRepoStub{},
		taxes:     &taxResolverStub{},
	}

	f.svc = NewService(ServiceParam{
		Log:   zap.NewNop(),
		Clock: clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		PricingCfg: config.NewStaticPricingConfigHolder(config.PricingConfig{
			DefaultMarkupPercent:  15,
			BudgetEstimateFactor:  0.7,
			DefaultCurrencyCode:   "USD",
			DefaultCurrencySymbol: "$",
		}),
		Notifier:    notify.NewNotifier(zap.NewNop()),
		EnquiryRepo: f.enquiries,
		Itinerary:   f.itinerary,
		MarkupRepo:  f.markups,
		TaxResolver: f.taxes,
		Reference:   &referenceStub{info: &referencedomain.CurrencyInfo{Code: "THB", Symbol: "฿"}},
	})
	return f
}

func (f *fixture) setDays(costs ...float64) {
	days := make([]itinerarydomain.ItineraryDay, 0, len(costs))
	for i, c := range costs {
		days = append(days, itinerarydomain.ItineraryDay{
			EnquiryID:         f.enquiryID,
			DayNumber:         i + 1,
			AccommodationCost: c,
		})
	}
	f.itinerary.days = days
}

func (f *fixture) setPax(adults, children int) {
	e := f.enquiries.enquiries[f.enquiryID]
	e.Adults = adults
	e.Children = children
}

func TestCalculate_PercentageMarkupEqualSplit(t *testing.T) {
	f := newFixture(t)
	f.setDays(400, 600)

	snap, err := f.svc.Calculate(context.Background(), domain.CalculateRequest{
		EnquiryID: f.enquiryID.String(),
		Markup:    domain.MarkupSettings{Type: domain.MarkupPercentage, Percentage: 15},
	})
	assert.NoError(t, err)

	assert.Equal(t, 1000.0, snap.BaseCost)
	assert.Equal(t, domain.SourceItinerary, snap.BaseCostSource)
	assert.Equal(t, 150.0, snap.Markup.Amount)
	assert.Equal(t, 1150.0, snap.TotalPackageCost)
	assert.Equal(t, 1150.0, snap.FinalPrice)

	assert.Equal(t, 383.33, snap.PerPerson.Average)
	assert.Equal(t, 383.33, snap.PerPerson.Adult)
	assert.Equal(t, 383.33, snap.PerPerson.Child)
	assert.Equal(t, 766.67, snap.PerPerson.AdultTotal)
	assert.Equal(t, 383.33, snap.PerPerson.ChildTotal)

	assert.Equal(t, "THB", snap.Currency.Code)
	assert.Empty(t, snap.Warnings)
}

func TestCalculate_FixedMarkupPerPerson(t *testing.T) {
	f := newFixture(t)
	f.setDays(2000)
	f.setPax(3, 1)

	snap, err := f.svc.Calculate(context.Background(), domain.CalculateRequest{
		EnquiryID: f.enquiryID.String(),
		Markup:    domain.MarkupSettings{Type: domain.MarkupFixed, FixedPerPerson: 50},
	})
	assert.NoError(t, err)

	assert.Equal(t, 200.0, snap.Markup.Amount)
	assert.Equal(t, 2200.0, snap.TotalPackageCost)
	assert.Equal(t, 10.0, snap.Markup.Percentage)
}

func TestCalculate_DiscountPercentage(t *testing.T) {
	f := newFixture(t)
	f.setDays(1000)

	snap, err := f.svc.Calculate(context.Background(), domain.CalculateRequest{
		EnquiryID: f.enquiryID.String(),
		Markup:    domain.MarkupSettings{Type: domain.MarkupPercentage, Percentage: 15},
		Discount:  domain.DiscountSettings{Enabled: true, Type: domain.DiscountPercentage, Value: 10},
	})
	assert.NoError(t, err)

	assert.Equal(t, 115.0, snap.Discount.Amount)
	assert.Equal(t, 1035.0, snap.NetPackageCost)
	assert.Equal(t, 1035.0, snap.FinalPrice)
}

func TestCalculate_ExclusiveTax(t *testing.T) {
	f := newFixture(t)
	f.setDays(1000)
	f.taxes.def = &taxdomain.TaxDefinition{
		CountryCode: "TH",
		ServiceType: taxdomain.ServiceTypePackage,
		Rate:        0.09,
		TaxMode:     taxdomain.TaxModeExclusive,
	}

	snap, err := f.svc.Calculate(context.Background(), domain.CalculateRequest{
		EnquiryID: f.enquiryID.String(),
		Markup:    domain.MarkupSettings{Type: domain.MarkupPercentage, Percentage: 15},
		Discount:  domain.DiscountSettings{Enabled: true, Type: domain.DiscountPercentage, Value: 10},
		Tax:       domain.TaxSettings{Enabled: true, ServiceType: taxdomain.ServiceTypePackage},
	})
	assert.NoError(t, err)

	assert.Equal(t, 93.15, snap.Tax.Amount)
	assert.False(t, snap.Tax.Inclusive)
	assert.Equal(t, 1128.15, snap.FinalPrice)
}

func TestCalculate_InclusiveTaxKeepsFinalPrice(t *testing.T) {
	f := newFixture(t)
	f.setDays(1000)
	f.taxes.def = &taxdomain.TaxDefinition{
		CountryCode: "TH",
		ServiceType: taxdomain.ServiceTypePackage,
		Rate:        0.10,
		TaxMode:     taxdomain.TaxModeInclusive,
	}

	snap, err := f.svc.Calculate(context.Background(), domain.CalculateRequest{
		EnquiryID: f.enquiryID.String(),
		Markup:    domain.MarkupSettings{Type: domain.MarkupPercentage, Percentage: 10},
		Tax:       domain.TaxSettings{Enabled: true, ServiceType: taxdomain.ServiceTypePackage},
	})
	assert.NoError(t, err)

	assert.True(t, snap.Tax.Inclusive)
	assert.Equal(t, 100.0, snap.Tax.Amount)
	assert.Equal(t, 1100.0, snap.FinalPrice)
}

func TestCalculate_ZeroPaxGuard(t *testing.T) {
	f := newFixture(t)
	f.setDays(1000)
	f.setPax(0, 0)

	snap, err := f.svc.Calculate(context.Background(), domain.CalculateRequest{
		EnquiryID: f.enquiryID.String(),
		Markup:    domain.MarkupSettings{Type: domain.MarkupPercentage, Percentage: 15},
	})
	assert.NoError(t, err)

	assert.Equal(t, snap.FinalPrice, snap.PerPerson.Adult)
	assert.Equal(t, 0.0, snap.PerPerson.Child)
	assert.NotEmpty(t, snap.Warnings)
}

func TestCalculate_SlabMarkup(t *testing.T) {
	f := newFixture(t)
	f.setDays(1000)
	f.markups.slab = &markupdomain.MarkupSlab{
		Name:        "standard",
		MinAmount:   0,
		MaxAmount:   5000,
		MarkupType:  markupdomain.MarkupValuePercentage,
		MarkupValue: 12,
		IsActive:    true,
	}

	snap, err := f.svc.Calculate(context.Background(), domain.CalculateRequest{
		EnquiryID: f.enquiryID.String(),
		Markup:    domain.MarkupSettings{Type: domain.MarkupSlab},
	})
	assert.NoError(t, err)

	assert.Equal(t, 120.0, snap.Markup.Amount)
	assert.Empty(t, snap.Warnings)
}

func TestCalculate_NoMatchingSlabWarns(t *testing.T) {
	f := newFixture(t)
	f.setDays(1000)

	snap, err := f.svc.Calculate(context.Background(), domain.CalculateRequest{
		EnquiryID: f.enquiryID.String(),
		Markup:    domain.MarkupSettings{Type: domain.MarkupSlab},
	})
	assert.NoError(t, err)

	assert.Equal(t, 0.0, snap.Markup.Amount)
	assert.NotEmpty(t, snap.Warnings)
}

func TestCalculate_CountryRuleFallsBackToDefault(t *testing.T) {
	f := newFixture(t)
	f.setDays(1000)

	snap, err := f.svc.Calculate(context.Background(), domain.CalculateRequest{
		EnquiryID: f.enquiryID.String(),
		Markup:    domain.MarkupSettings{Type: domain.MarkupCountryBased},
	})
	assert.NoError(t, err)

	// no rule configured: the default percentage applies with a warning
	assert.Equal(t, 150.0, snap.Markup.Amount)
	assert.NotEmpty(t, snap.Warnings)
}

func TestCalculate_CountryRuleLookupErrorFallsBack(t *testing.T) {
	f := newFixture(t)
	f.setDays(1000)
	f.markups.lookupE = errors.New("db down")

	snap, err := f.svc.Calculate(context.Background(), domain.CalculateRequest{
		EnquiryID: f.enquiryID.String(),
		Markup:    domain.MarkupSettings{Type: domain.MarkupCountryBased},
	})
	assert.NoError(t, err)

	assert.Equal(t, 150.0, snap.Markup.Amount)
	assert.NotEmpty(t, snap.Warnings)
}

func TestCalculate_BudgetEstimateFallback(t *testing.T) {
	f := newFixture(t)
	e := f.enquiries.enquiries[f.enquiryID]
	e.BudgetMin = 800
	e.BudgetMax = 1200

	snap, err := f.svc.Calculate(context.Background(), domain.CalculateRequest{
		EnquiryID: f.enquiryID.String(),
		Markup:    domain.MarkupSettings{Type: domain.MarkupPercentage, Percentage: 0},
	})
	assert.NoError(t, err)

	// midpoint 1000 scaled by the 0.7 estimate factor
	assert.Equal(t, 700.0, snap.BaseCost)
	assert.Equal(t, domain.SourceBudgetEstimate, snap.BaseCostSource)
}

func TestCalculate_PackageOptionSelected(t *testing.T) {
	f := newFixture(t)
	f.setDays(1000)
	f.itinerary.options = []itinerarydomain.AccommodationOption{
		{EnquiryID: f.enquiryID, OptionNumber: 1, Label: "Standard", BaseTotal: 900},
		{EnquiryID: f.enquiryID, OptionNumber: 2, Label: "Deluxe", BaseTotal: 1400},
	}

	snap, err := f.svc.Calculate(context.Background(), domain.CalculateRequest{
		EnquiryID:             f.enquiryID.String(),
		SelectedPackageOption: 2,
		Markup:                domain.MarkupSettings{Type: domain.MarkupPercentage, Percentage: 0},
	})
	assert.NoError(t, err)

	assert.Equal(t, 1400.0, snap.BaseCost)
	assert.Equal(t, domain.SourcePackageOption, snap.BaseCostSource)
}

func TestCalculate_UnknownEnquiry(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Calculate(context.Background(), domain.CalculateRequest{EnquiryID: "999999"})
	assert.ErrorIs(t, err, domain.ErrEnquiryNotFound)

	_, err = f.svc.Calculate(context.Background(), domain.CalculateRequest{EnquiryID: "not-a-number"})
	assert.ErrorIs(t, err, domain.ErrInvalidEnquiry)
}

func TestCalculate_DiscountExceedingCostWarns(t *testing.T) {
	f := newFixture(t)
	f.setDays(100)

	snap, err := f.svc.Calculate(context.Background(), domain.CalculateRequest{
		EnquiryID: f.enquiryID.String(),
		Markup:    domain.MarkupSettings{Type: domain.MarkupPercentage, Percentage: 0},
		Discount:  domain.DiscountSettings{Enabled: true, Type: domain.DiscountFixed, Value: 500},
	})
	assert.NoError(t, err)

	assert.NotEmpty(t, snap.Warnings)
	assert.Equal(t, 0.0, snap.FinalPrice)
}

func TestMarkup_MonotonicInBaseAndPercentage(t *testing.T) {
	f := newFixture(t)
	svc := f.svc.(*Service)

	prev := -1.0
	for _, base := range []float64{0, 100, 500, 1000, 2500, 10000} {
		bd, _ := svc.computeMarkup(context.Background(), base, 3,
			domain.MarkupSettings{Type: domain.MarkupPercentage, Percentage: 15}, "TH")
		assert.GreaterOrEqual(t, bd.Amount, prev)
		prev = bd.Amount
	}

	prev = -1.0
	for _, pct := range []float64{0, 5, 10, 15, 25, 50} {
		bd, _ := svc.computeMarkup(context.Background(), 1000, 3,
			domain.MarkupSettings{Type: domain.MarkupPercentage, Percentage: pct}, "TH")
		assert.GreaterOrEqual(t, bd.Amount, prev)
		prev = bd.Amount
	}
}

func TestAllocate_EqualDivisionExact(t *testing.T) {
	for _, tc := range []struct {
		finalPrice float64
		adults     int
		children   int
	}{
		{1150, 2, 1},
		{999.99, 3, 0},
		{1, 1, 6},
		{250000, 4, 2},
	} {
		bd, warnings := allocate(tc.finalPrice, tc.adults, tc.children, domain.AllocationSettings{
			Mode: domain.AllocationEqual,
		})
		assert.Empty(t, warnings)

		totalPax := tc.adults + tc.children
		assert.InDelta(t, tc.finalPrice, bd.Average*float64(totalPax), 0.01*float64(totalPax))
		assert.InDelta(t, tc.finalPrice, bd.AdultTotal+bd.ChildTotal, 0.02)
	}
}

// Separate mode redistributes the final price by marked-up weights; the
// per-person figures are indicative and only approximately reconstruct the
// group total once rounded.
func TestAllocate_SeparateMarkupApproximate(t *testing.T) {
	bd, warnings := allocate(1150, 2, 1, domain.AllocationSettings{
		Mode:        domain.AllocationSeparate,
		AdultMarkup: domain.PaxMarkup{Type: domain.ValuePercentage, Value: 20},
		ChildMarkup: domain.PaxMarkup{Type: domain.ValuePercentage, Value: 5},
	})
	assert.Empty(t, warnings)

	assert.Greater(t, bd.Adult, bd.Child)
	assert.InDelta(t, 1150, bd.AdultTotal+bd.ChildTotal, 0.05)
	assert.InDelta(t, 1150, bd.Adult*2+bd.Child*1, 0.05)
}

func TestAllocate_SeparateFixedMarkupWeights(t *testing.T) {
	bd, _ := allocate(1000, 1, 1, domain.AllocationSettings{
		Mode:        domain.AllocationSeparate,
		AdultMarkup: domain.PaxMarkup{Type: domain.ValueFixed, Value: 100},
		ChildMarkup: domain.PaxMarkup{Type: domain.ValueFixed, Value: 0},
	})

	// weights 600:500 over a 1000 total
	assert.InDelta(t, 545.45, bd.Adult, 0.01)
	assert.InDelta(t, 454.55, bd.Child, 0.01)
}
