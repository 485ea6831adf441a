// Package seed bootstraps the reference and rule tables so a fresh install
// can price an enquiry without any manual setup.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	markupdomain "github.com/wouldcart/triplexa/internal/markup/domain"
	referencedomain "github.com/wouldcart/triplexa/internal/reference/domain"
	taxdomain "github.com/wouldcart/triplexa/internal/tax/domain"
	termsdomain "github.com/wouldcart/triplexa/internal/terms/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func strptr(s string) *string { return &s }

var currencies = []referencedomain.Currency{
	{Code: "USD", Name: "US Dollar", Symbol: strptr("$"), MinorUnit: 2, IsActive: true},
	{Code: "EUR", Name: "Euro", Symbol: strptr("€"), MinorUnit: 2, IsActive: true},
	{Code: "INR", Name: "Indian Rupee", Symbol: strptr("₹"), MinorUnit: 2, IsActive: true},
	{Code: "THB", Name: "Thai Baht", Symbol: strptr("฿"), MinorUnit: 2, IsActive: true},
	{Code: "IDR", Name: "Indonesian Rupiah", Symbol: strptr("Rp"), MinorUnit: 0, IsActive: true},
	{Code: "AED", Name: "UAE Dirham", Symbol: strptr("د.إ"), MinorUnit: 2, IsActive: true},
	{Code: "LKR", Name: "Sri Lankan Rupee", Symbol: strptr("Rs"), MinorUnit: 2, IsActive: true},
	{Code: "VND", Name: "Vietnamese Dong", Symbol: strptr("₫"), MinorUnit: 0, IsActive: true},
	{Code: "SGD", Name: "Singapore Dollar", Symbol: strptr("S$"), MinorUnit: 2, IsActive: true},
	{Code: "MYR", Name: "Malaysian Ringgit", Symbol: strptr("RM"), MinorUnit: 2, IsActive: true},
}

var countries = []referencedomain.Country{
	{Code: "US", Name: "United States", CurrencyCode: "USD"},
	{Code: "IN", Name: "India", CurrencyCode: "INR"},
	{Code: "TH", Name: "Thailand", CurrencyCode: "THB"},
	{Code: "ID", Name: "Indonesia", CurrencyCode: "IDR"},
	{Code: "AE", Name: "United Arab Emirates", CurrencyCode: "AED"},
	{Code: "LK", Name: "Sri Lanka", CurrencyCode: "LKR"},
	{Code: "VN", Name: "Vietnam", CurrencyCode: "VND"},
	{Code: "SG", Name: "Singapore", CurrencyCode: "SGD"},
	{Code: "MY", Name: "Malaysia", CurrencyCode: "MYR"},
	{Code: "FR", Name: "France", CurrencyCode: "EUR"},
}

// EnsureDefaults is idempotent; existing rows are left untouched so manual
// edits survive restarts.
func EnsureDefaults(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureReferenceData(tx); err != nil {
			return err
		}
		if err := ensureTaxDefinitions(tx, node); err != nil {
			return err
		}
		if err := ensureMarkupSlabs(tx, node); err != nil {
			return err
		}
		if err := ensureCountryMarkupRules(tx, node); err != nil {
			return err
		}
		return ensureTermsTemplates(tx, node)
	})
}

func ensureReferenceData(tx *gorm.DB) error {
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&currencies).Error; err != nil {
		return err
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&countries).Error
}

func ensureTaxDefinitions(tx *gorm.DB, node *snowflake.Node) error {
	defs := []taxdomain.TaxDefinition{
		{CountryCode: "IN", ServiceType: taxdomain.ServiceTypePackage, Name: "GST", Rate: 0.05, TaxMode: taxdomain.TaxModeExclusive, IsEnabled: true},
		{CountryCode: "TH", ServiceType: taxdomain.ServiceTypePackage, Name: "VAT", Rate: 0.07, TaxMode: taxdomain.TaxModeExclusive, IsEnabled: true},
		{CountryCode: "ID", ServiceType: taxdomain.ServiceTypePackage, Name: "VAT", Rate: 0.11, TaxMode: taxdomain.TaxModeInclusive, IsEnabled: true},
		{CountryCode: "AE", ServiceType: taxdomain.ServiceTypePackage, Name: "VAT", Rate: 0.05, TaxMode: taxdomain.TaxModeExclusive, IsEnabled: true},
		{CountryCode: "SG", ServiceType: taxdomain.ServiceTypePackage, Name: "GST", Rate: 0.09, TaxMode: taxdomain.TaxModeExclusive, IsEnabled: true},
	}
	for i := range defs {
		var count int64
		err := tx.Model(&taxdomain.TaxDefinition{}).
			Where("country_code = ? AND service_type = ?", defs[i].CountryCode, defs[i].ServiceType).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		defs[i].ID = node.Generate()
		if err := tx.Create(&defs[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureMarkupSlabs(tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.Model(&markupdomain.MarkupSlab{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	slabs := []markupdomain.MarkupSlab{
		{Name: "budget", MinAmount: 0, MaxAmount: 1000, MarkupType: markupdomain.MarkupValuePercentage, MarkupValue: 18, Position: 1, IsActive: true},
		{Name: "standard", MinAmount: 1000, MaxAmount: 5000, MarkupType: markupdomain.MarkupValuePercentage, MarkupValue: 15, Position: 2, IsActive: true},
		{Name: "premium", MinAmount: 5000, MaxAmount: 20000, MarkupType: markupdomain.MarkupValuePercentage, MarkupValue: 12, Position: 3, IsActive: true},
		{Name: "luxury", MinAmount: 20000, MaxAmount: 1000000, MarkupType: markupdomain.MarkupValuePercentage, MarkupValue: 10, Position: 4, IsActive: true},
	}
	for i := range slabs {
		slabs[i].ID = node.Generate()
	}
	return tx.Create(&slabs).Error
}

func ensureCountryMarkupRules(tx *gorm.DB, node *snowflake.Node) error {
	rules := []markupdomain.CountryMarkupRule{
		{CountryCode: "TH", MarkupType: markupdomain.MarkupValuePercentage, MarkupValue: 15, IsActive: true},
		{CountryCode: "ID", MarkupType: markupdomain.MarkupValuePercentage, MarkupValue: 14, IsActive: true},
		{CountryCode: "AE", MarkupType: markupdomain.MarkupValuePercentage, MarkupValue: 18, IsActive: true},
		{CountryCode: "LK", MarkupType: markupdomain.MarkupValuePercentage, MarkupValue: 12, IsActive: true},
		{CountryCode: "VN", MarkupType: markupdomain.MarkupValuePercentage, MarkupValue: 13, IsActive: true},
	}
	for i := range rules {
		var count int64
		err := tx.Model(&markupdomain.CountryMarkupRule{}).
			Where("country_code = ?", rules[i].CountryCode).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		rules[i].ID = node.Generate()
		if err := tx.Create(&rules[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureTermsTemplates(tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.Model(&termsdomain.TermsTemplate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	templates := []termsdomain.TermsTemplate{
		{
			Code:        "thailand-standard",
			Name:        "Thailand Standard",
			CountryCode: "TH",
			Data: termsdomain.TermsConditions{
				PaymentTerms:       "50% advance on confirmation, balance 15 days before travel.",
				CancellationPolicy: "Free cancellation until 30 days before departure; 50% thereafter.",
				Inclusions:         []string{"Airport transfers", "Daily breakfast", "Sightseeing as per itinerary"},
				Exclusions:         []string{"International airfare", "Visa fees", "Personal expenses"},
			},
		},
		{
			Code:        "bali-standard",
			Name:        "Bali Standard",
			CountryCode: "ID",
			Data: termsdomain.TermsConditions{
				PaymentTerms:       "30% advance on confirmation, balance 21 days before travel.",
				CancellationPolicy: "Free cancellation until 45 days before departure.",
				Inclusions:         []string{"Private transfers", "Daily breakfast"},
				Exclusions:         []string{"International airfare", "Travel insurance"},
			},
		},
	}
	for i := range templates {
		templates[i].ID = node.Generate()
	}
	return tx.Create(&templates).Error
}
