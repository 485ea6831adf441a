package migration

import (
	"github.com/wouldcart/triplexa/internal/config"
	enquirydomain "github.com/wouldcart/triplexa/internal/enquiry/domain"
	itinerarydomain "github.com/wouldcart/triplexa/internal/itinerary/domain"
	markupdomain "github.com/wouldcart/triplexa/internal/markup/domain"
	proposaldomain "github.com/wouldcart/triplexa/internal/proposal/domain"
	referencedomain "github.com/wouldcart/triplexa/internal/reference/domain"
	"github.com/wouldcart/triplexa/internal/seed"
	snapshotdomain "github.com/wouldcart/triplexa/internal/snapshot/domain"
	taxdomain "github.com/wouldcart/triplexa/internal/tax/domain"
	termsdomain "github.com/wouldcart/triplexa/internal/terms/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// mysql and sqlite installs rely on the model schema
			if err := conn.AutoMigrate(
				&referencedomain.Currency{},
				&referencedomain.Country{},
				&enquirydomain.Enquiry{},
				&itinerarydomain.ItineraryDay{},
				&itinerarydomain.AccommodationOption{},
				&markupdomain.MarkupSlab{},
				&markupdomain.CountryMarkupRule{},
				&taxdomain.TaxDefinition{},
				&snapshotdomain.StoredSnapshot{},
				&termsdomain.TermsTemplate{},
				&proposaldomain.ProposalDraft{},
				&proposaldomain.SendRecord{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureDefaults(conn)
	}),
)
