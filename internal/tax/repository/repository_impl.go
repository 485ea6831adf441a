package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	taxdomain "github.com/wouldcart/triplexa/internal/tax/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) taxdomain.Repository {
	return &repository{db: db}
}

func (r *repository) FindActive(ctx context.Context, countryCode, serviceType string) (*taxdomain.TaxDefinition, error) {
	var def taxdomain.TaxDefinition
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, country_code, service_type, name, rate, tax_mode, is_enabled, created_at, updated_at
		 FROM tax_definitions
		 WHERE country_code = ? AND service_type = ? AND is_enabled = true
		 ORDER BY id ASC
		 LIMIT 1`,
		strings.ToUpper(strings.TrimSpace(countryCode)),
		strings.TrimSpace(serviceType),
	).Scan(&def).Error
	if err != nil {
		return nil, err
	}
	if def.ID == 0 {
		return nil, nil
	}
	return &def, nil
}

func (r *repository) Create(ctx context.Context, def *taxdomain.TaxDefinition) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO tax_definitions (
			id, country_code, service_type, name, rate, tax_mode, is_enabled, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		def.ID,
		def.CountryCode,
		def.ServiceType,
		def.Name,
		def.Rate,
		def.TaxMode,
		def.IsEnabled,
		def.CreatedAt,
		def.UpdatedAt,
	).Error
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*taxdomain.TaxDefinition, error) {
	var def taxdomain.TaxDefinition
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, country_code, service_type, name, rate, tax_mode, is_enabled, created_at, updated_at
		 FROM tax_definitions
		 WHERE id = ?`,
		id,
	).Scan(&def).Error
	if err != nil {
		return nil, err
	}
	if def.ID == 0 {
		return nil, nil
	}
	return &def, nil
}

func (r *repository) List(ctx context.Context, filter taxdomain.ListFilter) ([]taxdomain.TaxDefinition, error) {
	var items []taxdomain.TaxDefinition
	stmt := r.db.WithContext(ctx).Model(&taxdomain.TaxDefinition{})

	if filter.CountryCode != "" {
		stmt = stmt.Where("country_code = ?", strings.ToUpper(filter.CountryCode))
	}
	if filter.ServiceType != "" {
		stmt = stmt.Where("service_type = ?", filter.ServiceType)
	}
	if filter.IsEnabled != nil {
		stmt = stmt.Where("is_enabled = ?", *filter.IsEnabled)
	}

	if err := stmt.Order("country_code asc, service_type asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, def *taxdomain.TaxDefinition) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE tax_definitions
		 SET name = ?, rate = ?, tax_mode = ?, is_enabled = ?, updated_at = ?
		 WHERE id = ?`,
		def.Name,
		def.Rate,
		def.TaxMode,
		def.IsEnabled,
		def.UpdatedAt,
		def.ID,
	).Error
}
