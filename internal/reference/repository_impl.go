package reference

import (
	"context"
	"database/sql"
	"strings"

	"github.com/wouldcart/triplexa/internal/reference/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) ListCountries(ctx context.Context) ([]domain.Country, error) {
	var countries []domain.Country
	err := r.db.WithContext(ctx).
		Raw(`SELECT code, name, currency_code FROM countries ORDER BY name`).
		Scan(&countries).Error
	if err != nil {
		return nil, err
	}

	return countries, nil
}

func (r *repository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	type row struct {
		Code      string         `gorm:"column:code"`
		Name      string         `gorm:"column:name"`
		Symbol    sql.NullString `gorm:"column:symbol"`
		MinorUnit int16          `gorm:"column:minor_unit"`
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Raw(`SELECT code, name, symbol, minor_unit FROM currencies WHERE is_active = true ORDER BY code`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	currencies := make([]domain.Currency, 0, len(rows))
	for _, item := range rows {
		var symbol *string
		if item.Symbol.Valid {
			value := item.Symbol.String
			symbol = &value
		}
		currencies = append(currencies, domain.Currency{
			Code:      item.Code,
			Name:      item.Name,
			Symbol:    symbol,
			MinorUnit: item.MinorUnit,
		})
	}

	return currencies, nil
}

func (r *repository) CurrencyForCountry(ctx context.Context, countryCode string) (*domain.CurrencyInfo, error) {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if code == "" {
		return nil, nil
	}

	type row struct {
		Code   string         `gorm:"column:code"`
		Symbol sql.NullString `gorm:"column:symbol"`
	}

	var result row
	err := r.db.WithContext(ctx).
		Raw(`SELECT cur.code, cur.symbol
		     FROM countries c
		     JOIN currencies cur ON cur.code = c.currency_code
		     WHERE c.code = ?`, code).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}
	if result.Code == "" {
		return nil, nil
	}

	info := domain.CurrencyInfo{Code: result.Code}
	if result.Symbol.Valid {
		info.Symbol = result.Symbol.String
	}
	return &info, nil
}
