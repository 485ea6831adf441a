package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/wouldcart/triplexa/internal/markup/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) SlabForAmount(ctx context.Context, amount float64) (*domain.MarkupSlab, error) {
	var slabs []domain.MarkupSlab
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("min_amount <= ? AND max_amount > ?", amount, amount).
		Order("position asc, created_at asc").
		Limit(1).
		Find(&slabs).Error
	if err != nil {
		return nil, err
	}
	if len(slabs) == 0 {
		return nil, nil
	}
	return &slabs[0], nil
}

func (r *repo) RuleForCountry(ctx context.Context, countryCode string) (*domain.CountryMarkupRule, error) {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if code == "" {
		return nil, nil
	}

	var rules []domain.CountryMarkupRule
	err := r.db.WithContext(ctx).
		Where("country_code = ? AND is_active = ?", code, true).
		Limit(1).
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, nil
	}
	return &rules[0], nil
}

func (r *repo) ListSlabs(ctx context.Context) ([]domain.MarkupSlab, error) {
	var slabs []domain.MarkupSlab
	err := r.db.WithContext(ctx).
		Order("position asc, min_amount asc").
		Find(&slabs).Error
	if err != nil {
		return nil, err
	}
	return slabs, nil
}

func (r *repo) ListRules(ctx context.Context) ([]domain.CountryMarkupRule, error) {
	var rules []domain.CountryMarkupRule
	err := r.db.WithContext(ctx).
		Order("country_code asc").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *repo) SaveSlab(ctx context.Context, slab *domain.MarkupSlab) error {
	return r.db.WithContext(ctx).Save(slab).Error
}

func (r *repo) SaveRule(ctx context.Context, rule *domain.CountryMarkupRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *repo) FindSlabByID(ctx context.Context, id string) (*domain.MarkupSlab, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var slab domain.MarkupSlab
	err = r.db.WithContext(ctx).
		Raw(`SELECT * FROM markup_slabs WHERE id = ?`, parsed).
		Scan(&slab).Error
	if err != nil {
		return nil, err
	}
	if slab.ID == 0 {
		return nil, nil
	}
	return &slab, nil
}
