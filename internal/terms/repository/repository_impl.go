package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/wouldcart/triplexa/internal/terms/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Insert(ctx context.Context, template *domain.TermsTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.TermsTemplate, error) {
	var template domain.TermsTemplate
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *repo) FindByCountry(ctx context.Context, countryCode string) (*domain.TermsTemplate, error) {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if code == "" {
		return nil, nil
	}

	var templates []domain.TermsTemplate
	err := r.db.WithContext(ctx).
		Where("country_code = ?", code).
		Order("created_at asc").
		Limit(1).
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, nil
	}
	return &templates[0], nil
}

func (r *repo) List(ctx context.Context) ([]domain.TermsTemplate, error) {
	var templates []domain.TermsTemplate
	err := r.db.WithContext(ctx).
		Order("name asc").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *repo) Update(ctx context.Context, template *domain.TermsTemplate) error {
	return r.db.WithContext(ctx).Save(template).Error
}

func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.TermsTemplate{}).Error
}
