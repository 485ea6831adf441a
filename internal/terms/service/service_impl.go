package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/wouldcart/triplexa/internal/clock"
	"github.com/wouldcart/triplexa/internal/terms/domain"
	"github.com/wouldcart/triplexa/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

type ServiceParam struct {
	fx.In

	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repository domain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:   p.Log.Named("terms.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repository,
	}
}

func (s *Service) CreateTemplate(ctx context.Context, req domain.CreateTemplateRequest) (*domain.TermsTemplate, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	now := s.clock.Now()
	template := &domain.TermsTemplate{
		ID:          s.genID.Generate(),
		Code:        slug.Make(name),
		Name:        name,
		CountryCode: strings.ToUpper(strings.TrimSpace(req.CountryCode)),
		Data:        req.Data,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, template); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrTemplateExists
		}
		return nil, err
	}

	s.log.Info("terms template created",
		zap.String("code", template.Code),
		zap.String("country", template.CountryCode),
	)
	return template, nil
}

func (s *Service) ListTemplates(ctx context.Context) ([]domain.TermsTemplate, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateTemplate(ctx context.Context, req domain.UpdateTemplateRequest) (*domain.TermsTemplate, error) {
	id, err := snowflake.ParseString(req.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	template, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTemplateMissing
		}
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		template.Name = name
		template.Code = slug.Make(name)
	}
	if req.CountryCode != nil {
		template.CountryCode = strings.ToUpper(strings.TrimSpace(*req.CountryCode))
	}
	if req.Data != nil {
		template.Data = *req.Data
	}
	template.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

func (s *Service) DeleteTemplate(ctx context.Context, rawID string) error {
	id, err := snowflake.ParseString(rawID)
	if err != nil {
		return domain.ErrInvalidID
	}
	return s.repo.Delete(ctx, id)
}

// ApplyDefaults fills empty fields from the destination country's template.
// An unknown country or lookup failure leaves the terms unchanged.
func (s *Service) ApplyDefaults(ctx context.Context, terms domain.TermsConditions, countryCode string) (domain.TermsConditions, error) {
	template, err := s.repo.FindByCountry(ctx, countryCode)
	if err != nil {
		s.log.Warn("terms template lookup failed",
			zap.String("country", countryCode),
			zap.Error(err),
		)
		return terms, nil
	}
	if template == nil {
		return terms, nil
	}

	defaults := template.Data
	if terms.PaymentTerms == "" {
		terms.PaymentTerms = defaults.PaymentTerms
	}
	if terms.CancellationPolicy == "" {
		terms.CancellationPolicy = defaults.CancellationPolicy
	}
	if len(terms.Inclusions) == 0 {
		terms.Inclusions = append([]string(nil), defaults.Inclusions...)
	}
	if len(terms.Exclusions) == 0 {
		terms.Exclusions = append([]string(nil), defaults.Exclusions...)
	}
	if terms.AdditionalTerms == "" {
		terms.AdditionalTerms = defaults.AdditionalTerms
	}
	return terms, nil
}
