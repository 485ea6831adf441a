package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/wouldcart/triplexa/internal/clock"
	"github.com/wouldcart/triplexa/internal/markup/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
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
		log:   p.Log.Named("markup.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repository,
	}
}

func (s *Service) CreateSlab(ctx context.Context, req domain.CreateSlabRequest) (*domain.MarkupSlab, error) {
	now := s.clock.Now()
	slab := domain.MarkupSlab{
		ID:          s.genID.Generate(),
		Name:        strings.TrimSpace(req.Name),
		MinAmount:   req.MinAmount,
		MaxAmount:   req.MaxAmount,
		MarkupType:  req.MarkupType,
		MarkupValue: req.MarkupValue,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Position != nil {
		slab.Position = *req.Position
	}
	if err := slab.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.SaveSlab(ctx, &slab); err != nil {
		return nil, err
	}
	return &slab, nil
}

func (s *Service) UpdateSlab(ctx context.Context, req domain.UpdateSlabRequest) (*domain.MarkupSlab, error) {
	slab, err := s.repo.FindSlabByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if slab == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		slab.Name = strings.TrimSpace(*req.Name)
	}
	if req.MinAmount != nil {
		slab.MinAmount = *req.MinAmount
	}
	if req.MaxAmount != nil {
		slab.MaxAmount = *req.MaxAmount
	}
	if req.MarkupType != nil {
		slab.MarkupType = *req.MarkupType
	}
	if req.MarkupValue != nil {
		slab.MarkupValue = *req.MarkupValue
	}
	if req.Position != nil {
		slab.Position = *req.Position
	}
	if req.IsActive != nil {
		slab.IsActive = *req.IsActive
	}
	if err := slab.Validate(); err != nil {
		return nil, err
	}
	slab.UpdatedAt = s.clock.Now()

	if err := s.repo.SaveSlab(ctx, slab); err != nil {
		return nil, err
	}
	return slab, nil
}

func (s *Service) ListSlabs(ctx context.Context) ([]domain.MarkupSlab, error) {
	return s.repo.ListSlabs(ctx)
}

func (s *Service) UpsertCountryRule(ctx context.Context, req domain.UpsertCountryRuleRequest) (*domain.CountryMarkupRule, error) {
	code := strings.ToUpper(strings.TrimSpace(req.CountryCode))
	now := s.clock.Now()

	existing, err := s.repo.RuleForCountry(ctx, code)
	if err != nil {
		return nil, err
	}

	rule := existing
	if rule == nil {
		rule = &domain.CountryMarkupRule{
			ID:          s.genID.Generate(),
			CountryCode: code,
			IsActive:    true,
			CreatedAt:   now,
		}
	}
	rule.MarkupType = req.MarkupType
	rule.MarkupValue = req.MarkupValue
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	rule.UpdatedAt = now

	if err := s.repo.SaveRule(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *Service) ListCountryRules(ctx context.Context) ([]domain.CountryMarkupRule, error) {
	return s.repo.ListRules(ctx)
}
