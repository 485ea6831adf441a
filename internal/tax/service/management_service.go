package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/wouldcart/triplexa/internal/clock"
	taxdomain "github.com/wouldcart/triplexa/internal/tax/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type serviceParams struct {
	fx.In

	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  taxdomain.Repository
}

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  taxdomain.Repository
}

func NewService(p serviceParams) taxdomain.Service {
	return &Service{
		log:   p.Log.Named("tax.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req taxdomain.CreateRequest) (*taxdomain.TaxDefinition, error) {
	serviceType := strings.TrimSpace(req.ServiceType)
	if serviceType == "" {
		serviceType = taxdomain.ServiceTypePackage
	}

	now := s.clock.Now()
	def := taxdomain.TaxDefinition{
		ID:          s.genID.Generate(),
		CountryCode: strings.ToUpper(strings.TrimSpace(req.CountryCode)),
		ServiceType: serviceType,
		Name:        strings.TrimSpace(req.Name),
		Rate:        req.Rate,
		TaxMode:     req.TaxMode,
		IsEnabled:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsEnabled != nil {
		def.IsEnabled = *req.IsEnabled
	}
	if def.Name == "" {
		return nil, taxdomain.ErrInvalidName
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &def); err != nil {
		return nil, err
	}
	return &def, nil
}

func (s *Service) List(ctx context.Context, filter taxdomain.ListFilter) ([]taxdomain.TaxDefinition, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, req taxdomain.UpdateRequest) (*taxdomain.TaxDefinition, error) {
	def, err := s.findByStringID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		def.Name = strings.TrimSpace(*req.Name)
	}
	if req.Rate != nil {
		def.Rate = *req.Rate
	}
	if req.TaxMode != nil {
		def.TaxMode = *req.TaxMode
	}
	if req.IsEnabled != nil {
		def.IsEnabled = *req.IsEnabled
	}
	if def.Name == "" {
		return nil, taxdomain.ErrInvalidName
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	def.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, def); err != nil {
		return nil, err
	}
	return def, nil
}

func (s *Service) Disable(ctx context.Context, id string) (*taxdomain.TaxDefinition, error) {
	def, err := s.findByStringID(ctx, id)
	if err != nil {
		return nil, err
	}

	def.IsEnabled = false
	def.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, def); err != nil {
		return nil, err
	}
	return def, nil
}

func (s *Service) findByStringID(ctx context.Context, id string) (*taxdomain.TaxDefinition, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, taxdomain.ErrInvalidID
	}

	def, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, taxdomain.ErrNotFound
	}
	return def, nil
}
