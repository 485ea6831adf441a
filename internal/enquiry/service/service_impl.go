package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/wouldcart/triplexa/internal/clock"
	"github.com/wouldcart/triplexa/internal/enquiry/domain"
	"github.com/wouldcart/triplexa/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repository domain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("enquiry.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repository,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateEnquiryRequest) (domain.Enquiry, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return domain.Enquiry{}, domain.ErrInvalidName
	}
	if req.Adults < 0 || req.Children < 0 {
		return domain.Enquiry{}, domain.ErrInvalidPax
	}
	if req.BudgetMin < 0 || req.BudgetMax < req.BudgetMin {
		return domain.Enquiry{}, domain.ErrInvalidBudget
	}
	if req.TripDays < 0 {
		return domain.Enquiry{}, domain.ErrInvalidTripDays
	}

	now := s.clock.Now()
	enquiry := domain.Enquiry{
		ID:                 s.genID.Generate(),
		CustomerName:       name,
		CustomerEmail:      strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:      strings.TrimSpace(req.CustomerPhone),
		DestinationCountry: strings.ToUpper(strings.TrimSpace(req.DestinationCountry)),
		Adults:             req.Adults,
		Children:           req.Children,
		BudgetMin:          req.BudgetMin,
		BudgetMax:          req.BudgetMax,
		TripDays:           req.TripDays,
		Status:             domain.EnquiryStatusNew,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Insert(ctx, s.db, &enquiry); err != nil {
		return domain.Enquiry{}, err
	}
	return enquiry, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Enquiry, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return domain.Enquiry{}, domain.ErrInvalidID
	}

	enquiry, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Enquiry{}, err
	}
	if enquiry == nil {
		return domain.Enquiry{}, domain.ErrNotFound
	}
	return *enquiry, nil
}

func (s *Service) List(ctx context.Context, req domain.ListEnquiryRequest) (domain.ListEnquiryResponse, error) {
	size := int(req.PageSize)
	if size <= 0 {
		size = 10
	}

	rows, err := s.repo.List(ctx, s.db, domain.ListEnquiryFilter{
		Status:  strings.TrimSpace(req.Status),
		Country: strings.ToUpper(strings.TrimSpace(req.Country)),
	}, pagination.Pagination{PageToken: req.PageToken, PageSize: size})
	if err != nil {
		return domain.ListEnquiryResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(rows, int32(size), func(e *domain.Enquiry) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        e.ID.String(),
			CreatedAt: e.CreatedAt.Format(time.RFC3339Nano),
		})
		return token
	})

	if len(rows) > size {
		rows = rows[:size]
	}
	enquiries := make([]domain.Enquiry, 0, len(rows))
	for _, row := range rows {
		enquiries = append(enquiries, *row)
	}

	return domain.ListEnquiryResponse{
		PageInfo:  *pageInfo,
		Enquiries: enquiries,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateEnquiryRequest) (domain.Enquiry, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil {
		return domain.Enquiry{}, domain.ErrInvalidID
	}

	enquiry, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Enquiry{}, err
	}
	if enquiry == nil {
		return domain.Enquiry{}, domain.ErrNotFound
	}

	if req.DestinationCountry != nil {
		enquiry.DestinationCountry = strings.ToUpper(strings.TrimSpace(*req.DestinationCountry))
	}
	if req.Adults != nil {
		if *req.Adults < 0 {
			return domain.Enquiry{}, domain.ErrInvalidPax
		}
		enquiry.Adults = *req.Adults
	}
	if req.Children != nil {
		if *req.Children < 0 {
			return domain.Enquiry{}, domain.ErrInvalidPax
		}
		enquiry.Children = *req.Children
	}
	if req.BudgetMin != nil {
		enquiry.BudgetMin = *req.BudgetMin
	}
	if req.BudgetMax != nil {
		enquiry.BudgetMax = *req.BudgetMax
	}
	if enquiry.BudgetMin < 0 || enquiry.BudgetMax < enquiry.BudgetMin {
		return domain.Enquiry{}, domain.ErrInvalidBudget
	}
	if req.TripDays != nil {
		if *req.TripDays < 0 {
			return domain.Enquiry{}, domain.ErrInvalidTripDays
		}
		enquiry.TripDays = *req.TripDays
	}
	if req.Status != nil {
		switch *req.Status {
		case domain.EnquiryStatusNew, domain.EnquiryStatusInProcess, domain.EnquiryStatusClosed:
			enquiry.Status = *req.Status
		default:
			return domain.Enquiry{}, domain.ErrInvalidStatus
		}
	}
	enquiry.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, enquiry); err != nil {
		return domain.Enquiry{}, err
	}
	return *enquiry, nil
}
