package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/wouldcart/triplexa/internal/clock"
	"github.com/wouldcart/triplexa/internal/config"
	enquirydomain "github.com/wouldcart/triplexa/internal/enquiry/domain"
	"github.com/wouldcart/triplexa/internal/notify"
	pricingdomain "github.com/wouldcart/triplexa/internal/pricing/domain"
	"github.com/wouldcart/triplexa/internal/proposal/domain"
	snapshotdomain "github.com/wouldcart/triplexa/internal/snapshot/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	snapshots   snapshotdomain.Service
	enquiryRepo enquirydomain.Repository
	notifier    notify.Notifier
	sendDelay   time.Duration
}

type ServiceParam struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repository  domain.Repository
	Snapshots   snapshotdomain.Service
	EnquiryRepo enquirydomain.Repository
	Notifier    notify.Notifier
	Config      config.Config
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("proposal.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repository,
		snapshots:   p.Snapshots,
		enquiryRepo: p.EnquiryRepo,
		notifier:    p.Notifier,
		sendDelay:   time.Duration(p.Config.SendDelayMillis) * time.Millisecond,
	}
}

func (s *Service) Get(ctx context.Context, enquiryID string) (*domain.ProposalView, error) {
	key := strings.TrimSpace(enquiryID)
	if key == "" {
		return nil, domain.ErrInvalidEnquiry
	}

	draft, err := s.repo.FindDraft(ctx, key)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		draft = &domain.ProposalDraft{
			ID:        s.genID.Generate(),
			EnquiryID: key,
			Status:    domain.StatusDraft,
			CreatedAt: s.clock.Now(),
			UpdatedAt: s.clock.Now(),
		}
	}

	pricing, err := s.snapshots.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	if draft.Status != domain.StatusSent {
		draft.Status = deriveStatus(draft, pricing)
	}

	return &domain.ProposalView{Draft: *draft, Pricing: pricing}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.ProposalView, error) {
	key := strings.TrimSpace(req.EnquiryID)
	if key == "" {
		return nil, domain.ErrInvalidEnquiry
	}

	draft, err := s.repo.FindDraft(ctx, key)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	if draft == nil {
		draft = &domain.ProposalDraft{
			ID:        s.genID.Generate(),
			EnquiryID: key,
			Status:    domain.StatusDraft,
			CreatedAt: now,
		}
	}

	if req.Accommodations != nil {
		draft.Accommodations = *req.Accommodations
	}
	if req.Terms != nil {
		draft.Terms = req.Terms
	}
	draft.UpdatedAt = now

	pricing, err := s.snapshots.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	// editing a sent proposal leaves the status stale unless reset
	if draft.Status != domain.StatusSent || req.ResetStatus {
		draft.Status = deriveStatus(draft, pricing)
	}

	if err := s.repo.SaveDraft(ctx, draft); err != nil {
		return nil, err
	}

	return &domain.ProposalView{Draft: *draft, Pricing: pricing}, nil
}

// Send validates the proposal, simulates the dispatch, records history and
// marks the draft sent. Validation failures come back as the full list of
// blocking reasons, not just the first one.
func (s *Service) Send(ctx context.Context, req domain.SendRequest) (*domain.SendRecord, error) {
	key := strings.TrimSpace(req.EnquiryID)
	if key == "" {
		return nil, domain.ErrInvalidEnquiry
	}
	if req.Method != domain.SendEmail && req.Method != domain.SendWhatsApp {
		return nil, domain.ErrInvalidMethod
	}

	draft, err := s.repo.FindDraft(ctx, key)
	if err != nil {
		return nil, err
	}
	pricing, err := s.snapshots.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	sentTo := strings.TrimSpace(req.SentTo)
	if sentTo == "" {
		sentTo = s.contactFor(ctx, key, req.Method)
	}

	var reasons []string
	if pricing == nil {
		reasons = append(reasons, "pricing has not been calculated")
	}
	if draft == nil || draft.Terms == nil || draft.Terms.IsEmpty() {
		reasons = append(reasons, "terms and conditions are missing")
	}
	if sentTo == "" {
		reasons = append(reasons, fmt.Sprintf("no %s contact on file", req.Method))
	}
	if len(reasons) > 0 {
		s.notifier.Error(ctx, "proposal cannot be sent: "+strings.Join(reasons, "; "))
		return nil, &domain.ValidationErrors{Reasons: reasons}
	}

	// stand-in for the real gateway call
	if s.sendDelay > 0 {
		select {
		case <-time.After(s.sendDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	now := s.clock.Now()
	record := &domain.SendRecord{
		ID:        s.genID.Generate(),
		EnquiryID: key,
		Method:    req.Method,
		SentTo:    sentTo,
		Snapshot:  pricing,
		SentAt:    now,
	}
	if err := s.repo.InsertSendRecord(ctx, record); err != nil {
		return nil, err
	}

	draft.Status = domain.StatusSent
	draft.UpdatedAt = now
	if err := s.repo.SaveDraft(ctx, draft); err != nil {
		return nil, err
	}

	s.notifier.Success(ctx, fmt.Sprintf("proposal sent via %s to %s", record.Method, record.SentTo))
	s.log.Info("proposal sent",
		zap.String("enquiry_id", key),
		zap.String("method", string(record.Method)),
	)
	return record, nil
}

func (s *Service) History(ctx context.Context, enquiryID string) ([]domain.SendRecord, error) {
	key := strings.TrimSpace(enquiryID)
	if key == "" {
		return nil, domain.ErrInvalidEnquiry
	}
	return s.repo.ListSendRecords(ctx, key)
}

func (s *Service) contactFor(ctx context.Context, enquiryID string, method domain.SendMethod) string {
	id, err := snowflake.ParseString(enquiryID)
	if err != nil {
		return ""
	}
	enquiry, err := s.enquiryRepo.FindByID(ctx, s.db, id)
	if err != nil || enquiry == nil {
		return ""
	}
	if method == domain.SendWhatsApp {
		return strings.TrimSpace(enquiry.CustomerPhone)
	}
	return strings.TrimSpace(enquiry.CustomerEmail)
}

func deriveStatus(draft *domain.ProposalDraft, pricing *pricingdomain.PricingSnapshot) domain.ProposalStatus {
	if pricing != nil && draft.Terms != nil && !draft.Terms.IsEmpty() {
		return domain.StatusReady
	}
	return domain.StatusDraft
}
