package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/wouldcart/triplexa/internal/clock"
	"github.com/wouldcart/triplexa/internal/config"
	enquirydomain "github.com/wouldcart/triplexa/internal/enquiry/domain"
	enquiryrepository "github.com/wouldcart/triplexa/internal/enquiry/repository"
	"github.com/wouldcart/triplexa/internal/notify"
	pricingdomain "github.com/wouldcart/triplexa/internal/pricing/domain"
	"github.com/wouldcart/triplexa/internal/proposal/domain"
	"github.com/wouldcart/triplexa/internal/proposal/repository"
	snapshotdomain "github.com/wouldcart/triplexa/internal/snapshot/domain"
	"github.com/wouldcart/triplexa/internal/snapshot/livefeed"
	snapshotservice "github.com/wouldcart/triplexa/internal/snapshot/service"
	termsdomain "github.com/wouldcart/triplexa/internal/terms/domain"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type proposalFixture struct {
	svc       domain.Service
	snapshots snapshotdomain.Service
	enquiryID string
}

func newProposalFixture(t *testing.T) *proposalFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(
		&enquirydomain.Enquiry{},
		&domain.ProposalDraft{},
		&domain.SendRecord{},
		&snapshotdomain.StoredSnapshot{},
	))

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	fakeClock := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	snapshots := snapshotservice.NewService(snapshotservice.ServiceParam{
		Lifecycle: fxtest.NewLifecycle(t),
		DB:        db,
		Log:       zap.NewNop(),
		Clock:     fakeClock,
		GenID:     node,
		Hub:       livefeed.NewHub(),
		Config:    config.Config{SnapshotDebounceMillis: 0},
	})

	enquiryRepo := enquiryrepository.Provide()
	enquiryID := node.Generate()
	assert.NoError(t, enquiryRepo.Insert(context.Background(), db, &enquirydomain.Enquiry{
		ID:                 enquiryID,
		CustomerName:       "Asha Verma",
		CustomerEmail:      "asha@example.com",
		CustomerPhone:      "+91 98100 00000",
		DestinationCountry: "TH",
		Adults:             2,
		Children:           1,
	}))

	svc := NewService(ServiceParam{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       fakeClock,
		Repository:  repository.Provide(db),
		Snapshots:   snapshots,
		EnquiryRepo: enquiryRepo,
		Notifier:    notify.NewNotifier(zap.NewNop()),
		Config:      config.Config{SendDelayMillis: 0},
	})

	return &proposalFixture{
		svc:       svc,
		snapshots: snapshots,
		enquiryID: enquiryID.String(),
	}
}

func (f *proposalFixture) saveSnapshot(t *testing.T) {
	t.Helper()
	err := f.snapshots.Save(context.Background(), f.enquiryID, &pricingdomain.PricingSnapshot{
		EnquiryID:  f.enquiryID,
		BaseCost:   1000,
		FinalPrice: 1150,
	})
	assert.NoError(t, err)
}

func sampleTerms() *termsdomain.TermsConditions {
	return &termsdomain.TermsConditions{
		PaymentTerms:       "50% advance",
		CancellationPolicy: "Free until 30 days out",
	}
}

func TestGet_NewEnquiryStartsAsDraft(t *testing.T) {
	f := newProposalFixture(t)

	view, err := f.svc.Get(context.Background(), f.enquiryID)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, view.Draft.Status)
	assert.Nil(t, view.Pricing)
}

func TestUpdate_BecomesReadyWithPricingAndTerms(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	view, err := f.svc.Update(ctx, domain.UpdateRequest{
		EnquiryID: f.enquiryID,
		Terms:     sampleTerms(),
	})
	assert.NoError(t, err)
	// terms alone are not enough
	assert.Equal(t, domain.StatusDraft, view.Draft.Status)

	f.saveSnapshot(t)

	view, err = f.svc.Get(ctx, f.enquiryID)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusReady, view.Draft.Status)
	assert.NotNil(t, view.Pricing)
}

func TestSend_RejectsWithAllReasons(t *testing.T) {
	f := newProposalFixture(t)

	_, err := f.svc.Send(context.Background(), domain.SendRequest{
		EnquiryID: f.enquiryID,
		Method:    domain.SendEmail,
	})

	var verr *domain.ValidationErrors
	assert.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Reasons, 2)
}

func TestSend_Success(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	f.saveSnapshot(t)
	_, err := f.svc.Update(ctx, domain.UpdateRequest{
		EnquiryID: f.enquiryID,
		Terms:     sampleTerms(),
	})
	assert.NoError(t, err)

	record, err := f.svc.Send(ctx, domain.SendRequest{
		EnquiryID: f.enquiryID,
		Method:    domain.SendEmail,
	})
	assert.NoError(t, err)
	assert.Equal(t, "asha@example.com", record.SentTo)
	assert.Equal(t, 1150.0, record.Snapshot.FinalPrice)

	view, err := f.svc.Get(ctx, f.enquiryID)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusSent, view.Draft.Status)

	history, err := f.svc.History(ctx, f.enquiryID)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSend_WhatsAppUsesPhone(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	f.saveSnapshot(t)
	_, err := f.svc.Update(ctx, domain.UpdateRequest{
		EnquiryID: f.enquiryID,
		Terms:     sampleTerms(),
	})
	assert.NoError(t, err)

	record, err := f.svc.Send(ctx, domain.SendRequest{
		EnquiryID: f.enquiryID,
		Method:    domain.SendWhatsApp,
	})
	assert.NoError(t, err)
	assert.Equal(t, "+91 98100 00000", record.SentTo)
}

func TestSend_InvalidMethod(t *testing.T) {
	f := newProposalFixture(t)

	_, err := f.svc.Send(context.Background(), domain.SendRequest{
		EnquiryID: f.enquiryID,
		Method:    "fax",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMethod)
}

func TestSend_HistoryKeepsQuotedPrice(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	f.saveSnapshot(t)
	_, err := f.svc.Update(ctx, domain.UpdateRequest{
		EnquiryID: f.enquiryID,
		Terms:     sampleTerms(),
	})
	assert.NoError(t, err)

	_, err = f.svc.Send(ctx, domain.SendRequest{EnquiryID: f.enquiryID, Method: domain.SendEmail})
	assert.NoError(t, err)

	// reprice after sending; the recorded quote must not change
	err = f.snapshots.Save(ctx, f.enquiryID, &pricingdomain.PricingSnapshot{
		EnquiryID:  f.enquiryID,
		FinalPrice: 2000,
	})
	assert.NoError(t, err)

	history, err := f.svc.History(ctx, f.enquiryID)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, 1150.0, history[0].Snapshot.FinalPrice)
}

func TestUpdate_AfterSendLeavesStatusStaleUntilReset(t *testing.T) {
	f := newProposalFixture(t)
	ctx := context.Background()

	f.saveSnapshot(t)
	_, err := f.svc.Update(ctx, domain.UpdateRequest{
		EnquiryID: f.enquiryID,
		Terms:     sampleTerms(),
	})
	assert.NoError(t, err)
	_, err = f.svc.Send(ctx, domain.SendRequest{EnquiryID: f.enquiryID, Method: domain.SendEmail})
	assert.NoError(t, err)

	accommodations := []domain.AccommodationChoice{{OptionNumber: 2, Label: "Deluxe", BaseTotal: 1400}}
	view, err := f.svc.Update(ctx, domain.UpdateRequest{
		EnquiryID:      f.enquiryID,
		Accommodations: &accommodations,
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusSent, view.Draft.Status)

	view, err = f.svc.Update(ctx, domain.UpdateRequest{
		EnquiryID:   f.enquiryID,
		ResetStatus: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusReady, view.Draft.Status)
}
