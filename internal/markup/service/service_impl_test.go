package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/wouldcart/triplexa/internal/clock"
	"github.com/wouldcart/triplexa/internal/markup/domain"
	"github.com/wouldcart/triplexa/internal/markup/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, domain.Repository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&domain.MarkupSlab{}, &domain.CountryMarkupRule{}))

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	repo := repository.Provide(db)
	svc := NewService(ServiceParam{
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		Repository: repo,
	})
	return svc, repo
}

func intPtr(v int) *int { return &v }

func TestCreateSlab_InvalidRangeRejected(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateSlab(context.Background(), domain.CreateSlabRequest{
		Name:        "broken",
		MinAmount:   500,
		MaxAmount:   500,
		MarkupType:  domain.MarkupValuePercentage,
		MarkupValue: 10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestSlabForAmount_PositionOrderWins(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateSlab(ctx, domain.CreateSlabRequest{
		Name:        "wide",
		MinAmount:   0,
		MaxAmount:   10000,
		MarkupType:  domain.MarkupValuePercentage,
		MarkupValue: 20,
		Position:    intPtr(2),
	})
	assert.NoError(t, err)
	_, err = svc.CreateSlab(ctx, domain.CreateSlabRequest{
		Name:        "standard",
		MinAmount:   1000,
		MaxAmount:   5000,
		MarkupType:  domain.MarkupValuePercentage,
		MarkupValue: 15,
		Position:    intPtr(1),
	})
	assert.NoError(t, err)

	slab, err := repo.SlabForAmount(ctx, 2500)
	assert.NoError(t, err)
	if assert.NotNil(t, slab) {
		assert.Equal(t, "standard", slab.Name)
	}
}

func TestSlabForAmount_HalfOpenRange(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateSlab(ctx, domain.CreateSlabRequest{
		Name:        "budget",
		MinAmount:   0,
		MaxAmount:   1000,
		MarkupType:  domain.MarkupValuePercentage,
		MarkupValue: 18,
	})
	assert.NoError(t, err)

	slab, err := repo.SlabForAmount(ctx, 999.99)
	assert.NoError(t, err)
	assert.NotNil(t, slab)

	slab, err = repo.SlabForAmount(ctx, 1000)
	assert.NoError(t, err)
	assert.Nil(t, slab)
}

func TestUpdateSlab_DeactivateHidesFromLookup(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateSlab(ctx, domain.CreateSlabRequest{
		Name:        "budget",
		MinAmount:   0,
		MaxAmount:   1000,
		MarkupType:  domain.MarkupValuePercentage,
		MarkupValue: 18,
	})
	assert.NoError(t, err)

	inactive := false
	_, err = svc.UpdateSlab(ctx, domain.UpdateSlabRequest{
		ID:       created.ID.String(),
		IsActive: &inactive,
	})
	assert.NoError(t, err)

	slab, err := repo.SlabForAmount(ctx, 500)
	assert.NoError(t, err)
	assert.Nil(t, slab)
}

func TestUpdateSlab_Missing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateSlab(context.Background(), domain.UpdateSlabRequest{ID: "424242"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpsertCountryRule_CreatesThenReplaces(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	first, err := svc.UpsertCountryRule(ctx, domain.UpsertCountryRuleRequest{
		CountryCode: "th",
		MarkupType:  domain.MarkupValuePercentage,
		MarkupValue: 15,
	})
	assert.NoError(t, err)
	assert.Equal(t, "TH", first.CountryCode)

	second, err := svc.UpsertCountryRule(ctx, domain.UpsertCountryRuleRequest{
		CountryCode: "TH",
		MarkupType:  domain.MarkupValueFixed,
		MarkupValue: 200,
	})
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	rule, err := repo.RuleForCountry(ctx, "th")
	assert.NoError(t, err)
	if assert.NotNil(t, rule) {
		assert.Equal(t, domain.MarkupValueFixed, rule.MarkupType)
		assert.Equal(t, 200.0, rule.MarkupValue)
	}

	rules, err := svc.ListCountryRules(ctx)
	assert.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestUpsertCountryRule_BadCountryCode(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpsertCountryRule(context.Background(), domain.UpsertCountryRuleRequest{
		CountryCode: "THA",
		MarkupType:  domain.MarkupValuePercentage,
		MarkupValue: 15,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCountryCode)
}
