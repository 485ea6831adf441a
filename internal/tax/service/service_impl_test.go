package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/wouldcart/triplexa/internal/clock"
	taxdomain "github.com/wouldcart/triplexa/internal/tax/domain"
	"github.com/wouldcart/triplexa/internal/tax/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestFixture(t *testing.T) (taxdomain.Service, taxdomain.Resolver) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&taxdomain.TaxDefinition{}))

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	repo := repository.NewRepository(db)
	svc := NewService(serviceParams{
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		Repo:  repo,
	})
	res := NewResolver(resolverParam{Repository: repo})
	return svc, res
}

func TestComputeTaxExclusive(t *testing.T) {
	assert.Equal(t, 93.15, ComputeTaxExclusive(1035, 0.09))
	assert.Equal(t, 0.0, ComputeTaxExclusive(0, 0.09))
	assert.Equal(t, 0.0, ComputeTaxExclusive(1035, 0))
}

func TestComputeTaxInclusive(t *testing.T) {
	assert.Equal(t, 100.0, ComputeTaxInclusive(1100, 0.10))
	assert.Equal(t, 0.0, ComputeTaxInclusive(-5, 0.10))
}

func TestCreateAndResolve(t *testing.T) {
	svc, res := newTestFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, taxdomain.CreateRequest{
		CountryCode: "th",
		Name:        "VAT",
		Rate:        0.07,
		TaxMode:     taxdomain.TaxModeExclusive,
	})
	assert.NoError(t, err)

	def, err := res.ResolveRate(ctx, "TH", "")
	assert.NoError(t, err)
	if assert.NotNil(t, def) {
		assert.Equal(t, 0.07, def.Rate)
		assert.Equal(t, taxdomain.TaxModeExclusive, def.TaxMode)
	}
}

func TestResolveRate_UnknownCountryReturnsNil(t *testing.T) {
	_, res := newTestFixture(t)

	def, err := res.ResolveRate(context.Background(), "ZZ", "")
	assert.NoError(t, err)
	assert.Nil(t, def)
}

func TestDisable_HidesFromResolver(t *testing.T) {
	svc, res := newTestFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, taxdomain.CreateRequest{
		CountryCode: "SG",
		Name:        "GST",
		Rate:        0.09,
		TaxMode:     taxdomain.TaxModeExclusive,
	})
	assert.NoError(t, err)

	_, err = svc.Disable(ctx, created.ID.String())
	assert.NoError(t, err)

	def, err := res.ResolveRate(ctx, "SG", "")
	assert.NoError(t, err)
	assert.Nil(t, def)
}

func TestCreate_InvalidRate(t *testing.T) {
	svc, _ := newTestFixture(t)

	_, err := svc.Create(context.Background(), taxdomain.CreateRequest{
		CountryCode: "TH",
		Name:        "VAT",
		Rate:        -0.07,
		TaxMode:     taxdomain.TaxModeExclusive,
	})
	assert.ErrorIs(t, err, taxdomain.ErrInvalidTaxRate)
}

func TestUpdate_SwitchesMode(t *testing.T) {
	svc, _ := newTestFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, taxdomain.CreateRequest{
		CountryCode: "ID",
		Name:        "VAT",
		Rate:        0.11,
		TaxMode:     taxdomain.TaxModeExclusive,
	})
	assert.NoError(t, err)

	inclusive := taxdomain.TaxModeInclusive
	updated, err := svc.Update(ctx, taxdomain.UpdateRequest{
		ID:      created.ID.String(),
		TaxMode: &inclusive,
	})
	assert.NoError(t, err)
	assert.Equal(t, taxdomain.TaxModeInclusive, updated.TaxMode)
}

func TestUpdate_Missing(t *testing.T) {
	svc, _ := newTestFixture(t)

	_, err := svc.Update(context.Background(), taxdomain.UpdateRequest{ID: "424242"})
	assert.ErrorIs(t, err, taxdomain.ErrNotFound)
}
