package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/wouldcart/triplexa/internal/config"
	"github.com/wouldcart/triplexa/internal/enquiry"
	enquirydomain "github.com/wouldcart/triplexa/internal/enquiry/domain"
	"github.com/wouldcart/triplexa/internal/itinerary"
	itinerarydomain "github.com/wouldcart/triplexa/internal/itinerary/domain"
	"github.com/wouldcart/triplexa/internal/markup"
	markupdomain "github.com/wouldcart/triplexa/internal/markup/domain"
	"github.com/wouldcart/triplexa/internal/observability"
	"github.com/wouldcart/triplexa/internal/pricing"
	pricingdomain "github.com/wouldcart/triplexa/internal/pricing/domain"
	"github.com/wouldcart/triplexa/internal/proposal"
	proposaldomain "github.com/wouldcart/triplexa/internal/proposal/domain"
	"github.com/wouldcart/triplexa/internal/ratelimit"
	"github.com/wouldcart/triplexa/internal/reference"
	referencedomain "github.com/wouldcart/triplexa/internal/reference/domain"
	"github.com/wouldcart/triplexa/internal/snapshot"
	snapshotdomain "github.com/wouldcart/triplexa/internal/snapshot/domain"
	"github.com/wouldcart/triplexa/internal/tax"
	taxdomain "github.com/wouldcart/triplexa/internal/tax/domain"
	"github.com/wouldcart/triplexa/internal/terms"
	termsdomain "github.com/wouldcart/triplexa/internal/terms/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	enquiry.Module,
	itinerary.Module,
	markup.Module,
	tax.Module,
	terms.Module,
	pricing.Module,
	snapshot.Module,
	proposal.Module,
	reference.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(httpMetrics *observability.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(httpMetrics.Middleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(httpMetrics.Handler()))

	return r
}

func registerGin(httpMetrics *observability.HTTPMetrics) *gin.Engine {
	return NewEngine(httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	genID         *snowflake.Node
	enquirySvc    enquirydomain.Service
	itineraryRepo itinerarydomain.Repository
	markupSvc     markupdomain.Service
	taxSvc        taxdomain.Service
	termsSvc      termsdomain.Service
	pricingSvc    pricingdomain.Service
	snapshotSvc   snapshotdomain.Service
	proposalSvc   proposaldomain.Service
	refrepo       referencedomain.Repository
	calcLimiter   *ratelimit.CalcLimiter
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	GenID         *snowflake.Node
	EnquirySvc    enquirydomain.Service
	ItineraryRepo itinerarydomain.Repository
	MarkupSvc     markupdomain.Service
	TaxSvc        taxdomain.Service
	TermsSvc      termsdomain.Service
	PricingSvc    pricingdomain.Service
	SnapshotSvc   snapshotdomain.Service
	ProposalSvc   proposaldomain.Service
	Refrepo       referencedomain.Repository
	CalcLimiter   *ratelimit.CalcLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		genID:         p.GenID,
		enquirySvc:    p.EnquirySvc,
		itineraryRepo: p.ItineraryRepo,
		markupSvc:     p.MarkupSvc,
		taxSvc:        p.TaxSvc,
		termsSvc:      p.TermsSvc,
		pricingSvc:    p.PricingSvc,
		snapshotSvc:   p.SnapshotSvc,
		proposalSvc:   p.ProposalSvc,
		refrepo:       p.Refrepo,
		calcLimiter:   p.CalcLimiter,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/api/v1")

	enquiries := v1.Group("/enquiries")
	{
		enquiries.POST("", s.CreateEnquiry)
		enquiries.GET("", s.ListEnquiries)
		enquiries.GET("/:id", s.GetEnquiry)
		enquiries.PATCH("/:id", s.UpdateEnquiry)

		enquiries.GET("/:id/itinerary", s.GetItinerary)
		enquiries.PUT("/:id/itinerary/days", s.ReplaceItineraryDays)
		enquiries.PUT("/:id/itinerary/options", s.ReplaceAccommodationOptions)

		enquiries.POST("/:id/pricing/calculate", s.CalculatePricing)
		enquiries.GET("/:id/pricing", s.GetPricing)
		enquiries.GET("/:id/pricing/stream", s.StreamPricing)

		enquiries.GET("/:id/proposal", s.GetProposal)
		enquiries.PATCH("/:id/proposal", s.UpdateProposal)
		enquiries.POST("/:id/proposal/send", s.SendProposal)
		enquiries.GET("/:id/proposal/history", s.ProposalHistory)
	}

	markups := v1.Group("/markups")
	{
		markups.POST("/slabs", s.CreateMarkupSlab)
		markups.GET("/slabs", s.ListMarkupSlabs)
		markups.PATCH("/slabs/:id", s.UpdateMarkupSlab)
		markups.PUT("/countries", s.UpsertCountryMarkupRule)
		markups.GET("/countries", s.ListCountryMarkupRules)
	}

	taxes := v1.Group("/taxes")
	{
		taxes.POST("", s.CreateTaxDefinition)
		taxes.GET("", s.ListTaxDefinitions)
		taxes.PATCH("/:id", s.UpdateTaxDefinition)
		taxes.POST("/:id/disable", s.DisableTaxDefinition)
	}

	termTemplates := v1.Group("/terms-templates")
	{
		termTemplates.POST("", s.CreateTermsTemplate)
		termTemplates.GET("", s.ListTermsTemplates)
		termTemplates.PATCH("/:id", s.UpdateTermsTemplate)
		termTemplates.DELETE("/:id", s.DeleteTermsTemplate)
		termTemplates.POST("/preview", s.PreviewTermsDefaults)
	}

	v1.GET("/countries", s.ListCountries)
	v1.GET("/currencies", s.ListCurrencies)
}
