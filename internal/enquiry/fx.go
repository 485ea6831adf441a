package enquiry

import (
	"github.com/wouldcart/triplexa/internal/enquiry/repository"
	"github.com/wouldcart/triplexa/internal/enquiry/service"
	"go.uber.org/fx"
)

var Module = fx.Module("enquiry.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
