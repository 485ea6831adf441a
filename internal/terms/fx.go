package terms

import (
	"github.com/wouldcart/triplexa/internal/terms/repository"
	"github.com/wouldcart/triplexa/internal/terms/service"
	"go.uber.org/fx"
)

var Module = fx.Module("terms.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
