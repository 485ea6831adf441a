package markup

import (
	"github.com/wouldcart/triplexa/internal/markup/repository"
	"github.com/wouldcart/triplexa/internal/markup/service"
	"go.uber.org/fx"
)

var Module = fx.Module("markup.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
