package proposal

import (
	"github.com/wouldcart/triplexa/internal/proposal/repository"
	"github.com/wouldcart/triplexa/internal/proposal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("proposal.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
