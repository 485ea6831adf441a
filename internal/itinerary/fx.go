package itinerary

import (
	"github.com/wouldcart/triplexa/internal/itinerary/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("itinerary.repository",
	fx.Provide(NewRepository),
	fx.Provide(func(r domain.Repository) domain.Provider { return r }),
)
