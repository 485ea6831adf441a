package snapshot

import (
	"github.com/wouldcart/triplexa/internal/snapshot/livefeed"
	"github.com/wouldcart/triplexa/internal/snapshot/service"
	"go.uber.org/fx"
)

var Module = fx.Module("snapshot.service",
	fx.Provide(livefeed.NewHub),
	fx.Provide(service.NewService),
)
