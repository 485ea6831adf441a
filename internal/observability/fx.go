package observability

import (
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(NewTracerProvider),
	fx.Provide(NewHTTPMetrics),
	fx.Invoke(func(_ *sdktrace.TracerProvider) {}),
)
