// Package notify is the fire-and-forget user notification sink. Services
// push success/warning messages here; nothing is returned to the caller.
package notify

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Notifier interface {
	Success(ctx context.Context, message string)
	Warn(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

type zapNotifier struct {
	log *zap.Logger
}

func NewNotifier(log *zap.Logger) Notifier {
	return &zapNotifier{log: log.Named("notify")}
}

func (n *zapNotifier) Success(_ context.Context, message string) {
	n.log.Info(message)
}

func (n *zapNotifier) Warn(_ context.Context, message string) {
	n.log.Warn(message)
}

func (n *zapNotifier) Error(_ context.Context, message string) {
	n.log.Error(message)
}

var Module = fx.Module("notify",
	fx.Provide(NewNotifier),
)
