package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/wouldcart/triplexa/internal/clock"
	"github.com/wouldcart/triplexa/internal/config"
	"github.com/wouldcart/triplexa/internal/logger"
	"github.com/wouldcart/triplexa/internal/migration"
	"github.com/wouldcart/triplexa/internal/notify"
	"github.com/wouldcart/triplexa/internal/observability"
	"github.com/wouldcart/triplexa/internal/server"
	"github.com/wouldcart/triplexa/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		notify.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

// RegisterSnowflake provides the shared id generator node.
func RegisterSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
