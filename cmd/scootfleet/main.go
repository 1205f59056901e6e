package main

import (
	"github.com/smallbiznis/scootfleet/internal/clock"
	"github.com/smallbiznis/scootfleet/internal/config"
	"github.com/smallbiznis/scootfleet/internal/migration"
	"github.com/smallbiznis/scootfleet/internal/observability"
	"github.com/smallbiznis/scootfleet/internal/server"
	"github.com/smallbiznis/scootfleet/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		db.Module,
		clock.Module,
		migration.Module,

		// HTTP API and every domain module behind it
		server.Module,
	)
	app.Run()
}
