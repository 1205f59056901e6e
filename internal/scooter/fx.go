package scooter

import (
	"github.com/smallbiznis/scootfleet/internal/scooter/repository"
	"github.com/smallbiznis/scootfleet/internal/scooter/service"
	"go.uber.org/fx"
)

var Module = fx.Module("scooter.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
