package pricingplan

import (
	"github.com/smallbiznis/scootfleet/internal/pricingplan/repository"
	"github.com/smallbiznis/scootfleet/internal/pricingplan/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricingplan.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
