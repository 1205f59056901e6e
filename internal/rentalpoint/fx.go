package rentalpoint

import (
	"github.com/smallbiznis/scootfleet/internal/rentalpoint/repository"
	"github.com/smallbiznis/scootfleet/internal/rentalpoint/service"
	"go.uber.org/fx"
)

var Module = fx.Module("rentalpoint.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
