package account

import (
	"github.com/smallbiznis/scootfleet/internal/account/repository"
	"github.com/smallbiznis/scootfleet/internal/account/service"
	"go.uber.org/fx"
)

var Module = fx.Module("account.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Invoke(service.RegisterBootstrap),
)
