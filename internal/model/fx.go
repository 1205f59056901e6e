package model

import (
	"github.com/smallbiznis/scootfleet/internal/model/repository"
	"github.com/smallbiznis/scootfleet/internal/model/service"
	"go.uber.org/fx"
)

var Module = fx.Module("model.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
