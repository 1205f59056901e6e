package providers

import (
	"github.com/smallbiznis/scootfleet/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	pdf.Module,
)
