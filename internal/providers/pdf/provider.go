package pdf

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)

type Provider interface {
	GenerateRentalReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateRentalReceipt(ctx context.Context, data ReceiptData) ([]byte, error) {
	return nil, nil
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}
