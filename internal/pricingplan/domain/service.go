package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*PricingPlan, error)
	Get(ctx context.Context, id string) (*PricingPlan, error)
	List(ctx context.Context, page pagination.Pagination) (*ListResponse, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*PricingPlan, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Name              string          `json:"name"`
	PricePerHour      decimal.Decimal `json:"price_per_hour"`
	SubscriptionPrice decimal.Decimal `json:"subscription_price"`
	DiscountPercent   decimal.Decimal `json:"discount_percent"`
}

type UpdateRequest struct {
	Name              *string          `json:"name"`
	PricePerHour      *decimal.Decimal `json:"price_per_hour"`
	SubscriptionPrice *decimal.Decimal `json:"subscription_price"`
	DiscountPercent   *decimal.Decimal `json:"discount_percent"`
}

type ListResponse struct {
	pagination.PageInfo
	PricingPlans []PricingPlan `json:"pricing_plans"`
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidRate     = errors.New("invalid_rate")
	ErrInvalidDiscount = errors.New("invalid_discount")
	ErrNotFound        = errors.New("not_found")
)
