package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scootfleet/internal/pricing"
)

type PricingPlan struct {
	ID                uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Name              string          `json:"name" gorm:"type:text;not null"`
	PricePerHour      decimal.Decimal `json:"price_per_hour" gorm:"type:numeric(12,2);not null"`
	SubscriptionPrice decimal.Decimal `json:"subscription_price" gorm:"type:numeric(12,2);not null"`
	DiscountPercent   decimal.Decimal `json:"discount_percent" gorm:"type:numeric(5,2);not null;default:0"`
	CreatedAt         time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt         time.Time       `json:"updated_at" gorm:"not null"`
}

func (PricingPlan) TableName() string { return "pricing_plans" }

// Rates is the view of the plan the pricing calculator needs.
func (p PricingPlan) Rates() pricing.Plan {
	return pricing.Plan{
		PricePerHour:      p.PricePerHour,
		SubscriptionPrice: p.SubscriptionPrice,
		DiscountPercent:   p.DiscountPercent,
	}
}
