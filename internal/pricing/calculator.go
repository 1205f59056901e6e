// Package pricing turns a finished ride into a charge.
//
// Hours are rounded to two decimal places half-up before they are multiplied by the
// plan rate. A discounted charge is rounded again on its own; an undiscounted charge
// is the exact product. Use Charge to bring a price to the scale money is stored at.
package pricing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places kept for hours and money.
const Scale int32 = 2

// Mode is the billing mode of a rental type.
type Mode string

const (
	Hourly       Mode = "HOURLY"
	Subscription Mode = "SUBSCRIPTION"
)

var ErrUnknownRentalType = errors.New("unknown_rental_type")

var (
	sixty   = decimal.NewFromInt(60)
	hundred = decimal.NewFromInt(100)
)

// Plan is the rate card a rental is charged against.
type Plan struct {
	PricePerHour      decimal.Decimal
	SubscriptionPrice decimal.Decimal
	DiscountPercent   decimal.Decimal
}

// HoursFromDuration converts whole elapsed minutes to hours at Scale.
func HoursFromDuration(d time.Duration) decimal.Decimal {
	minutes := int64(d / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	return decimal.NewFromInt(minutes).DivRound(sixty, Scale)
}

// Price returns the charge for hours of use under mode and plan.
func Price(hours decimal.Decimal, mode Mode, plan Plan) (decimal.Decimal, error) {
	var rate decimal.Decimal
	switch mode {
	case Hourly:
		rate = plan.PricePerHour
	case Subscription:
		rate = plan.SubscriptionPrice
	default:
		return decimal.Zero, ErrUnknownRentalType
	}

	base := rate.Mul(hours)
	if plan.DiscountPercent.GreaterThan(decimal.Zero) {
		discount := base.Mul(plan.DiscountPercent).Div(hundred)
		return base.Sub(discount).Round(Scale), nil
	}
	return base, nil
}

// Charge rounds a price half-up to the scale balances and totals are stored at.
func Charge(price decimal.Decimal) decimal.Decimal {
	return price.Round(Scale)
}
