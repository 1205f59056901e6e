package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestHoursFromDuration(t *testing.T) {
	cases := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"two hours", 2 * time.Hour, "2.00"},
		{"ninety minutes", 90 * time.Minute, "1.50"},
		{"ninety one minutes rounds half up", 91 * time.Minute, "1.52"},
		{"partial minute is dropped", 45*time.Minute + 59*time.Second, "0.75"},
		{"one minute", time.Minute, "0.02"},
		{"under a minute", 30 * time.Second, "0.00"},
		{"clock skew clamps to zero", -5 * time.Minute, "0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HoursFromDuration(tc.duration)
			assert.Equal(t, tc.want, got.StringFixed(Scale))
			assert.True(t, got.Equal(d(tc.want)), "got %s", got)
		})
	}
}

func TestPrice(t *testing.T) {
	plan := Plan{
		PricePerHour:      d("10.00"),
		SubscriptionPrice: d("4.00"),
	}
	discounted := plan
	discounted.DiscountPercent = d("10")

	cases := []struct {
		name  string
		hours string
		mode  Mode
		plan  Plan
		want  string
	}{
		{"hourly without discount", "2.00", Hourly, plan, "20.00"},
		{"hourly with ten percent discount", "2.00", Hourly, discounted, "18.00"},
		{"subscription rate", "2.00", Subscription, plan, "8.00"},
		{"subscription with discount", "1.52", Subscription, discounted, "5.47"},
		{"fractional hours", "1.52", Hourly, plan, "15.20"},
		{"discount result rounds half up", "0.05", Hourly, Plan{PricePerHour: d("1.00"), DiscountPercent: d("10")}, "0.05"},
		{"zero hours is free", "0.00", Hourly, discounted, "0.00"},
		{"undiscounted base keeps sub-cent precision", "0.17", Hourly, Plan{PricePerHour: d("0.60")}, "0.102"},
		{"full discount", "3.00", Hourly, Plan{PricePerHour: d("2.50"), DiscountPercent: d("100")}, "0.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Price(d(tc.hours), tc.mode, tc.plan)
			require.NoError(t, err)
			assert.True(t, d(tc.want).Equal(got), "got %s", got)
		})
	}
}

func TestChargeRoundsToMoneyScale(t *testing.T) {
	assert.Equal(t, "0.10", Charge(d("0.102")).StringFixed(Scale))
	assert.Equal(t, "0.20", Charge(d("0.198")).StringFixed(Scale))
	assert.Equal(t, "0.13", Charge(d("0.125")).StringFixed(Scale))
	assert.True(t, Charge(d("20.00")).Equal(d("20")))
}

func TestPriceRejectsUnknownMode(t *testing.T) {
	_, err := Price(d("1.00"), Mode("DAILY"), Plan{PricePerHour: d("1")})
	assert.ErrorIs(t, err, ErrUnknownRentalType)
}

func TestPriceIsDeterministic(t *testing.T) {
	plan := Plan{PricePerHour: d("7.35"), DiscountPercent: d("12.5")}
	first, err := Price(d("1.37"), Hourly, plan)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := Price(d("1.37"), Hourly, plan)
		require.NoError(t, err)
		assert.True(t, first.Equal(again))
	}
}

func TestRoundingStepsStayIndependent(t *testing.T) {
	// 91 minutes is 1.5166.. hours; billing the unrounded value would give 15.17
	hours := HoursFromDuration(91 * time.Minute)
	got, err := Price(hours, Hourly, Plan{PricePerHour: d("10.00")})
	require.NoError(t, err)
	assert.Equal(t, "15.20", got.StringFixed(Scale))
}
