package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scootfleet/internal/clock"
	"github.com/smallbiznis/scootfleet/internal/migration"
	modeldomain "github.com/smallbiznis/scootfleet/internal/model/domain"
	modelrepo "github.com/smallbiznis/scootfleet/internal/model/repository"
	"github.com/smallbiznis/scootfleet/internal/pricingplan/domain"
	"github.com/smallbiznis/scootfleet/internal/pricingplan/repository"
	"github.com/smallbiznis/scootfleet/internal/pricingplan/service"
	scooterdomain "github.com/smallbiznis/scootfleet/internal/scooter/domain"
	scooterrepo "github.com/smallbiznis/scootfleet/internal/scooter/repository"
	"github.com/smallbiznis/scootfleet/pkg/db/dbtest"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func d(value string) decimal.Decimal { return decimal.RequireFromString(value) }

func TestPricingPlanCRUD(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, migration.AutoMigrate(db))
	ctx := context.Background()
	clk := clock.NewFakeClock(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	svc := service.New(service.Params{DB: db, Log: zap.NewNop(), Clock: clk, Repo: repository.Provide()})

	plan, err := svc.Create(ctx, domain.CreateRequest{
		Name:              "Weekend",
		PricePerHour:      d("4.999"),
		SubscriptionPrice: d("3"),
		DiscountPercent:   d("15"),
	})
	require.NoError(t, err)
	assert.Equal(t, "5.00", plan.PricePerHour.StringFixed(2))

	rates := plan.Rates()
	assert.True(t, rates.DiscountPercent.Equal(d("15")))

	discount := d("0")
	updated, err := svc.Update(ctx, plan.ID.String(), domain.UpdateRequest{DiscountPercent: &discount})
	require.NoError(t, err)
	assert.True(t, updated.DiscountPercent.IsZero())

	stored, err := svc.Get(ctx, plan.ID.String())
	require.NoError(t, err)
	assert.True(t, stored.DiscountPercent.IsZero())
	assert.Equal(t, "3.00", stored.SubscriptionPrice.StringFixed(2))

	list, err := svc.List(ctx, pagination.Pagination{})
	require.NoError(t, err)
	assert.Len(t, list.PricingPlans, 1)

	model := &modeldomain.Model{ID: uuid.New(), Name: "Segway E2", CreatedAt: clk.Now(), UpdatedAt: clk.Now()}
	require.NoError(t, modelrepo.Provide().Insert(ctx, db, model))
	scooter := &scooterdomain.Scooter{
		ID:            uuid.New(),
		ModelID:       model.ID,
		PricingPlanID: &plan.ID,
		BatteryLevel:  100,
		Status:        scooterdomain.StatusAvailable,
		Mileage:       decimal.Zero,
		CreatedAt:     clk.Now(),
		UpdatedAt:     clk.Now(),
	}
	require.NoError(t, scooterrepo.Provide().Insert(ctx, db, scooter))

	require.NoError(t, svc.Delete(ctx, plan.ID.String()))
	_, err = svc.Get(ctx, plan.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	detached, err := scooterrepo.Provide().FindByID(ctx, db, scooter.ID)
	require.NoError(t, err)
	assert.Nil(t, detached.PricingPlanID)

	assert.ErrorIs(t, svc.Delete(ctx, plan.ID.String()), domain.ErrNotFound)
}

func TestPricingPlanValidation(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, migration.AutoMigrate(db))
	svc := service.New(service.Params{DB: db, Log: zap.NewNop(), Clock: clock.New(), Repo: repository.Provide()})

	tests := []struct {
		name string
		req  domain.CreateRequest
		want error
	}{
		{name: "missing name", req: domain.CreateRequest{PricePerHour: d("1"), SubscriptionPrice: d("1")}, want: domain.ErrInvalidName},
		{name: "negative hourly", req: domain.CreateRequest{Name: "A", PricePerHour: d("-1"), SubscriptionPrice: d("1")}, want: domain.ErrInvalidRate},
		{name: "negative subscription", req: domain.CreateRequest{Name: "A", PricePerHour: d("1"), SubscriptionPrice: d("-0.01")}, want: domain.ErrInvalidRate},
		{name: "discount above 100", req: domain.CreateRequest{Name: "A", PricePerHour: d("1"), SubscriptionPrice: d("1"), DiscountPercent: d("100.5")}, want: domain.ErrInvalidDiscount},
		{name: "negative discount", req: domain.CreateRequest{Name: "A", PricePerHour: d("1"), SubscriptionPrice: d("1"), DiscountPercent: d("-5")}, want: domain.ErrInvalidDiscount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
