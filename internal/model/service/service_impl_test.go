package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scootfleet/internal/clock"
	"github.com/smallbiznis/scootfleet/internal/migration"
	"github.com/smallbiznis/scootfleet/internal/model/domain"
	"github.com/smallbiznis/scootfleet/internal/model/repository"
	"github.com/smallbiznis/scootfleet/internal/model/service"
	scooterdomain "github.com/smallbiznis/scootfleet/internal/scooter/domain"
	scooterrepo "github.com/smallbiznis/scootfleet/internal/scooter/repository"
	"github.com/smallbiznis/scootfleet/pkg/db/dbtest"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T) (domain.Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()
	db := dbtest.Open(t)
	require.NoError(t, migration.AutoMigrate(db))

	clk := clock.NewFakeClock(time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC))
	svc := service.New(service.Params{DB: db, Log: zap.NewNop(), Clock: clk, Repo: repository.Provide()})
	return svc, db, clk
}

func TestModelLifecycle(t *testing.T) {
	svc, _, clk := newService(t)
	ctx := context.Background()

	model, err := svc.Create(ctx, domain.CreateRequest{Name: "  Xiaomi Pro 2 "})
	require.NoError(t, err)
	assert.Equal(t, "Xiaomi Pro 2", model.Name)

	clk.Advance(time.Minute)
	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Ninebot Max"})
	require.NoError(t, err)

	list, err := svc.List(ctx, pagination.Pagination{})
	require.NoError(t, err)
	assert.Len(t, list.Models, 2)

	renamed, err := svc.Update(ctx, model.ID.String(), domain.UpdateRequest{Name: "Xiaomi Pro 3"})
	require.NoError(t, err)
	assert.Equal(t, "Xiaomi Pro 3", renamed.Name)

	stored, err := svc.Get(ctx, model.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Xiaomi Pro 3", stored.Name)

	require.NoError(t, svc.Delete(ctx, model.ID.String()))
	_, err = svc.Get(ctx, model.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, model.ID.String()), domain.ErrNotFound)
}

func TestModelNameValidation(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "blank", input: "   ", want: domain.ErrInvalidName},
		{name: "too short", input: "E2x", want: domain.ErrInvalidName},
		{name: "too long", input: strings.Repeat("m", 51), want: domain.ErrInvalidName},
		{name: "shortest allowed", input: "E2 S"},
		{name: "longest allowed", input: strings.Repeat("m", 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, domain.CreateRequest{Name: tt.input})
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := svc.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestModelNameIsUnique(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{Name: "Segway E2"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Segway E2"})
	assert.ErrorIs(t, err, domain.ErrNameTaken)

	other, err := svc.Create(ctx, domain.CreateRequest{Name: "Segway E4"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, other.ID.String(), domain.UpdateRequest{Name: "Segway E2"})
	assert.ErrorIs(t, err, domain.ErrNameTaken)
}

func TestDeleteModelInUse(t *testing.T) {
	svc, db, clk := newService(t)
	ctx := context.Background()

	model, err := svc.Create(ctx, domain.CreateRequest{Name: "Ninebot Max"})
	require.NoError(t, err)

	scooter := &scooterdomain.Scooter{
		ID:           uuid.New(),
		ModelID:      model.ID,
		BatteryLevel: 100,
		Status:       scooterdomain.StatusAvailable,
		Mileage:      decimal.Zero,
		CreatedAt:    clk.Now(),
		UpdatedAt:    clk.Now(),
	}
	require.NoError(t, scooterrepo.Provide().Insert(ctx, db, scooter))

	assert.ErrorIs(t, svc.Delete(ctx, model.ID.String()), domain.ErrModelInUse)
	_, err = svc.Get(ctx, model.ID.String())
	require.NoError(t, err)

	deleted, err := scooterrepo.Provide().DeleteUnlessRented(ctx, db, scooter.ID)
	require.NoError(t, err)
	require.True(t, deleted)
	assert.NoError(t, svc.Delete(ctx, model.ID.String()))
}
