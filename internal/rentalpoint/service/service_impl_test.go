package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	accountdomain "github.com/smallbiznis/scootfleet/internal/account/domain"
	accountrepo "github.com/smallbiznis/scootfleet/internal/account/repository"
	"github.com/smallbiznis/scootfleet/internal/clock"
	"github.com/smallbiznis/scootfleet/internal/config"
	"github.com/smallbiznis/scootfleet/internal/migration"
	modeldomain "github.com/smallbiznis/scootfleet/internal/model/domain"
	modelrepo "github.com/smallbiznis/scootfleet/internal/model/repository"
	"github.com/smallbiznis/scootfleet/internal/rentalpoint/domain"
	"github.com/smallbiznis/scootfleet/internal/rentalpoint/repository"
	"github.com/smallbiznis/scootfleet/internal/rentalpoint/service"
	scooterdomain "github.com/smallbiznis/scootfleet/internal/scooter/domain"
	scooterrepo "github.com/smallbiznis/scootfleet/internal/scooter/repository"
	"github.com/smallbiznis/scootfleet/pkg/db/dbtest"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type env struct {
	ctx   context.Context
	db    *gorm.DB
	clock *clock.FakeClock
	svc   domain.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := dbtest.Open(t)
	require.NoError(t, migration.AutoMigrate(db))

	e := &env{
		ctx:   context.Background(),
		db:    db,
		clock: clock.NewFakeClock(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)),
	}
	e.svc = service.New(service.Params{
		DB:       db,
		Log:      zap.NewNop(),
		Clock:    e.clock,
		Repo:     repository.Provide(),
		Accounts: accountrepo.Provide(),
		Scooters: scooterrepo.Provide(),
		Policy:   config.NewStaticRentalPolicyHolder(config.DefaultRentalPolicy()),
	})
	return e
}

func (e *env) account(t *testing.T, role accountdomain.Role) uuid.UUID {
	t.Helper()
	account := &accountdomain.Account{
		ID:           uuid.New(),
		Name:         string(role),
		Email:        uuid.NewString() + "@example.com",
		Role:         role,
		PasswordHash: "x",
		Balance:      decimal.Zero,
		CreatedAt:    e.clock.Now(),
		UpdatedAt:    e.clock.Now(),
	}
	require.NoError(t, accountrepo.Provide().Insert(e.ctx, e.db, account))
	return account.ID
}

func (e *env) scooter(t *testing.T, pointID *uuid.UUID, status scooterdomain.Status) uuid.UUID {
	t.Helper()
	model := &modeldomain.Model{ID: uuid.New(), Name: "Ninebot " + uuid.NewString()[:8], CreatedAt: e.clock.Now(), UpdatedAt: e.clock.Now()}
	require.NoError(t, modelrepo.Provide().Insert(e.ctx, e.db, model))
	scooter := &scooterdomain.Scooter{
		ID:            uuid.New(),
		RentalPointID: pointID,
		ModelID:       model.ID,
		BatteryLevel:  90,
		Status:        status,
		Mileage:       decimal.Zero,
		CreatedAt:     e.clock.Now(),
		UpdatedAt:     e.clock.Now(),
	}
	require.NoError(t, scooterrepo.Provide().Insert(e.ctx, e.db, scooter))
	e.clock.Advance(time.Second)
	return scooter.ID
}

func TestCreateRentalPointGeneratesUniqueCodes(t *testing.T) {
	e := newEnv(t)

	first, err := e.svc.Create(e.ctx, domain.CreateRequest{Name: "Alexander Platz", Latitude: 52.52, Longitude: 13.41})
	require.NoError(t, err)
	second, err := e.svc.Create(e.ctx, domain.CreateRequest{Name: "Alexander  Platz!", Latitude: 52.52, Longitude: 13.41})
	require.NoError(t, err)

	assert.Equal(t, "alexander-platz", first.Code)
	assert.Equal(t, "alexander-platz-2", second.Code)

	stored, err := e.svc.Get(e.ctx, second.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "alexander-platz-2", stored.Code)
}

func TestCreateRentalPointValidation(t *testing.T) {
	e := newEnv(t)
	rider := e.account(t, accountdomain.RoleUser)
	missing := uuid.New()

	tests := []struct {
		name string
		req  domain.CreateRequest
		want error
	}{
		{name: "missing name", req: domain.CreateRequest{Latitude: 1, Longitude: 1}, want: domain.ErrInvalidName},
		{name: "name without slug", req: domain.CreateRequest{Name: "!!!", Latitude: 1, Longitude: 1}, want: domain.ErrInvalidName},
		{name: "latitude out of range", req: domain.CreateRequest{Name: "A", Latitude: 91, Longitude: 1}, want: domain.ErrInvalidCoordinates},
		{name: "longitude out of range", req: domain.CreateRequest{Name: "A", Latitude: 1, Longitude: -181}, want: domain.ErrInvalidCoordinates},
		{name: "unknown manager", req: domain.CreateRequest{Name: "A", ManagerID: &missing}, want: domain.ErrInvalidManager},
		{name: "rider as manager", req: domain.CreateRequest{Name: "A", ManagerID: &rider}, want: domain.ErrInvalidManager},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.svc.Create(e.ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateRentalPointKeepsCode(t *testing.T) {
	e := newEnv(t)
	manager := e.account(t, accountdomain.RoleManager)

	point, err := e.svc.Create(e.ctx, domain.CreateRequest{Name: "Mitte", Latitude: 52.52, Longitude: 13.40})
	require.NoError(t, err)

	name := "Mitte Nord"
	updated, err := e.svc.Update(e.ctx, point.ID.String(), domain.UpdateRequest{Name: &name, ManagerID: &manager})
	require.NoError(t, err)
	assert.Equal(t, "mitte", updated.Code)
	assert.Equal(t, "Mitte Nord", updated.Name)
	require.NotNil(t, updated.ManagerID)
	assert.Equal(t, manager, *updated.ManagerID)
}

func TestDeleteRentalPointDetachesScooters(t *testing.T) {
	e := newEnv(t)
	point, err := e.svc.Create(e.ctx, domain.CreateRequest{Name: "Kreuzberg", Latitude: 52.49, Longitude: 13.40})
	require.NoError(t, err)
	scooterID := e.scooter(t, &point.ID, scooterdomain.StatusAvailable)

	require.NoError(t, e.svc.Delete(e.ctx, point.ID.String()))

	_, err = e.svc.Get(e.ctx, point.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	scooter, err := scooterrepo.Provide().FindByID(e.ctx, e.db, scooterID)
	require.NoError(t, err)
	require.NotNil(t, scooter)
	assert.Nil(t, scooter.RentalPointID)

	assert.ErrorIs(t, e.svc.Delete(e.ctx, point.ID.String()), domain.ErrNotFound)
}

func TestNearbyOrdersByDistance(t *testing.T) {
	e := newEnv(t)
	far, err := e.svc.Create(e.ctx, domain.CreateRequest{Name: "Far", Latitude: 52.53, Longitude: 13.405})
	require.NoError(t, err)
	near, err := e.svc.Create(e.ctx, domain.CreateRequest{Name: "Near", Latitude: 52.521, Longitude: 13.405})
	require.NoError(t, err)
	_, err = e.svc.Create(e.ctx, domain.CreateRequest{Name: "Outside", Latitude: 52.60, Longitude: 13.405})
	require.NoError(t, err)

	points, err := e.svc.Nearby(e.ctx, domain.NearbyRequest{Latitude: 52.52, Longitude: 13.405})
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, near.ID, points[0].ID)
	assert.Equal(t, far.ID, points[1].ID)
	assert.InDelta(t, 0.111, points[0].DistanceKm, 0.001)
	assert.InDelta(t, 1.112, points[1].DistanceKm, 0.001)

	wide, err := e.svc.Nearby(e.ctx, domain.NearbyRequest{Latitude: 52.52, Longitude: 13.405, RadiusKm: 10})
	require.NoError(t, err)
	assert.Len(t, wide, 3)
}

func TestNearbyRejectsBadInput(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Nearby(e.ctx, domain.NearbyRequest{Latitude: 100, Longitude: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinates)

	_, err = e.svc.Nearby(e.ctx, domain.NearbyRequest{Latitude: 0, Longitude: 0, RadiusKm: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidRadius)

	_, err = e.svc.Nearby(e.ctx, domain.NearbyRequest{Latitude: 0, Longitude: 0, RadiusKm: 26})
	assert.ErrorIs(t, err, domain.ErrInvalidRadius)
}

func TestScootersAtFiltersByStatus(t *testing.T) {
	e := newEnv(t)
	point, err := e.svc.Create(e.ctx, domain.CreateRequest{Name: "Hub", Latitude: 1, Longitude: 1})
	require.NoError(t, err)
	other, err := e.svc.Create(e.ctx, domain.CreateRequest{Name: "Other", Latitude: 1, Longitude: 1})
	require.NoError(t, err)

	e.scooter(t, &point.ID, scooterdomain.StatusAvailable)
	e.scooter(t, &point.ID, scooterdomain.StatusInRepair)
	e.scooter(t, &point.ID, scooterdomain.StatusAvailable)
	e.scooter(t, &other.ID, scooterdomain.StatusAvailable)
	e.scooter(t, nil, scooterdomain.StatusAvailable)

	all, err := e.svc.ScootersAt(e.ctx, point.ID.String(), domain.ScootersRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Scooters, 3)

	available, err := e.svc.ScootersAt(e.ctx, point.ID.String(), domain.ScootersRequest{Status: scooterdomain.StatusAvailable})
	require.NoError(t, err)
	assert.Len(t, available.Scooters, 2)

	firstPage, err := e.svc.ScootersAt(e.ctx, point.ID.String(), domain.ScootersRequest{Pagination: pagination.Pagination{PageSize: 2}})
	require.NoError(t, err)
	assert.Len(t, firstPage.Scooters, 2)
	assert.NotEmpty(t, firstPage.NextPageToken)

	_, err = e.svc.ScootersAt(e.ctx, uuid.NewString(), domain.ScootersRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
