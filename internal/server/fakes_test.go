package server

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	accountdomain "github.com/smallbiznis/scootfleet/internal/account/domain"
	"github.com/smallbiznis/scootfleet/internal/authorization"
	modeldomain "github.com/smallbiznis/scootfleet/internal/model/domain"
	pricingplandomain "github.com/smallbiznis/scootfleet/internal/pricingplan/domain"
	rentaldomain "github.com/smallbiznis/scootfleet/internal/rental/domain"
	scooterdomain "github.com/smallbiznis/scootfleet/internal/scooter/domain"
	"github.com/smallbiznis/scootfleet/pkg/db/dbtest"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAccountService struct {
	accounts map[uuid.UUID]*accountdomain.Account
}

func (f *fakeAccountService) add(role accountdomain.Role) *accountdomain.Account {
	account := &accountdomain.Account{
		ID:      uuid.New(),
		Name:    string(role),
		Email:   uuid.NewString() + "@example.com",
		Role:    role,
		Balance: decimal.Zero,
	}
	f.accounts[account.ID] = account
	return account
}

func (f *fakeAccountService) Create(ctx context.Context, req accountdomain.CreateRequest) (*accountdomain.Account, error) {
	role := req.Role
	if role == "" {
		role = accountdomain.RoleUser
	}
	account := f.add(role)
	account.Name = req.Name
	account.Email = req.Email
	return account, nil
}

func (f *fakeAccountService) Get(ctx context.Context, id string) (*accountdomain.Account, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, accountdomain.ErrInvalidID
	}
	account, ok := f.accounts[parsed]
	if !ok {
		return nil, accountdomain.ErrNotFound
	}
	return account, nil
}

func (f *fakeAccountService) List(ctx context.Context, req accountdomain.ListRequest) (*accountdomain.ListResponse, error) {
	resp := &accountdomain.ListResponse{}
	for _, account := range f.accounts {
		resp.Accounts = append(resp.Accounts, *account)
	}
	return resp, nil
}

func (f *fakeAccountService) Update(ctx context.Context, id string, req accountdomain.UpdateRequest) (*accountdomain.Account, error) {
	account, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Role != nil {
		account.Role = *req.Role
	}
	return account, nil
}

func (f *fakeAccountService) Delete(ctx context.Context, id string) error {
	_, err := f.Get(ctx, id)
	return err
}

func (f *fakeAccountService) EnsureAdmin(ctx context.Context, name, email, password string) (*accountdomain.Account, error) {
	return f.add(accountdomain.RoleAdmin), nil
}

type startCall struct {
	accountID    uuid.UUID
	scooterID    uuid.UUID
	rentalTypeID int64
}

type fakeRentalService struct {
	rentals  map[uuid.UUID]*rentaldomain.Rental
	starts   []startCall
	ends     int
	startErr error
	endErr   error
	lastList rentaldomain.ListRequest
}

func (f *fakeRentalService) add(accountID uuid.UUID) *rentaldomain.Rental {
	rental := &rentaldomain.Rental{
		ID:           uuid.New(),
		AccountID:    accountID,
		ScooterID:    uuid.New(),
		RentalTypeID: 1,
		Status:       rentaldomain.StatusActive,
		StartTime:    time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
	}
	f.rentals[rental.ID] = rental
	return rental
}

func (f *fakeRentalService) StartRental(ctx context.Context, accountID, scooterID uuid.UUID, rentalTypeID int64) (*rentaldomain.Rental, error) {
	f.starts = append(f.starts, startCall{accountID: accountID, scooterID: scooterID, rentalTypeID: rentalTypeID})
	if f.startErr != nil {
		return nil, f.startErr
	}
	rental := f.add(accountID)
	rental.ScooterID = scooterID
	rental.RentalTypeID = rentalTypeID
	return rental, nil
}

func (f *fakeRentalService) EndRental(ctx context.Context, rentalID uuid.UUID, distance decimal.Decimal) (*rentaldomain.Rental, error) {
	f.ends++
	if f.endErr != nil {
		return nil, f.endErr
	}
	rental := f.rentals[rentalID]
	rental.Status = rentaldomain.StatusCompleted
	rental.Distance = distance
	return rental, nil
}

func (f *fakeRentalService) Get(ctx context.Context, id uuid.UUID) (*rentaldomain.Rental, error) {
	rental, ok := f.rentals[id]
	if !ok {
		return nil, rentaldomain.NotFound("rental")
	}
	return rental, nil
}

func (f *fakeRentalService) List(ctx context.Context, req rentaldomain.ListRequest) (*rentaldomain.ListResponse, error) {
	f.lastList = req
	return &rentaldomain.ListResponse{}, nil
}

func (f *fakeRentalService) ListRentalTypes(ctx context.Context) ([]rentaldomain.RentalType, error) {
	return rentaldomain.DefaultRentalTypes(), nil
}

func (f *fakeRentalService) Receipt(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return []byte("%PDF-1.3 receipt"), nil
}

type fakeScooterService struct {
	created int
}

func (f *fakeScooterService) Create(ctx context.Context, req scooterdomain.CreateRequest) (*scooterdomain.Scooter, error) {
	f.created++
	if req.ModelID == uuid.Nil {
		return nil, scooterdomain.ErrInvalidModel
	}
	return &scooterdomain.Scooter{ID: uuid.New(), ModelID: req.ModelID, Status: scooterdomain.StatusAvailable, BatteryLevel: 100}, nil
}

func (f *fakeScooterService) Get(ctx context.Context, id string) (*scooterdomain.Scooter, error) {
	return nil, scooterdomain.ErrNotFound
}

func (f *fakeScooterService) List(ctx context.Context, req scooterdomain.ListRequest) (*scooterdomain.ListResponse, error) {
	return &scooterdomain.ListResponse{}, nil
}

func (f *fakeScooterService) Update(ctx context.Context, id string, req scooterdomain.UpdateRequest) (*scooterdomain.Scooter, error) {
	return nil, scooterdomain.ErrScooterRented
}

func (f *fakeScooterService) Delete(ctx context.Context, id string) error {
	return nil
}

func (f *fakeScooterService) GetPricingPlan(ctx context.Context, id string) (*pricingplandomain.PricingPlan, error) {
	return nil, scooterdomain.ErrNoPricingPlan
}

type fakeModelService struct {
	models map[uuid.UUID]*modeldomain.Model
	inUse  map[uuid.UUID]bool
}

func (f *fakeModelService) Create(ctx context.Context, req modeldomain.CreateRequest) (*modeldomain.Model, error) {
	if len(strings.TrimSpace(req.Name)) < 4 {
		return nil, modeldomain.ErrInvalidName
	}
	for _, m := range f.models {
		if m.Name == req.Name {
			return nil, modeldomain.ErrNameTaken
		}
	}
	model := &modeldomain.Model{ID: uuid.New(), Name: req.Name}
	f.models[model.ID] = model
	return model, nil
}

func (f *fakeModelService) Get(ctx context.Context, id string) (*modeldomain.Model, error) {
	modelID, err := uuid.Parse(id)
	if err != nil {
		return nil, modeldomain.ErrInvalidID
	}
	model, ok := f.models[modelID]
	if !ok {
		return nil, modeldomain.ErrNotFound
	}
	return model, nil
}

func (f *fakeModelService) List(ctx context.Context, page pagination.Pagination) (*modeldomain.ListResponse, error) {
	resp := &modeldomain.ListResponse{}
	for _, m := range f.models {
		resp.Models = append(resp.Models, *m)
	}
	return resp, nil
}

func (f *fakeModelService) Update(ctx context.Context, id string, req modeldomain.UpdateRequest) (*modeldomain.Model, error) {
	model, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	model.Name = req.Name
	return model, nil
}

func (f *fakeModelService) Delete(ctx context.Context, id string) error {
	model, err := f.Get(ctx, id)
	if err != nil {
		return err
	}
	if f.inUse[model.ID] {
		return modeldomain.ErrModelInUse
	}
	delete(f.models, model.ID)
	return nil
}

type testServer struct {
	engine   *gin.Engine
	accounts *fakeAccountService
	rentals  *fakeRentalService
	scooters *fakeScooterService
	models   *fakeModelService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	enforcer, err := authorization.NewEnforcer(dbtest.Open(t))
	require.NoError(t, err)

	ts := &testServer{
		engine:   gin.New(),
		accounts: &fakeAccountService{accounts: map[uuid.UUID]*accountdomain.Account{}},
		rentals:  &fakeRentalService{rentals: map[uuid.UUID]*rentaldomain.Rental{}},
		scooters: &fakeScooterService{},
		models:   &fakeModelService{models: map[uuid.UUID]*modeldomain.Model{}, inUse: map[uuid.UUID]bool{}},
	}
	ts.engine.Use(ErrorHandlingMiddleware())

	NewServer(ServerParams{
		Gin:        ts.engine,
		AuthzSvc:   authorization.NewService(authorization.Params{Log: zap.NewNop(), Enforcer: enforcer}),
		AccountSvc: ts.accounts,
		ScooterSvc: ts.scooters,
		ModelSvc:   ts.models,
		RentalSvc:  ts.rentals,
	})
	return ts
}
