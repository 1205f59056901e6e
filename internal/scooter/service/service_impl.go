package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scootfleet/internal/clock"
	modeldomain "github.com/smallbiznis/scootfleet/internal/model/domain"
	pricingplandomain "github.com/smallbiznis/scootfleet/internal/pricingplan/domain"
	"github.com/smallbiznis/scootfleet/internal/scooter/domain"
	"github.com/smallbiznis/scootfleet/pkg/db"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const fullBattery = 100

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Clock  clock.Clock
	Repo   domain.Repository
	Plans  pricingplandomain.Repository
	Models modeldomain.Repository
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	clock  clock.Clock
	repo   domain.Repository
	plans  pricingplandomain.Repository
	models modeldomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("scooter.service"),
		clock:  p.Clock,
		repo:   p.Repo,
		plans:  p.Plans,
		models: p.Models,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Scooter, error) {
	battery := fullBattery
	if req.BatteryLevel != nil {
		battery = *req.BatteryLevel
	}

	status := req.Status
	if status == "" {
		status = domain.StatusAvailable
	}
	if status == domain.StatusRented {
		return nil, domain.ErrInvalidStatus
	}

	now := s.clock.Now()
	scooter := domain.Scooter{
		ID:            uuid.New(),
		RentalPointID: req.RentalPointID,
		ModelID:       req.ModelID,
		PricingPlanID: req.PricingPlanID,
		BatteryLevel:  battery,
		Status:        status,
		Mileage:       decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.validate(ctx, scooter); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, s.db, &scooter); err != nil {
		if db.IsForeignKeyErr(err) {
			return nil, domain.ErrInvalidRentalPoint
		}
		return nil, err
	}

	s.log.Info("scooter created", zap.String("scooter_id", scooter.ID.String()))
	return &scooter, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Scooter, error) {
	scooterID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	scooter, err := s.repo.FindByID(ctx, s.db, scooterID)
	if err != nil {
		return nil, err
	}
	if scooter == nil {
		return nil, domain.ErrNotFound
	}
	return scooter, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	filter := domain.ListFilter{Status: req.Status}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if strings.TrimSpace(req.RentalPointID) != "" {
		pointID, err := uuid.Parse(strings.TrimSpace(req.RentalPointID))
		if err != nil {
			return nil, domain.ErrInvalidRentalPoint
		}
		filter.RentalPointID = &pointID
	}

	items, err := s.repo.List(ctx, s.db, filter, req.Pagination)
	if err != nil {
		return nil, err
	}

	scooters, pageInfo, err := pagination.Page(items, req.Limit(), func(sc domain.Scooter) pagination.Cursor {
		return pagination.Cursor{ID: sc.ID.String(), CreatedAt: sc.CreatedAt}
	})
	if err != nil {
		return nil, err
	}
	return &domain.ListResponse{PageInfo: pageInfo, Scooters: scooters}, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.Scooter, error) {
	scooter, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ModelID != nil {
		scooter.ModelID = *req.ModelID
	}
	if req.RentalPointID != nil {
		scooter.RentalPointID = req.RentalPointID
	}
	if req.PricingPlanID != nil {
		scooter.PricingPlanID = req.PricingPlanID
	}
	if req.BatteryLevel != nil {
		scooter.BatteryLevel = *req.BatteryLevel
	}
	if req.Status != nil && *req.Status == domain.StatusRented && scooter.Status != domain.StatusRented {
		return nil, domain.ErrInvalidStatus
	}
	if req.Status != nil && *req.Status != scooter.Status {
		if scooter.Status == domain.StatusRented {
			return nil, domain.ErrScooterRented
		}
		scooter.Status = *req.Status
	}
	if err := s.validate(ctx, *scooter); err != nil {
		return nil, err
	}
	scooter.UpdatedAt = s.clock.Now()

	updated, err := s.repo.Update(ctx, s.db, scooter)
	if err != nil {
		if db.IsForeignKeyErr(err) {
			return nil, domain.ErrInvalidRentalPoint
		}
		return nil, err
	}
	if !updated {
		return nil, domain.ErrNotFound
	}

	// re-read: a rental may have started since the first read
	return s.Get(ctx, id)
}

// Delete refuses while the scooter is out on a rental.
func (s *Service) Delete(ctx context.Context, id string) error {
	scooterID, err := parseID(id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.DeleteUnlessRented(ctx, s.db, scooterID)
	if err != nil {
		return err
	}
	if deleted {
		return nil
	}

	scooter, err := s.repo.FindByID(ctx, s.db, scooterID)
	if err != nil {
		return err
	}
	if scooter == nil {
		return domain.ErrNotFound
	}
	return domain.ErrScooterRented
}

func (s *Service) GetPricingPlan(ctx context.Context, id string) (*pricingplandomain.PricingPlan, error) {
	scooter, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if scooter.PricingPlanID == nil {
		return nil, domain.ErrNoPricingPlan
	}

	plan, err := s.plans.FindByID(ctx, s.db, *scooter.PricingPlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNoPricingPlan
	}
	return plan, nil
}

func (s *Service) validate(ctx context.Context, scooter domain.Scooter) error {
	if scooter.ModelID == uuid.Nil {
		return domain.ErrInvalidModel
	}
	model, err := s.models.FindByID(ctx, s.db, scooter.ModelID)
	if err != nil {
		return err
	}
	if model == nil {
		return domain.ErrInvalidModel
	}
	if scooter.BatteryLevel < 0 || scooter.BatteryLevel > fullBattery {
		return domain.ErrInvalidBattery
	}
	if !scooter.Status.Valid() {
		return domain.ErrInvalidStatus
	}
	if scooter.PricingPlanID != nil {
		plan, err := s.plans.FindByID(ctx, s.db, *scooter.PricingPlanID)
		if err != nil {
			return err
		}
		if plan == nil {
			return domain.ErrInvalidPricingPlan
		}
	}
	return nil
}

func parseID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, domain.ErrInvalidID
	}
	return id, nil
}
