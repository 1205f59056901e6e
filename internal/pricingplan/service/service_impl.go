package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scootfleet/internal/clock"
	"github.com/smallbiznis/scootfleet/internal/pricing"
	"github.com/smallbiznis/scootfleet/internal/pricingplan/domain"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var maxDiscount = decimal.NewFromInt(100)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("pricingplan.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.PricingPlan, error) {
	now := s.clock.Now()
	plan := domain.PricingPlan{
		ID:                uuid.New(),
		Name:              strings.TrimSpace(req.Name),
		PricePerHour:      req.PricePerHour.Round(pricing.Scale),
		SubscriptionPrice: req.SubscriptionPrice.Round(pricing.Scale),
		DiscountPercent:   req.DiscountPercent.Round(pricing.Scale),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := validate(plan); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, s.db, &plan); err != nil {
		return nil, err
	}

	s.log.Info("pricing plan created", zap.String("pricing_plan_id", plan.ID.String()))
	return &plan, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.PricingPlan, error) {
	planID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	plan, err := s.repo.FindByID(ctx, s.db, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	return plan, nil
}

func (s *Service) List(ctx context.Context, page pagination.Pagination) (*domain.ListResponse, error) {
	items, err := s.repo.List(ctx, s.db, page)
	if err != nil {
		return nil, err
	}

	plans, pageInfo, err := pagination.Page(items, page.Limit(), func(p domain.PricingPlan) pagination.Cursor {
		return pagination.Cursor{ID: p.ID.String(), CreatedAt: p.CreatedAt}
	})
	if err != nil {
		return nil, err
	}
	return &domain.ListResponse{PageInfo: pageInfo, PricingPlans: plans}, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.PricingPlan, error) {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		plan.Name = strings.TrimSpace(*req.Name)
	}
	if req.PricePerHour != nil {
		plan.PricePerHour = req.PricePerHour.Round(pricing.Scale)
	}
	if req.SubscriptionPrice != nil {
		plan.SubscriptionPrice = req.SubscriptionPrice.Round(pricing.Scale)
	}
	if req.DiscountPercent != nil {
		plan.DiscountPercent = req.DiscountPercent.Round(pricing.Scale)
	}
	if err := validate(*plan); err != nil {
		return nil, err
	}
	plan.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete removes the plan and leaves the scooters that used it without one.
func (s *Service) Delete(ctx context.Context, id string) error {
	planID, err := parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.DetachScooters(ctx, tx, planID); err != nil {
			return err
		}
		deleted, err := s.repo.Delete(ctx, tx, planID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrNotFound
		}
		return nil
	})
}

func validate(plan domain.PricingPlan) error {
	if plan.Name == "" {
		return domain.ErrInvalidName
	}
	if plan.PricePerHour.IsNegative() || plan.SubscriptionPrice.IsNegative() {
		return domain.ErrInvalidRate
	}
	if plan.DiscountPercent.IsNegative() || plan.DiscountPercent.GreaterThan(maxDiscount) {
		return domain.ErrInvalidDiscount
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
