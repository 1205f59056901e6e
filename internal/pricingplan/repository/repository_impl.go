package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/smallbiznis/scootfleet/internal/pricingplan/domain"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, plan *domain.PricingPlan) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO pricing_plans (id, name, price_per_hour, subscription_price, discount_percent, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		plan.ID,
		plan.Name,
		plan.PricePerHour,
		plan.SubscriptionPrice,
		plan.DiscountPercent,
		plan.CreatedAt,
		plan.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.PricingPlan, error) {
	var plan domain.PricingPlan
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, price_per_hour, subscription_price, discount_percent, created_at, updated_at
		 FROM pricing_plans WHERE id = ?`,
		id,
	).Scan(&plan).Error
	if err != nil {
		return nil, err
	}
	if plan.ID == uuid.Nil {
		return nil, nil
	}
	return &plan, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]domain.PricingPlan, error) {
	stmt, err := pagination.Apply(db.WithContext(ctx).Model(&domain.PricingPlan{}), page)
	if err != nil {
		return nil, err
	}

	var plans []domain.PricingPlan
	if err := stmt.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, plan *domain.PricingPlan) error {
	return db.WithContext(ctx).Exec(
		`UPDATE pricing_plans
		 SET name = ?, price_per_hour = ?, subscription_price = ?, discount_percent = ?, updated_at = ?
		 WHERE id = ?`,
		plan.Name,
		plan.PricePerHour,
		plan.SubscriptionPrice,
		plan.DiscountPercent,
		plan.UpdatedAt,
		plan.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM pricing_plans WHERE id = ?`, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) DetachScooters(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE scooters SET pricing_plan_id = NULL WHERE pricing_plan_id = ?`,
		id,
	).Error
}
