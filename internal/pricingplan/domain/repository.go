package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, plan *PricingPlan) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*PricingPlan, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]PricingPlan, error)
	Update(ctx context.Context, db *gorm.DB, plan *PricingPlan) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error)
	// DetachScooters clears the plan reference of every scooter using it.
	DetachScooters(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
