package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, model *Model) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Model, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]Model, error)
	Update(ctx context.Context, db *gorm.DB, model *Model) (bool, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error)
	// InUse reports whether any scooter references the model.
	InUse(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error)
}
