package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, point *RentalPoint) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*RentalPoint, error)
	CodeExists(ctx context.Context, db *gorm.DB, code string) (bool, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]RentalPoint, error)
	// ListInBox returns points inside box; longitudes may fall outside [-180, 180] near the antimeridian.
	ListInBox(ctx context.Context, db *gorm.DB, box Box) ([]RentalPoint, error)
	Update(ctx context.Context, db *gorm.DB, point *RentalPoint) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error)
	DetachScooters(ctx context.Context, db *gorm.DB, id uuid.UUID) error
}
