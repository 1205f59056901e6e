package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, scooter *Scooter) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Scooter, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]Scooter, error)
	// Update writes the editable fields. The status column is left alone while the scooter is RENTED.
	Update(ctx context.Context, db *gorm.DB, scooter *Scooter) (bool, error)
	// DeleteUnlessRented reports false when nothing was deleted.
	DeleteUnlessRented(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error)
	// MarkRentedIfAvailable flips AVAILABLE to RENTED in one statement.
	MarkRentedIfAvailable(ctx context.Context, db *gorm.DB, id uuid.UUID, at time.Time) (bool, error)
	// Release adds distance to the odometer and makes the scooter AVAILABLE again.
	Release(ctx context.Context, db *gorm.DB, id uuid.UUID, distance decimal.Decimal, at time.Time) (bool, error)
}
