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
	FindRentalType(ctx context.Context, db *gorm.DB, id int64) (*RentalType, error)
	ListRentalTypes(ctx context.Context, db *gorm.DB) ([]RentalType, error)
	// EnsureRentalTypes inserts the missing rows of types.
	EnsureRentalTypes(ctx context.Context, db *gorm.DB, types []RentalType) error

	Insert(ctx context.Context, db *gorm.DB, rental *Rental) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Rental, error)
	// FindByIDForUpdate locks the row until db's transaction ends.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Rental, error)
	// Complete closes an ACTIVE rental; false when it was no longer active.
	Complete(ctx context.Context, db *gorm.DB, id uuid.UUID, completion Completion) (bool, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]Rental, error)
}

type Completion struct {
	EndTime    time.Time
	Distance   decimal.Decimal
	TotalPrice decimal.Decimal
}

type ListFilter struct {
	AccountID *uuid.UUID
	ScooterID *uuid.UUID
	Status    Status
}
