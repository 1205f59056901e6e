package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, payment *Payment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Payment, error)
	ListByAccount(ctx context.Context, db *gorm.DB, accountID uuid.UUID, page pagination.Pagination) ([]Payment, error)
	// TransitionStatus moves from -> to in one statement; false when the payment was not in from.
	TransitionStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to Status, at time.Time) (bool, error)
}
