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
	Insert(ctx context.Context, db *gorm.DB, account *Account) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*Account, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*Account, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]Account, error)
	Update(ctx context.Context, db *gorm.DB, account *Account) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error)
	// Debit and Credit change the balance in one statement; false when the account is gone.
	// Debit does not check for sufficient funds.
	Debit(ctx context.Context, db *gorm.DB, id uuid.UUID, amount decimal.Decimal, at time.Time) (bool, error)
	Credit(ctx context.Context, db *gorm.DB, id uuid.UUID, amount decimal.Decimal, at time.Time) (bool, error)
	HasActiveRental(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error)
}
