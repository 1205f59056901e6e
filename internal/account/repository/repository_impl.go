package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scootfleet/internal/account/domain"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, account *domain.Account) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO accounts (id, name, email, phone, role, password_hash, balance, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		account.ID,
		account.Name,
		account.Email,
		account.Phone,
		account.Role,
		account.PasswordHash,
		account.Balance,
		account.CreatedAt,
		account.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.Account, error) {
	var account domain.Account
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, phone, role, password_hash, balance, created_at, updated_at
		 FROM accounts WHERE id = ?`,
		id,
	).Scan(&account).Error
	if err != nil {
		return nil, err
	}
	if account.ID == uuid.Nil {
		return nil, nil
	}
	return &account, nil
}

func (r *repo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.Account, error) {
	var account domain.Account
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, email, phone, role, password_hash, balance, created_at, updated_at
		 FROM accounts WHERE email = ?`,
		email,
	).Scan(&account).Error
	if err != nil {
		return nil, err
	}
	if account.ID == uuid.Nil {
		return nil, nil
	}
	return &account, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]domain.Account, error) {
	stmt := db.WithContext(ctx).Model(&domain.Account{})
	if filter.Role != "" {
		stmt = stmt.Where("role = ?", filter.Role)
	}
	stmt, err := pagination.Apply(stmt, page)
	if err != nil {
		return nil, err
	}

	var accounts []domain.Account
	if err := stmt.Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, account *domain.Account) error {
	return db.WithContext(ctx).Exec(
		`UPDATE accounts SET name = ?, phone = ?, role = ?, updated_at = ? WHERE id = ?`,
		account.Name,
		account.Phone,
		account.Role,
		account.UpdatedAt,
		account.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM accounts WHERE id = ?`, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) Debit(ctx context.Context, db *gorm.DB, id uuid.UUID, amount decimal.Decimal, at time.Time) (bool, error) {
	return r.adjustBalance(ctx, db, id, amount.Neg(), at)
}

func (r *repo) Credit(ctx context.Context, db *gorm.DB, id uuid.UUID, amount decimal.Decimal, at time.Time) (bool, error) {
	return r.adjustBalance(ctx, db, id, amount, at)
}

// adjustBalance sums in decimal and writes the exact result back; sqlite stores
// NUMERIC as REAL, so balance + ? in SQL would drift. Callers hold a transaction.
func (r *repo) adjustBalance(ctx context.Context, db *gorm.DB, id uuid.UUID, delta decimal.Decimal, at time.Time) (bool, error) {
	stmt := db.WithContext(ctx)
	if db.Dialector.Name() != "sqlite" {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var account domain.Account
	if err := stmt.Select("id", "balance").Where("id = ?", id).Limit(1).Find(&account).Error; err != nil {
		return false, err
	}
	if account.ID == uuid.Nil {
		return false, nil
	}

	res := db.WithContext(ctx).Exec(
		`UPDATE accounts SET balance = ?, updated_at = ? WHERE id = ?`,
		account.Balance.Add(delta).Round(domain.BalanceScale),
		at,
		id,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) HasActiveRental(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM rentals WHERE account_id = ? AND status = 'ACTIVE'`,
		id,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
