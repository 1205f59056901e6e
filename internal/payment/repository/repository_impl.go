package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/smallbiznis/scootfleet/internal/payment/domain"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, payment *domain.Payment) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO payments (id, account_id, amount, status, reference, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID,
		payment.AccountID,
		payment.Amount,
		payment.Status,
		payment.Reference,
		payment.Metadata,
		payment.CreatedAt,
		payment.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.Payment, error) {
	var payment domain.Payment
	err := db.WithContext(ctx).Raw(
		`SELECT id, account_id, amount, status, reference, metadata, created_at, updated_at
		 FROM payments WHERE id = ?
		 LIMIT 1`,
		id,
	).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == uuid.Nil {
		return nil, nil
	}
	return &payment, nil
}

func (r *repo) ListByAccount(ctx context.Context, db *gorm.DB, accountID uuid.UUID, page pagination.Pagination) ([]domain.Payment, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Payment{}).
		Where("account_id = ?", accountID)
	stmt, err := pagination.Apply(stmt, page)
	if err != nil {
		return nil, err
	}

	var payments []domain.Payment
	if err := stmt.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repo) TransitionStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to domain.Status, at time.Time) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE payments
		 SET status = ?, updated_at = ?
		 WHERE id = ? AND status = ?`,
		to,
		at,
		id,
		from,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
