package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/smallbiznis/scootfleet/internal/rental/domain"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindRentalType(ctx context.Context, db *gorm.DB, id int64) (*domain.RentalType, error) {
	var rentalType domain.RentalType
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, description FROM rental_types WHERE id = ?`,
		id,
	).Scan(&rentalType).Error
	if err != nil {
		return nil, err
	}
	if rentalType.ID == 0 {
		return nil, nil
	}
	return &rentalType, nil
}

func (r *repo) ListRentalTypes(ctx context.Context, db *gorm.DB) ([]domain.RentalType, error) {
	var types []domain.RentalType
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, description FROM rental_types ORDER BY id`,
	).Scan(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *repo) EnsureRentalTypes(ctx context.Context, db *gorm.DB, types []domain.RentalType) error {
	if len(types) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&types).Error
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, rental *domain.Rental) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO rentals (id, account_id, scooter_id, rental_type_id, status, start_time, end_time, distance, total_price, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rental.ID,
		rental.AccountID,
		rental.ScooterID,
		rental.RentalTypeID,
		rental.Status,
		rental.StartTime,
		rental.EndTime,
		rental.Distance,
		rental.TotalPrice,
		rental.CreatedAt,
		rental.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.Rental, error) {
	var rental domain.Rental
	err := db.WithContext(ctx).Raw(
		`SELECT id, account_id, scooter_id, rental_type_id, status, start_time, end_time, distance, total_price, created_at, updated_at
		 FROM rentals WHERE id = ?`,
		id,
	).Scan(&rental).Error
	if err != nil {
		return nil, err
	}
	if rental.ID == uuid.Nil {
		return nil, nil
	}
	return &rental, nil
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.Rental, error) {
	stmt := db.WithContext(ctx)
	// sqlite has no row locks; its writers are already serialized
	if db.Dialector.Name() != "sqlite" {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rental domain.Rental
	err := stmt.Where("id = ?", id).Limit(1).Find(&rental).Error
	if err != nil {
		return nil, err
	}
	if rental.ID == uuid.Nil {
		return nil, nil
	}
	return &rental, nil
}

func (r *repo) Complete(ctx context.Context, db *gorm.DB, id uuid.UUID, completion domain.Completion) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE rentals
		 SET status = ?, end_time = ?, distance = ?, total_price = ?, updated_at = ?
		 WHERE id = ? AND status = ?`,
		domain.StatusCompleted,
		completion.EndTime,
		completion.Distance,
		completion.TotalPrice,
		completion.EndTime,
		id,
		domain.StatusActive,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]domain.Rental, error) {
	stmt := db.WithContext(ctx).Model(&domain.Rental{})
	if filter.AccountID != nil {
		stmt = stmt.Where("account_id = ?", *filter.AccountID)
	}
	if filter.ScooterID != nil {
		stmt = stmt.Where("scooter_id = ?", *filter.ScooterID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	stmt, err := pagination.Apply(stmt, page)
	if err != nil {
		return nil, err
	}

	var rentals []domain.Rental
	if err := stmt.Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}
