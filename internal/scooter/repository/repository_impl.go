package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scootfleet/internal/scooter/domain"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, scooter *domain.Scooter) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO scooters (id, rental_point_id, model_id, pricing_plan_id, battery_level, status, mileage, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		scooter.ID,
		scooter.RentalPointID,
		scooter.ModelID,
		scooter.PricingPlanID,
		scooter.BatteryLevel,
		scooter.Status,
		scooter.Mileage,
		scooter.CreatedAt,
		scooter.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.Scooter, error) {
	var scooter domain.Scooter
	err := db.WithContext(ctx).Raw(
		`SELECT id, rental_point_id, model_id, pricing_plan_id, battery_level, status, mileage, created_at, updated_at
		 FROM scooters WHERE id = ?`,
		id,
	).Scan(&scooter).Error
	if err != nil {
		return nil, err
	}
	if scooter.ID == uuid.Nil {
		return nil, nil
	}
	return &scooter, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]domain.Scooter, error) {
	stmt := db.WithContext(ctx).Model(&domain.Scooter{})
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.RentalPointID != nil {
		stmt = stmt.Where("rental_point_id = ?", *filter.RentalPointID)
	}
	stmt, err := pagination.Apply(stmt, page)
	if err != nil {
		return nil, err
	}

	var scooters []domain.Scooter
	if err := stmt.Find(&scooters).Error; err != nil {
		return nil, err
	}
	return scooters, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, scooter *domain.Scooter) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE scooters
		 SET rental_point_id = ?, model_id = ?, pricing_plan_id = ?, battery_level = ?,
		     status = CASE WHEN status = 'RENTED' THEN status ELSE ? END,
		     updated_at = ?
		 WHERE id = ?`,
		scooter.RentalPointID,
		scooter.ModelID,
		scooter.PricingPlanID,
		scooter.BatteryLevel,
		scooter.Status,
		scooter.UpdatedAt,
		scooter.ID,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) DeleteUnlessRented(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`DELETE FROM scooters WHERE id = ? AND status <> ?`,
		id,
		domain.StatusRented,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) MarkRentedIfAvailable(ctx context.Context, db *gorm.DB, id uuid.UUID, at time.Time) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE scooters SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		domain.StatusRented,
		at,
		id,
		domain.StatusAvailable,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Release frees the scooter and adds distance to its odometer. The sum is done in
// decimal and written back exactly. Callers hold a transaction.
func (r *repo) Release(ctx context.Context, db *gorm.DB, id uuid.UUID, distance decimal.Decimal, at time.Time) (bool, error) {
	stmt := db.WithContext(ctx)
	if db.Dialector.Name() != "sqlite" {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var scooter domain.Scooter
	if err := stmt.Select("id", "mileage").Where("id = ?", id).Limit(1).Find(&scooter).Error; err != nil {
		return false, err
	}
	if scooter.ID == uuid.Nil {
		return false, nil
	}

	res := db.WithContext(ctx).Exec(
		`UPDATE scooters SET mileage = ?, status = ?, updated_at = ? WHERE id = ?`,
		scooter.Mileage.Add(distance).Round(domain.MileageScale),
		domain.StatusAvailable,
		at,
		id,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
