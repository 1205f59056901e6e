package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/smallbiznis/scootfleet/internal/rentalpoint/domain"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, point *domain.RentalPoint) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO rental_points (id, code, name, latitude, longitude, address, manager_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		point.ID,
		point.Code,
		point.Name,
		point.Latitude,
		point.Longitude,
		point.Address,
		point.ManagerID,
		point.CreatedAt,
		point.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.RentalPoint, error) {
	var point domain.RentalPoint
	err := db.WithContext(ctx).Raw(
		`SELECT id, code, name, latitude, longitude, address, manager_id, created_at, updated_at
		 FROM rental_points WHERE id = ?`,
		id,
	).Scan(&point).Error
	if err != nil {
		return nil, err
	}
	if point.ID == uuid.Nil {
		return nil, nil
	}
	return &point, nil
}

func (r *repo) CodeExists(ctx context.Context, db *gorm.DB, code string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM rental_points WHERE code = ?`,
		code,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]domain.RentalPoint, error) {
	stmt, err := pagination.Apply(db.WithContext(ctx).Model(&domain.RentalPoint{}), page)
	if err != nil {
		return nil, err
	}

	var points []domain.RentalPoint
	if err := stmt.Find(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

func (r *repo) ListInBox(ctx context.Context, db *gorm.DB, box domain.Box) ([]domain.RentalPoint, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.RentalPoint{}).
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat)

	switch {
	case box.MinLon < -180:
		stmt = stmt.Where("(longitude >= ? OR longitude <= ?)", box.MinLon+360, box.MaxLon)
	case box.MaxLon > 180:
		stmt = stmt.Where("(longitude >= ? OR longitude <= ?)", box.MinLon, box.MaxLon-360)
	default:
		stmt = stmt.Where("longitude BETWEEN ? AND ?", box.MinLon, box.MaxLon)
	}

	var points []domain.RentalPoint
	if err := stmt.Find(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, point *domain.RentalPoint) error {
	return db.WithContext(ctx).Exec(
		`UPDATE rental_points
		 SET name = ?, latitude = ?, longitude = ?, address = ?, manager_id = ?, updated_at = ?
		 WHERE id = ?`,
		point.Name,
		point.Latitude,
		point.Longitude,
		point.Address,
		point.ManagerID,
		point.UpdatedAt,
		point.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM rental_points WHERE id = ?`, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) DetachScooters(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Exec(
		`UPDATE scooters SET rental_point_id = NULL WHERE rental_point_id = ?`,
		id,
	).Error
}
