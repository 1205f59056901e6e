package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/smallbiznis/scootfleet/internal/model/domain"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, model *domain.Model) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO scooter_models (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		model.ID,
		model.Name,
		model.CreatedAt,
		model.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*domain.Model, error) {
	var model domain.Model
	err := db.WithContext(ctx).Raw(
		`SELECT id, name, created_at, updated_at FROM scooter_models WHERE id = ?`,
		id,
	).Scan(&model).Error
	if err != nil {
		return nil, err
	}
	if model.ID == uuid.Nil {
		return nil, nil
	}
	return &model, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]domain.Model, error) {
	stmt, err := pagination.Apply(db.WithContext(ctx).Model(&domain.Model{}), page)
	if err != nil {
		return nil, err
	}

	var models []domain.Model
	if err := stmt.Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, model *domain.Model) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE scooter_models SET name = ?, updated_at = ? WHERE id = ?`,
		model.Name,
		model.UpdatedAt,
		model.ID,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM scooter_models WHERE id = ?`, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) InUse(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM scooters WHERE model_id = ?`,
		id,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
