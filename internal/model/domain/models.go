package domain

import (
	"time"

	"github.com/google/uuid"
)

// Model is a scooter model in the fleet catalog. Every scooter references one.
type Model struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"type:text;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

func (Model) TableName() string { return "scooter_models" }
