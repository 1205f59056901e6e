package domain

import (
	"time"

	"github.com/google/uuid"
)

type RentalPoint struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Code      string     `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Name      string     `json:"name" gorm:"type:text;not null"`
	Latitude  float64    `json:"latitude" gorm:"not null"`
	Longitude float64    `json:"longitude" gorm:"not null"`
	Address   string     `json:"address" gorm:"type:text"`
	ManagerID *uuid.UUID `json:"manager_id,omitempty" gorm:"type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"not null"`
}

func (RentalPoint) TableName() string { return "rental_points" }

type NearbyPoint struct {
	RentalPoint
	DistanceKm float64 `json:"distance_km"`
}
