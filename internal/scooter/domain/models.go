package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusRented    Status = "RENTED"
	StatusInRepair  Status = "IN_REPAIR"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusRented, StatusInRepair:
		return true
	default:
		return false
	}
}

// MileageScale is the number of decimal places the odometer is kept at.
const MileageScale int32 = 2

// Scooter is RENTED exactly while one active rental references it.
// Only the rental engine moves a scooter in or out of RENTED.
type Scooter struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	RentalPointID *uuid.UUID      `json:"rental_point_id,omitempty" gorm:"type:uuid;index"`
	ModelID       uuid.UUID       `json:"model_id" gorm:"type:uuid;not null;index"`
	PricingPlanID *uuid.UUID      `json:"pricing_plan_id,omitempty" gorm:"type:uuid;index"`
	BatteryLevel  int             `json:"battery_level" gorm:"not null;default:100"`
	Status        Status          `json:"status" gorm:"type:text;not null;default:AVAILABLE;index"`
	Mileage       decimal.Decimal `json:"mileage" gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"not null"`
}

func (Scooter) TableName() string { return "scooters" }
