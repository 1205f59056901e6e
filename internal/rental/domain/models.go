package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scootfleet/internal/pricing"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
)

// Seeded rental type ids.
const (
	RentalTypeHourly       int64 = 1
	RentalTypeSubscription int64 = 2
)

type RentalType struct {
	ID          int64        `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Name        pricing.Mode `json:"name" gorm:"type:text;not null;uniqueIndex"`
	Description string       `json:"description" gorm:"type:text"`
}

func (RentalType) TableName() string { return "rental_types" }

// DefaultRentalTypes are the rows every database starts with.
func DefaultRentalTypes() []RentalType {
	return []RentalType{
		{ID: RentalTypeHourly, Name: pricing.Hourly, Description: "Billed per hour at the plan hourly rate"},
		{ID: RentalTypeSubscription, Name: pricing.Subscription, Description: "Billed per hour at the plan subscription rate"},
	}
}

// Rental is ACTIVE from creation until it is completed, and never reopened.
// EndTime and TotalPrice are set together at completion.
type Rental struct {
	ID           uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	AccountID    uuid.UUID           `json:"account_id" gorm:"type:uuid;not null;index"`
	ScooterID    uuid.UUID           `json:"scooter_id" gorm:"type:uuid;not null;index"`
	RentalTypeID int64               `json:"rental_type_id" gorm:"not null"`
	Status       Status              `json:"status" gorm:"type:text;not null;index"`
	StartTime    time.Time           `json:"start_time" gorm:"not null"`
	EndTime      *time.Time          `json:"end_time"`
	Distance     decimal.Decimal     `json:"distance" gorm:"type:numeric(12,2);not null;default:0"`
	TotalPrice   decimal.NullDecimal `json:"total_price" gorm:"type:numeric(12,2)"`
	CreatedAt    time.Time           `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time           `json:"updated_at" gorm:"not null"`
}

func (Rental) TableName() string { return "rentals" }

func (r Rental) Active() bool { return r.Status == StatusActive }
