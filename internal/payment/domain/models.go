package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusRefunded  Status = "REFUNDED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	default:
		return false
	}
}

// Payment is a top-up of an account balance. Only COMPLETED payments count toward the balance.
type Payment struct {
	ID        uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID         `json:"account_id" gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal   `json:"amount" gorm:"type:numeric(12,2);not null"`
	Status    Status            `json:"status" gorm:"type:text;not null"`
	Reference string            `json:"reference" gorm:"type:text;not null;uniqueIndex"`
	Metadata  datatypes.JSONMap `json:"metadata" gorm:"type:jsonb"`
	CreatedAt time.Time         `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time         `json:"updated_at" gorm:"not null"`
}

func (Payment) TableName() string { return "payments" }
