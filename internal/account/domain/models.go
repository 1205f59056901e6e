package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

// BalanceScale is the number of decimal places a balance is kept at.
const BalanceScale int32 = 2

// Account is a rider or staff member. Balance is prepaid credit and may go negative
// only when a finished ride costs more than what is left.
type Account struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string          `json:"name" gorm:"type:text;not null"`
	Email        string          `json:"email" gorm:"type:text;not null;uniqueIndex"`
	Phone        string          `json:"phone,omitempty" gorm:"type:text"`
	Role         Role            `json:"role" gorm:"type:text;not null;default:user"`
	PasswordHash string          `json:"-" gorm:"type:text;not null"`
	Balance      decimal.Decimal `json:"balance" gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt    time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"not null"`
}

func (Account) TableName() string { return "accounts" }
