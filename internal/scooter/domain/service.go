package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	pricingplandomain "github.com/smallbiznis/scootfleet/internal/pricingplan/domain"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Scooter, error)
	Get(ctx context.Context, id string) (*Scooter, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Scooter, error)
	Delete(ctx context.Context, id string) error
	GetPricingPlan(ctx context.Context, id string) (*pricingplandomain.PricingPlan, error)
}

type CreateRequest struct {
	ModelID       uuid.UUID  `json:"model_id"`
	RentalPointID *uuid.UUID `json:"rental_point_id"`
	PricingPlanID *uuid.UUID `json:"pricing_plan_id"`
	BatteryLevel  *int       `json:"battery_level"`
	Status        Status     `json:"status"`
}

type UpdateRequest struct {
	ModelID       *uuid.UUID `json:"model_id"`
	RentalPointID *uuid.UUID `json:"rental_point_id"`
	PricingPlanID *uuid.UUID `json:"pricing_plan_id"`
	BatteryLevel  *int       `json:"battery_level"`
	Status        *Status    `json:"status"`
}

type ListRequest struct {
	Status        Status
	RentalPointID string
	pagination.Pagination
}

type ListFilter struct {
	Status        Status
	RentalPointID *uuid.UUID
}

type ListResponse struct {
	pagination.PageInfo
	Scooters []Scooter `json:"scooters"`
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidModel       = errors.New("invalid_model")
	ErrInvalidBattery     = errors.New("invalid_battery_level")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrInvalidRentalPoint = errors.New("invalid_rental_point")
	ErrInvalidPricingPlan = errors.New("invalid_pricing_plan")
	ErrScooterRented      = errors.New("scooter_rented")
	ErrNoPricingPlan      = errors.New("pricing_plan_not_found")
	ErrNotFound           = errors.New("not_found")
)
