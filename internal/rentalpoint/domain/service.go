package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	scooterdomain "github.com/smallbiznis/scootfleet/internal/scooter/domain"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*RentalPoint, error)
	Get(ctx context.Context, id string) (*RentalPoint, error)
	List(ctx context.Context, page pagination.Pagination) (*ListResponse, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*RentalPoint, error)
	Delete(ctx context.Context, id string) error
	Nearby(ctx context.Context, req NearbyRequest) ([]NearbyPoint, error)
	ScootersAt(ctx context.Context, id string, req ScootersRequest) (*scooterdomain.ListResponse, error)
}

type CreateRequest struct {
	Name      string     `json:"name"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Address   string     `json:"address"`
	ManagerID *uuid.UUID `json:"manager_id"`
}

type UpdateRequest struct {
	Name      *string    `json:"name"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Address   *string    `json:"address"`
	ManagerID *uuid.UUID `json:"manager_id"`
}

// NearbyRequest uses the configured default radius when RadiusKm is zero.
type NearbyRequest struct {
	Latitude  float64 `form:"lat"`
	Longitude float64 `form:"lon"`
	RadiusKm  float64 `form:"radius_km"`
}

type ScootersRequest struct {
	Status scooterdomain.Status
	pagination.Pagination
}

type ListResponse struct {
	pagination.PageInfo
	RentalPoints []RentalPoint `json:"rental_points"`
}

var (
	ErrInvalidID          = errors.New("invalid_id")
	ErrInvalidName        = errors.New("invalid_name")
	ErrInvalidCoordinates = errors.New("invalid_coordinates")
	ErrInvalidRadius      = errors.New("invalid_radius")
	ErrInvalidManager     = errors.New("invalid_manager")
	ErrNotFound           = errors.New("not_found")
)
