package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
)

type Service interface {
	StartRental(ctx context.Context, accountID, scooterID uuid.UUID, rentalTypeID int64) (*Rental, error)
	EndRental(ctx context.Context, rentalID uuid.UUID, distance decimal.Decimal) (*Rental, error)

	Get(ctx context.Context, id uuid.UUID) (*Rental, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	ListRentalTypes(ctx context.Context) ([]RentalType, error)
	// Receipt renders a PDF for a completed rental.
	Receipt(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type StartRequest struct {
	AccountID    uuid.UUID `json:"user_id"`
	ScooterID    uuid.UUID `json:"scooter_id"`
	RentalTypeID int64     `json:"rental_type_id"`
}

type EndRequest struct {
	RentalID uuid.UUID       `json:"rental_id"`
	Distance decimal.Decimal `json:"distance"`
}

type ListRequest struct {
	AccountID *uuid.UUID
	ScooterID *uuid.UUID
	Status    Status
	pagination.Pagination
}

type ListResponse struct {
	pagination.PageInfo
	Rentals []Rental `json:"rentals"`
}
