package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
)

type Service interface {
	MakePayment(ctx context.Context, req CreateRequest) (*Payment, error)
	Get(ctx context.Context, id string) (*Payment, error)
	ListByAccount(ctx context.Context, accountID string, page pagination.Pagination) (*ListResponse, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Payment, error)
}

type CreateRequest struct {
	AccountID uuid.UUID       `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Metadata  map[string]any  `json:"metadata"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

type ListResponse struct {
	pagination.PageInfo
	Payments []Payment `json:"payments"`
}

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidTransition = errors.New("invalid_status_transition")
	ErrAccountNotFound   = errors.New("account_not_found")
	ErrNotFound          = errors.New("not_found")
)
