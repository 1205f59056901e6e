package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Account, error)
	Get(ctx context.Context, id string) (*Account, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Account, error)
	Delete(ctx context.Context, id string) error
	EnsureAdmin(ctx context.Context, name, email, password string) (*Account, error)
}

type CreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// UpdateRequest changes only the fields that are set.
type UpdateRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Role  *Role   `json:"role"`
}

type ListRequest struct {
	Role Role
	pagination.Pagination
}

type ListFilter struct {
	Role Role
}

type ListResponse struct {
	pagination.PageInfo
	Accounts []Account `json:"accounts"`
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidPassword = errors.New("invalid_password")
	ErrInvalidRole     = errors.New("invalid_role")
	ErrEmailTaken      = errors.New("email_taken")
	ErrHasActiveRental = errors.New("account_has_active_rental")
	ErrNotFound        = errors.New("not_found")
)
