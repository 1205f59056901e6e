package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Model, error)
	Get(ctx context.Context, id string) (*Model, error)
	List(ctx context.Context, page pagination.Pagination) (*ListResponse, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Model, error)
	Delete(ctx context.Context, id string) error
}

type CreateRequest struct {
	Name string `json:"name"`
}

type UpdateRequest struct {
	Name string `json:"name"`
}

type ListResponse struct {
	pagination.PageInfo
	Models []Model `json:"models"`
}

var (
	ErrInvalidID   = errors.New("invalid_id")
	ErrInvalidName = errors.New("invalid_name")
	ErrNameTaken   = errors.New("model_name_taken")
	ErrModelInUse  = errors.New("model_in_use")
	ErrNotFound    = errors.New("not_found")
)
