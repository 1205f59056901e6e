package seed

import (
	"context"
	"errors"

	rentaldomain "github.com/smallbiznis/scootfleet/internal/rental/domain"
	rentalrepository "github.com/smallbiznis/scootfleet/internal/rental/repository"
	"gorm.io/gorm"
)

// EnsureReferenceData inserts the rental types the engine relies on. Safe to run on every start.
func EnsureReferenceData(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	repo := rentalrepository.Provide()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repo.EnsureRentalTypes(ctx, tx, rentaldomain.DefaultRentalTypes())
	})
}
