package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	accountdomain "github.com/smallbiznis/scootfleet/internal/account/domain"
	modeldomain "github.com/smallbiznis/scootfleet/internal/model/domain"
	paymentdomain "github.com/smallbiznis/scootfleet/internal/payment/domain"
	pricingplandomain "github.com/smallbiznis/scootfleet/internal/pricingplan/domain"
	rentaldomain "github.com/smallbiznis/scootfleet/internal/rental/domain"
	rentalpointdomain "github.com/smallbiznis/scootfleet/internal/rentalpoint/domain"
	scooterdomain "github.com/smallbiznis/scootfleet/internal/scooter/domain"
	"gorm.io/gorm"
)

// RunMigrations applies the embedded postgres migrations.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	// Do not call migrator.Close here because it would close the shared *sql.DB.

	return nil
}

// Models lists every table owned by the service, in dependency order.
func Models() []any {
	return []any{
		&accountdomain.Account{},
		&pricingplandomain.PricingPlan{},
		&rentalpointdomain.RentalPoint{},
		&modeldomain.Model{},
		&scooterdomain.Scooter{},
		&rentaldomain.RentalType{},
		&rentaldomain.Rental{},
		&paymentdomain.Payment{},
	}
}

// AutoMigrate builds the schema from the models. Used for sqlite, which cannot run
// the postgres migrations; the active-rental partial index is created by hand.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_rentals_active_scooter ON rentals (scooter_id) WHERE status = 'ACTIVE'`,
	).Error
}
