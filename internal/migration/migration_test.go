package migration

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/uuid"
	rentaldomain "github.com/smallbiznis/scootfleet/internal/rental/domain"
	"github.com/smallbiznis/scootfleet/internal/seed"
	"github.com/smallbiznis/scootfleet/pkg/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(embeddedMigrations, migrationsDir)
	require.NoError(t, err)

	ups, downs := 0, 0
	for _, entry := range entries {
		switch {
		case strings.HasSuffix(entry.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(entry.Name(), ".down.sql"):
			downs++
		}
	}
	assert.Positive(t, ups)
	assert.Equal(t, ups, downs)
}

func TestUpMigrationCarriesActiveRentalIndex(t *testing.T) {
	body, err := fs.ReadFile(embeddedMigrations, migrationsDir+"/000001_init.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "ON rentals (scooter_id) WHERE status = 'ACTIVE'")
}

func TestScooterModelMigrationReplacesFreeText(t *testing.T) {
	up, err := fs.ReadFile(embeddedMigrations, migrationsDir+"/000002_scooter_models.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(up), "model_id UUID REFERENCES scooter_models (id)")
	assert.Contains(t, string(up), "DROP COLUMN IF EXISTS model;")

	down, err := fs.ReadFile(embeddedMigrations, migrationsDir+"/000002_scooter_models.down.sql")
	require.NoError(t, err)
	assert.Contains(t, string(down), "DROP TABLE IF EXISTS scooter_models")
}

func TestAutoMigrateAndSeed(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	require.NoError(t, AutoMigrate(db))
	require.NoError(t, seed.EnsureReferenceData(ctx, db))
	// second run is a no-op
	require.NoError(t, seed.EnsureReferenceData(ctx, db))

	var types []rentaldomain.RentalType
	require.NoError(t, db.Order("id").Find(&types).Error)
	require.Len(t, types, 2)
	assert.Equal(t, rentaldomain.RentalTypeHourly, types[0].ID)
	assert.Equal(t, rentaldomain.RentalTypeSubscription, types[1].ID)

	insert := `INSERT INTO rentals (id, account_id, scooter_id, rental_type_id, status, start_time, distance, created_at, updated_at)
		VALUES (?, ?, ?, 1, 'ACTIVE', CURRENT_TIMESTAMP, 0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	scooterID := uuid.New()
	require.NoError(t, db.Exec(insert, uuid.New(), uuid.New(), scooterID).Error)
	assert.Error(t, db.Exec(insert, uuid.New(), uuid.New(), scooterID).Error)
}
