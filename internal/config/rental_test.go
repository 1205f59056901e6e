package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRentalPolicyDefaultsWhenFileMissing(t *testing.T) {
	holder, err := NewRentalPolicyHolderFromPaths(nil, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultRentalPolicy(), holder.Get())
}

func TestRentalPolicyReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`rental:
  startRateLimit:
    enabled: true
    rate: 1.5
    burst: 10
  nearby:
    defaultRadiusKm: 1
    maxRadiusKm: 5
  receipt:
    companyName: Acme Mobility
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rental.yml"), content, 0o644))

	holder, err := NewRentalPolicyHolderFromPaths(nil, dir)
	require.NoError(t, err)

	policy := holder.Get()
	assert.Equal(t, 1.5, policy.StartRateLimit.Rate)
	assert.Equal(t, 10, policy.StartRateLimit.Burst)
	assert.Equal(t, 1.0, policy.Nearby.DefaultRadiusKm)
	assert.Equal(t, 5.0, policy.Nearby.MaxRadiusKm)
	assert.Equal(t, "Acme Mobility", policy.Receipt.CompanyName)
}

func TestRentalPolicyRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`rental:
  nearby:
    defaultRadiusKm: 10
    maxRadiusKm: 2
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rental.yml"), content, 0o644))

	_, err := NewRentalPolicyHolderFromPaths(nil, dir)
	assert.Error(t, err)
}

func TestNilHolderFallsBackToDefaults(t *testing.T) {
	var holder *RentalPolicyHolder
	assert.Equal(t, DefaultRentalPolicy(), holder.Get())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "SQLite")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DATABASE_MIGRATE_ON_START", "off")

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.True(t, cfg.Redis.Enabled())
	assert.False(t, cfg.MigrateOnStart)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}
