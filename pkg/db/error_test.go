package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/smallbiznis/scootfleet/internal/config"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.False(t, IsDuplicateKeyErr(nil))
	assert.True(t, IsDuplicateKeyErr(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKeyErr(fmt.Errorf("insert rental: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsDuplicateKeyErr(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsDuplicateKeyErr(errors.New("UNIQUE constraint failed: accounts.email")))
	assert.False(t, IsDuplicateKeyErr(errors.New("connection reset")))
}

func TestIsForeignKeyErr(t *testing.T) {
	assert.False(t, IsForeignKeyErr(nil))
	assert.True(t, IsForeignKeyErr(gorm.ErrForeignKeyViolated))
	assert.True(t, IsForeignKeyErr(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyErr(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsForeignKeyErr(errors.New("FOREIGN KEY constraint failed")))
}

func TestDialectRejectsUnknownType(t *testing.T) {
	_, err := Dialect(config.Config{DBType: "oracle"})
	assert.Error(t, err)
}

func TestPoolConfigSerializesSQLite(t *testing.T) {
	pool := poolConfig(config.Config{DBType: "sqlite", DBMaxOpenConn: 20, DBMaxIdleConn: 5})
	assert.Equal(t, 1, pool.MaxOpenConn)

	pool = poolConfig(config.Config{DBType: "postgres", DBMaxOpenConn: 20, DBConnMaxLifetime: 300})
	assert.Equal(t, 20, pool.MaxOpenConn)
	assert.Equal(t, "5m0s", pool.ConnMaxLifetime.String())
}
