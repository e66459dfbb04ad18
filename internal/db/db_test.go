package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealview/config"
	"mealview/internal/model"
)

func TestInit_SQLite(t *testing.T) {
	gormDB, err := Init(&config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          "file:db_init_test?mode=memory&cache=shared",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.True(t, gormDB.Migrator().HasTable(&model.FetchRecord{}))
}

func TestInit_RejectsBadConfig(t *testing.T) {
	_, err := Init(&config.DatabaseConfig{Driver: "oracle", DSN: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")

	_, err = Init(&config.DatabaseConfig{Driver: "postgres"})
	assert.ErrorContains(t, err, "dsn is empty")
}
