package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/MinisterHD/Assets-Value-App/internal/db"
	"github.com/MinisterHD/Assets-Value-App/internal/models"
)

// setupTestDB opens a fresh in-memory SQLite database with the production
// schema. Each test gets its own database.
func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(&models.Asset{}, &models.PriceObservation{}))

	return &db.DB{DB: gdb}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
