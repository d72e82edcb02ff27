package db

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/farm-manager/backend/internal/integration/persistence/model"
)

func openSQLite(t *testing.T) *Database {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	return NewDatabase(gormDB)
}

func TestDatabase_HealthCheck(t *testing.T) {
	database := openSQLite(t)

	if !database.HealthCheck() {
		t.Fatal("expected an open database to be healthy")
	}
	if err := database.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}

	if err := database.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if database.HealthCheck() {
		t.Error("expected a closed database to be unhealthy")
	}
}

func TestDatabase_AutoMigrate(t *testing.T) {
	database := openSQLite(t)
	t.Cleanup(func() { _ = database.Close() })

	if err := database.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("unexpected migration error: %v", err)
	}
	for _, table := range []string{"sales", "expenses", "farm_profiles"} {
		if !database.DB().Migrator().HasTable(table) {
			t.Errorf("expected table %s to exist", table)
		}
	}
}
