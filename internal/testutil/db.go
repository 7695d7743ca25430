// Package testutil provides the shared in-memory database harness for
// service and repository tests.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"nandhub_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter int64

// NewTestDB opens a fresh in-memory SQLite database with the full
// schema migrated. Each call gets its own database, so tests stay
// independent; shared cache keeps it visible across pooled
// connections.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&dbCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// Pin one connection so the in-memory database outlives pool
	// churn for the whole test.
	anchor, err := sqlDB.Conn(context.Background())
	if err != nil {
		t.Fatalf("failed to pin test database connection: %v", err)
	}
	t.Cleanup(func() {
		anchor.Close()
		sqlDB.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return db
}
