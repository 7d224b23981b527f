// Package dbtest opens throwaway in-memory SQLite databases with the full schema for package tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carehub/internal/config"
	"carehub/internal/db"
	"carehub/internal/logger"
)

// Open returns an empty database with every table created. The database lives until the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.DBConfig{
		Driver:   "sqlite",
		DSN:      "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on",
		LogLevel: "silent",
	}
	gormDB, err := db.Open(cfg, logger.Discard())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	// Keeping one connection open keeps the shared in-memory database alive.
	sqlDB.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.CreateSchema(context.Background(), gormDB); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return gormDB
}

// Seeded returns a database loaded with the demo data set.
func Seeded(t testing.TB) *gorm.DB {
	t.Helper()

	gormDB := Open(t)
	if _, err := db.Seed(context.Background(), gormDB); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return gormDB
}
