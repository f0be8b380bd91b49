// Package testdb opens migrated in-memory SQLite databases for tests.
package testdb

import (
	"fmt"
	"sync/atomic"
	"testing"

	"pizzeria/internal/domain/model"
	"pizzeria/internal/infra/db"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var seq atomic.Int64

// New returns a fresh database private to t. One connection only, so
// concurrent transactions serialize the way row locks would on postgres.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:pizzeria_test_%d?mode=memory&cache=shared&_foreign_keys=1", seq.Add(1))

	gormDB, err := gorm.Open(sqlite.Open(dsn), db.Options(zap.NewNop(), true))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gormDB
}

// SeedDish inserts a dish priced at price (e.g. "8.25").
func SeedDish(t testing.TB, gormDB *gorm.DB, name string, price string) model.Dish {
	t.Helper()

	d := model.Dish{
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Weight: 500,
	}
	if err := gormDB.Create(&d).Error; err != nil {
		t.Fatalf("seed dish: %v", err)
	}
	return d
}

// SeedCustomer inserts an active customer with an unusable password hash.
func SeedCustomer(t testing.TB, gormDB *gorm.DB, username string) model.Customer {
	t.Helper()

	c := model.Customer{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "!",
		IsActive:     true,
	}
	if err := gormDB.Create(&c).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return c
}
