package db

import (
	"fmt"
	"time"

	"pizzeria/internal/config"
	"pizzeria/internal/domain/model"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the postgres pool.
func Connect(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(cfg.DSN()), Options(log, cfg.IsProd()))
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return gormDB, nil
}

// Options is shared by every dialector so unique violations surface as
// gorm.ErrDuplicatedKey. SQL goes to zap without bound values: session
// keys are credentials.
func Options(log *zap.Logger, quiet bool) *gorm.Config {
	lvl := logger.Warn
	if quiet {
		lvl = logger.Error
	}
	return &gorm.Config{
		TranslateError: true,
		Logger: logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      lvl,
			// lookups miss all the time on the hot path
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		}),
	}
}

// open order: one per customer, one per session key
var openOrderIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_orders_open_customer ON orders (customer_id) WHERE status = 'created' AND customer_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_orders_open_session ON orders (session_key) WHERE status = 'created' AND session_key IS NOT NULL`,
}

// Migrate creates tables and the partial unique indexes behind the
// one-open-order-per-owner rule.
func Migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&model.Ingredient{},
		&model.Dish{},
		&model.DishIngredient{},
		&model.Customer{},
		&model.Session{},
		&model.Order{},
		&model.LineItem{},
		&model.AuditLog{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	for _, stmt := range openOrderIndexes {
		if err := gormDB.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create open order index: %w", err)
		}
	}
	return nil
}
