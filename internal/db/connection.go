package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"teamfeedback-backend/internal/config"
	"teamfeedback-backend/internal/model"
)

var conn *gorm.DB

// InitDBFromConfig opens the postgres connection described by cfg and
// applies the pool settings.
func InitDBFromConfig(cfg *config.APIConfig) error {
	if cfg.DB.Driver != "postgres" {
		return fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}
	gdb, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	if cfg.DB.Pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.Pool.MaxOpenConns)
	}
	if cfg.DB.Pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.Pool.MaxIdleConns)
	}
	if cfg.DB.Pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.DB.Pool.ConnMaxLifetime) * time.Second)
	}

	conn = gdb
	return nil
}

// GetDB returns the shared connection.
func GetDB() *gorm.DB {
	return conn
}

// Migrate creates or updates every table.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(model.AllModels()...)
}
