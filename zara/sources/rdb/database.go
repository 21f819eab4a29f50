package rdb

import (
	"context"
	"fmt"
	"strings"

	"zara/zara/config"
	"zara/zara/sources/rdb/models"
	"zara/zara/utils/logging"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

// Dialector picks PostgreSQL when configured and the SQLite file otherwise.
func Dialector(cfg config.Config) gorm.Dialector {
	if cfg.DatabaseURL != "" {
		return postgres.Open(cfg.DatabaseURL)
	}
	if cfg.DBHost != "" {
		connStr := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
		)
		return postgres.Open(connStr)
	}
	return sqlite.Open(fmt.Sprintf("file:%s?_foreign_keys=1", cfg.DBPath))
}

func NewDatabase(ctx context.Context, cfg config.Config) (*Database, error) {
	db, err := Open(ctx, Dialector(cfg))
	if err != nil {
		return nil, err
	}
	if cfg.UsesPostgres() {
		logging.AppLogger.Info("connected to postgres", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))
	} else {
		logging.AppLogger.Info("connected to sqlite", zap.String("path", cfg.DBPath))
	}
	return db, nil
}

// Open connects with dialector and creates any missing tables.
func Open(ctx context.Context, dialector gorm.Dialector) (*Database, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		return nil, err
	}
	return &Database{DB: db}, nil
}

// OpenMemory opens a private in-memory SQLite database named name. A single
// connection keeps the shared cache alive for the lifetime of the handle.
func OpenMemory(ctx context.Context, name string) (*Database, error) {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := Migrate(ctx, db); err != nil {
		return nil, err
	}
	return &Database{DB: db}, nil
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).
		AutoMigrate(
			&models.User{},
			&models.Chat{},
			&models.Message{},
		)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return nil
}

func (db *Database) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (db *Database) Close() {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return
	}
	sqlDB.Close()
}
