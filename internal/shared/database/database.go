package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventgallery/internal/shared/config"
	"eventgallery/pkg/cache"
	"eventgallery/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// DB holds the relational store and the optional Redis client.
type DB struct {
	SQL   *gorm.DB
	Redis *redis.Client

	driver string
	log    *logger.Logger
}

// InitDB opens the configured database, migrates the schema and connects
// to Redis when it is enabled.
func InitDB(ctx context.Context, cfg *config.Config, log *logger.Logger) (*DB, error) {
	if log == nil {
		log = logger.GetDefault()
	}

	sqlDB, err := Open(ctx, cfg.Database, cfg.IsDevelopment())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := Migrate(sqlDB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if cfg.Database.Driver == "postgres" {
		if err := MigrateConstraints(sqlDB); err != nil {
			return nil, fmt.Errorf("failed to add constraints: %w", err)
		}
	}
	log.Info("Database connected", "driver", cfg.Database.Driver)

	db := &DB{SQL: sqlDB, driver: cfg.Database.Driver, log: log}

	if cfg.Redis.Enabled {
		rdb, err := cache.Connect(ctx, cache.Config{
			Address:  cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		db.Redis = rdb
		log.Info("Redis connected", "addr", cfg.Redis.Addr)
	}

	return db, nil
}

// Open connects gorm to sqlite (default) or postgres. Timestamps are
// written in UTC.
func Open(ctx context.Context, cfg config.DatabaseConfig, verbose bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.Driver)
	}

	logLevel := gormlogger.Silent
	if verbose {
		logLevel = gormlogger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.Driver == "postgres" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// sqlite serializes writers; one connection also keeps a shared
		// in-memory database alive.
		sqlDB.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Close closes all connections.
func (db *DB) Close() error {
	var errs []error

	if db.SQL != nil {
		if sqlDB, err := db.SQL.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close database: %w", err))
			}
		}
	}
	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	return errors.Join(errs...)
}

// HealthCheck pings every open connection.
func (db *DB) HealthCheck(ctx context.Context) error {
	if db.SQL != nil {
		sqlDB, err := db.SQL.DB()
		if err != nil {
			return fmt.Errorf("database health check failed: %w", err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
	}
	if db.Redis != nil {
		if err := db.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}
	}
	return nil
}

func (db *DB) Driver() string {
	return db.driver
}
