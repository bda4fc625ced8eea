// Package db opens the gorm database handle and runs migrations.
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"recipe_backend/internal/app/config"
	authadapters "recipe_backend/internal/feature/auth/adapters"
	authentity "recipe_backend/internal/feature/auth/domain/entity"
	recipeentity "recipe_backend/internal/feature/recipe/domain/entity"
)

const (
	connectDeadline = 60 * time.Second
	retryInterval   = 3 * time.Second
)

// OpenDB connects to Postgres when DATABASE_URL is set and falls back to a
// local SQLite file otherwise. The connection is retried for up to a minute,
// the database container may still be starting.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	dialector, target := dialectorFor(cfg)

	// TranslateError maps driver-specific errors (duplicate key in
	// particular) onto gorm's portable sentinel errors.
	gormCfg := &gorm.Config{TranslateError: true}

	var (
		db  *gorm.DB
		err error
	)
	deadline := time.Now().Add(connectDeadline)
	for {
		db, err = gorm.Open(dialector, gormCfg)
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("database connect failed after %s: %w", connectDeadline, err)
		}
		slog.Warn("database connect failed, retrying", "target", target, "error", err)
		time.Sleep(retryInterval)
	}
	slog.Info("database connected", "target", target)

	if cfg.RunMigrations {
		if err := migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		slog.Info("database migrations applied")
	}
	return db, nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, string) {
	if cfg.DatabaseURL != "" {
		return postgres.Open(cfg.DatabaseURL), "postgres"
	}
	return sqlite.Open(cfg.SQLitePath), "sqlite:" + cfg.SQLitePath
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&authentity.User{},
		&authadapters.SessionModel{},
		&recipeentity.Recipe{},
		&recipeentity.Tag{},
		&recipeentity.Ingredient{},
	)
}
