package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sjperalta/billing-api/internal/models"
	"github.com/sjperalta/billing-api/pkg/logger"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Models lists every table managed by the service, parents first.
func Models() []any {
	return []any{
		&models.User{},
		&models.Client{},
		&models.Project{},
		&models.Bill{},
		&models.Payment{},
		&models.Rate{},
		&models.PrintSetting{},
		&models.Settings{},
		&models.AuditLog{},
	}
}

// Migrate brings the schema up to date. PostgreSQL runs the embedded SQL
// migrations; other dialects fall back to AutoMigrate.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return AutoMigrate(db)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply")
	} else {
		version, dirty, _ := m.Version()
		logger.Info("Database migrations applied", "version", version, "dirty", dirty)
	}

	if srcErr, _ := m.Close(); srcErr != nil {
		logger.Warn("Migration source close failed", "error", srcErr)
	}
	return nil
}

// AutoMigrate creates or updates tables from the gorm models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}
