package database

import (
	"embed"
	"errors"
	"fmt"
	"net/url"

	"github.com/gemgeek/gemconnect-backend/src/core/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MigrationURL builds the pgx5:// URL golang-migrate expects.
func MigrationURL() string {
	u := url.URL{
		Scheme: "pgx5",
		User:   url.UserPassword(config.Config("DB_USER"), config.Config("DB_PASSWORD")),
		Host:   config.Config("DB_HOST") + ":" + config.ConfigOrDefault("DB_PORT", "5432"),
		Path:   "/" + config.Config("DB_NAME"),
	}
	q := u.Query()
	q.Set("sslmode", config.ConfigOrDefault("DB_SSLMODE", "disable"))
	u.RawQuery = q.Encode()
	return u.String()
}

// ApplyMigrations runs every pending up migration embedded in the binary.
func ApplyMigrations(databaseURL string) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logrus.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Migrations applied")
	return nil
}
