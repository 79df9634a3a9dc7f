package database

import (
	"fmt"
	"time"

	"github.com/gemgeek/gemconnect-backend/src/core/config"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// DSN builds the libpq-style connection string from the DB_* variables.
func DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Config("DB_HOST"),
		config.ConfigOrDefault("DB_PORT", "5432"),
		config.Config("DB_USER"),
		config.Config("DB_PASSWORD"),
		config.Config("DB_NAME"),
		config.ConfigOrDefault("DB_SSLMODE", "disable"),
	)
}

// ConnectDB opens the PostgreSQL connection.
func ConnectDB() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN()), Options())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	logrus.Info("Database successfully connected")
	return db, nil
}

// Options is the GORM configuration shared by the production and test stores.
func Options() *gorm.Config {
	return &gorm.Config{
		PrepareStmt: false,
		// Duplicate-key and foreign-key violations come back as gorm.ErrDuplicatedKey
		// and gorm.ErrForeignKeyViolated regardless of the driver.
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
	}
}
