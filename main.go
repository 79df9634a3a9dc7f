package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"

	"github.com/gemgeek/gemconnect-backend/src/core/auth"
	"github.com/gemgeek/gemconnect-backend/src/core/config"
	"github.com/gemgeek/gemconnect-backend/src/core/database"
	"github.com/gemgeek/gemconnect-backend/src/core/logger"
	"github.com/gemgeek/gemconnect-backend/src/core/monitoring"
	"github.com/gemgeek/gemconnect-backend/src/core/router"
	"github.com/gemgeek/gemconnect-backend/src/modules/authentication"
	connection "github.com/gemgeek/gemconnect-backend/src/modules/connections"
	"github.com/gemgeek/gemconnect-backend/src/modules/messages"
	"github.com/gemgeek/gemconnect-backend/src/modules/notifications"
	"github.com/gemgeek/gemconnect-backend/src/modules/posts"
	"github.com/gemgeek/gemconnect-backend/src/modules/users"
	"github.com/gemgeek/gemconnect-backend/src/schema"
	"github.com/gemgeek/gemconnect-backend/src/utils"
)

func main() {
	// Setup environment variables
	config.SetupEnv()
	logger.InitLogger(config.ConfigOrDefault("LOG_LEVEL", "info"))

	// Connect to the database
	db, err := database.ConnectDB()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	if config.Bool("DB_AUTO_MIGRATE", true) {
		if err := database.ApplyMigrations(database.MigrationURL()); err != nil {
			logrus.WithError(err).Fatal("Failed to apply migrations")
		}
	}

	secret := config.Config("JWT_SECRET")
	if secret == "" {
		logrus.Fatal("JWT_SECRET is not set")
	}
	issuer := auth.NewIssuer(secret,
		config.Duration("JWT_EXPIRATION_DELTA", 5*time.Minute),
		config.Duration("JWT_REFRESH_EXPIRATION_DELTA", 7*24*time.Hour),
	)

	userSvc := users.NewService(db)
	api, err := schema.New(schema.Services{
		Users:         userSvc,
		Posts:         posts.NewService(db, blobStore()),
		Follows:       connection.NewService(db),
		Messages:      messages.NewService(db),
		Notifications: notifications.NewService(db),
		Auth:          authentication.NewService(userSvc, issuer),
	})
	if err != nil {
		logrus.WithError(err).Fatal("Invalid GraphQL schema")
	}

	// Initialize the Fiber app
	app := fiber.New()

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(requestid.New())
	app.Use(monitoring.Instrument())

	// Set up routes
	router.InitialiseAndSetupRoutes(app, api, issuer)

	// Get port from config and start the server
	port := config.ConfigOrDefault("APP_PORT", "8000")
	logrus.Fatal(app.Listen(fmt.Sprintf(":%s", port)))
}

// blobStore prefers the Supabase bucket and falls back to local disk.
func blobStore() utils.BlobStore {
	store, err := utils.NewSupabaseStore()
	if err == nil {
		return store
	}
	if !errors.Is(err, database.ErrStorageNotConfigured) {
		logrus.WithError(err).Warn("Supabase storage unavailable")
	}
	dir := config.ConfigOrDefault("UPLOAD_DIR", "uploads")
	logrus.WithField("dir", dir).Info("Storing post images on local disk")
	return utils.DiskStore{Dir: dir}
}
