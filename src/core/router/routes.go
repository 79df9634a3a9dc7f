package router

import (
	"sort"

	"github.com/gemgeek/gemconnect-backend/src/core/auth"
	"github.com/gemgeek/gemconnect-backend/src/core/middleware"
	"github.com/gemgeek/gemconnect-backend/src/schema"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func InitialiseAndSetupRoutes(app *fiber.App, api *schema.Schema, issuer *auth.Issuer) {
	root := app.Group("/", logger.New())

	root.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	root.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authenticate := middleware.Authenticate(issuer)
	root.Post("/graphql", authenticate, api.Handler())
	root.Get("/graphql", authenticate, api.Handler())

	routes := app.GetRoutes()
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	for _, route := range routes {
		logrus.WithFields(logrus.Fields{"method": route.Method, "path": route.Path}).Debug("Route registered")
	}
}
