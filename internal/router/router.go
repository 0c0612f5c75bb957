package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/art-lint/artlint-api/internal/config"
	"github.com/art-lint/artlint-api/internal/handler"
	"github.com/art-lint/artlint-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AnalyzeHandler *handler.AnalyzeHandler
	LessonHandler  *handler.LessonHandler
	HistoryHandler *handler.HistoryHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	api.Get("/health", handler.HealthCheck(cfg))

	if deps.AnalyzeHandler != nil {
		deps.AnalyzeHandler.Register(api.Group("/analyze"))
	}

	if deps.LessonHandler != nil {
		deps.LessonHandler.Register(api.Group("/lessons"))
	}

	if deps.HistoryHandler != nil {
		deps.HistoryHandler.Register(api)
	}

	app.Get("/metrics", observability.MetricsHandler())
}
