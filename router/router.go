package router

import (
	"github.com/spg2143/QuantFinance/handler"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes setup router api
func SetupRoutes(app *fiber.App) {
	api := app.Group("/v1")
	api.Get("/", handler.Ping)

	// Metrics
	metrics := api.Group("/metrics")
	metrics.Post("/summary", handler.Summary)
	metrics.Post("/cumulative", handler.CumulativeReturn)
	metrics.Post("/drawdown", handler.Drawdown)
	metrics.Post("/score", handler.AssetScore)
	metrics.Post("/var", handler.ValueAtRisk)
}
