package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/cdce-console/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Tickets       *handlers.TicketsHandler
	Inventory     *handlers.InventoryHandler
	Reports       *handlers.ReportHandler
	Backup        *handlers.BackupHandler
	Dashboard     *handlers.DashboardHandler
	Notifications *handlers.NotificationsHandler
	Metrics       nethttp.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	api := app.Group("/api")
	api.Get("/departments", cfg.Dashboard.Departments)
	api.Get("/dashboard", cfg.Dashboard.Overview)
	api.Get("/notifications", cfg.Notifications.Recent)

	tickets := api.Group("/tickets")
	tickets.Get("/", cfg.Tickets.ListActive)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/history", cfg.Tickets.ListHistory)
	tickets.Get("/history/export/:format", cfg.Tickets.ExportHistory)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Put("/:id", cfg.Tickets.Update)
	tickets.Delete("/:id", cfg.Tickets.Delete)

	inventory := api.Group("/inventory")
	inventory.Get("/", cfg.Inventory.List)
	inventory.Post("/", cfg.Inventory.Create)
	inventory.Get("/export/:format", cfg.Inventory.Export)
	inventory.Get("/:id", cfg.Inventory.Get)
	inventory.Put("/:id", cfg.Inventory.Update)
	inventory.Delete("/:id", cfg.Inventory.Delete)

	reports := api.Group("/report")
	reports.Post("/", cfg.Reports.Generate)
	reports.Get("/", cfg.Reports.Last)
	reports.Get("/status", cfg.Reports.Status)
	reports.Delete("/", cfg.Reports.Clear)
	reports.Post("/export/:format", cfg.Reports.Export)

	backup := api.Group("/backup")
	backup.Get("/", cfg.Backup.Download)
	backup.Post("/restore", cfg.Backup.Restore)
	backup.Post("/archive", cfg.Backup.Archive)
}
