package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-lite/internal/application/importer"
	"github.com/jhoicas/almacen-lite/internal/application/notification"
	"github.com/jhoicas/almacen-lite/internal/application/store"
	"github.com/jhoicas/almacen-lite/internal/infrastructure/excel"
	"github.com/jhoicas/almacen-lite/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store    *store.Store
	Log      *notification.Log
	Exporter *excel.Exporter
	Importer *importer.Importer
	Labels   *pdf.LabelGenerator
}

// Router registra las rutas de la API. El servicio es mono-usuario y local:
// no hay autenticación.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Store, deps.Labels)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/stock", productHandler.UpdateStock)
	products.Get("/:id/barcode", productHandler.Barcode)
	products.Get("/:id/label", productHandler.Label)

	notifications := api.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.Log)
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Put("/:id/read", notificationHandler.MarkAsRead)
	notifications.Delete("/:id", notificationHandler.Remove)
	notifications.Delete("/", notificationHandler.ClearAll)

	alertHandler := NewAlertHandler(deps.Store)
	api.Post("/alerts/check", alertHandler.RunCheck)

	reportHandler := NewReportHandler(deps.Store)
	api.Get("/stats", reportHandler.Stats)
	reports := api.Group("/reports")
	reports.Get("/categories", reportHandler.Categories)
	reports.Get("/low-stock", reportHandler.LowStock)

	exportHandler := NewExportHandler(deps.Store, deps.Exporter, deps.Importer)
	export := api.Group("/export")
	export.Get("/excel", exportHandler.Excel)
	export.Get("/csv", exportHandler.CSV)
	export.Get("/categories", exportHandler.Categories)
	export.Get("/low-stock", exportHandler.LowStock)
	api.Post("/import", exportHandler.Import)

	settingsHandler := NewSettingsHandler(deps.Store)
	settingsGroup := api.Group("/settings")
	settingsGroup.Get("/", settingsHandler.Get)
	settingsGroup.Put("/", settingsHandler.Update)
	settingsGroup.Post("/reset", settingsHandler.Reset)
}
