package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-lite/internal/application/dto"
	"github.com/jhoicas/almacen-lite/internal/application/store"
)

// ReportHandler expone estadísticas y reportes derivados del inventario.
// Todo se recalcula por petición; no hay caché que pueda quedar rancia.
type ReportHandler struct {
	store *store.Store
}

// NewReportHandler construye el handler.
func NewReportHandler(s *store.Store) *ReportHandler {
	return &ReportHandler{store: s}
}

// Stats godoc
// @Summary      Estadísticas del inventario
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/stats [get]
func (h *ReportHandler) Stats(c *fiber.Ctx) error {
	return c.JSON(dto.ToStatsResponse(h.store.GetStats()))
}

// Categories godoc
// @Summary      Reporte agregado por categoría
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.CategoryStatResponse
// @Router       /api/reports/categories [get]
func (h *ReportHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(dto.ToCategoryReport(h.store.CategoryReport()))
}

// LowStock godoc
// @Summary      Productos en o bajo el umbral mínimo
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	low := h.store.GetStats().LowStockProducts
	return c.JSON(dto.ProductListResponse{
		Items: dto.ToProductResponses(low),
		Total: len(low),
	})
}
