package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-lite/internal/application/dto"
	"github.com/jhoicas/almacen-lite/internal/application/store"
)

// AlertHandler expone la corrida manual del chequeo de inventario. La
// variante periódica la dispara el scheduler del proceso, no esta API.
type AlertHandler struct {
	store *store.Store
}

// NewAlertHandler construye el handler.
func NewAlertHandler(s *store.Store) *AlertHandler {
	return &AlertHandler{store: s}
}

// RunCheck godoc
// @Summary      Correr el chequeo de alertas y devolver lo detectado
// @Description  Cada corrida es sin estado: repetirla sin cambios de datos
// @Description  vuelve a volcar las mismas alertas al historial.
// @Tags         alerts
// @Produce      json
// @Success      200  {object}  dto.AlertCheckResponse
// @Router       /api/alerts/check [post]
func (h *AlertHandler) RunCheck(c *fiber.Ctx) error {
	alerts := h.store.RunAlertCheck()
	return c.JSON(dto.ToAlertCheckResponse(alerts))
}
