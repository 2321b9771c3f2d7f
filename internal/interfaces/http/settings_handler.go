package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-lite/internal/application/dto"
	"github.com/jhoicas/almacen-lite/internal/application/store"
	"github.com/jhoicas/almacen-lite/internal/domain/settings"
)

// SettingsHandler maneja la configuración global.
type SettingsHandler struct {
	store *store.Store
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

// Get godoc
// @Summary      Configuración vigente
// @Tags         settings
// @Produce      json
// @Success      200  {object}  entity.Settings
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.store.Settings())
}

// Update godoc
// @Summary      Reemplazar la configuración completa
// @Description  El cuerpo puede ser parcial: las claves ausentes se rellenan
// @Description  con los valores por defecto (mismo merge que al cargar el blob).
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Settings  true  "Nueva configuración"
// @Success      200   {object}  entity.Settings
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	merged, err := settings.MergeWithDefaults(c.Body())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "configuración ilegible"})
	}
	h.store.UpdateSettings(merged)
	persistWarning(c, h.store)
	return c.JSON(h.store.Settings())
}

// Reset godoc
// @Summary      Restaurar la configuración por defecto
// @Tags         settings
// @Produce      json
// @Success      200  {object}  entity.Settings
// @Router       /api/settings/reset [post]
func (h *SettingsHandler) Reset(c *fiber.Ctx) error {
	def := h.store.ResetSettings()
	persistWarning(c, h.store)
	return c.JSON(def)
}
