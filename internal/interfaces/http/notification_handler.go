package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-lite/internal/application/dto"
	"github.com/jhoicas/almacen-lite/internal/application/notification"
)

// NotificationHandler maneja el historial de notificaciones.
type NotificationHandler struct {
	log *notification.Log
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(log *notification.Log) *NotificationHandler {
	return &NotificationHandler{log: log}
}

// List godoc
// @Summary      Historial de notificaciones (orden de inserción)
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  dto.NotificationListResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	records := h.log.List()
	items := make([]dto.NotificationResponse, 0, len(records))
	for _, r := range records {
		items = append(items, dto.ToNotificationResponse(r))
	}
	return c.JSON(dto.NotificationListResponse{Items: items, Total: len(items)})
}

// UnreadCount godoc
// @Summary      Cantidad de notificaciones sin leer
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  dto.UnreadCountResponse
// @Router       /api/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	return c.JSON(dto.UnreadCountResponse{Unread: h.log.UnreadCount()})
}

// MarkAsRead godoc
// @Summary      Marcar notificación como leída (no-op si no existe)
// @Tags         notifications
// @Param        id  path  string  true  "ID de la notificación"
// @Success      204
// @Router       /api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	h.log.MarkAsRead(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// Remove godoc
// @Summary      Eliminar notificación (no-op si no existe)
// @Tags         notifications
// @Param        id  path  string  true  "ID de la notificación"
// @Success      204
// @Router       /api/notifications/{id} [delete]
func (h *NotificationHandler) Remove(c *fiber.Ctx) error {
	h.log.Remove(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// ClearAll godoc
// @Summary      Vaciar el historial completo
// @Tags         notifications
// @Success      204
// @Router       /api/notifications [delete]
func (h *NotificationHandler) ClearAll(c *fiber.Ctx) error {
	h.log.ClearAll()
	return c.SendStatus(fiber.StatusNoContent)
}
