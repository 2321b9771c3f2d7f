package dto

import (
	"time"

	"github.com/jhoicas/almacen-lite/internal/domain/entity"
)

// NotificationResponse una entrada del historial de notificaciones.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Icon      string    `json:"icon,omitempty"`
	Sound     bool      `json:"sound"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// ToNotificationResponse mapea el registro a su representación de API.
func ToNotificationResponse(r entity.NotificationRecord) NotificationResponse {
	return NotificationResponse{
		ID:        r.ID,
		Title:     r.Title,
		Message:   r.Message,
		Type:      string(r.Type),
		Icon:      r.Icon,
		Sound:     r.Sound,
		Timestamp: r.Timestamp,
		Read:      r.Read,
	}
}

// NotificationListResponse historial completo en orden de inserción.
type NotificationListResponse struct {
	Items []NotificationResponse `json:"items"`
	Total int                    `json:"total"`
}

// UnreadCountResponse cantidad de notificaciones sin leer.
type UnreadCountResponse struct {
	Unread int `json:"unread"`
}
