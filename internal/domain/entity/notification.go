package entity

import "time"

// NotificationType severidad de una notificación.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
	NotificationInfo    NotificationType = "info"
)

// NotificationRecord entrada del historial de notificaciones visible al usuario.
// Title, Message, Type y Timestamp son inmutables tras la creación; solo Read
// cambia en sitio. El historial es efímero: no se persiste entre reinicios.
type NotificationRecord struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Icon      string           `json:"icon,omitempty"`
	Sound     bool             `json:"sound"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
}
