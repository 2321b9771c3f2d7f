package store

import (
	"fmt"

	"github.com/jhoicas/almacen-lite/internal/domain/alert"
	"github.com/jhoicas/almacen-lite/internal/domain/entity"
)

// Catálogo de notificaciones que emiten las mutaciones del almacén. El
// contrato hacia la UI es {title, message, type, timestamp}; aquí solo se
// arma el contenido, el historial asigna id y timestamp.

func notifyProductAdded(name string) entity.NotificationRecord {
	return entity.NotificationRecord{
		Title:   "Producto agregado",
		Message: fmt.Sprintf("%s se agregó correctamente al inventario", name),
		Type:    entity.NotificationSuccess,
		Sound:   true,
	}
}

func notifyProductUpdated(name string) entity.NotificationRecord {
	return entity.NotificationRecord{
		Title:   "Producto actualizado",
		Message: fmt.Sprintf("Los datos de %s se actualizaron correctamente", name),
		Type:    entity.NotificationInfo,
		Sound:   true,
	}
}

// Las eliminaciones son de baja urgencia: sin sonido.
func notifyProductDeleted(name string) entity.NotificationRecord {
	return entity.NotificationRecord{
		Title:   "Producto eliminado",
		Message: fmt.Sprintf("%s se eliminó del inventario", name),
		Type:    entity.NotificationWarning,
		Sound:   false,
	}
}

func notifyStockUpdated(name string, oldQty, newQty int, reason string) entity.NotificationRecord {
	delta := newQty - oldQty
	title := "Salida de stock"
	sign := ""
	if delta > 0 {
		title = "Entrada de stock"
		sign = "+"
	}
	msg := fmt.Sprintf("%s: %d → %d (%s%d)", name, oldQty, newQty, sign, delta)
	if reason != "" {
		msg += " — " + reason
	}
	return entity.NotificationRecord{
		Title:   title,
		Message: msg,
		Type:    entity.NotificationInfo,
		Sound:   true,
	}
}

func alertRecord(a alert.Alert) entity.NotificationRecord {
	switch a.Condition {
	case alert.ConditionCriticalStock:
		return entity.NotificationRecord{
			Title:   "Alerta: stock crítico",
			Message: fmt.Sprintf("%s - quedan %d unidades", a.ProductName, a.Quantity),
			Type:    a.Severity,
			Sound:   true,
		}
	case alert.ConditionExpiring:
		return entity.NotificationRecord{
			Title:   "Alerta: vencimiento próximo",
			Message: fmt.Sprintf("%s - vence en %d días", a.ProductName, a.DaysToExpiry),
			Type:    a.Severity,
			Sound:   true,
		}
	default:
		return entity.NotificationRecord{
			Title:   "Alerta: stock bajo",
			Message: fmt.Sprintf("%s - cantidad actual: %d (mínimo: %d)", a.ProductName, a.Quantity, a.MinQuantity),
			Type:    a.Severity,
			Sound:   true,
		}
	}
}
