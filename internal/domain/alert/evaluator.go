// Package alert implementa el evaluador de alertas de inventario: un barrido
// puro sobre la lista de productos que detecta stock agotado, stock bajo y
// vencimientos próximos. No muta productos ni guarda estado: dos corridas
// consecutivas sin cambios de datos detectan exactamente las mismas
// condiciones y las vuelven a emitir; no hay de-duplicación.
package alert

import (
	"math"
	"time"

	"github.com/jhoicas/almacen-lite/internal/domain/entity"
)

// Condition tipo de condición detectada.
type Condition string

const (
	ConditionCriticalStock Condition = "critical_stock"
	ConditionLowStock      Condition = "low_stock"
	ConditionExpiring      Condition = "expiring"
)

// ExpiryWindow ventana de aviso de vencimiento.
const ExpiryWindow = 7 * 24 * time.Hour

// Alert una condición detectada sobre un producto. Severity ya viene resuelta
// para que el consumidor la use directo como tipo de notificación.
type Alert struct {
	Condition    Condition               `json:"condition"`
	Severity     entity.NotificationType `json:"severity"`
	ProductID    string                  `json:"productId"`
	ProductName  string                  `json:"productName"`
	Quantity     int                     `json:"quantity"`
	MinQuantity  int                     `json:"minQuantity"`
	DaysToExpiry int                     `json:"daysToExpiry,omitempty"`
}

// Evaluate recorre los productos y devuelve las alertas detectadas en now.
//
// Reglas:
//   - cantidad == 0 → alerta crítica (error); excluye la de stock bajo.
//   - 0 < cantidad <= mínimo → alerta de stock bajo (warning).
//   - vencimiento en (now, now+7d] → alerta de vencimiento (warning),
//     independiente del estado de stock: un producto puede producir ambas.
func Evaluate(products []entity.Product, now time.Time) []Alert {
	var alerts []Alert
	deadline := now.Add(ExpiryWindow)

	for _, p := range products {
		switch {
		case p.Quantity == 0:
			alerts = append(alerts, Alert{
				Condition:   ConditionCriticalStock,
				Severity:    entity.NotificationError,
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    p.Quantity,
				MinQuantity: p.MinQuantity,
			})
		case p.Quantity <= p.MinQuantity:
			alerts = append(alerts, Alert{
				Condition:   ConditionLowStock,
				Severity:    entity.NotificationWarning,
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    p.Quantity,
				MinQuantity: p.MinQuantity,
			})
		}

		if p.ExpiryDate != nil && p.ExpiryDate.After(now) && !p.ExpiryDate.After(deadline) {
			alerts = append(alerts, Alert{
				Condition:    ConditionExpiring,
				Severity:     entity.NotificationWarning,
				ProductID:    p.ID,
				ProductName:  p.Name,
				Quantity:     p.Quantity,
				MinQuantity:  p.MinQuantity,
				DaysToExpiry: daysUntil(now, *p.ExpiryDate),
			})
		}
	}
	return alerts
}

// daysUntil días hasta la fecha, redondeando hacia arriba (vence mañana → 1).
func daysUntil(now, expiry time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}
