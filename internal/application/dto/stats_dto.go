package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-lite/internal/application/store"
	"github.com/jhoicas/almacen-lite/internal/domain/alert"
)

// StatsResponse estadísticas derivadas del inventario.
type StatsResponse struct {
	TotalProducts int               `json:"total_products"`
	TotalQuantity int               `json:"total_quantity"`
	TotalValue    decimal.Decimal   `json:"total_value"`
	LowStockCount int               `json:"low_stock_count"`
	LowStock      []ProductResponse `json:"low_stock"`
}

// ToStatsResponse mapea las estadísticas del almacén.
func ToStatsResponse(s store.Stats) StatsResponse {
	return StatsResponse{
		TotalProducts: s.TotalProducts,
		TotalQuantity: s.TotalQuantity,
		TotalValue:    s.TotalValue,
		LowStockCount: s.LowStockCount,
		LowStock:      ToProductResponses(s.LowStockProducts),
	}
}

// CategoryStatResponse agregado por categoría.
type CategoryStatResponse struct {
	Category      string          `json:"category"`
	Label         string          `json:"label"`
	Count         int             `json:"count"`
	TotalQuantity int             `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
}

// ToCategoryReport mapea el reporte por categoría.
func ToCategoryReport(report []store.CategoryStat) []CategoryStatResponse {
	out := make([]CategoryStatResponse, 0, len(report))
	for _, cs := range report {
		out = append(out, CategoryStatResponse{
			Category:      string(cs.Category),
			Label:         cs.Label,
			Count:         cs.Count,
			TotalQuantity: cs.TotalQuantity,
			TotalValue:    cs.TotalValue,
		})
	}
	return out
}

// AlertResponse una alerta detectada por el chequeo de inventario.
type AlertResponse struct {
	Condition    string `json:"condition"`
	Severity     string `json:"severity"`
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	Quantity     int    `json:"quantity"`
	MinQuantity  int    `json:"min_quantity"`
	DaysToExpiry int    `json:"days_to_expiry,omitempty"`
}

// AlertCheckResponse resultado de una corrida manual del chequeo.
type AlertCheckResponse struct {
	Alerts []AlertResponse `json:"alerts"`
	Count  int             `json:"count"`
}

// ToAlertCheckResponse mapea las alertas de una corrida.
func ToAlertCheckResponse(alerts []alert.Alert) AlertCheckResponse {
	out := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, AlertResponse{
			Condition:    string(a.Condition),
			Severity:     string(a.Severity),
			ProductID:    a.ProductID,
			ProductName:  a.ProductName,
			Quantity:     a.Quantity,
			MinQuantity:  a.MinQuantity,
			DaysToExpiry: a.DaysToExpiry,
		})
	}
	return AlertCheckResponse{Alerts: out, Count: len(out)}
}
