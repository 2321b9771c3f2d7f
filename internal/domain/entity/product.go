package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category clasificación fija de productos; todo valor desconocido cae en CategoryOther.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryFood        Category = "food"
	CategoryBooks       Category = "books"
	CategoryTools       Category = "tools"
	CategoryOther       Category = "other"
)

// ParseCategory normaliza una categoría libre al conjunto fijo.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryElectronics, CategoryClothing, CategoryFood, CategoryBooks, CategoryTools, CategoryOther:
		return Category(s)
	default:
		return CategoryOther
	}
}

// CategoryLabel nombre legible de la categoría (para reportes y exportaciones).
func CategoryLabel(c Category) string {
	switch c {
	case CategoryElectronics:
		return "Electrónica"
	case CategoryClothing:
		return "Ropa"
	case CategoryFood:
		return "Alimentos"
	case CategoryBooks:
		return "Libros"
	case CategoryTools:
		return "Herramientas"
	default:
		return "Otros"
	}
}

// Product representa un artículo del inventario.
// Code es clave de búsqueda secundaria (código de barras); NO es único:
// puede haber duplicados y las búsquedas deben tolerarlos.
// Los tags JSON siguen el esquema del blob persistido.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Category    Category        `json:"category"`
	Quantity    int             `json:"quantity"`    // siempre >= 0
	MinQuantity int             `json:"minQuantity"` // umbral de reposición, siempre >= 0
	Price       decimal.Decimal `json:"price"`       // siempre >= 0
	Location    string          `json:"location"`
	Supplier    string          `json:"supplier"`
	ExpiryDate  *time.Time      `json:"expiryDate,omitempty"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TotalValue cantidad × precio del producto.
func (p Product) TotalValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
