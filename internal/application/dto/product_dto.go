package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-lite/internal/application/store"
	"github.com/jhoicas/almacen-lite/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// SaveProductRequest entrada para crear o reemplazar un producto. Quantity y
// Price son punteros para detectar su ausencia (son requeridos).
type SaveProductRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	Code        string           `json:"code" validate:"required,min=1,max=100"`
	Category    string           `json:"category"`
	Quantity    *int             `json:"quantity"`
	MinQuantity int              `json:"min_quantity"`
	Price       *decimal.Decimal `json:"price"`
	Location    string           `json:"location"`
	Supplier    string           `json:"supplier"`
	ExpiryDate  string           `json:"expiry_date"` // YYYY-MM-DD, vacío = sin vencimiento
	Description string           `json:"description"`
}

// ToInput convierte la petición al input del almacén. Falla si la fecha de
// vencimiento no tiene el formato esperado.
func (r SaveProductRequest) ToInput() (store.ProductInput, error) {
	in := store.ProductInput{
		Name:        r.Name,
		Code:        r.Code,
		Category:    r.Category,
		Quantity:    r.Quantity,
		MinQuantity: r.MinQuantity,
		Price:       r.Price,
		Location:    r.Location,
		Supplier:    r.Supplier,
		Description: r.Description,
	}
	if r.ExpiryDate != "" {
		exp, err := time.Parse(dateLayout, r.ExpiryDate)
		if err != nil {
			return store.ProductInput{}, fmt.Errorf("expiry_date inválida (se espera YYYY-MM-DD): %s", r.ExpiryDate)
		}
		in.ExpiryDate = &exp
	}
	return in, nil
}

// UpdateStockRequest entrada del ajuste de stock.
type UpdateStockRequest struct {
	NewQuantity *int   `json:"new_quantity"`
	Reason      string `json:"reason"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"min_quantity"`
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location"`
	Supplier    string          `json:"supplier"`
	ExpiryDate  string          `json:"expiry_date,omitempty"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse mapea la entidad a su representación de API.
func ToProductResponse(p entity.Product) ProductResponse {
	expiry := ""
	if p.ExpiryDate != nil {
		expiry = p.ExpiryDate.Format(dateLayout)
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Code:        p.Code,
		Category:    string(p.Category),
		Quantity:    p.Quantity,
		MinQuantity: p.MinQuantity,
		Price:       p.Price,
		Location:    p.Location,
		Supplier:    p.Supplier,
		ExpiryDate:  expiry,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses mapea la lista completa.
func ToProductResponses(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, ToProductResponse(p))
	}
	return out
}

// ProductListResponse listado de productos ya filtrado y ordenado.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// StockUpdateResponse resultado de un ajuste de stock con su delta.
type StockUpdateResponse struct {
	Product ProductResponse `json:"product"`
	Delta   int             `json:"delta"`
}
