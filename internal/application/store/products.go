package store

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/almacen-lite/internal/domain"
	"github.com/jhoicas/almacen-lite/internal/domain/alert"
	"github.com/jhoicas/almacen-lite/internal/domain/entity"
)

// ProductInput datos de entrada para crear o reemplazar un producto.
// Quantity y Price son punteros para distinguir "ausente" de cero: ambos son
// campos requeridos por la validación.
type ProductInput struct {
	Name        string
	Code        string
	Category    string
	Quantity    *int
	MinQuantity int
	Price       *decimal.Decimal
	Location    string
	Supplier    string
	ExpiryDate  *time.Time
	Description string
}

func validateInput(in ProductInput) *domain.ValidationError {
	var fields []string
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, "name es requerido")
	}
	if strings.TrimSpace(in.Code) == "" {
		fields = append(fields, "code es requerido")
	}
	if in.Quantity == nil {
		fields = append(fields, "quantity es requerido")
	}
	if in.Price == nil {
		fields = append(fields, "price es requerido")
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields...)
	}
	return nil
}

// coerce aplica las invariantes numéricas: cantidades enteras >= 0 y precio
// decimal >= 0, en todos los caminos de escritura por igual.
func coerce(in ProductInput) (qty, minQty int, price decimal.Decimal) {
	qty = *in.Quantity
	if qty < 0 {
		qty = 0
	}
	minQty = in.MinQuantity
	if minQty < 0 {
		minQty = 0
	}
	price = *in.Price
	if price.IsNegative() {
		price = decimal.Zero
	}
	return qty, minQty, price
}

// AddProduct valida, normaliza y agrega un producto nuevo. Emite la
// notificación de alta y persiste. Un registro inválido se rechaza sin tocar
// el estado ni emitir notificación.
func (s *Store) AddProduct(in ProductInput) (entity.Product, error) {
	if verr := validateInput(in); verr != nil {
		return entity.Product{}, verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	qty, minQty, price := coerce(in)
	now := s.now()
	p := entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Code:        in.Code,
		Category:    entity.ParseCategory(in.Category),
		Quantity:    qty,
		MinQuantity: minQty,
		Price:       price,
		Location:    in.Location,
		Supplier:    in.Supplier,
		ExpiryDate:  in.ExpiryDate,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.products = append(s.products, p)

	s.notifier.Add(notifyProductAdded(p.Name))
	s.persistLocked()
	return p, nil
}

// UpdateProduct reemplaza el producto con id por los datos de entrada,
// conservando ID y CreatedAt y refrescando UpdatedAt. Si el id no existe no
// hay cambio de estado ni notificación: se señala ErrNotFound.
func (s *Store) UpdateProduct(id string, in ProductInput) (entity.Product, error) {
	if verr := validateInput(in); verr != nil {
		return entity.Product{}, verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return entity.Product{}, domain.ErrNotFound
	}

	qty, minQty, price := coerce(in)
	prev := s.products[idx]
	p := entity.Product{
		ID:          prev.ID,
		Name:        in.Name,
		Code:        in.Code,
		Category:    entity.ParseCategory(in.Category),
		Quantity:    qty,
		MinQuantity: minQty,
		Price:       price,
		Location:    in.Location,
		Supplier:    in.Supplier,
		ExpiryDate:  in.ExpiryDate,
		Description: in.Description,
		CreatedAt:   prev.CreatedAt,
		UpdatedAt:   s.now(),
	}
	s.products[idx] = p

	s.notifier.Add(notifyProductUpdated(p.Name))
	s.persistLocked()
	return p, nil
}

// DeleteProduct elimina el producto si existe y devuelve si hubo borrado.
// Un id inexistente es un no-op silencioso: borrar dos veces deja el mismo
// estado que borrar una vez.
func (s *Store) DeleteProduct(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return false
	}
	name := s.products[idx].Name
	s.products = append(s.products[:idx], s.products[idx+1:]...)

	s.notifier.Add(notifyProductDeleted(name))
	s.persistLocked()
	return true
}

// UpdateStock fija la cantidad del producto (acotada a >= 0, igual que en
// alta y edición), refresca UpdatedAt y emite una notificación con el delta.
// Devuelve el producto actualizado y el delta aplicado (nuevo − anterior).
func (s *Store) UpdateStock(id string, newQuantity int, reason string) (entity.Product, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return entity.Product{}, 0, domain.ErrNotFound
	}
	if newQuantity < 0 {
		newQuantity = 0
	}

	old := s.products[idx].Quantity
	s.products[idx].Quantity = newQuantity
	s.products[idx].UpdatedAt = s.now()
	p := s.products[idx]

	s.notifier.Add(notifyStockUpdated(p.Name, old, newQuantity, reason))
	s.persistLocked()
	return p, newQuantity - old, nil
}

// GetProduct busca un producto por id.
func (s *Store) GetProduct(id string) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return entity.Product{}, domain.ErrNotFound
	}
	return s.products[idx], nil
}

// Products devuelve una copia de la lista completa.
func (s *Store) Products() []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Product(nil), s.products...)
}

// indexOfLocked posición del producto por id, -1 si no está. Requiere mutex.
func (s *Store) indexOfLocked(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

// FilteredProducts lectura pura: filtra por término de búsqueda (substring
// sobre nombre O código, sin distinguir mayúsculas) y por categoría exacta
// (vacía = sin filtro), y ordena de forma estable por el campo pedido.
// Las comparaciones de texto usan colación del idioma configurado.
// Devuelve una secuencia nueva; nunca muta la lista subyacente.
func (s *Store) FilteredProducts(search, category, sortBy, sortOrder string) []entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Code), term) {
			continue
		}
		if category != "" && string(p.Category) != category {
			continue
		}
		out = append(out, p)
	}

	if sortBy == "" {
		sortBy = "name"
	}
	desc := sortOrder == "desc"
	col := collate.New(language.Make(s.language), collate.IgnoreCase)

	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		return lessByField(col, out[i], out[j], sortBy)
	})
	return out
}

func lessByField(col *collate.Collator, a, b entity.Product, field string) bool {
	switch field {
	case "code":
		return col.CompareString(a.Code, b.Code) < 0
	case "category":
		return col.CompareString(string(a.Category), string(b.Category)) < 0
	case "location":
		return col.CompareString(a.Location, b.Location) < 0
	case "supplier":
		return col.CompareString(a.Supplier, b.Supplier) < 0
	case "quantity":
		return a.Quantity < b.Quantity
	case "minQuantity":
		return a.MinQuantity < b.MinQuantity
	case "price":
		return a.Price.LessThan(b.Price)
	case "createdAt":
		return a.CreatedAt.Before(b.CreatedAt)
	case "updatedAt":
		return a.UpdatedAt.Before(b.UpdatedAt)
	case "expiryDate":
		// Sin fecha de vencimiento ordena al final
		switch {
		case a.ExpiryDate == nil:
			return false
		case b.ExpiryDate == nil:
			return true
		default:
			return a.ExpiryDate.Before(*b.ExpiryDate)
		}
	default:
		return col.CompareString(a.Name, b.Name) < 0
	}
}

// Stats estadísticas derivadas del inventario.
type Stats struct {
	TotalProducts    int              `json:"totalProducts"`
	TotalQuantity    int              `json:"totalQuantity"`
	TotalValue       decimal.Decimal  `json:"totalValue"`
	LowStockCount    int              `json:"lowStockCount"`
	LowStockProducts []entity.Product `json:"lowStockProducts"`
}

// GetStats recalcula las estadísticas en cada llamada (sin caché: los datos
// pueden cambiar entre llamadas y el resultado nunca debe quedar rancio).
// La condición de stock bajo es cantidad <= mínimo, incluyendo cantidad 0.
func (s *Store) GetStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{TotalValue: decimal.Zero}
	for _, p := range s.products {
		st.TotalProducts++
		st.TotalQuantity += p.Quantity
		st.TotalValue = st.TotalValue.Add(p.TotalValue())
		if p.Quantity <= p.MinQuantity {
			st.LowStockProducts = append(st.LowStockProducts, p)
		}
	}
	st.LowStockCount = len(st.LowStockProducts)
	return st
}

// CategoryStat agregado por categoría para reportes.
type CategoryStat struct {
	Category      entity.Category `json:"category"`
	Label         string          `json:"label"`
	Count         int             `json:"count"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalValue    decimal.Decimal `json:"totalValue"`
}

var categoryOrder = []entity.Category{
	entity.CategoryElectronics,
	entity.CategoryClothing,
	entity.CategoryFood,
	entity.CategoryBooks,
	entity.CategoryTools,
	entity.CategoryOther,
}

// CategoryReport agrupa los productos por categoría (solo categorías con al
// menos un producto, en el orden fijo del catálogo).
func (s *Store) CategoryReport() []CategoryStat {
	s.mu.Lock()
	defer s.mu.Unlock()

	byCat := make(map[entity.Category]*CategoryStat)
	for _, p := range s.products {
		cs, ok := byCat[p.Category]
		if !ok {
			cs = &CategoryStat{
				Category:   p.Category,
				Label:      entity.CategoryLabel(p.Category),
				TotalValue: decimal.Zero,
			}
			byCat[p.Category] = cs
		}
		cs.Count++
		cs.TotalQuantity += p.Quantity
		cs.TotalValue = cs.TotalValue.Add(p.TotalValue())
	}

	out := make([]CategoryStat, 0, len(byCat))
	for _, c := range categoryOrder {
		if cs, ok := byCat[c]; ok {
			out = append(out, *cs)
		}
	}
	return out
}

// RunAlertCheck corre el evaluador de alertas sobre la lista actual, vuelca
// cada alerta al historial de notificaciones y devuelve las alertas para
// retroalimentación inmediata. Cada corrida es sin estado: repetirla sin
// cambios de datos vuelve a emitir las mismas alertas al historial.
func (s *Store) RunAlertCheck() []alert.Alert {
	s.mu.Lock()
	products := append([]entity.Product(nil), s.products...)
	now := s.now()
	s.mu.Unlock()

	alerts := alert.Evaluate(products, now)
	for _, a := range alerts {
		s.notifier.Add(alertRecord(a))
	}
	return alerts
}

// CheckAlerts variante dispara-y-olvida para la invocación periódica: solo
// importa el efecto sobre el historial.
func (s *Store) CheckAlerts() {
	alerts := s.RunAlertCheck()
	if s.log != nil && len(alerts) > 0 {
		s.log.Debug().Int("alertas", len(alerts)).Msg("chequeo periódico de inventario")
	}
}
