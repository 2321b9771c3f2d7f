package store_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-lite/internal/application/notification"
	"github.com/jhoicas/almacen-lite/internal/application/store"
	"github.com/jhoicas/almacen-lite/internal/domain"
	"github.com/jhoicas/almacen-lite/internal/domain/alert"
	"github.com/jhoicas/almacen-lite/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakePersister captura los snapshots guardados y permite simular fallos.
type fakePersister struct {
	saves []store.Snapshot
	err   error
}

func (f *fakePersister) Save(s store.Snapshot) error {
	if f.err != nil {
		return f.err
	}
	f.saves = append(f.saves, s)
	return nil
}

// tickClock reloj determinista que avanza un segundo por lectura.
func tickClock() func() time.Time {
	t := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestStore(t *testing.T) (*store.Store, *notification.Log, *fakePersister) {
	t.Helper()
	log := notification.NewLog()
	fp := &fakePersister{}
	snap := store.Snapshot{Settings: entity.DefaultSettings(), Language: entity.DefaultLanguage}
	s := store.New(snap, log, fp, nil, store.WithClock(tickClock()))
	return s, log, fp
}

func input(name, code string, qty int, price int64) store.ProductInput {
	p := decimal.NewFromInt(price)
	return store.ProductInput{
		Name:     name,
		Code:     code,
		Quantity: &qty,
		Price:    &p,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AddProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestAddProduct_AsignaIDYFechas(t *testing.T) {
	s, log, fp := newTestStore(t)

	p, err := s.AddProduct(input("Teclado", "TEC-001", 10, 50))
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	assert.Equal(t, entity.CategoryOther, p.Category, "categoría vacía cae en other")

	// Notificación de alta + persistencia
	require.Len(t, log.List(), 1)
	assert.Equal(t, entity.NotificationSuccess, log.List()[0].Type)
	require.Len(t, fp.saves, 1)
	assert.Len(t, fp.saves[0].Products, 1)
}

func TestAddProduct_IDsUnicos(t *testing.T) {
	s, _, _ := newTestStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		p, err := s.AddProduct(input("P", "C", 1, 1))
		require.NoError(t, err)
		assert.False(t, seen[p.ID], "id repetido: %s", p.ID)
		seen[p.ID] = true
	}
}

func TestAddProduct_NombreVacio_Rechazado(t *testing.T) {
	s, log, fp := newTestStore(t)

	_, err := s.AddProduct(input("", "X", 1, 1))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields[0], "name")

	// Sin registro, sin notificación, sin persistencia
	assert.Empty(t, s.Products())
	assert.Empty(t, log.List())
	assert.Empty(t, fp.saves)
}

func TestAddProduct_CamposRequeridosAusentes(t *testing.T) {
	s, _, _ := newTestStore(t)

	_, err := s.AddProduct(store.ProductInput{Name: "P", Code: "C"})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2, "faltan quantity y price")
}

func TestAddProduct_CoercionNumerica(t *testing.T) {
	s, _, _ := newTestStore(t)

	qty := -5
	price := decimal.NewFromInt(-30)
	p, err := s.AddProduct(store.ProductInput{
		Name:        "P",
		Code:        "C",
		Quantity:    &qty,
		MinQuantity: -2,
		Price:       &price,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, p.Quantity)
	assert.Equal(t, 0, p.MinQuantity)
	assert.True(t, p.Price.Equal(decimal.Zero))
}

func TestAddProduct_CodigoDuplicadoPermitido(t *testing.T) {
	s, _, _ := newTestStore(t)

	_, err := s.AddProduct(input("A", "MISMO", 1, 1))
	require.NoError(t, err)
	_, err = s.AddProduct(input("B", "MISMO", 1, 1))
	require.NoError(t, err, "el código no es clave única")

	assert.Len(t, s.FilteredProducts("MISMO", "", "", ""), 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateProduct / DeleteProduct
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateProduct_PreservaIDYCreatedAt(t *testing.T) {
	s, _, _ := newTestStore(t)
	orig, err := s.AddProduct(input("Teclado", "TEC-001", 10, 50))
	require.NoError(t, err)

	upd, err := s.UpdateProduct(orig.ID, input("Teclado mecánico", "TEC-001", 12, 80))
	require.NoError(t, err)

	assert.Equal(t, orig.ID, upd.ID)
	assert.Equal(t, orig.CreatedAt, upd.CreatedAt)
	assert.True(t, upd.UpdatedAt.After(orig.UpdatedAt))
	assert.Equal(t, "Teclado mecánico", upd.Name)
}

func TestUpdateProduct_IDInexistente(t *testing.T) {
	s, log, _ := newTestStore(t)

	_, err := s.UpdateProduct("no-existe", input("P", "C", 1, 1))

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, log.List(), "sin notificación cuando no hay cambio")
}

func TestDeleteProduct_Idempotente(t *testing.T) {
	s, log, _ := newTestStore(t)
	p, err := s.AddProduct(input("P", "C", 1, 1))
	require.NoError(t, err)

	assert.True(t, s.DeleteProduct(p.ID))
	assert.False(t, s.DeleteProduct(p.ID), "segundo borrado es no-op")
	assert.Empty(t, s.Products())

	// Alta + un solo borrado notificado; el borrado va sin sonido
	list := log.List()
	require.Len(t, list, 2)
	assert.Equal(t, entity.NotificationWarning, list[1].Type)
	assert.False(t, list[1].Sound)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStock
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStock_ReportaDelta(t *testing.T) {
	s, log, _ := newTestStore(t)
	p, err := s.AddProduct(input("P", "C", 5, 10))
	require.NoError(t, err)

	upd, delta, err := s.UpdateStock(p.ID, 20, "restock")
	require.NoError(t, err)

	assert.Equal(t, 20, upd.Quantity)
	assert.Equal(t, 15, delta)
	assert.True(t, upd.UpdatedAt.After(p.UpdatedAt))
	assert.Equal(t, p.CreatedAt, upd.CreatedAt)

	list := log.List()
	require.Len(t, list, 2)
	assert.Contains(t, list[1].Message, "5 → 20")
	assert.Contains(t, list[1].Message, "+15")
	assert.Contains(t, list[1].Message, "restock")
	assert.Equal(t, "Entrada de stock", list[1].Title)
}

func TestUpdateStock_DeltaNegativo(t *testing.T) {
	s, log, _ := newTestStore(t)
	p, _ := s.AddProduct(input("P", "C", 10, 10))

	_, delta, err := s.UpdateStock(p.ID, 4, "")
	require.NoError(t, err)

	assert.Equal(t, -6, delta)
	assert.Equal(t, "Salida de stock", log.List()[1].Title)
}

// La cantidad se acota a >= 0 también en el camino de ajuste de stock, igual
// que en alta y edición.
func TestUpdateStock_AcotadoACero(t *testing.T) {
	s, _, _ := newTestStore(t)
	p, _ := s.AddProduct(input("P", "C", 10, 10))

	upd, delta, err := s.UpdateStock(p.ID, -3, "")
	require.NoError(t, err)

	assert.Equal(t, 0, upd.Quantity)
	assert.Equal(t, -10, delta)
}

func TestUpdateStock_IDInexistente(t *testing.T) {
	s, _, _ := newTestStore(t)
	_, _, err := s.UpdateStock("no-existe", 5, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// FilteredProducts
// ──────────────────────────────────────────────────────────────────────────────

func seedCatalog(t *testing.T, s *store.Store) {
	t.Helper()
	add := func(name, code, cat string, qty int, price int64) {
		q := qty
		p := decimal.NewFromInt(price)
		_, err := s.AddProduct(store.ProductInput{Name: name, Code: code, Category: cat, Quantity: &q, Price: &p})
		require.NoError(t, err)
	}
	add("Monitor", "MON-001", "electronics", 4, 900)
	add("Camisa", "CAM-001", "clothing", 30, 60)
	add("arroz integral", "ALI-002", "food", 12, 8)
	add("Martillo", "HER-001", "tools", 7, 35)
}

func TestFilteredProducts_BusquedaInsensibleAMayusculas(t *testing.T) {
	s, _, _ := newTestStore(t)
	seedCatalog(t, s)

	porNombre := s.FilteredProducts("moni", "", "", "")
	require.Len(t, porNombre, 1)
	assert.Equal(t, "Monitor", porNombre[0].Name)

	porCodigo := s.FilteredProducts("her-", "", "", "")
	require.Len(t, porCodigo, 1)
	assert.Equal(t, "Martillo", porCodigo[0].Name)
}

func TestFilteredProducts_FiltroDeCategoria(t *testing.T) {
	s, _, _ := newTestStore(t)
	seedCatalog(t, s)

	assert.Len(t, s.FilteredProducts("", "clothing", "", ""), 1)
	assert.Len(t, s.FilteredProducts("", "", "", ""), 4, "categoría vacía = sin filtro")
}

func TestFilteredProducts_OrdenPorNombreYDescendente(t *testing.T) {
	s, _, _ := newTestStore(t)
	seedCatalog(t, s)

	asc := s.FilteredProducts("", "", "name", "asc")
	require.Len(t, asc, 4)
	// Colación sin distinguir mayúsculas: "arroz" ordena antes que "Camisa"
	assert.Equal(t, "arroz integral", asc[0].Name)
	assert.Equal(t, "Camisa", asc[1].Name)

	desc := s.FilteredProducts("", "", "name", "desc")
	assert.Equal(t, "Monitor", desc[0].Name)
}

func TestFilteredProducts_OrdenNumerico(t *testing.T) {
	s, _, _ := newTestStore(t)
	seedCatalog(t, s)

	porPrecio := s.FilteredProducts("", "", "price", "asc")
	assert.Equal(t, "arroz integral", porPrecio[0].Name)
	assert.Equal(t, "Monitor", porPrecio[3].Name)

	porCantidad := s.FilteredProducts("", "", "quantity", "desc")
	assert.Equal(t, "Camisa", porCantidad[0].Name)
}

func TestFilteredProducts_NoMutaElEstado(t *testing.T) {
	s, _, _ := newTestStore(t)
	seedCatalog(t, s)

	antes := s.Products()
	_ = s.FilteredProducts("", "", "price", "desc")
	assert.Equal(t, antes, s.Products())
}

// ──────────────────────────────────────────────────────────────────────────────
// GetStats / CategoryReport
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStats_ListaVacia(t *testing.T) {
	s, _, _ := newTestStore(t)
	st := s.GetStats()

	assert.Equal(t, 0, st.TotalProducts)
	assert.Equal(t, 0, st.TotalQuantity)
	assert.True(t, st.TotalValue.Equal(decimal.Zero))
	assert.Equal(t, 0, st.LowStockCount)
}

func TestGetStats_Totales(t *testing.T) {
	s, _, _ := newTestStore(t)
	seedCatalog(t, s)

	st := s.GetStats()
	assert.Equal(t, 4, st.TotalProducts)
	assert.Equal(t, 4+30+12+7, st.TotalQuantity)
	// 4*900 + 30*60 + 12*8 + 7*35 = 3600 + 1800 + 96 + 245
	assert.True(t, st.TotalValue.Equal(decimal.NewFromInt(5741)), "totalValue = %s", st.TotalValue)
}

// Caso borde: cantidad == mínimo cuenta como stock bajo; el recálculo es por
// llamada, nunca queda rancio.
func TestGetStats_StockBajoEnElBorde(t *testing.T) {
	s, _, _ := newTestStore(t)
	qty, min := 5, 5
	price := decimal.NewFromInt(1)
	p, err := s.AddProduct(store.ProductInput{Name: "P", Code: "C", Quantity: &qty, MinQuantity: min, Price: &price})
	require.NoError(t, err)

	st := s.GetStats()
	require.Equal(t, 1, st.LowStockCount)
	assert.Equal(t, p.ID, st.LowStockProducts[0].ID)

	_, _, err = s.UpdateStock(p.ID, 6, "")
	require.NoError(t, err)
	assert.Equal(t, 0, s.GetStats().LowStockCount, "el recálculo refleja la mutación")
}

func TestCategoryReport(t *testing.T) {
	s, _, _ := newTestStore(t)
	seedCatalog(t, s)

	rep := s.CategoryReport()
	require.Len(t, rep, 4)
	// Orden fijo del catálogo
	assert.Equal(t, entity.CategoryElectronics, rep[0].Category)
	assert.Equal(t, 1, rep[0].Count)
	assert.True(t, rep[0].TotalValue.Equal(decimal.NewFromInt(3600)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Configuración
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateSettings_PersisteYPublica(t *testing.T) {
	s, _, fp := newTestStore(t)

	ch, cancel := s.SubscribeSettings()
	defer cancel()

	cfg := entity.DefaultSettings()
	cfg.Theme = "dark"
	cfg.Language = "en"
	s.UpdateSettings(cfg)

	assert.Equal(t, cfg, s.Settings())
	assert.Equal(t, "en", s.Language(), "el idioma de settings sincroniza el idioma global")

	require.Len(t, fp.saves, 1)
	assert.Equal(t, "dark", fp.saves[0].Settings.Theme)

	select {
	case got := <-ch:
		assert.Equal(t, cfg, got)
	default:
		t.Fatal("el suscriptor debe recibir la nueva configuración")
	}
}

func TestResetSettings(t *testing.T) {
	s, _, fp := newTestStore(t)

	cfg := entity.DefaultSettings()
	cfg.Currency = "USD"
	s.UpdateSettings(cfg)

	def := s.ResetSettings()
	assert.Equal(t, entity.DefaultSettings(), def)
	assert.Equal(t, entity.DefaultSettings(), s.Settings())
	assert.Len(t, fp.saves, 2)
}

func TestSubscribeSettings_CancelCierraElCanal(t *testing.T) {
	s, _, _ := newTestStore(t)

	ch, cancel := s.SubscribeSettings()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publicar tras cancelar no debe entrar en pánico
	s.UpdateSettings(entity.DefaultSettings())
}

// ──────────────────────────────────────────────────────────────────────────────
// Persistencia de mejor esfuerzo
// ──────────────────────────────────────────────────────────────────────────────

func TestPersistencia_FalloNoCorrompeMemoria(t *testing.T) {
	log := notification.NewLog()
	fp := &fakePersister{err: errors.New("disco lleno")}
	s := store.New(store.Snapshot{Settings: entity.DefaultSettings()}, log, fp, nil, store.WithClock(tickClock()))

	p, err := s.AddProduct(input("P", "C", 3, 10))
	require.NoError(t, err, "la mutación se aplica aunque falle la persistencia")

	assert.Len(t, s.Products(), 1)
	assert.Len(t, log.List(), 1, "la notificación igual se emite")

	require.Error(t, s.LastPersistErr())
	assert.ErrorIs(t, s.LastPersistErr(), domain.ErrPersistence)

	// Al recuperarse el persister, la siguiente escritura limpia la señal
	fp.err = nil
	_, _, err = s.UpdateStock(p.ID, 5, "")
	require.NoError(t, err)
	assert.NoError(t, s.LastPersistErr())
	require.Len(t, fp.saves, 1)
	assert.Equal(t, 5, fp.saves[0].Products[0].Quantity, "el snapshot refleja todas las mutaciones previas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Chequeo de alertas
// ──────────────────────────────────────────────────────────────────────────────

func TestRunAlertCheck_VuelcaAlHistorial(t *testing.T) {
	s, log, _ := newTestStore(t)

	qty0, min5 := 0, 5
	price := decimal.NewFromInt(1)
	_, err := s.AddProduct(store.ProductInput{Name: "Agotado", Code: "A", Quantity: &qty0, MinQuantity: min5, Price: &price})
	require.NoError(t, err)

	alerts := s.RunAlertCheck()
	require.Len(t, alerts, 1)
	assert.Equal(t, alert.ConditionCriticalStock, alerts[0].Condition)

	list := log.List()
	require.Len(t, list, 2, "alta del producto + alerta")
	assert.Equal(t, entity.NotificationError, list[1].Type)
	assert.Contains(t, list[1].Title, "crítico")
}

// Sin de-duplicación entre corridas: las condiciones detectadas son las
// mismas, pero el historial crece en cada corrida.
func TestRunAlertCheck_SinDeDuplicacion(t *testing.T) {
	s, log, _ := newTestStore(t)

	qty, min := 2, 5
	price := decimal.NewFromInt(1)
	_, err := s.AddProduct(store.ProductInput{Name: "Escaso", Code: "E", Quantity: &qty, MinQuantity: min, Price: &price})
	require.NoError(t, err)

	primera := s.RunAlertCheck()
	segunda := s.RunAlertCheck()

	assert.Equal(t, conditionsOf(primera), conditionsOf(segunda))
	assert.Len(t, log.List(), 3, "alta + dos alertas duplicadas")
}

func conditionsOf(alerts []alert.Alert) []alert.Condition {
	out := make([]alert.Condition, len(alerts))
	for i, a := range alerts {
		out[i] = a.Condition
	}
	return out
}
