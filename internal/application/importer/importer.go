// Package importer implementa la importación masiva de productos desde
// planillas (.xlsx vía excelize, .csv vía encoding/csv). Cada fila se valida
// de forma aislada: una fila inválida se rechaza y se reporta con su número,
// sin abortar el resto del lote.
package importer

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/almacen-lite/internal/application/store"
	"github.com/jhoicas/almacen-lite/internal/domain"
	"github.com/jhoicas/almacen-lite/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// RowError fallo de una fila concreta del archivo (1-based, contando el
// encabezado como fila 1).
type RowError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// Result resumen de una importación.
type Result struct {
	Total    int              `json:"total"`
	Imported []entity.Product `json:"imported"`
	Errors   []RowError       `json:"errors"`
}

// Importer vuelca filas de planilla al almacén.
type Importer struct {
	store *store.Store
}

// New construye el importador sobre el almacén dado.
func New(s *store.Store) *Importer {
	return &Importer{store: s}
}

// ImportExcel lee la primera hoja del libro y procesa sus filas.
func (i *Importer) ImportExcel(r io.Reader) (Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Result{}, errors.New("el libro no tiene hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Result{}, err
	}
	return i.importRows(rows), nil
}

// ImportCSV procesa un CSV con encabezado.
func (i *Importer) ImportCSV(r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // filas cortas se toleran, campo ausente = vacío
	rows, err := cr.ReadAll()
	if err != nil {
		return Result{}, err
	}
	return i.importRows(rows), nil
}

func (i *Importer) importRows(rows [][]string) Result {
	var res Result
	if len(rows) == 0 {
		return res
	}

	cols := mapHeader(rows[0])
	for n, row := range rows[1:] {
		rowNum := n + 2 // el encabezado es la fila 1
		if isEmptyRow(row) {
			continue
		}
		res.Total++

		in, rowErrs := parseRow(cols, row)
		if len(rowErrs) == 0 {
			p, err := i.store.AddProduct(in)
			if err == nil {
				res.Imported = append(res.Imported, p)
				continue
			}
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				rowErrs = verr.Fields
			} else {
				rowErrs = []string{err.Error()}
			}
		}
		res.Errors = append(res.Errors, RowError{Row: rowNum, Errors: rowErrs})
	}
	return res
}

// mapHeader resuelve la posición de cada columna conocida. Acepta los
// encabezados en español de las exportaciones y los nombres de campo crudos.
func mapHeader(header []string) map[string]int {
	aliases := map[string]string{
		"nombre": "name", "name": "name",
		"código": "code", "codigo": "code", "code": "code",
		"categoría": "category", "categoria": "category", "category": "category",
		"cantidad": "quantity", "quantity": "quantity",
		"cantidad mínima": "minQuantity", "cantidad minima": "minQuantity",
		"mínimo": "minQuantity", "minimo": "minQuantity", "minquantity": "minQuantity",
		"precio": "price", "price": "price",
		"ubicación": "location", "ubicacion": "location", "location": "location",
		"proveedor": "supplier", "supplier": "supplier",
		"vencimiento": "expiryDate", "expirydate": "expiryDate",
		"descripción": "description", "descripcion": "description", "description": "description",
	}
	cols := make(map[string]int)
	for idx, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if field, ok := aliases[key]; ok {
			cols[field] = idx
		}
	}
	return cols
}

func parseRow(cols map[string]int, row []string) (store.ProductInput, []string) {
	get := func(field string) string {
		idx, ok := cols[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var errs []string
	in := store.ProductInput{
		Name:        get("name"),
		Code:        get("code"),
		Category:    get("category"),
		Location:    get("location"),
		Supplier:    get("supplier"),
		Description: get("description"),
	}

	if raw := get("quantity"); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, "cantidad inválida: "+raw)
		} else {
			in.Quantity = &qty
		}
	}
	if raw := get("minQuantity"); raw != "" {
		minQty, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, "cantidad mínima inválida: "+raw)
		} else {
			in.MinQuantity = minQty
		}
	}
	if raw := get("price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			errs = append(errs, "precio inválido: "+raw)
		} else {
			in.Price = &price
		}
	}
	if raw := get("expiryDate"); raw != "" {
		exp, err := time.Parse(dateLayout, raw)
		if err != nil {
			errs = append(errs, "vencimiento inválido: "+raw)
		} else {
			in.ExpiryDate = &exp
		}
	}
	return in, errs
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
