// Package excel genera los libros de exportación del inventario con
// excelize: listado de productos con hoja de resumen, reporte por categoría
// y reporte de stock bajo. También escribe el listado plano en CSV.
package excel

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/almacen-lite/internal/application/store"
	"github.com/jhoicas/almacen-lite/internal/domain/entity"
)

const dateLayout = "2006-01-02"

var productHeaders = []string{
	"Nombre", "Código", "Categoría", "Cantidad", "Cantidad mínima", "Precio",
	"Ubicación", "Proveedor", "Vencimiento", "Descripción", "Creado", "Actualizado",
}

// Exporter genera libros .xlsx y archivos CSV a partir del estado del almacén.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ProductsWorkbook arma el libro de inventario: hoja "Productos" con el
// listado completo y hoja "Resumen" con las estadísticas.
func (e *Exporter) ProductsWorkbook(products []entity.Product, stats store.Stats) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Productos"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &productHeaders); err != nil {
		return nil, err
	}
	for i, p := range products {
		row := productRow(p)
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const resumen = "Resumen"
	if _, err := f.NewSheet(resumen); err != nil {
		return nil, err
	}
	summary := [][]any{
		{"Estadística", "Valor"},
		{"Total de productos", stats.TotalProducts},
		{"Cantidad total", stats.TotalQuantity},
		{"Valor del inventario", stats.TotalValue.String()},
		{"Productos con stock bajo", stats.LowStockCount},
	}
	for i, row := range summary {
		cell := "A" + strconv.Itoa(i+1)
		if err := f.SetSheetRow(resumen, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CategoryWorkbook arma el reporte agregado por categoría.
func (e *Exporter) CategoryWorkbook(report []store.CategoryStat) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Categorías"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	headers := []any{"Categoría", "Productos", "Cantidad total", "Valor total"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	for i, cs := range report {
		row := []any{cs.Label, cs.Count, cs.TotalQuantity, cs.TotalValue.String()}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LowStockWorkbook arma el reporte de productos en o bajo el umbral mínimo.
func (e *Exporter) LowStockWorkbook(products []entity.Product) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Stock bajo"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	headers := []any{"Nombre", "Código", "Cantidad", "Cantidad mínima", "Proveedor", "Ubicación"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	for i, p := range products {
		row := []any{p.Name, p.Code, p.Quantity, p.MinQuantity, p.Supplier, p.Location}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteProductsCSV escribe el listado de productos como CSV (UTF-8, con
// encabezado), columnas alineadas con las del libro de Excel.
func WriteProductsCSV(w io.Writer, products []entity.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(productHeaders); err != nil {
		return err
	}
	for _, p := range products {
		row := productRow(p)
		record := make([]string, len(row))
		for i, v := range row {
			switch t := v.(type) {
			case string:
				record[i] = t
			case int:
				record[i] = strconv.Itoa(t)
			default:
				record[i] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func productRow(p entity.Product) []any {
	expiry := ""
	if p.ExpiryDate != nil {
		expiry = p.ExpiryDate.Format(dateLayout)
	}
	return []any{
		p.Name,
		p.Code,
		entity.CategoryLabel(p.Category),
		p.Quantity,
		p.MinQuantity,
		p.Price.String(),
		p.Location,
		p.Supplier,
		expiry,
		p.Description,
		p.CreatedAt.Format(dateLayout),
		p.UpdatedAt.Format(dateLayout),
	}
}
