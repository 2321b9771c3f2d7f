// Package pdf implementa la generación de la etiqueta de despacho de un
// producto usando Maroto v2.
//
// Layout de la etiqueta (100×150 mm):
//
//	┌──────────────────────────────┐
//	│  ETIQUETA DE DESPACHO        │
//	│  ──────────────────────────  │
//	│  Nombre del producto         │
//	│  ║█║▌║█║▌║█║  (código)       │
//	│  ──────────────────────────  │
//	│  Ubicación | Proveedor       │
//	│  Cantidad | Categoría        │
//	└──────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/almacen-lite/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// LabelGenerator genera etiquetas de despacho en PDF.
type LabelGenerator struct{}

// NewLabelGenerator construye el generador.
func NewLabelGenerator() *LabelGenerator { return &LabelGenerator{} }

// GenerateDeliveryLabel genera la etiqueta del producto y devuelve sus bytes.
func (g *LabelGenerator) GenerateDeliveryLabel(p entity.Product) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(100, 150).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Etiqueta de despacho", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(productRow(p))
	m.AddRows(barcodeRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(detailRows(p)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow() core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("ETIQUETA DE DESPACHO", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Center,
				Color: colorPrimary, Top: 2,
			}),
		),
	)
}

func productRow(p entity.Product) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(p.Name, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 2,
			}),
			text.New("Código: "+p.Code, props.Text{
				Size: 8, Align: align.Center, Top: 10, Color: colorGray,
			}),
		),
	)
}

func barcodeRow(p entity.Product) core.Row {
	return row.New(22).Add(
		col.New(12).Add(
			code.NewBar(p.Code, props.Barcode{
				Center:  true,
				Percent: 85,
			}),
		),
	)
}

func detailRows(p entity.Product) []core.Row {
	pair := func(label, value string) core.Col {
		return col.New(6).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(nonEmpty(value, "—"), props.Text{Size: 9, Top: 5}),
		)
	}
	return []core.Row{
		row.New(12).Add(
			pair("Ubicación", p.Location),
			pair("Proveedor", p.Supplier),
		),
		row.New(12).Add(
			pair("Cantidad", fmt.Sprintf("%d", p.Quantity)),
			pair("Categoría", entity.CategoryLabel(p.Category)),
		),
	}
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
