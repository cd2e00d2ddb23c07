// Package pdf implementa la generación del reporte de movimientos (kardex)
// de un registro de stock.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Producto + SKU  │  Bodega + Fecha de emisión       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Motivo | Antes | Después | Delta | Costo    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: Existencia actual                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appusecase "github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa usecase.MovementPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateMovementPDF genera el PDF del kardex y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateMovementPDF(
	_ context.Context,
	stock *entity.StockRecord,
	product *entity.Product,
	warehouse *entity.Warehouse,
	movements []appusecase.MovementForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de movimientos de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(product, warehouse))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(movements) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(stock, len(movements)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: producto + SKU (izq) y bodega + fecha de emisión (der).
func headerRow(product *entity.Product, warehouse *entity.Warehouse) core.Row {
	productName, sku := "—", "—"
	if product != nil {
		productName, sku = product.Name, product.SKU
	}
	warehouseName := "—"
	if warehouse != nil {
		warehouseName = fmt.Sprintf("%s (%s)", warehouse.Name, warehouse.Code)
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(productName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("SKU: "+sku, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE MOVIMIENTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Bodega: "+warehouseName, props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
			text.New("Emitido: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla del kardex.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Motivo", 4, align.Left),
		h("Antes", 2, align.Right),
		h("Después", 2, align.Right),
		h("Delta", 1, align.Right),
		h("Costo", 1, align.Right),
	)
}

// tableDetailRows: una fila por movimiento, en orden cronológico.
func tableDetailRows(movements []appusecase.MovementForPDF) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, mv := range movements {
		deltaColor := colorGray
		if mv.Delta.IsNegative() {
			deltaColor = colorRed
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				mv.Date.Format("02/01/2006 15:04"),
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				mv.Reason,
				props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				mv.Before.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				mv.After.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				mv.Delta.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: deltaColor},
			)),
			col.New(1).Add(text.New(
				mv.Cost.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRow: existencia actual y conteo de movimientos listados.
func footerRow(stock *entity.StockRecord, count int) core.Row {
	return row.New(12).Add(
		col.New(6).Add(
			text.New(fmt.Sprintf("%d movimientos listados", count), props.Text{
				Size: 8, Color: colorGray, Top: 3,
			}),
		),
		col.New(6).Add(
			text.New("EXISTENCIA ACTUAL: "+stock.Quantity.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 2,
			}),
		),
	)
}
