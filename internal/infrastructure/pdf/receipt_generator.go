// Package pdf implementa la generación del comprobante PDF de un movimiento:
// factura de venta para salidas, comprobante de recepción para entradas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: DIGITAL STOCK       │  Título + N° + Fecha/Hora    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TERCERO: Nombre + Cédula/RIF + contacto                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | IVA % | Subtotal          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA / TOTAL                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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
	"github.com/shopspring/decimal"

	"github.com/digitalstock/digital-stock-api/internal/application/movement"
	"github.com/digitalstock/digital-stock-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var hundred = decimal.NewFromInt(100)

// Ensure ReceiptGenerator implements movement.ReceiptGenerator.
var _ movement.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator genera comprobantes con Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// Render genera el PDF del comprobante y devuelve sus bytes.
func (g *ReceiptGenerator) Render(data *movement.ReceiptData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(receiptTitle(data.Direction), true).
		WithAuthor("Digital Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow(data.Direction, data.Party))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(data.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

func receiptTitle(direction string) string {
	if direction == entity.DirectionPurchase {
		return "COMPROBANTE DE RECEPCIÓN"
	}
	return "FACTURA DE VENTA"
}

// headerRow: nombre del negocio (izq) y título + consecutivo + fecha/hora (der).
func headerRow(data *movement.ReceiptData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("DIGITAL STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Sistema de Inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(receiptTitle(data.Direction), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d", data.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New(fmt.Sprintf("Fecha: %s  %s", data.Date, data.Time), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// partyRow: datos del tercero (cliente o proveedor). El comprobante se genera
// aunque el tercero no exista en el directorio.
func partyRow(direction string, party *entity.Party) core.Row {
	label := "CLIENTE"
	if direction == entity.DirectionPurchase {
		label = "PROVEEDOR"
	}
	name, id, contact := "No registrado", "", ""
	if party != nil {
		name = party.Name
		id = "Cédula/RIF: " + party.ID
		contact = party.Phone
		if party.Email != "" {
			if contact != "" {
				contact += " · "
			}
			contact += party.Email
		}
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New(id+"   "+contact, props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Align: align.Right}
	return row.New(7).Add(
		col.New(1).Add(text.New("Cant", header)),
		col.New(5).Add(text.New("Producto", header)),
		col.New(2).Add(text.New("P. Unit", headerRight)),
		col.New(2).Add(text.New("IVA %", headerRight)),
		col.New(2).Add(text.New("Subtotal", headerRight)),
	)
}

func tableDetailRows(lines []*entity.MovementDetail) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		qty := decimal.NewFromInt(l.Quantity)
		subtotal := l.UnitPrice.Mul(qty)
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", l.Quantity), props.Text{Size: 8})),
			col.New(5).Add(text.New(l.ProductName, props.Text{Size: 8})),
			col.New(2).Add(text.New(l.UnitPrice.StringFixed(2), props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(l.TaxRate.StringFixed(2), props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(subtotal.StringFixed(2), props.Text{Size: 8, Align: align.Right})),
		))
	}
	return rows
}

// totalsRow: el subtotal y el IVA se recomputan de las líneas con redondeo
// a nivel de agregado, igual que el motor al registrar el movimiento.
func totalsRow(data *movement.ReceiptData) core.Row {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for _, l := range data.Lines {
		lineSubtotal := l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
		subtotal = subtotal.Add(lineSubtotal)
		tax = tax.Add(lineSubtotal.Mul(l.TaxRate).Div(hundred))
	}
	subtotal = subtotal.Round(2)
	tax = tax.Round(2)

	label := props.Text{Size: 9, Align: align.Right, Color: colorGray}
	value := props.Text{Size: 9, Align: align.Right}
	return row.New(16).Add(
		col.New(8),
		col.New(2).Add(
			text.New("Subtotal:", label),
			text.New("IVA:", props.Text{Size: 9, Align: align.Right, Color: colorGray, Top: 5}),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 10, Color: colorPrimary}),
		),
		col.New(2).Add(
			text.New(subtotal.StringFixed(2), value),
			text.New(tax.StringFixed(2), props.Text{Size: 9, Align: align.Right, Top: 5}),
			text.New(data.Amount.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 10, Color: colorPrimary}),
		),
	)
}
