// Package pdf implementa la generación del comprobante de ingreso de una
// garantía de servicio técnico, para entregarlo impreso al cliente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Comprobante de Ingreso  │  N° Boleta + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + RUT + contacto                           │
//	│  EQUIPO: Producto + SKU + falla declarada                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ESTADO: ubicación actual + estado + costo estimado         │
//	│  NOTAS                                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	"github.com/jhoicas/garantias-api/internal/application/usecase"
	"github.com/jhoicas/garantias-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ReceiptGenerator implementa usecase.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct {
	shopName string
}

// NewReceiptGenerator construye el generador. shopName encabeza el comprobante.
func NewReceiptGenerator(shopName string) *ReceiptGenerator {
	return &ReceiptGenerator{shopName: shopName}
}

// Generate genera el comprobante de ingreso y devuelve sus bytes.
func (g *ReceiptGenerator) Generate(_ context.Context, w *entity.Warranty, locationName string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Ingreso", true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.shopName, w))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(w))
	m.AddRows(productRow(w))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(stateRow(w, locationName))
	if w.Notes != "" {
		m.AddRows(notesRow(w))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del taller (izq) y N° boleta + fecha de ingreso (der).
func headerRow(shopName string, w *entity.Warranty) core.Row {
	boleta := "—"
	if w.InvoiceNumber != 0 {
		boleta = fmt.Sprintf("N° %d", w.InvoiceNumber)
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de ingreso a servicio técnico", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("BOLETA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(boleta, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Ingreso: "+w.EntryDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clientRow: datos del cliente.
func clientRow(w *entity.Warranty) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(w.ClientName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("RUT: %s   |   Contacto: %s   |   Email: %s",
				nonEmpty(w.RUT, "—"),
				nonEmpty(w.Contact, "—"),
				nonEmpty(w.Email, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// productRow: equipo ingresado y falla declarada.
func productRow(w *entity.Warranty) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EQUIPO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   (SKU: %s)", w.Product, nonEmpty(w.SKU, "—")), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Falla declarada: "+nonEmpty(w.FailureDescription, "—"), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// stateRow: ubicación, estado y costo estimado de reparación.
func stateRow(w *entity.Warranty, locationName string) core.Row {
	estado := map[string]string{
		entity.StatusPending:   "En reparación",
		entity.StatusReady:     "Lista para retiro",
		entity.StatusCompleted: "Entregada",
	}[w.Status]

	costo := "por evaluar"
	if !w.RepairCost.IsZero() {
		costo = "$" + w.RepairCost.StringFixed(0)
	}

	return row.New(12).Add(
		col.New(12).Add(
			text.New("ESTADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Ubicación: %s   |   Estado: %s   |   Costo reparación: %s",
				nonEmpty(locationName, "—"), estado, costo,
			), props.Text{Size: 9, Top: 7}),
		),
	)
}

// notesRow: observaciones del ingreso.
func notesRow(w *entity.Warranty) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("NOTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(w.Notes, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
