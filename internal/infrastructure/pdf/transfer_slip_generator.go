// Package pdf implementa la generación del comprobante de transferencia de
// stock (remito interno).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + ID corto  │  Fecha de transferencia       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RUTA: Origen → Destino                                      │
//	│  TABLA: Cant | Producto | Clase | Estado destino             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMAS: ejecutó / envió / recibió / verificó                │
//	│  FOOTER: QR con el ID del registro + notas                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/medstock-api/internal/application/stock"
	"github.com/jhoicas/medstock-api/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// Ensure TransferSlipGenerator implements stock.SlipGenerator.
var _ stock.SlipGenerator = (*TransferSlipGenerator)(nil)

// TransferSlipGenerator implementa stock.SlipGenerator usando Maroto v2.
type TransferSlipGenerator struct{}

// NewTransferSlipGenerator construye el generador.
func NewTransferSlipGenerator() *TransferSlipGenerator { return &TransferSlipGenerator{} }

// GenerateTransferSlip genera el comprobante PDF y devuelve sus bytes.
func (g *TransferSlipGenerator) GenerateTransferSlip(_ context.Context, rec *repository.TransferRecordView) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de Transferencia de Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rec))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(routeRow(rec))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRow(rec))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(signaturesRow(rec))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(rec))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + ID corto (izq) y fecha (der).
func headerRow(rec *repository.TransferRecordView) core.Row {
	fecha := rec.TransferDate.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("COMPROBANTE DE TRANSFERENCIA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Registro: "+shortID(rec.ID), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("MOVIMIENTO DE STOCK INTERNO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// routeRow: ubicación de origen y de destino.
func routeRow(rec *repository.TransferRecordView) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("ORIGEN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(rec.FromLocationName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 7,
			}),
		),
		col.New(6).Add(
			text.New("DESTINO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(rec.ToLocationName, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla del ítem movido.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Clase", 2, align.Center),
		h("Estado en destino", 3, align.Right),
	)
}

// tableDetailRow: la fila del ítem transferido.
func tableDetailRow(rec *repository.TransferRecordView) core.Row {
	newStatus := "—"
	if rec.NewStatus != nil && *rec.NewStatus != "" {
		newStatus = *rec.NewStatus
	}
	return row.New(7).Add(
		col.New(1).Add(text.New(
			fmt.Sprintf("%d", rec.Quantity),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(6).Add(text.New(
			rec.ProductName,
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			rec.ItemKind,
			props.Text{Size: 8, Align: align.Center, Top: 1},
		)),
		col.New(3).Add(text.New(
			newStatus,
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// signaturesRow: quién ejecutó, verificó y el estado de verificación.
func signaturesRow(rec *repository.TransferRecordView) core.Row {
	verificacion := "Pendiente de verificación"
	if rec.IsVerified != nil {
		if *rec.IsVerified {
			verificacion = "Verificada por " + nonEmpty(rec.VerifiedByName, "administración")
		} else {
			verificacion = "Rechazada por " + nonEmpty(rec.VerifiedByName, "administración")
		}
	} else if rec.TransferredByRole == "ADMIN" {
		verificacion = "No requiere verificación"
	}

	return row.New(20).Add(
		col.New(6).Add(
			text.New("EJECUTADA POR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(rec.TransferredByName, props.Text{Size: 9, Top: 7}),
			text.New("Rol: "+rec.TransferredByRole, props.Text{
				Size: 8, Top: 13, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("VERIFICACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(verificacion, props.Text{Size: 9, Align: align.Right, Top: 7}),
		),
	)
}

// footerRow: QR con el ID del registro + notas.
func footerRow(rec *repository.TransferRecordView) core.Row {
	return row.New(30).Add(
		col.New(3).Add(
			code.NewQr(rec.ID, props.Rect{Percent: 90, Center: true}),
		),
		col.New(9).Add(
			text.New("NOTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(rec.Notes, "Sin notas."), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
	)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
