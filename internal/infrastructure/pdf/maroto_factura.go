// Package pdf genera la representación imprimible de una factura de consumo
// para descarga desde autogestión.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Cooperativa  │  Período + Estado                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TITULAR: Nombre + DNI + contacto                            │
//	│  SUMINISTRO: N° de cuenta + dirección                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Período | Vencimiento | Importe                    │
//	│  TOTAL A PAGAR                                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Leyenda de pago                                             │
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

	"github.com/coelsur/cooperativa-api/internal/application/facturas"
	"github.com/coelsur/cooperativa-api/internal/domain/entity"
)

var _ facturas.PDFGenerator = (*MarotoFacturaGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoFacturaGenerator implementa facturas.PDFGenerator usando Maroto v2.
type MarotoFacturaGenerator struct {
	nombreCooperativa string
}

// NewMarotoFacturaGenerator construye el generador.
func NewMarotoFacturaGenerator(nombreCooperativa string) *MarotoFacturaGenerator {
	return &MarotoFacturaGenerator{nombreCooperativa: nombreCooperativa}
}

// GenerarFactura genera el PDF y devuelve sus bytes.
func (g *MarotoFacturaGenerator) GenerarFactura(factura *entity.Factura, cuenta *entity.Cuenta, socio *entity.Socio) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura de consumo "+factura.Periodo, true).
		WithAuthor(g.nombreCooperativa, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(factura))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(titularRow(socio))
	m.AddRows(suministroRow(cuenta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(detalleHeaderRow())
	m.AddRows(detalleRow(factura))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(factura))
	m.AddRows(line.NewRow(3))
	m.AddRows(leyendaRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar factura: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: cooperativa (izq) y período + estado (der).
func (g *MarotoFacturaGenerator) headerRow(factura *entity.Factura) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.nombreCooperativa, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Factura de consumo eléctrico", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO "+factura.Periodo, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Estado: "+factura.Estado, props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

func titularRow(socio *entity.Socio) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("TITULAR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(socio.Apellido+", "+socio.Nombre, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("DNI: %s   |   Email: %s   |   Tel: %s",
				socio.DNI,
				nonEmpty(socio.Email, "—"),
				nonEmpty(socio.Telefono, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func suministroRow(cuenta *entity.Cuenta) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("SUMINISTRO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Cuenta N° %s   |   %s",
				cuenta.Numero, cuenta.DireccionSuministro,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func detalleHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Período", 4, align.Left),
		h("Vencimiento", 4, align.Center),
		h("Importe", 4, align.Right),
	)
}

func detalleRow(factura *entity.Factura) core.Row {
	return row.New(7).Add(
		col.New(4).Add(text.New(factura.Periodo, props.Text{Size: 9, Align: align.Left, Top: 1})),
		col.New(4).Add(text.New(factura.Vencimiento.Format("02/01/2006"), props.Text{Size: 9, Align: align.Center, Top: 1})),
		col.New(4).Add(text.New("$ "+factura.Importe.StringFixed(2), props.Text{Size: 9, Align: align.Right, Top: 1})),
	)
}

func totalRow(factura *entity.Factura) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL A PAGAR:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
		col.New(3).Add(text.New("$ "+factura.Importe.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2,
		})),
	)
}

func leyendaRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Puede abonar esta factura en las oficinas de la cooperativa, por débito "+
				"automático o en los medios de pago habilitados. Conserve este comprobante.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
