// Package pdf genera los reportes imprimibles del backoffice.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa              │  RAPPORT + Periodo + Fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Transferts / Quantité / Valeur / Moyenne / Top    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA POR PRODUCTO: Produit | Qté | Transferts | Valeur    │
//	│  TABLA POR PERIODO: Période | Transferts | Qté | Valeur     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                            │
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

	"github.com/jhoicas/Backoffice-api/internal/application/analytics"
	"github.com/jhoicas/Backoffice-api/pkg/format"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var periodLabels = map[analytics.Period]string{
	analytics.PeriodDay:   "par jour",
	analytics.PeriodWeek:  "par semaine",
	analytics.PeriodMonth: "par mois",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator genera los reportes con Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// TransferReportPDF genera el reporte de transferencias y devuelve sus bytes.
func (g *MarotoReportGenerator) TransferReportPDF(
	_ context.Context,
	companyName string,
	report *analytics.TransferReport,
	generatedAt time.Time,
) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("pdf: reporte vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Rapport des transferts", true).
		WithAuthor(nonEmpty(companyName, "Backoffice"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(companyName, report.Period, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(report.Summary)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("DÉTAIL PAR PRODUIT"))
	m.AddRows(tableHeaderRow("Produit", "Quantité", "Transferts", "Valeur"))
	for _, p := range report.ByProduct {
		m.AddRows(tableRow(p.ProductName, format.Integer(p.TotalQty), format.Integer(int64(p.TransferCount)), format.Amount(p.TotalValue)))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle("ÉVOLUTION " + periodLabel(report.Period)))
	m.AddRows(tableHeaderRow("Période", "Transferts", "Quantité", "Valeur"))
	for _, c := range report.Chart {
		m.AddRows(tableRow(c.Period, format.Integer(int64(c.Transfers)), format.Integer(c.Quantity), format.Amount(c.Value)))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(companyName string, p analytics.Period, at time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(companyName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("RAPPORT DES TRANSFERTS", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Regroupement "+periodLabel(p), props.Text{
				Size: 8, Align: align.Right, Top: 7,
			}),
			text.New("Édité le "+format.Date(at), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func summaryRows(s analytics.TransferSummary) []core.Row {
	item := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5, Align: align.Center}),
		)
	}
	return []core.Row{
		row.New(14).Add(
			item("Transferts", format.Integer(int64(s.TotalTransfers))),
			item("Quantité totale", format.Integer(s.TotalQuantity)),
			item("Valeur totale", format.Amount(s.TotalValue)),
			item("Valeur moyenne", format.Amount(s.AverageTransferValue)),
		),
		row.New(8).Add(col.New(12).Add(
			text.New("Produit le plus transféré : "+s.MostTransferredProduct, props.Text{
				Size: 8, Top: 2, Color: colorPrimary,
			}),
		)),
	}
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

// tableHeaderRow primera columna ancha a la izquierda, las demás numéricas a la derecha.
func tableHeaderRow(first, second, third, fourth string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h(first, 5, align.Left),
		h(second, 2, align.Right),
		h(third, 2, align.Right),
		h(fourth, 3, align.Right),
	)
}

func tableRow(first, second, third, fourth string) core.Row {
	c := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(7).Add(
		c(first, 5, align.Left),
		c(second, 2, align.Right),
		c(third, 2, align.Right),
		c(fourth, 3, align.Right),
	)
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Montants exprimés en "+format.Currency.String()+" (F CFA). Document généré automatiquement.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func periodLabel(p analytics.Period) string {
	if l, ok := periodLabels[p]; ok {
		return l
	}
	return periodLabels[analytics.PeriodMonth]
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
