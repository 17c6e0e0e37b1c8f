// Package pdf genera el informe imprimible de un proyecto.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del proyecto  │  Estado + Fecha creación     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESCRIPCIÓN + RESPONSABLE + EQUIPO                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Tarea | Vence | Estado                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  AVANCE: completadas / total / porcentaje + QR               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

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

	"github.com/jhoicas/Empresa-api/internal/application/ports"
	"github.com/jhoicas/Empresa-api/internal/domain/entity"
)

var _ ports.ProyectoReportGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDone    = &props.Color{Red: 20, Green: 120, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.ProyectoReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	// baseURL prefijo del enlace codificado en el QR; vacío omite el QR.
	baseURL string
	author  string
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(baseURL, author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{baseURL: strings.TrimRight(baseURL, "/"), author: author}
}

// GenerateProyectoPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateProyectoPDF(_ context.Context, p *entity.Proyecto, responsable *entity.Empleado) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Proyecto "+p.Nombre, true).
		WithAuthor(nonEmpty(g.author, "Empresa"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detalleRows(p, responsable)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tareaRows(p.Tareas)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(avanceRow(p, g.link(p)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoPDFGenerator) link(p *entity.Proyecto) string {
	if g.baseURL == "" || p.ID == "" {
		return ""
	}
	return g.baseURL + "/proyectos/" + p.ID
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(p *entity.Proyecto) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(p.Nombre, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("ID: "+nonEmpty(p.ID, "—"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(strings.ToUpper(string(p.Estado)), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Creado: "+p.FechaCreacion.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Fin estimado: "+fechaFin(p), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func detalleRows(p *entity.Proyecto, responsable *entity.Empleado) []core.Row {
	rows := []core.Row{
		row.New(14).Add(col.New(12).Add(
			text.New("DESCRIPCIÓN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(p.Descripcion, "—"), props.Text{Size: 9, Top: 6}),
		)),
	}

	resp := "Sin responsable asignado"
	if responsable != nil {
		resp = fmt.Sprintf("%s (%s) · %s", responsable.NombreCompleto(), responsable.Cargo, responsable.Email)
	}
	rows = append(rows, row.New(12).Add(col.New(12).Add(
		text.New("RESPONSABLE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(resp, props.Text{Size: 9, Top: 6}),
	)))

	if len(p.Empleados) > 0 {
		nombres := make([]string, 0, len(p.Empleados))
		for i := range p.Empleados {
			nombres = append(nombres, p.Empleados[i].NombreCompleto())
		}
		rows = append(rows, row.New(12).Add(col.New(12).Add(
			text.New("EQUIPO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(strings.Join(nombres, ", "), props.Text{Size: 9, Top: 6, Color: colorGray}),
		)))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Tarea", 6, align.Left),
		h("Vence", 2, align.Center),
		h("Estado", 3, align.Right),
	)
}

func tareaRows(tareas []entity.Tarea) []core.Row {
	if len(tareas) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("El proyecto no tiene tareas.", props.Text{Size: 8, Top: 1, Color: colorGray, Align: align.Center}),
		))}
	}
	result := make([]core.Row, 0, len(tareas))
	for i, t := range tareas {
		estado, color := "Pendiente", colorGray
		if t.Completada {
			estado, color = "Completada", colorDone
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(t.Titulo, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(t.FechaVencimiento.Format("02/01/2006"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(estado, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: color})),
		))
	}
	return result
}

func avanceRow(p *entity.Proyecto, link string) core.Row {
	resumen := fmt.Sprintf("%d de %d tareas completadas", p.TareasCompletadas(), len(p.Tareas))
	info := col.New(8).Add(
		text.New("AVANCE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
		text.New(fmt.Sprintf("%d%%", p.PorcentajeProgreso()), props.Text{
			Style: fontstyle.Bold, Size: 20, Top: 8, Color: colorPrimary,
		}),
		text.New(resumen, props.Text{Size: 9, Top: 20, Color: colorGray}),
	)
	if link == "" {
		return row.New(30).Add(info, col.New(4))
	}
	return row.New(30).Add(info, col.New(4).Add(code.NewQr(link, props.Rect{Percent: 90, Center: true})))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func fechaFin(p *entity.Proyecto) string {
	if p.FechaEstimadaFin == nil {
		return "—"
	}
	return p.FechaEstimadaFin.Format("02/01/2006")
}
