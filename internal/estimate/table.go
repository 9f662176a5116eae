package estimate

import (
	"fmt"
	"strings"

	"github.com/Simplici0/heatquote/internal/norms"
)

// TableHead is the column header of the export table.
var TableHead = []string{"Элемент", "Тип", "Параметры", "Коэфф. элемента", "Трудозатраты", "Стоимость"}

// Table is the export matrix of a summary. Every cell is already formatted;
// exporters only lay it out.
type Table struct {
	Title   string     `json:"title"`
	Globals []string   `json:"globals"`
	Head    []string   `json:"head"`
	Body    [][]string `json:"body"`
	Totals  []string   `json:"totals"`
}

// Rows returns the body followed by the totals row.
func (t Table) Rows() [][]string {
	rows := make([][]string, 0, len(t.Body)+1)
	rows = append(rows, t.Body...)
	return append(rows, t.Totals)
}

// BuildTable lays out sum as the export table. Figures are taken from the
// summary as is.
func (e *Engine) BuildTable(p Project, sum Summary) Table {
	t := Table{
		Title:   p.Title,
		Globals: e.GlobalLines(p),
		Head:    append([]string(nil), TableHead...),
	}
	for _, l := range sum.Hubs {
		t.Body = append(t.Body, []string{
			hubTitle(l.Hub),
			HubTypeLabel(l.Hub),
			hubParams(l.Hub),
			FormatCoefficient(l.Breakdown.ElementCoefficient()),
			FormatHoursMinutes(l.Hours),
			FormatCurrency(l.Cost),
		})
	}
	for _, l := range sum.Units {
		name := l.Unit.Room
		if name == "" {
			name = "Отопительный прибор"
		}
		t.Body = append(t.Body, []string{
			name,
			l.Unit.Type.Label(),
			unitParams(l.Unit, l.Breakdown),
			FormatCoefficient(l.Breakdown.ElementCoefficient()),
			FormatHoursMinutes(l.Hours),
			FormatCurrency(l.Cost),
		})
	}
	if sum.CommissioningIncluded {
		c := sum.Commissioning
		t.Body = append(t.Body, []string{
			"Пусконаладочные работы",
			"ПНР",
			fmt.Sprintf("%d узл., %d приб.", c.HubCount, c.UnitCount),
			FormatCoefficient(1),
			FormatHoursMinutes(c.Hours),
			FormatCurrency(c.Cost),
		})
	}
	t.Totals = []string{"Итого", "", "", "", FormatHoursMinutes(sum.Total.Hours), FormatCurrency(sum.Total.Cost)}
	return t
}

// GlobalLines describes the project-wide coefficients and the effective rate.
func (e *Engine) GlobalLines(p Project) []string {
	f := p.Factors
	wall, _ := e.norms.Wall(f.Wall)
	cramped, _ := e.norms.Congestion(f.Congestion)
	return []string{
		fmt.Sprintf("Стены: %s %s", f.Wall.Label(), FormatCoefficient(wall)),
		fmt.Sprintf("Стеснённость: %s %s", f.Congestion.Label(), FormatCoefficient(cramped)),
		fmt.Sprintf("Удалённость: %s %s", DistanceLabel(f.DistanceKm), FormatDistanceCoefficient(e.norms.DistanceCoefficient(f.DistanceKm))),
		fmt.Sprintf("Общий коэффициент: %s", FormatCoefficient(e.SiteCoefficient(f))),
		fmt.Sprintf("Средняя ставка: %s/ч", FormatCurrency(p.Rates.Average())),
	}
}

func hubParams(h Hub) string {
	if t, ok := h.Tee(); ok {
		return strings.Join([]string{
			fmt.Sprintf("%s м", formatNumber(t.MainRunLengthM)),
			fmt.Sprintf("%d отв.", t.Branches),
			pipeParams(t.Material, t.Diameter),
			t.Laying.Label(),
		}, ", ")
	}
	m, _ := h.Manifold()
	parts := []string{
		fmt.Sprintf("%d вых.", m.Outputs),
		fmt.Sprintf("%s м", formatNumber(m.LoopLengthM)),
		pipeParams(m.Material, m.Diameter),
		m.Laying.Label(),
	}
	if m.Pump {
		parts = append(parts, "насосная группа")
	}
	if m.Cabinet != nil {
		if m.Cabinet.Kind == CabinetBuiltIn {
			parts = append(parts, "шкаф встроенный")
		} else {
			parts = append(parts, "шкаф накладной")
		}
	}
	return strings.Join(parts, ", ")
}

func pipeParams(m norms.PipeMaterial, d norms.PipeDiameter) string {
	if d == "" {
		return string(m)
	}
	return fmt.Sprintf("%s Ø%s", m, d)
}

// unitParams describes a unit. Options come from the breakdown rows, so only
// the ones that applied to the connection side are listed.
func unitParams(u RadiatorUnit, b Breakdown) string {
	parts := []string{u.Connection.Label() + " подкл."}
	for _, r := range b.Rows {
		if r.Label == "Подводящие" {
			parts = append(parts, fmt.Sprintf("%s м", formatNumber(r.Quantity)))
		}
	}
	if u.Heavy {
		parts = append(parts, "> 20 кг")
	}
	for _, r := range b.Rows {
		switch r.Label {
		case "Базовый монтаж", "Воздухоотводчик", "Подводящие":
		default:
			parts = append(parts, strings.ToLower(r.Label))
		}
	}
	return strings.Join(parts, ", ")
}
