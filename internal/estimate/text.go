package estimate

import (
	"fmt"
	"strings"
)

// WriteBreakdown appends the itemized calculation of b to sb.
func WriteBreakdown(sb *strings.Builder, b Breakdown) {
	fmt.Fprintf(sb, "%s\n", b.Title)
	for _, r := range b.Rows {
		label := r.Label
		if r.Unit != "" {
			label = fmt.Sprintf("%s, %s %s", label, formatNumber(r.Quantity), r.Unit)
		}
		if r.Note != "" {
			label = fmt.Sprintf("%s (%s)", label, r.Note)
		}
		fmt.Fprintf(sb, "  + %-60s %s\n", label, FormatHours(r.Hours))
	}
	fmt.Fprintf(sb, "  = %-60s %s\n", "Сумма до коэффициентов", FormatHours(b.Subtotal))
	for _, f := range b.Factors {
		fmt.Fprintf(sb, "  × %-60s %s\n", fmt.Sprintf("%s (%s)", f.Label, f.Key), FormatCoefficient(f.Value))
	}
	fmt.Fprintf(sb, "  Итого: %s, %s\n", FormatHoursMinutes(b.Hours), FormatCurrency(b.Cost))
}

// TextReport renders the summary as plain text: global coefficients, every
// breakdown, totals, advisories and warnings.
func (e *Engine) TextReport(p Project, sum Summary) string {
	var sb strings.Builder

	title := p.Title
	if title == "" {
		title = "Смета"
	}
	fmt.Fprintf(&sb, "%s\n", title)
	for _, g := range e.GlobalLines(p) {
		fmt.Fprintf(&sb, "%s\n", g)
	}

	for _, h := range sum.Hubs {
		sb.WriteString("\n")
		WriteBreakdown(&sb, h.Breakdown)
	}
	for _, u := range sum.Units {
		sb.WriteString("\n")
		WriteBreakdown(&sb, u.Breakdown)
	}
	if sum.CommissioningIncluded {
		sb.WriteString("\n")
		WriteBreakdown(&sb, sum.CommissioningBreakdown)
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Монтажные работы: %s, %s\n", FormatHoursMinutes(sum.Works.Hours), FormatCurrency(sum.Works.Cost))
	if sum.CommissioningIncluded {
		fmt.Fprintf(&sb, "Пусконаладочные работы: %s, %s\n", FormatHoursMinutes(sum.Commissioning.Hours), FormatCurrency(sum.Commissioning.Cost))
	}
	fmt.Fprintf(&sb, "Итого: %s, %s\n", FormatHoursMinutes(sum.Total.Hours), FormatCurrency(sum.Total.Cost))

	if len(sum.Advisories) > 0 {
		sb.WriteString("\nЗамечания:\n")
		for _, a := range sum.Advisories {
			fmt.Fprintf(&sb, "- %s\n", a.Message)
		}
	}
	if len(sum.Warnings) > 0 {
		sb.WriteString("\nНеизвестные значения (коэффициент 1.0):\n")
		for _, w := range sum.Warnings {
			fmt.Fprintf(&sb, "- %s: %s = %q\n", w.Entity, w.Field, w.Key)
		}
	}
	return sb.String()
}
