// Package export renders an estimate table as PDF or Excel documents.
package export

import (
	"strings"

	"github.com/Simplici0/heatquote/internal/estimate"
)

// Report is what the exporters lay out. Figures come pre-formatted in Table.
type Report struct {
	Table       estimate.Table
	CreatedDate string
	// Notes are printed under the table, e.g. advisories.
	Notes []string
}

// sheetName derives a valid worksheet name from the title: at most 31
// characters with none of the characters Excel rejects.
func sheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if runes := []rune(name); len(runes) > 31 {
		name = string(runes[:31])
	}
	if name == "" {
		name = "Смета"
	}
	return name
}
