package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/heatquote/internal/estimate"
)

// GenerateExcel creates a workbook with one sheet holding the report and
// returns the file contents.
func GenerateExcel(r Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(r.Table.Title)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	head := r.Table.Head
	if len(head) == 0 {
		head = estimate.TableHead
	}
	lastCol, err := excelize.ColumnNumberToName(len(head))
	if err != nil {
		return nil, fmt.Errorf("column name: %w", err)
	}
	widths := []float64{28, 22, 48, 16, 16, 16}
	for i := range head {
		name, _ := excelize.ColumnNumberToName(i + 1)
		w := 16.0
		if i < len(widths) {
			w = widths[i]
		}
		if err := f.SetColWidth(sheet, name, name, w); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", name, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	subtitleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 10, Color: "#555555"}})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	row := 1
	merge := func(value string, style int) error {
		first, last := fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row)
		if err := f.MergeCell(sheet, first, last); err != nil {
			return fmt.Errorf("merge row %d: %w", row, err)
		}
		f.SetCellValue(sheet, first, sanitizeExcelCell(value))
		f.SetCellStyle(sheet, first, last, style)
		row++
		return nil
	}

	if err := merge(r.Table.Title, titleStyle); err != nil {
		return nil, err
	}
	if r.CreatedDate != "" {
		if err := merge("Дата: "+r.CreatedDate, subtitleStyle); err != nil {
			return nil, err
		}
	}
	for _, g := range r.Table.Globals {
		if err := merge(g, subtitleStyle); err != nil {
			return nil, err
		}
	}
	row++

	writeRow := func(cells []string, style int) {
		for i, v := range cells {
			name, _ := excelize.ColumnNumberToName(i + 1)
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", name, row), sanitizeExcelCell(v))
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), style)
		row++
	}

	writeRow(head, headerStyle)
	for _, cells := range r.Table.Body {
		writeRow(cells, bodyStyle)
	}
	writeRow(r.Table.Totals, totalStyle)

	if len(r.Notes) > 0 {
		row++
		for _, n := range r.Notes {
			if err := merge(n, subtitleStyle); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prefixes values Excel would read as a formula.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
