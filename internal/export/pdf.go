package export

import (
	_ "embed"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/Simplici0/heatquote/internal/estimate"
)

// pdfFont is a UTF-8 family covering Cyrillic and the ruble sign; the core
// PDF fonts only encode Latin-1.
const pdfFont = "dejavu"

//go:embed fonts/DejaVuSansCondensed.ttf
var regularTTF []byte

//go:embed fonts/DejaVuSansCondensed-Bold.ttf
var boldTTF []byte

// Grid widths of the six table columns; they add up to 12.
var pdfColumns = []int{2, 2, 4, 1, 1, 2}

var (
	grey     = &props.Color{Red: 100, Green: 100, Blue: 100}
	headerBg = &props.Color{Red: 33, Green: 37, Blue: 41}
	altBg    = &props.Color{Red: 248, Green: 249, Blue: 250}
)

// GeneratePDF renders the report as a landscape A4 document.
func GeneratePDF(r Report) ([]byte, error) {
	fonts, err := pdfFonts()
	if err != nil {
		return nil, fmt.Errorf("failed to load PDF fonts: %w", err)
	}

	cfg := config.NewBuilder().
		WithCustomFonts(fonts).
		WithDefaultFont(&props.Font{Family: pdfFont, Size: 8}).
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "{current} / {total}",
			Place:   props.RightBottom,
			Family:  pdfFont,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, r)
	addTable(m, r.Table)
	addNotes(m, r.Notes)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate estimate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func pdfFonts() ([]*entity.CustomFont, error) {
	return repository.New().
		AddUTF8FontFromBytes(pdfFont, fontstyle.Normal, regularTTF).
		AddUTF8FontFromBytes(pdfFont, fontstyle.Bold, boldTTF).
		Load()
}

func addHeader(m core.Maroto, r Report) {
	m.AddRows(
		row.New(10).Add(
			col.New(8).Add(text.New(r.Table.Title, props.Text{Family: pdfFont, Size: 14, Style: fontstyle.Bold, Align: align.Left})),
			col.New(4).Add(text.New(r.CreatedDate, props.Text{Family: pdfFont, Size: 9, Align: align.Right, Color: grey})),
		),
	)
	for _, g := range r.Table.Globals {
		m.AddRows(row.New(5).Add(col.New(12).Add(text.New(g, props.Text{Family: pdfFont, Size: 8, Align: align.Left, Color: grey}))))
	}
	m.AddRows(row.New(4))
}

func addTable(m core.Maroto, t estimate.Table) {
	head := t.Head
	if len(head) == 0 {
		head = estimate.TableHead
	}

	headerText := props.Text{Family: pdfFont, Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: &props.Color{Red: 255, Green: 255, Blue: 255}}
	headerCell := &props.Cell{BackgroundColor: headerBg}
	m.AddRows(tableRow(8, head, headerText, headerCell))

	for i, cells := range t.Body {
		var style *props.Cell
		if i%2 == 1 {
			style = &props.Cell{BackgroundColor: altBg}
		}
		m.AddRows(tableRow(9, cells, props.Text{Family: pdfFont, Size: 7, Align: align.Left}, style))
	}

	if len(t.Totals) > 0 {
		m.AddRows(tableRow(8, t.Totals, props.Text{Family: pdfFont, Size: 8, Style: fontstyle.Bold, Align: align.Left}, nil))
	}
}

// tableRow lays cells over the fixed column grid; the last two columns hold
// figures and are right aligned.
func tableRow(height float64, cells []string, style props.Text, cell *props.Cell) core.Row {
	cols := make([]core.Col, 0, len(pdfColumns))
	for i, size := range pdfColumns {
		value := ""
		if i < len(cells) {
			value = cells[i]
		}
		s := style
		if i >= len(pdfColumns)-2 {
			s.Align = align.Right
		}
		c := col.New(size).Add(text.New(value, s))
		if cell != nil {
			c = c.WithStyle(cell)
		}
		cols = append(cols, c)
	}
	return row.New(height).Add(cols...)
}

func addNotes(m core.Maroto, notes []string) {
	if len(notes) == 0 {
		return
	}
	m.AddRows(row.New(4))
	for _, n := range notes {
		m.AddRows(row.New(5).Add(col.New(12).Add(text.New(n, props.Text{Family: pdfFont, Size: 7, Align: align.Left, Color: grey}))))
	}
}
