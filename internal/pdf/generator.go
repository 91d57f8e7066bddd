package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/davral/siteworks/internal/model"
)

type Generator struct {
	fontName string
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica"}
}

// Generate renders one tabular report as a landscape A4 document.
func (g *Generator) Generate(table model.ReportTable) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, table.Title, "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated %s", time.Now().Format("02.01.2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := columnWidths(pdf, len(table.Columns))
	drawRow(pdf, g.fontName, table.Columns, widths, true)
	for _, row := range table.Rows {
		if pdf.GetY() > 180 {
			pdf.AddPage()
			drawRow(pdf, g.fontName, table.Columns, widths, true)
		}
		drawRow(pdf, g.fontName, row, widths, false)
	}

	if len(table.Rows) == 0 {
		pdf.SetFont(g.fontName, "I", 10)
		pdf.CellFormat(0, 8, "No records", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func columnWidths(pdf *gofpdf.Fpdf, count int) []float64 {
	if count == 0 {
		return nil
	}
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right
	widths := make([]float64, count)
	for i := range widths {
		widths[i] = usable / float64(count)
	}
	return widths
}

func drawRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 9)
	for i, col := range cols {
		if i >= len(widths) {
			break
		}
		pdf.CellFormat(widths[i], 7, truncate(col, 48), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit-3] + "..."
}
