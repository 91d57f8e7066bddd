package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/davral/siteworks/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders one tabular report as a single-sheet workbook.
func (g *Generator) Generate(table model.ReportTable) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Report"
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", table.Title)

	headerRow := 3
	for i, column := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return nil, err
		}
		set(cell, column)
	}

	for r, row := range table.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, headerRow+1+r)
			if err != nil {
				return nil, err
			}
			set(cell, value)
		}
	}

	for i := range table.Columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		_ = file.SetColWidth(sheet, col, col, 24)
	}

	if style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(table.Columns), headerRow)
		first := fmt.Sprintf("A%d", headerRow)
		_ = file.SetCellStyle(sheet, first, last, style)
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
