package export

import (
	"fmt"
	"io"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

var columnWidths = []float64{12, 48, 16, 12, 10, 12, 24, 12}

type ExcelExporter struct {
	sheetName string
}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{sheetName: "Transactions"}
}

// Export writes the display columns with numeric cells kept numeric. The
// header row is frozen and filterable.
func (e *ExcelExporter) Export(data *Data, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(defaultSheet, e.sheetName)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E78"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}

	for i, header := range domain.DisplayColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(e.sheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header %s: %w", header, err)
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(e.sheetName, col, col, columnWidths[i]); err != nil {
			return fmt.Errorf("failed to set width of %s: %w", header, err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(domain.DisplayColumns))
	if err := f.SetCellStyle(e.sheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	rows := data.rows()
	for r, row := range rows {
		for c, value := range cells(row) {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(e.sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write cell %s: %w", cell, err)
			}
		}
	}
	lastRow := len(rows) + 1
	if len(rows) > 0 {
		for _, col := range []string{"D", "F"} {
			if err := f.SetCellStyle(e.sheetName, col+"2", fmt.Sprintf("%s%d", col, lastRow), moneyStyle); err != nil {
				return fmt.Errorf("failed to style column %s: %w", col, err)
			}
		}
	}

	if err := f.SetPanes(e.sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}
	if err := f.AutoFilter(e.sheetName, fmt.Sprintf("A1:%s%d", lastCol, lastRow), nil); err != nil {
		return fmt.Errorf("failed to add auto filter: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func (e *ExcelExporter) GetContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ExcelExporter) GetFileExtension() string {
	return ".xlsx"
}
