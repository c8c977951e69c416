package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter renders datasets into a styled worksheet. Used for the
// monthly allowance recap download.
type ExcelExporter struct{}

// NewExcelExporter builds an Excel exporter.
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Render produces an xlsx workbook with a single sheet holding the dataset.
// CurrencyColumns lists header names whose cells get the currency number
// format.
func (e *ExcelExporter) Render(data Dataset, sheetName string, currencyColumns []string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("excel requires at least one header")
	}
	if sheetName == "" {
		sheetName = "Sheet1"
	}

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheetName != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	currencyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	if err != nil {
		return nil, fmt.Errorf("currency style: %w", err)
	}

	currency := make(map[string]bool, len(currencyColumns))
	for _, col := range currencyColumns {
		currency[col] = true
	}

	for i, header := range data.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header: %w", err)
		}
		width := float64(len(header)) + 8
		colName, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, colName, colName, width)
	}

	for rowIdx, row := range data.Rows {
		for colIdx, header := range data.Headers {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("data cell: %w", err)
			}
			value := row[header]
			if currency[header] {
				if n, err := strconv.ParseFloat(value, 64); err == nil {
					if err := f.SetCellValue(sheetName, cell, n); err != nil {
						return nil, fmt.Errorf("write cell: %w", err)
					}
					_ = f.SetCellStyle(sheetName, cell, cell, currencyStyle)
					continue
				}
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("write cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
