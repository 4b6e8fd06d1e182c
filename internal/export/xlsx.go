package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"expensetracker/internal/core"
)

const (
	XLSXFilename = "expenses.xlsx"
	XLSXMIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheetName    = "Expenses"
)

// ToXLSX writes the same columns as ToCSV into a single worksheet. Finite
// amounts are numeric cells; non-finite ones are written as text.
func ToXLSX(records []core.Expense) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, e := range records {
		var amount interface{} = e.Amount
		if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
			amount = core.FormatAmount(e.Amount)
		}
		row := []interface{}{e.Date, e.Item, amount}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
