package export

import (
	"bytes"
	"math"
	"testing"

	"github.com/xuri/excelize/v2"

	"expensetracker/internal/core"
)

func TestToXLSX(t *testing.T) {
	data, err := ToXLSX([]core.Expense{
		{Date: "2024-01-01", Item: "Coffee", Amount: 3.5},
		{Date: "2024-01-02", Item: "Broken", Amount: math.NaN()},
	})
	if err != nil {
		t.Fatalf("ToXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Expenses")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d: %v", len(rows), rows)
	}
	if rows[0][0] != "Date" || rows[0][1] != "Item Name" || rows[0][2] != "Amount" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "2024-01-01" || rows[1][1] != "Coffee" || rows[1][2] != "3.5" {
		t.Fatalf("unexpected row: %v", rows[1])
	}
	if rows[2][2] != "NaN" {
		t.Fatalf("expected NaN written as text, got %v", rows[2])
	}
}
