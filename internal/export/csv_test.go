package export

import (
	"math"
	"net/http/httptest"
	"testing"

	"expensetracker/internal/core"
)

func TestToCSVSingleRecord(t *testing.T) {
	got := ToCSV([]core.Expense{{ID: 1, Date: "2024-01-01", Item: "Coffee", Amount: 3.5}})
	want := "Date,Item Name,Amount\n2024-01-01,Coffee,3.5"
	if got != want {
		t.Fatalf("ToCSV = %q, want %q", got, want)
	}
}

func TestToCSVEmpty(t *testing.T) {
	if got := ToCSV(nil); got != "Date,Item Name,Amount" {
		t.Fatalf("ToCSV(nil) = %q", got)
	}
}

func TestToCSVPlainKeepsCommas(t *testing.T) {
	got := ToCSV([]core.Expense{
		{Date: "2024-01-01", Item: "Milk, eggs", Amount: 10},
		{Date: "2024-01-02", Item: "Broken", Amount: math.NaN()},
	})
	want := "Date,Item Name,Amount\n2024-01-01,Milk, eggs,10\n2024-01-02,Broken,NaN"
	if got != want {
		t.Fatalf("ToCSV = %q, want %q", got, want)
	}
}

func TestToCSVQuoted(t *testing.T) {
	got := NewExporter(Quoted).ToCSV([]core.Expense{{Date: "2024-01-01", Item: `Milk, "fresh"`, Amount: 2.25}})
	want := "Date,Item Name,Amount\n2024-01-01,\"Milk, \"\"fresh\"\"\",2.25"
	if got != want {
		t.Fatalf("quoted ToCSV = %q, want %q", got, want)
	}
}

func TestExportAllKeepsStoreOrder(t *testing.T) {
	records := []core.Expense{
		{Date: "2024-03-01", Item: "b", Amount: 2},
		{Date: "2024-01-01", Item: "a", Amount: 1},
	}
	want := "Date,Item Name,Amount\n2024-03-01,b,2\n2024-01-01,a,1"
	if got := ExportAll(records); got != want {
		t.Fatalf("ExportAll = %q", got)
	}
}

func TestExportRange(t *testing.T) {
	records := []core.Expense{
		{Date: "2024-01-01", Item: "start", Amount: 1},
		{Date: "2023-12-31", Item: "before", Amount: 1},
		{Date: "2024-01-31", Item: "end", Amount: 1},
		{Date: "2024-02-01", Item: "after", Amount: 1},
		{Date: "junk", Item: "junk", Amount: 1},
	}

	cases := []struct {
		name       string
		start, end string
		want       string
	}{
		{"inclusive", "2024-01-01", "2024-01-31", "Date,Item Name,Amount\n2024-01-01,start,1\n2024-01-31,end,1"},
		{"single day", "2024-02-01", "2024-02-01", "Date,Item Name,Amount\n2024-02-01,after,1"},
		{"inverted", "2024-02-01", "2024-01-01", "Date,Item Name,Amount"},
		{"empty start", "", "2024-01-31", "Date,Item Name,Amount"},
		{"bad end", "2024-01-01", "soon", "Date,Item Name,Amount"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExportRange(records, tc.start, tc.end); got != tc.want {
				t.Fatalf("ExportRange = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDownload(t *testing.T) {
	rr := httptest.NewRecorder()
	if err := Download(rr, "Date,Item Name,Amount"); err != nil {
		t.Fatalf("download: %v", err)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); cd != `attachment; filename="expenses.csv"` {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if rr.Body.String() != "Date,Item Name,Amount" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}
