// Package export turns expense records into downloadable files.
package export

import (
	"bytes"
	"encoding/csv"
	"strings"

	"expensetracker/internal/core"
)

const (
	Filename = "expenses.csv"
	MIMEType = "text/csv"
)

// Header is the fixed first line of every CSV export.
var Header = []string{"Date", "Item Name", "Amount"}

// Dialect selects how fields are written.
type Dialect int

const (
	// Plain joins fields with bare commas and lines with "\n", without a
	// trailing newline. Fields containing commas or newlines are not
	// escaped and will shift columns.
	Plain Dialect = iota
	// Quoted applies RFC 4180 quoting. Lines still end with "\n" only and
	// the last line has no terminator, matching Plain.
	Quoted
)

type Exporter struct {
	dialect Dialect
}

func NewExporter(d Dialect) Exporter {
	return Exporter{dialect: d}
}

// ToCSV renders records in the given order with the Plain dialect.
func ToCSV(records []core.Expense) string {
	return Exporter{}.ToCSV(records)
}

// ExportAll renders every record in store order.
func ExportAll(records []core.Expense) string {
	return Exporter{}.ExportAll(records)
}

// ExportRange renders records dated within [start, end].
func ExportRange(records []core.Expense, start, end string) string {
	return Exporter{}.ExportRange(records, start, end)
}

func (x Exporter) ToCSV(records []core.Expense) string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, Header)
	for _, e := range records {
		rows = append(rows, []string{e.Date, e.Item, core.FormatAmount(e.Amount)})
	}
	if x.dialect == Quoted {
		return quoted(rows)
	}

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, ",")
	}
	return strings.Join(lines, "\n")
}

func (x Exporter) ExportAll(records []core.Expense) string {
	return x.ToCSV(records)
}

func (x Exporter) ExportRange(records []core.Expense, start, end string) string {
	return x.ToCSV(InRange(records, start, end))
}

// InRange keeps records whose date falls within [start, end] inclusive.
// Unparseable bounds or record dates never match, so an inverted or broken
// range yields nothing.
func InRange(records []core.Expense, start, end string) []core.Expense {
	from, err := core.ParseDate(start)
	if err != nil {
		return nil
	}
	to, err := core.ParseDate(end)
	if err != nil {
		return nil
	}

	var out []core.Expense
	for _, e := range records {
		d, ok := e.ParsedDate()
		if !ok || d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func quoted(rows [][]string) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	// Writing to a bytes.Buffer cannot fail.
	_ = w.WriteAll(rows)
	return strings.TrimSuffix(buf.String(), "\n")
}
