// Package report computes the summary figures and month groups shown to the
// user. Every function is pure; the reference instant is always passed in.
package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/core"
)

// InvalidDateLabel names the group holding records whose date does not parse.
const InvalidDateLabel = "Invalid Date"

// MonthGroup is one calendar month of records, in display order.
type MonthGroup struct {
	Label   string // "January 2024"
	Year    int
	Month   time.Month
	Records []core.Expense
	Total   Total
}

// Summary is everything the overview screen needs.
type Summary struct {
	Today     Total
	Week      Total
	Month     Total
	MonthName string
	All       Total
	Groups    []MonthGroup
}

// SumOf adds every amount exactly in decimal and rounds to two places, half
// away from zero. Empty input sums to 0.00.
func SumOf(records []core.Expense) Total {
	sum := decimal.Zero
	special := 0.0
	finite := true
	for _, e := range records {
		if math.IsNaN(e.Amount) || math.IsInf(e.Amount, 0) {
			if finite {
				special = e.Amount
				finite = false
			} else {
				special += e.Amount
			}
			continue
		}
		if finite {
			sum = sum.Add(decimal.NewFromFloat(e.Amount))
		}
	}
	if !finite {
		return Total{special: special}
	}
	return finiteTotal(sum)
}

// TotalToday sums records dated on now's calendar date.
func TotalToday(records []core.Expense, now time.Time) Total {
	today := core.FormatDate(now)
	return SumOf(filter(records, func(e core.Expense) bool {
		return e.Date == today
	}))
}

// TotalThisWeek sums records dated on or after the most recent Sunday at or
// before now. There is no upper bound.
func TotalThisWeek(records []core.Expense, now time.Time) Total {
	start := WeekStart(now)
	return SumOf(filter(records, func(e core.Expense) bool {
		d, ok := e.ParsedDate()
		return ok && !d.Before(start)
	}))
}

// TotalThisMonth sums records in now's month and year.
func TotalThisMonth(records []core.Expense, now time.Time) Total {
	return SumOf(filter(records, func(e core.Expense) bool {
		d, ok := e.ParsedDate()
		return ok && d.Month() == now.Month() && d.Year() == now.Year()
	}))
}

func TotalAll(records []core.Expense) Total {
	return SumOf(records)
}

// WeekStart returns the Sunday at or before now's calendar date, as a
// midnight UTC date comparable with parsed record dates.
func WeekStart(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, time.UTC)
}

// MonthLabel formats "January 2024".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month, year)
}

// GroupByMonth partitions records by calendar month. Groups appear in the
// order their first record is met; records keep input order.
func GroupByMonth(records []core.Expense) []MonthGroup {
	var groups []MonthGroup
	index := map[string]int{}
	for _, e := range records {
		label := InvalidDateLabel
		var year int
		var month time.Month
		if d, ok := e.ParsedDate(); ok {
			year, month = d.Year(), d.Month()
			label = MonthLabel(year, month)
		}
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, MonthGroup{Label: label, Year: year, Month: month})
		}
		groups[i].Records = append(groups[i].Records, e)
	}
	for i := range groups {
		groups[i].Total = SumOf(groups[i].Records)
	}
	return groups
}

// SortByDateDesc returns a copy ordered newest first. Records whose date
// does not parse go last, in their original order.
func SortByDateDesc(records []core.Expense) []core.Expense {
	out := make([]core.Expense, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		di, okI := out[i].ParsedDate()
		dj, okJ := out[j].ParsedDate()
		switch {
		case okI && okJ:
			return di.After(dj)
		case okI:
			return true
		default:
			return false
		}
	})
	return out
}

// Summarize computes all figures and the month groups in display order.
func Summarize(records []core.Expense, now time.Time) Summary {
	return Summary{
		Today:     TotalToday(records, now),
		Week:      TotalThisWeek(records, now),
		Month:     TotalThisMonth(records, now),
		MonthName: now.Month().String(),
		All:       TotalAll(records),
		Groups:    GroupByMonth(SortByDateDesc(records)),
	}
}

func filter(records []core.Expense, keep func(core.Expense) bool) []core.Expense {
	var out []core.Expense
	for _, e := range records {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
