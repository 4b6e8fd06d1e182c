package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"expensetracker/internal/core"
	"expensetracker/internal/report"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	labelStyle  = lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("#7f849c"))
	amountStyle = lipgloss.NewStyle().Width(14).Align(lipgloss.Right)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
)

func renderTotal(t report.Total) string {
	s := amountStyle.Render("₹" + t.String())
	if !t.IsFinite() {
		return warnStyle.Render(s)
	}
	return s
}

func renderSummary(w io.Writer, records []core.Expense, now time.Time) {
	s := report.Summarize(records, now)
	rows := []string{
		titleStyle.Render("Summary"),
		labelStyle.Render("Today") + renderTotal(s.Today),
		labelStyle.Render("This week") + renderTotal(s.Week),
		labelStyle.Render(s.MonthName) + renderTotal(s.Month),
		labelStyle.Render("Overall") + renderTotal(s.All),
	}
	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderGroups lists months newest first, and records newest first within
// each month.
func renderGroups(w io.Writer, records []core.Expense) {
	groups := report.GroupByMonth(report.SortByDateDesc(records))
	if len(groups) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No expenses yet."))
		return
	}
	for _, g := range groups {
		fmt.Fprintln(w, titleStyle.Render(g.Label)+"  "+dimStyle.Render("Total: ₹"+g.Total.String()))
		for _, e := range g.Records {
			fmt.Fprintf(w, "  %-15d %-12s %-24s ₹%s\n", e.ID, e.Date, e.Item, core.FormatAmount(e.Amount))
		}
	}
}
