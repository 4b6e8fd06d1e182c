package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/export"
	"expensetracker/internal/settings"
	"expensetracker/internal/store"
)

type app struct {
	store *store.Store
	prefs *settings.Preferences
	now   func() time.Time
	out   io.Writer
}

type command struct {
	help string
	run  func(a *app, ctx context.Context, args []string) error
}

var commandOrder = []string{"add", "list", "delete", "edit", "summary", "export", "theme"}

var commands = map[string]command{
	"add":     {help: "record an expense (-date -item -amount)", run: (*app).add},
	"list":    {help: "list expenses grouped by month", run: (*app).list},
	"delete":  {help: "delete the expense with the given id", run: (*app).remove},
	"edit":    {help: "replace an expense; unset flags keep the old values", run: (*app).edit},
	"summary": {help: "show today, week, month and overall totals", run: (*app).summary},
	"export":  {help: "write expenses to a file (-start -end -out -xlsx)", run: (*app).export},
	"theme":   {help: "show or set the UI theme (dark|light|toggle)", run: (*app).theme},
}

var errUsage = errors.New("invalid arguments")

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := a.flags("add")
	date := fs.String("date", core.FormatDate(a.now()), "expense date (YYYY-MM-DD)")
	item := fs.String("item", "", "item name")
	amount := fs.String("amount", "", "amount")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *item == "" || *amount == "" {
		return fmt.Errorf("%w: -item and -amount are required", errUsage)
	}

	id, err := a.store.Create(ctx, *date, *item, core.ParseAmount(*amount))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "added %d\n", id)
	return nil
}

func (a *app) list(ctx context.Context, args []string) error {
	if err := a.flags("list").Parse(args); err != nil {
		return errUsage
	}
	renderGroups(a.out, a.store.All())
	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	fs := a.flags("delete")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	id, err := parseID(fs.Args())
	if err != nil {
		return err
	}
	if _, ok := a.store.Find(id); !ok {
		return fmt.Errorf("expense %d not found", id)
	}
	if err := a.store.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted %d\n", id)
	return nil
}

func (a *app) edit(ctx context.Context, args []string) error {
	fs := a.flags("edit")
	date := fs.String("date", "", "new date (YYYY-MM-DD)")
	item := fs.String("item", "", "new item name")
	amount := fs.String("amount", "", "new amount")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	id, err := parseID(fs.Args())
	if err != nil {
		return err
	}
	old, ok := a.store.Find(id)
	if !ok {
		return fmt.Errorf("expense %d not found", id)
	}

	if *date == "" {
		*date = old.Date
	}
	if *item == "" {
		*item = old.Item
	}
	value := old.Amount
	if *amount != "" {
		value = core.ParseAmount(*amount)
	}

	newID, err := a.store.Edit(ctx, id, *date, *item, value)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "replaced %d with %d\n", id, newID)
	return nil
}

func (a *app) summary(ctx context.Context, args []string) error {
	if err := a.flags("summary").Parse(args); err != nil {
		return errUsage
	}
	renderSummary(a.out, a.store.All(), a.now())
	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := a.flags("export")
	start := fs.String("start", "", "first date to include (YYYY-MM-DD)")
	end := fs.String("end", "", "last date to include (YYYY-MM-DD)")
	out := fs.String("out", "", "output file (default expenses.csv or expenses.xlsx)")
	xlsx := fs.Bool("xlsx", false, "write an XLSX workbook instead of CSV")
	quoted := fs.Bool("quoted", false, "quote CSV fields that need it")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	records := a.store.All()
	ranged := *start != "" || *end != ""

	var body []byte
	if *xlsx {
		if ranged {
			records = export.InRange(records, *start, *end)
		}
		b, err := export.ToXLSX(records)
		if err != nil {
			return err
		}
		body = b
		if *out == "" {
			*out = export.XLSXFilename
		}
	} else {
		x := export.NewExporter(export.Plain)
		if *quoted {
			x = export.NewExporter(export.Quoted)
		}
		if ranged {
			body = []byte(x.ExportRange(records, *start, *end))
		} else {
			body = []byte(x.ExportAll(records))
		}
		if *out == "" {
			*out = export.Filename
		}
	}

	if *out == "-" {
		_, err := a.out.Write(body)
		return err
	}
	if err := os.WriteFile(*out, body, 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(a.out, "wrote %s\n", *out)
	return nil
}

func (a *app) theme(ctx context.Context, args []string) error {
	fs := a.flags("theme")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	var dark bool
	var err error
	switch fs.Arg(0) {
	case "":
		dark, err = a.prefs.DarkMode(ctx)
	case "dark":
		dark, err = true, a.prefs.SetDarkMode(ctx, true)
	case "light":
		dark, err = false, a.prefs.SetDarkMode(ctx, false)
	case "toggle":
		dark, err = a.prefs.ToggleDarkMode(ctx)
	default:
		return fmt.Errorf("%w: theme must be dark, light or toggle", errUsage)
	}
	if err != nil {
		return err
	}
	if dark {
		fmt.Fprintln(a.out, "dark")
	} else {
		fmt.Fprintln(a.out, "light")
	}
	return nil
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected one expense id", errUsage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad id %q", errUsage, args[0])
	}
	return id, nil
}
