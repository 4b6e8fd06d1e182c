package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"expensetracker/internal/kv/memory"
	"expensetracker/internal/settings"
	"expensetracker/internal/store"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	now := func() time.Time { return time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC) }
	medium := memory.New()
	st, err := store.New(context.Background(), medium, store.WithClock(now))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	out := &bytes.Buffer{}
	return &app{store: st, prefs: settings.New(medium), now: now, out: out}, out
}

func TestRun_Usage(t *testing.T) {
	a, out := newTestApp(t)

	if code := a.run(context.Background(), nil); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(out.String(), "usage: expensectl") {
		t.Fatalf("expected usage, got %q", out.String())
	}

	out.Reset()
	if code := a.run(context.Background(), []string{"bogus"}); code != 2 {
		t.Fatalf("expected exit 2 for unknown command, got %d", code)
	}
}

func TestRun_AddListSummary(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()

	if code := a.run(ctx, []string{"add", "-item", "Coffee", "-amount", "3.5"}); code != 0 {
		t.Fatalf("add failed: %s", out.String())
	}
	if code := a.run(ctx, []string{"add", "-date", "2024-02-01", "-item", "Rent", "-amount", "100"}); code != 0 {
		t.Fatalf("add failed: %s", out.String())
	}
	all := a.store.All()
	if len(all) != 2 || all[0].Date != "2024-03-13" {
		t.Fatalf("unexpected records %+v", all)
	}

	out.Reset()
	a.run(ctx, []string{"list"})
	listing := out.String()
	if !strings.Contains(listing, "March 2024") || !strings.Contains(listing, "February 2024") || !strings.Contains(listing, "Coffee") {
		t.Fatalf("unexpected listing %q", listing)
	}

	out.Reset()
	a.run(ctx, []string{"summary"})
	summary := out.String()
	for _, want := range []string{"Today", "₹3.50", "March", "₹103.50"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q: %q", want, summary)
		}
	}
}

func TestRun_ListOrdersNewestFirst(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()
	a.store.Create(ctx, "2024-01-05", "Old", 1)
	a.store.Create(ctx, "2024-03-01", "New", 2)
	a.store.Create(ctx, "2024-01-20", "Mid", 3)
	a.store.Create(ctx, "not-a-date", "Bad", 4)

	if code := a.run(ctx, []string{"list"}); code != 0 {
		t.Fatalf("list failed: %s", out.String())
	}
	listing := out.String()

	order := []string{"March 2024", "New", "January 2024", "Mid", "Old", "Invalid Date", "Bad"}
	prev := -1
	for _, want := range order {
		i := strings.Index(listing, want)
		if i < 0 {
			t.Fatalf("listing missing %q: %q", want, listing)
		}
		if i <= prev {
			t.Fatalf("%q out of order in %q", want, listing)
		}
		prev = i
	}
}

func TestRun_AddRequiresFields(t *testing.T) {
	a, _ := newTestApp(t)
	if code := a.run(context.Background(), []string{"add", "-item", "Coffee"}); code != 1 {
		t.Fatalf("expected failure without amount, got %d", code)
	}
	if a.store.Len() != 0 {
		t.Fatalf("nothing should be stored")
	}
}

func TestRun_DeleteAndEdit(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()
	id, _ := a.store.Create(ctx, "2024-03-01", "Lunch", 12)

	if code := a.run(ctx, []string{"edit", "-amount", "15", itoa(id)}); code != 0 {
		t.Fatalf("edit failed: %s", out.String())
	}
	all := a.store.All()
	if len(all) != 1 || all[0].ID == id || all[0].Amount != 15 || all[0].Item != "Lunch" || all[0].Date != "2024-03-01" {
		t.Fatalf("unexpected records after edit %+v", all)
	}

	newID := all[0].ID
	if code := a.run(ctx, []string{"delete", itoa(id)}); code != 1 {
		t.Fatalf("expected missing id to fail")
	}
	if code := a.run(ctx, []string{"delete", itoa(newID)}); code != 0 {
		t.Fatalf("delete failed: %s", out.String())
	}
	if a.store.Len() != 0 {
		t.Fatalf("expected empty store")
	}
	if code := a.run(ctx, []string{"delete", "abc"}); code != 1 {
		t.Fatalf("expected bad id to fail")
	}
}

func TestRun_Export(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()
	a.store.Create(ctx, "2024-01-01", "Coffee", 3.5)
	a.store.Create(ctx, "2024-02-01", "Milk, eggs", 2)
	dir := t.TempDir()

	path := filepath.Join(dir, "all.csv")
	if code := a.run(ctx, []string{"export", "-out", path}); code != 0 {
		t.Fatalf("export failed: %s", out.String())
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "Date,Item Name,Amount\n2024-01-01,Coffee,3.5\n2024-02-01,Milk, eggs,2" {
		t.Fatalf("unexpected csv %q", got)
	}

	out.Reset()
	a.run(ctx, []string{"export", "-quoted", "-start", "2024-01-15", "-end", "2024-02-28", "-out", "-"})
	if out.String() != "Date,Item Name,Amount\n2024-02-01,\"Milk, eggs\",2" {
		t.Fatalf("unexpected ranged csv %q", out.String())
	}

	xlsxPath := filepath.Join(dir, "all.xlsx")
	if code := a.run(ctx, []string{"export", "-xlsx", "-out", xlsxPath}); code != 0 {
		t.Fatalf("xlsx export failed: %s", out.String())
	}
	b, err := os.ReadFile(xlsxPath)
	if err != nil || !bytes.HasPrefix(b, []byte("PK")) {
		t.Fatalf("expected workbook, err=%v", err)
	}
}

func TestRun_Theme(t *testing.T) {
	a, out := newTestApp(t)
	ctx := context.Background()

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"theme"}, "light"},
		{[]string{"theme", "toggle"}, "dark"},
		{[]string{"theme"}, "dark"},
		{[]string{"theme", "light"}, "light"},
		{[]string{"theme", "dark"}, "dark"},
	}
	for _, tt := range tests {
		out.Reset()
		if code := a.run(ctx, tt.args); code != 0 {
			t.Fatalf("%v failed: %s", tt.args, out.String())
		}
		if strings.TrimSpace(out.String()) != tt.want {
			t.Fatalf("%v: got %q, want %q", tt.args, out.String(), tt.want)
		}
	}

	if code := a.run(ctx, []string{"theme", "purple"}); code != 1 {
		t.Fatalf("expected failure for unknown theme")
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
