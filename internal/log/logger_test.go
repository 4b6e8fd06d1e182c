package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Component: ComponentHTTP, Output: &buf})

	logger.Info("hello", FieldOperation, OpCreate)
	logger.WithComponent(ComponentStorage).Debug("stored")

	out := buf.String()
	if !strings.Contains(out, "component=http") || !strings.Contains(out, "operation=create") {
		t.Fatalf("missing fields in %q", out)
	}
	if !strings.Contains(out, "component=storage") {
		t.Fatalf("missing overridden component in %q", out)
	}
}

func TestLoggerComponentAppearsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Component: ComponentApp, Output: &buf})

	logger.With(FieldRequestID, "req_1").WithComponent(ComponentHTTP).Info("one")
	logger.For(ComponentExpense).Info("two", "id", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	for i, want := range []string{"component=http", "component=expense"} {
		if n := strings.Count(lines[i], "component="); n != 1 {
			t.Fatalf("line %d has %d component fields: %q", i, n, lines[i])
		}
		if !strings.Contains(lines[i], want) {
			t.Fatalf("line %d missing %q: %q", i, want, lines[i])
		}
	}
	if !strings.Contains(lines[0], "request_id=req_1") {
		t.Fatalf("derived logger lost attributes: %q", lines[0])
	}
}

func TestSetLevelAffectsDerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Component: ComponentApp, Output: &buf})
	store := logger.For(ComponentStorage)

	store.Debug("before")
	logger.SetLevel(slog.LevelDebug)
	store.Debug("after")

	if strings.Contains(buf.String(), "before") || !strings.Contains(buf.String(), "after") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Component: ComponentApp, Output: &buf})
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	if l := FromContext(context.Background()); l.Component() != "unknown" {
		t.Fatalf("expected fallback logger, got %q", l.Component())
	}
	logger := New(DefaultConfig()).WithComponent(ComponentCLI)
	ctx := IntoContext(context.Background(), logger)
	if FromContext(ctx) != logger {
		t.Fatalf("expected stored logger")
	}
}

func TestLogFields(t *testing.T) {
	fields := NewFields().
		WithComponent(ComponentExpense).
		WithOperation(OpDelete).
		WithExpense(42, "2024-01-01", 3.5).
		WithError(errors.New("boom")).
		WithError(nil)

	if fields[FieldComponent] != ComponentExpense || fields[FieldExpenseID] != int64(42) || fields[FieldError] != "boom" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if got := len(fields.ToSlice()); got != len(fields)*2 {
		t.Fatalf("expected %d slice entries, got %d", len(fields)*2, got)
	}
}
