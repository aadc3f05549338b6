package log

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"gastos/internal/core"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"warning", slog.LevelWarn, true},
		{" error ", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q: got %v err=%v, want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Component: ComponentApp, Output: &buf})

	logger.WithComponent(ComponentStore).Info("Ledger loaded", FieldRecords, 3)

	line := buf.String()
	if !strings.Contains(line, "component=store") || !strings.Contains(line, "records=3") {
		t.Fatalf("unexpected log line: %q", line)
	}
	if strings.Count(line, "component=") != 1 {
		t.Fatalf("component logged more than once: %q", line)
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Component: ComponentApp, Output: &buf})

	logger.Info("hidden")
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	logger.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected warn output, got %q", buf.String())
	}
}

func TestErrorType(t *testing.T) {
	cases := map[error]string{
		core.ErrInvalidAmount:                            ErrorTypeValidation,
		fmt.Errorf("wrap: %w", core.ErrNotFound):         ErrorTypeNotFound,
		core.ErrInvalidCriterion:                         ErrorTypeInvalidCriterion,
		core.ErrEmptyDataset:                             ErrorTypeEmptyDataset,
		fmt.Errorf("%w: disk full", core.ErrPersistence): ErrorTypePersistence,
		errors.New("other"):                              ErrorTypeInternal,
	}
	for err, want := range cases {
		if got := ErrorType(err); got != want {
			t.Fatalf("%v: got %s, want %s", err, got, want)
		}
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().
		WithComponent(ComponentLedger).
		WithOperation(OpCreate).
		WithError(nil).
		WithExpense("id", "Coffee", "food", "2024-01-01", "5")

	if _, ok := f[FieldError]; ok {
		t.Fatalf("nil error must not add a field")
	}
	if len(f.ToSlice()) != 2*len(f) {
		t.Fatalf("ToSlice must flatten key/value pairs")
	}
	if f[FieldExpenseDesc] != "Coffee" {
		t.Fatalf("unexpected fields: %v", f)
	}
}
