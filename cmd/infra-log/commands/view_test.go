package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/infraprint/infraprint-go/pkg/log"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.clog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func TestFormatRecomputeEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	event := log.Event{
		Timestamp: ts,
		PassID:    "abc12345-6789-0123-4567-890abcdef012",
		Printer:   "office",
		Category:  log.CategoryRecompute,
		Recompute: &log.RecomputeEvent{
			DeviceCount: 3,
			Visited:     2,
			Fingerprint: "deadbeef",
			Media:       4,
			Resolutions: 2,
			Borderless:  true,
			PoolSize:    9,
			Duration:    1500 * time.Microsecond,
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	for _, want := range []string{
		"2026-01-28T10:15:32.123456Z",
		"[office] RECOMPUTE",
		"[pass:abc12345]",
		"Devices: 3 (2 with capabilities)",
		"media=4",
		"resolutions=2",
		"Borderless: true",
		"Pool: 9 strings",
		"Fingerprint: deadbeef",
		"Duration: 1.500ms",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got:\n%s", want, output)
		}
	}
}

func TestFormatRegistryEvent(t *testing.T) {
	event := log.Event{
		Timestamp: time.Now(),
		Printer:   "office",
		Category:  log.CategoryRegistry,
		DeviceID:  "dev-1",
		Registry: &log.RegistryEvent{
			Action:      log.RegistryAdded,
			DeviceName:  "laser",
			DeviceCount: 1,
			Attributes:  12,
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "Device: dev-1") {
		t.Errorf("expected device ID, got: %s", output)
	}
	if !strings.Contains(output, `ADDED "laser"`) {
		t.Errorf("expected action and name, got: %s", output)
	}
	if !strings.Contains(output, "Attributes: 12") {
		t.Errorf("expected attribute count, got: %s", output)
	}
	if strings.Contains(output, "[pass:") {
		t.Errorf("expected no pass ID for registry event, got: %s", output)
	}
}

func TestFormatReleaseAndErrorEvents(t *testing.T) {
	var buf bytes.Buffer
	formatEvent(&buf, log.Event{
		Timestamp: time.Now(),
		Printer:   "office",
		Category:  log.CategoryRelease,
		Release:   &log.ReleaseEvent{PoolSize: 7},
	})
	formatEvent(&buf, log.Event{
		Timestamp: time.Now(),
		Printer:   "office",
		Category:  log.CategoryError,
		Error:     &log.ErrorEventData{Message: "disk full", Context: "persist descriptor"},
	})
	output := buf.String()

	if !strings.Contains(output, "Released: 7 strings") {
		t.Errorf("expected release details, got: %s", output)
	}
	if !strings.Contains(output, "Message: disk full") || !strings.Contains(output, "Context: persist descriptor") {
		t.Errorf("expected error details, got: %s", output)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want log.Category
	}{
		{"recompute", log.CategoryRecompute},
		{"REGISTRY", log.CategoryRegistry},
		{"Release", log.CategoryRelease},
		{"error", log.CategoryError},
	}
	for _, tt := range tests {
		got, err := ParseCategoryFlag(tt.in)
		if err != nil {
			t.Errorf("ParseCategoryFlag(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategoryFlag(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseCategoryFlag("message"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Nanosecond, "0.500us"},
		{2500 * time.Microsecond, "2.500ms"},
		{1500 * time.Millisecond, "1.500s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestRunViewFilters(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, []log.Event{
		{Timestamp: ts, Printer: "office", Category: log.CategoryRecompute, Recompute: &log.RecomputeEvent{}},
		{Timestamp: ts, Printer: "labels", Category: log.CategoryRecompute, Recompute: &log.RecomputeEvent{}},
		{Timestamp: ts, Printer: "office", Category: log.CategoryRelease, Release: &log.ReleaseEvent{}},
	})

	cat := log.CategoryRecompute
	var buf bytes.Buffer
	if err := RunView(path, ViewFilter{Printer: "office", Category: &cat}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	output := buf.String()
	if n := strings.Count(output, "RECOMPUTE"); n != 1 {
		t.Errorf("expected 1 RECOMPUTE event, got %d:\n%s", n, output)
	}
	if strings.Contains(output, "[labels]") {
		t.Error("expected labels printer to be filtered out")
	}
	if strings.Contains(output, "RELEASE") {
		t.Error("expected release event to be filtered out")
	}
}

func TestRunViewMissingFile(t *testing.T) {
	var buf bytes.Buffer
	err := RunView(filepath.Join(t.TempDir(), "missing.clog"), ViewFilter{}, &buf)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
