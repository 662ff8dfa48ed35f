package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func decodeSlogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	if buf.Len() == 0 {
		t.Fatal("no output produced")
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	return entry
}

func newTestAdapter(buf *bytes.Buffer) *SlogAdapter {
	handler := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogAdapter(slog.New(handler))
}

func TestSlogAdapterLogsRecomputeEvent(t *testing.T) {
	var buf bytes.Buffer
	adapter := newTestAdapter(&buf)

	adapter.Log(Event{
		Timestamp: time.Now(),
		PassID:    "pass-1",
		Printer:   "office",
		Category:  CategoryRecompute,
		Recompute: &RecomputeEvent{
			DeviceCount: 2,
			Visited:     2,
			Fingerprint: "beef",
			Media:       3,
			Borderless:  true,
		},
	})

	entry := decodeSlogLine(t, &buf)
	if entry["msg"] != "capability" {
		t.Errorf("msg = %v, want capability", entry["msg"])
	}
	if entry["printer"] != "office" {
		t.Errorf("printer = %v, want office", entry["printer"])
	}
	if entry["category"] != "RECOMPUTE" {
		t.Errorf("category = %v, want RECOMPUTE", entry["category"])
	}
	if entry["pass_id"] != "pass-1" {
		t.Errorf("pass_id = %v, want pass-1", entry["pass_id"])
	}
	if entry["device_count"] != float64(2) {
		t.Errorf("device_count = %v, want 2", entry["device_count"])
	}
	if entry["fingerprint"] != "beef" {
		t.Errorf("fingerprint = %v, want beef", entry["fingerprint"])
	}
	if entry["borderless"] != true {
		t.Errorf("borderless = %v, want true", entry["borderless"])
	}
}

func TestSlogAdapterLogsRegistryEvent(t *testing.T) {
	var buf bytes.Buffer
	adapter := newTestAdapter(&buf)

	adapter.Log(Event{
		Printer:  "office",
		Category: CategoryRegistry,
		DeviceID: "dev-9",
		Registry: &RegistryEvent{Action: RegistryUpdated, DeviceName: "laser", DeviceCount: 4},
	})

	entry := decodeSlogLine(t, &buf)
	if entry["action"] != "UPDATED" {
		t.Errorf("action = %v, want UPDATED", entry["action"])
	}
	if entry["device_id"] != "dev-9" {
		t.Errorf("device_id = %v, want dev-9", entry["device_id"])
	}
	if entry["device_name"] != "laser" {
		t.Errorf("device_name = %v, want laser", entry["device_name"])
	}
}

func TestSlogAdapterLogsErrorEvent(t *testing.T) {
	var buf bytes.Buffer
	adapter := newTestAdapter(&buf)

	adapter.Log(Event{
		Printer:  "office",
		Category: CategoryError,
		Error:    &ErrorEventData{Message: "disk full", Context: "persist"},
	})

	entry := decodeSlogLine(t, &buf)
	if entry["error_msg"] != "disk full" {
		t.Errorf("error_msg = %v, want disk full", entry["error_msg"])
	}
	if entry["error_context"] != "persist" {
		t.Errorf("error_context = %v, want persist", entry["error_context"])
	}
}

func TestSlogAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	adapter := NewSlogAdapter(slog.New(handler))

	adapter.Log(Event{Printer: "office", Category: CategoryRelease, Release: &ReleaseEvent{}})

	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %q", buf.String())
	}
}
