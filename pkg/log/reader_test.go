package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func TestReaderIteratesEvents(t *testing.T) {
	now := time.Now()
	path := createTestLogFile(t, []Event{
		{Timestamp: now, PassID: "p1", Printer: "office", Category: CategoryRecompute},
		{Timestamp: now, Printer: "office", Category: CategoryRegistry, DeviceID: "d1"},
		{Timestamp: now, Printer: "labels", Category: CategoryRelease},
	})

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}
	if read[0].PassID != "p1" {
		t.Errorf("first event PassID = %q, want p1", read[0].PassID)
	}
	if read[2].Printer != "labels" {
		t.Errorf("last event Printer = %q, want labels", read[2].Printer)
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("Next on empty file = %v, want io.EOF", err)
	}
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, []Event{
		{Timestamp: base, PassID: "p1", Printer: "office", Category: CategoryRecompute},
		{Timestamp: base.Add(time.Second), Printer: "office", Category: CategoryRegistry, DeviceID: "d1"},
		{Timestamp: base.Add(2 * time.Second), PassID: "p2", Printer: "labels", Category: CategoryRecompute},
		{Timestamp: base.Add(3 * time.Second), Printer: "labels", Category: CategoryRegistry, DeviceID: "d2"},
	})

	recompute := CategoryRecompute
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"All", Filter{}, 4},
		{"Printer", Filter{Printer: "labels"}, 2},
		{"Category", Filter{Category: &recompute}, 2},
		{"PassID", Filter{PassID: "p2"}, 1},
		{"DeviceID", Filter{DeviceID: "d1"}, 1},
		{"TimeWindow", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"Combined", Filter{Printer: "office", Category: &recompute}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer reader.Close()

			events, err := reader.ReadAll()
			if err != nil {
				t.Fatalf("ReadAll failed: %v", err)
			}
			if len(events) != tt.want {
				t.Errorf("got %d events, want %d", len(events), tt.want)
			}
		})
	}
}

func TestNewReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.clog")); err == nil {
		t.Error("expected error for missing file")
	}
}
