package log

import (
	"testing"
	"time"
)

// recordingLogger records events for testing.
type recordingLogger struct {
	events []Event
}

func (r *recordingLogger) Log(event Event) {
	r.events = append(r.events, event)
}

func TestMultiLoggerCallsAll(t *testing.T) {
	r1 := &recordingLogger{}
	r2 := &recordingLogger{}

	multi := NewMultiLogger(r1, nil, r2)
	multi.Log(Event{Timestamp: time.Now(), Printer: "office", Category: CategoryRecompute})

	for i, r := range []*recordingLogger{r1, r2} {
		if len(r.events) != 1 {
			t.Errorf("logger %d: got %d events, want 1", i, len(r.events))
			continue
		}
		if r.events[0].Printer != "office" {
			t.Errorf("logger %d: Printer = %q, want office", i, r.events[0].Printer)
		}
	}
}

func TestMultiLoggerEmptyList(t *testing.T) {
	multi := NewMultiLogger()
	multi.Log(Event{Printer: "office"})
}
