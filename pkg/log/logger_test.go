package log

import (
	"testing"
	"time"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	event := Event{
		Timestamp: time.Now(),
		Printer:   "office",
		Category:  CategoryRecompute,
	}
	logger.Log(event)

	event.Recompute = &RecomputeEvent{DeviceCount: 2, Visited: 1}
	logger.Log(event)

	event.Recompute = nil
	event.Registry = &RegistryEvent{Action: RegistryAdded}
	logger.Log(event)

	event.Registry = nil
	event.Release = &ReleaseEvent{PoolSize: 4}
	logger.Log(event)

	event.Release = nil
	event.Error = &ErrorEventData{Message: "test error"}
	logger.Log(event)
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	var logger NoopLogger
	logger.Log(Event{})
}
