package printer

import (
	"errors"
	"log/slog"

	"github.com/infraprint/infraprint-go/pkg/capability"
	"github.com/infraprint/infraprint-go/pkg/log"
	"github.com/infraprint/infraprint-go/pkg/persistence"
)

// Errors returned by registry operations.
var (
	ErrNilDevice       = errors.New("output device is nil")
	ErrDuplicateDevice = errors.New("output device already registered")
	ErrDeviceNotFound  = errors.New("output device not found")
	ErrDeleted         = errors.New("printer deleted")
)

// Config configures a Printer.
type Config struct {
	// MakeAndModel is reported in the descriptor.
	MakeAndModel string

	// Format is the native document format reported in the descriptor.
	Format string

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// EventLogger receives registry, recompute and release events.
	// If nil, events are discarded.
	EventLogger log.Logger

	// Store persists every committed descriptor. Optional.
	Store *persistence.DescriptorStore

	// AutoRecompute re-runs aggregation after every registry change.
	AutoRecompute bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MakeAndModel:  "Infrastructure Printer",
		Format:        "image/pwg-raster",
		AutoRecompute: true,
	}
}

// ChangeHandler receives a copy of every committed descriptor, in commit
// order. Handlers share one delivery goroutine; a slow handler delays the
// ones after it.
type ChangeHandler func(d capability.Descriptor)
