// Package log provides structured capability event logging.
//
// This package defines the Logger interface and Event types for capturing
// what happens to an infrastructure printer's capabilities: aggregation
// passes, output device registry changes, and extension teardown. It is
// separate from operational logging (slog). The event log is a complete
// machine-readable trace for debugging why a printer advertises what it does.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.EventLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.EventLogger, _ = log.NewFileLogger("/var/log/infraprint/office.clog")
//
//	// Both: use MultiLogger
//	cfg.EventLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
//   - Recompute: one aggregation pass (RecomputeEvent)
//   - Registry: an output device was added, removed or updated (RegistryEvent)
//   - Release: a descriptor extension was torn down (ReleaseEvent)
//
// Errors from surrounding subsystems (persistence, device file loading) have
// a dedicated event type.
//
// # File Format
//
// Log files use CBOR encoding with .clog extension and can be read back with
// Reader.
package log
