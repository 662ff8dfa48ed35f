package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes capability events to an slog.Logger.
// Useful for development when you want to see events in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("printer", event.Printer),
		slog.String("category", event.Category.String()),
	}

	if event.PassID != "" {
		attrs = append(attrs, slog.String("pass_id", event.PassID))
	}
	if event.DeviceID != "" {
		attrs = append(attrs, slog.String("device_id", event.DeviceID))
	}

	switch {
	case event.Recompute != nil:
		r := event.Recompute
		attrs = append(attrs,
			slog.Int("device_count", r.DeviceCount),
			slog.Int("visited", r.Visited),
			slog.String("fingerprint", r.Fingerprint),
			slog.Int("media", r.Media),
			slog.Int("resolutions", r.Resolutions),
			slog.Bool("borderless", r.Borderless),
			slog.Int("pool_size", r.PoolSize),
			slog.Duration("duration", r.Duration),
		)
	case event.Registry != nil:
		attrs = append(attrs,
			slog.String("action", event.Registry.Action.String()),
			slog.Int("device_count", event.Registry.DeviceCount),
		)
		if event.Registry.DeviceName != "" {
			attrs = append(attrs, slog.String("device_name", event.Registry.DeviceName))
		}
	case event.Release != nil:
		attrs = append(attrs, slog.Int("pool_size", event.Release.PoolSize))
	case event.Error != nil:
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "capability", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
