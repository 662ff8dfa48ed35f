// Package commands implements the infra-log CLI commands.
package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/infraprint/infraprint-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Printer  string
	Category *log.Category
}

const timestampLayout = "2006-01-02T15:04:05.000000Z"

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [printer] CATEGORY [pass:id]
	ts := event.Timestamp.UTC().Format(timestampLayout)
	fmt.Fprintf(w, "%s [%s] %s", ts, event.Printer, event.Category)
	if event.PassID != "" {
		fmt.Fprintf(w, " [pass:%s]", shortenID(event.PassID))
	}
	fmt.Fprintln(w)

	if event.DeviceID != "" {
		fmt.Fprintf(w, "  Device: %s\n", event.DeviceID)
	}

	switch {
	case event.Recompute != nil:
		formatRecomputeDetails(w, event.Recompute)
	case event.Registry != nil:
		formatRegistryDetails(w, event.Registry)
	case event.Release != nil:
		fmt.Fprintf(w, "  Released: %d strings\n", event.Release.PoolSize)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// shortenID returns the first 8 characters of an identifier.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatRecomputeDetails(w io.Writer, rc *log.RecomputeEvent) {
	fmt.Fprintf(w, "  Devices: %d (%d with capabilities)\n", rc.DeviceCount, rc.Visited)
	fmt.Fprintf(w, "  Sets: media=%d sources=%d types=%d bins=%d features=%d resolutions=%d\n",
		rc.Media, rc.Sources, rc.Types, rc.Bins, rc.Features, rc.Resolutions)
	fmt.Fprintf(w, "  Borderless: %t\n", rc.Borderless)
	fmt.Fprintf(w, "  Pool: %d strings\n", rc.PoolSize)
	if rc.Fingerprint != "" {
		fmt.Fprintf(w, "  Fingerprint: %s\n", rc.Fingerprint)
	}
	fmt.Fprintf(w, "  Duration: %s\n", formatDuration(rc.Duration))
}

func formatRegistryDetails(w io.Writer, rg *log.RegistryEvent) {
	if rg.DeviceName != "" {
		fmt.Fprintf(w, "  %s %q\n", rg.Action, rg.DeviceName)
	} else {
		fmt.Fprintf(w, "  %s\n", rg.Action)
	}
	fmt.Fprintf(w, "  Registry: %d devices\n", rg.DeviceCount)
	if rg.Attributes > 0 {
		fmt.Fprintf(w, "  Attributes: %d\n", rg.Attributes)
	}
}

func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// ParseCategoryFlag parses a category string from a command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "recompute":
		return log.CategoryRecompute, nil
	case "registry":
		return log.CategoryRegistry, nil
	case "release":
		return log.CategoryRelease, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be recompute, registry, release, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, log.Filter{
		Printer:  filter.Printer,
		Category: filter.Category,
	})
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
}
