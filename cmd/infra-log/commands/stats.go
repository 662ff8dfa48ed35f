package commands

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/infraprint/infraprint-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Printers         map[string]*PrinterStats
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// PrinterStats holds statistics for a single printer.
type PrinterStats struct {
	FirstSeen       time.Time
	LastSeen        time.Time
	Events          int
	Passes          int
	Releases        int
	TotalDuration   time.Duration
	MaxDuration     time.Duration
	LastFingerprint string
	Fingerprints    map[string]struct{}
}

// collectStats reads every event from reader.
func collectStats(reader *log.Reader) (*Stats, error) {
	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Printers:         make(map[string]*PrinterStats),
	}

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		ps, ok := stats.Printers[event.Printer]
		if !ok {
			ps = &PrinterStats{
				FirstSeen:    event.Timestamp,
				LastSeen:     event.Timestamp,
				Fingerprints: make(map[string]struct{}),
			}
			stats.Printers[event.Printer] = ps
		}
		ps.Events++
		if event.Timestamp.After(ps.LastSeen) {
			ps.LastSeen = event.Timestamp
		}

		switch {
		case event.Recompute != nil:
			ps.Passes++
			ps.TotalDuration += event.Recompute.Duration
			if event.Recompute.Duration > ps.MaxDuration {
				ps.MaxDuration = event.Recompute.Duration
			}
			if fp := event.Recompute.Fingerprint; fp != "" {
				ps.LastFingerprint = fp
				ps.Fingerprints[fp] = struct{}{}
			}
		case event.Release != nil:
			ps.Releases++
		case event.Error != nil:
			stats.Errors++
		}
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats, err := collectStats(reader)
	if err != nil {
		return err
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Capability Event Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryRecompute, log.CategoryRegistry, log.CategoryRelease, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Printers: %d\n", len(stats.Printers))
	if len(stats.Printers) > 0 {
		names := make([]string, 0, len(stats.Printers))
		for name := range stats.Printers {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(w)
		for _, name := range names {
			ps := stats.Printers[name]
			fmt.Fprintf(w, "  [%s] %d events, %d passes\n", name, ps.Events, ps.Passes)
			if ps.Passes > 0 {
				avg := ps.TotalDuration / time.Duration(ps.Passes)
				fmt.Fprintf(w, "           Pass time: avg %s, max %s\n", formatDuration(avg), formatDuration(ps.MaxDuration))
				fmt.Fprintf(w, "           Descriptors: %d distinct (last: %s)\n", len(ps.Fingerprints), shortenID(ps.LastFingerprint))
			}
			if ps.Releases > 0 {
				fmt.Fprintf(w, "           Releases: %d\n", ps.Releases)
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
