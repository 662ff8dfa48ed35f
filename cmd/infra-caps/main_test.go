package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	caplog "github.com/infraprint/infraprint-go/pkg/log"
)

func withConfig(t *testing.T, c Config) {
	t.Helper()
	saved := config
	config = c
	t.Cleanup(func() { config = saved })
}

func readEvents(t *testing.T, path string) []caplog.Event {
	t.Helper()
	reader, err := caplog.NewReader(path)
	require.NoError(t, err)
	defer reader.Close()

	events, err := reader.ReadAll()
	require.NoError(t, err)
	return events
}

func TestRunFailureFlushesEventLog(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "caps.clog")
	withConfig(t, Config{
		Name:     "office",
		Devices:  []string{filepath.Join(dir, "missing.yaml")},
		LogFile:  logFile,
		LogLevel: "info",
	})

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load devices")

	events := readEvents(t, logFile)
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, caplog.CategoryRelease, last.Category)
	assert.Equal(t, "office", last.Printer)
}

func TestRunPrintsAndReleases(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "caps.clog")
	withConfig(t, Config{
		Name:     "office",
		LogFile:  logFile,
		LogLevel: "info",
		JSON:     true,
	})

	require.NoError(t, run())

	var categories []caplog.Category
	for _, e := range readEvents(t, logFile) {
		categories = append(categories, e.Category)
	}
	assert.Equal(t, []caplog.Category{caplog.CategoryRecompute, caplog.CategoryRelease}, categories)
}
