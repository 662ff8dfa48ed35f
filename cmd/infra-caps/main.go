// Command infra-caps aggregates the capabilities of output devices behind an
// infrastructure printer.
//
// Each output device is described by a YAML device file. infra-caps registers
// the devices with one printer, runs capability aggregation and prints the
// result.
//
// Usage:
//
//	infra-caps [flags] [device-file-or-directory ...]
//
// Flags:
//
//	-config string     Configuration file path
//	-name string       Printer name (default "infra")
//	-state string      Persist the committed descriptor to this JSON file
//	-log-file string   Write capability events to this CBOR log file
//	-log-level string  Log level: debug, info, warn, error (default "info")
//	-json              Print the result as JSON
//	-interactive       Start an interactive shell after loading
//
// Examples:
//
//	# Aggregate all device files in a directory
//	infra-caps ./devices
//
//	# Use a config file and keep state across runs
//	infra-caps -config /etc/infra/office.yaml -state /var/lib/infra/office.json
//
//	# Explore interactively
//	infra-caps -interactive -log-level debug ./devices
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/infraprint/infraprint-go/cmd/infra-caps/interactive"
	"github.com/infraprint/infraprint-go/pkg/inspect"
	caplog "github.com/infraprint/infraprint-go/pkg/log"
	"github.com/infraprint/infraprint-go/pkg/persistence"
	"github.com/infraprint/infraprint-go/pkg/printer"
)

// Config holds the command configuration.
type Config struct {
	ConfigFile   string
	Name         string
	MakeAndModel string
	Devices      []string
	StateFile    string
	LogFile      string
	LogLevel     string
	JSON         bool
	Interactive  bool
}

var config Config

func init() {
	flag.StringVar(&config.ConfigFile, "config", "", "Configuration file path")
	flag.StringVar(&config.Name, "name", "infra", "Printer name")
	flag.StringVar(&config.MakeAndModel, "make-and-model", "", "Printer make and model")
	flag.StringVar(&config.StateFile, "state", "", "Persist the committed descriptor to this JSON file")
	flag.StringVar(&config.LogFile, "log-file", "", "Write capability events to this CBOR log file")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&config.JSON, "json", false, "Print the result as JSON")
	flag.BoolVar(&config.Interactive, "interactive", false, "Start an interactive shell after loading")
}

func main() {
	flag.Parse()
	config.Devices = flag.Args()

	if config.ConfigFile != "" {
		file, err := loadConfigFile(config.ConfigFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		applyConfigFile(&config, file, explicitFlags())
	}

	setupLogging(config.LogLevel)

	if err := validateConfig(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run owns the event log and the printer. It returns instead of exiting so
// that the printer is deleted and the event log flushed on every path.
func run() error {
	events, closeEvents, err := setupEventLog()
	if err != nil {
		return fmt.Errorf("failed to open event log: %w", err)
	}
	defer closeEvents()

	cfg := printer.DefaultConfig()
	if config.MakeAndModel != "" {
		cfg.MakeAndModel = config.MakeAndModel
	}
	cfg.Logger = newSlogLogger(config.LogLevel)
	cfg.EventLogger = events
	if config.StateFile != "" {
		cfg.Store = persistence.NewDescriptorStore(config.StateFile)
	}

	p := printer.New(config.Name, cfg)
	defer p.Delete()

	if ok, err := p.Restore(); err != nil {
		log.Printf("Warning: %v", err)
	} else if ok {
		log.Printf("Restored last known capabilities from %s", config.StateFile)
	}

	count, err := registerDevices(p, config.Devices)
	if err != nil {
		return fmt.Errorf("failed to load devices: %w", err)
	}
	log.Printf("Registered %d output device(s) with printer %q", count, config.Name)

	// Always run one pass so an empty registry still reports defaults.
	p.Recompute()

	if config.Interactive {
		return runInteractive(p)
	}

	if err := printResult(p); err != nil {
		return fmt.Errorf("failed to print result: %w", err)
	}
	return nil
}

func setupLogging(level string) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	switch level {
	case "debug":
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	case "warn", "error":
		log.SetFlags(log.Ltime)
	}
}

// newSlogLogger returns a debug logger for library output, or nil unless
// level is debug.
func newSlogLogger(level string) *slog.Logger {
	if level != "debug" {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func validateConfig() error {
	if config.Name == "" {
		return fmt.Errorf("printer name must not be empty")
	}
	switch config.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		return fmt.Errorf("unknown log level: %s", config.LogLevel)
	}
	return nil
}

// setupEventLog opens the capability event log. Debug logging also mirrors
// events through slog.
func setupEventLog() (caplog.Logger, func(), error) {
	var loggers []caplog.Logger
	closeFn := func() {}

	if config.LogFile != "" {
		fl, err := caplog.NewFileLogger(config.LogFile)
		if err != nil {
			return nil, nil, err
		}
		loggers = append(loggers, fl)
		closeFn = func() {
			if err := fl.Close(); err != nil {
				log.Printf("Error closing event log: %v", err)
			}
		}
		log.Printf("Writing capability events to %s", fl.Path())
	}

	if logger := newSlogLogger(config.LogLevel); logger != nil {
		loggers = append(loggers, caplog.NewSlogAdapter(logger))
	}

	if len(loggers) == 0 {
		return caplog.NoopLogger{}, closeFn, nil
	}
	return caplog.NewMultiLogger(loggers...), closeFn, nil
}

func printResult(p *printer.Printer) error {
	insp := inspect.NewInspector(p)
	tree := insp.InspectPrinter()

	if config.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tree)
	}

	fmt.Print(insp.FormatPrinterTree(tree, inspect.NewFormatter()))
	return nil
}

func runInteractive(p *printer.Printer) error {
	shell, err := interactive.New(p)
	if err != nil {
		return fmt.Errorf("failed to start interactive mode: %w", err)
	}
	log.SetOutput(shell.Stderr())
	defer log.SetOutput(os.Stderr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	shell.Run(ctx, cancel)
	return nil
}
