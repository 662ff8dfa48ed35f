// Package interactive provides the interactive command-line interface
// for infra-caps.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"github.com/infraprint/infraprint-go/pkg/capability"
	"github.com/infraprint/infraprint-go/pkg/devicefile"
	"github.com/infraprint/infraprint-go/pkg/inspect"
	"github.com/infraprint/infraprint-go/pkg/printer"
)

// Shell handles interactive mode for infra-caps.
type Shell struct {
	printer   *printer.Printer
	inspector *inspect.Inspector
	formatter *inspect.Formatter
	rl        *readline.Instance
	out       io.Writer

	mu              sync.Mutex
	lastFingerprint string
}

// New creates a new interactive shell for p.
func New(p *printer.Printer) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "infra> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := newShell(p, rl.Stdout())
	s.rl = rl

	// Report capability changes as they are committed.
	p.Subscribe(s.handleChange)

	return s, nil
}

func newShell(p *printer.Printer, out io.Writer) *Shell {
	return &Shell{
		printer:         p,
		inspector:       inspect.NewInspector(p),
		formatter:       inspect.NewFormatter(),
		out:             out,
		lastFingerprint: p.DriverData().Fingerprint(),
	}
}

// Stdout returns a writer that properly coordinates with the readline input.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		if !s.execute(line) {
			cancel()
			return
		}
	}
}

// execute runs one command line. Returns false when the shell should exit.
func (s *Shell) execute(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "devices", "d":
		s.cmdDevices()

	case "show", "s":
		s.cmdShow(args)

	case "add", "a":
		s.cmdAdd(args)

	case "update", "u":
		s.cmdUpdate(args)

	case "remove", "rm":
		s.cmdRemove(args)

	case "caps", "c":
		s.cmdCaps()

	case "fingerprint", "fp":
		fmt.Fprintln(s.out, s.printer.DriverData().Fingerprint())

	case "recompute":
		s.printer.Recompute()
		fmt.Fprintln(s.out, "Recomputed")

	case "export":
		s.cmdExport(args)

	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return false

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Infrastructure Printer Commands:
  Registry:
    devices              - List registered output devices
    show <path>          - Show a device or one of its attributes
    add <file>           - Register a device from a YAML device file
    update <id> <file>   - Replace a device's capabilities from a file
    remove <id>          - Deregister a device
    export <id>          - Print a device as a YAML device file

  Capabilities:
    caps                 - Show aggregated capabilities
    fingerprint          - Show the descriptor fingerprint
    recompute            - Run an aggregation pass

  General:
    help                 - Show this help
    quit                 - Exit

  Path Format:
    device[/attribute] - e.g., zebra-1/media or zebra-1/print-speed-supported
    Devices can be given by ID or unique name.`)
}

func (s *Shell) cmdDevices() {
	tree := s.inspector.InspectPrinter()
	fmt.Fprintf(s.out, "Output devices (%d):\n", len(tree.Devices))
	fmt.Fprint(s.out, s.formatter.FormatDeviceList(tree.Devices))
}

func (s *Shell) cmdShow(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: show <device>[/<attribute>]")
		return
	}

	path, err := inspect.ParsePath(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}

	if path.IsPartial {
		od, err := s.inspector.FindDevice(path.DeviceID)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			return
		}
		fmt.Fprint(s.out, s.inspector.FormatDevice(od, s.formatter))
		return
	}

	attr, err := s.inspector.ReadAttribute(path)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "%s: %s (%s)\n", attr.Name, inspect.FormatAttribute(attr), attr.Tag)
}

func (s *Shell) cmdAdd(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: add <file>")
		return
	}

	od, err := devicefile.Load(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}

	id, err := s.printer.AddOutputDevice(od)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Added %s as %s\n", od.Name, id)
}

func (s *Shell) cmdUpdate(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(s.out, "Usage: update <id> <file>")
		return
	}

	od, err := devicefile.Load(args[1])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}

	target, err := s.inspector.FindDevice(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if err := s.printer.UpdateOutputDevice(target.ID, od.Attrs); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Updated %s (%d attributes)\n", target.ID, od.Attrs.Len())
}

func (s *Shell) cmdRemove(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: remove <id>")
		return
	}

	target, err := s.inspector.FindDevice(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if err := s.printer.RemoveOutputDevice(target.ID); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Removed %s\n", target.ID)
}

func (s *Shell) cmdCaps() {
	tree := s.inspector.InspectPrinter()
	fmt.Fprintf(s.out, "Capabilities of %s (%s):\n", tree.Name, tree.Fingerprint)
	fmt.Fprint(s.out, s.formatter.FormatDescriptor(tree.Descriptor))
}

func (s *Shell) cmdExport(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: export <id>")
		return
	}

	od, err := s.inspector.FindDevice(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	data, err := devicefile.Marshal(od)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprint(s.out, string(data))
}

// handleChange prints a short notice when the capability fingerprint moves.
// Called from the printer's notification goroutines.
func (s *Shell) handleChange(d capability.Descriptor) {
	fp := d.Fingerprint()

	s.mu.Lock()
	defer s.mu.Unlock()
	if fp == s.lastFingerprint {
		return
	}
	s.lastFingerprint = fp
	fmt.Fprintf(s.out, "\n[capabilities changed] media=%d resolutions=%d fingerprint=%.12s\n",
		len(d.Media), len(d.Resolutions), fp)
}
