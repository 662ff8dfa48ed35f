package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/infraprint/infraprint-go/pkg/devicefile"
	"github.com/infraprint/infraprint-go/pkg/printer"
)

// FileConfig is the layout of the optional YAML configuration file.
type FileConfig struct {
	Name         string   `yaml:"name"`
	MakeAndModel string   `yaml:"make_and_model"`
	Devices      []string `yaml:"devices"`
	State        string   `yaml:"state"`
	LogFile      string   `yaml:"log_file"`
	LogLevel     string   `yaml:"log_level"`
}

// loadConfigFile reads a YAML configuration file. Relative paths inside it
// are resolved against the file's directory.
func loadConfigFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i, dev := range fc.Devices {
		fc.Devices[i] = resolvePath(base, dev)
	}
	fc.State = resolvePath(base, fc.State)
	fc.LogFile = resolvePath(base, fc.LogFile)

	return &fc, nil
}

func resolvePath(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// explicitFlags returns the names of flags set on the command line.
func explicitFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyConfigFile merges file settings into cfg. Flags given on the command
// line win; device lists are concatenated.
func applyConfigFile(cfg *Config, fc *FileConfig, explicit map[string]bool) {
	if fc.Name != "" && !explicit["name"] {
		cfg.Name = fc.Name
	}
	if fc.MakeAndModel != "" && !explicit["make-and-model"] {
		cfg.MakeAndModel = fc.MakeAndModel
	}
	if fc.State != "" && !explicit["state"] {
		cfg.StateFile = fc.State
	}
	if fc.LogFile != "" && !explicit["log-file"] {
		cfg.LogFile = fc.LogFile
	}
	if fc.LogLevel != "" && !explicit["log-level"] {
		cfg.LogLevel = fc.LogLevel
	}
	cfg.Devices = append(append([]string(nil), fc.Devices...), cfg.Devices...)
}

// registerDevices loads every device file or directory in paths and adds the
// devices to p. Returns the number of devices registered.
func registerDevices(p *printer.Printer, paths []string) (int, error) {
	count := 0
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return count, err
		}

		if info.IsDir() {
			devices, err := devicefile.LoadDirectory(path)
			if err != nil {
				return count, err
			}
			for _, od := range devices {
				if _, err := p.AddOutputDevice(od); err != nil {
					return count, fmt.Errorf("%s: %w", od.Name, err)
				}
				count++
			}
			continue
		}

		od, err := devicefile.Load(path)
		if err != nil {
			return count, err
		}
		if _, err := p.AddOutputDevice(od); err != nil {
			return count, fmt.Errorf("%s: %w", path, err)
		}
		count++
	}
	return count, nil
}
