package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/infraprint/infraprint-go/pkg/capability"
	"github.com/infraprint/infraprint-go/pkg/model"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// ErrUnsupportedVersion is returned by Load for state files written by a
// newer format version.
var ErrUnsupportedVersion = errors.New("persistence: unsupported state version")

// PrinterState is the persisted snapshot of an infrastructure printer.
type PrinterState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Printer is the printer name.
	Printer string `json:"printer"`

	// Fingerprint is the descriptor fingerprint at save time.
	Fingerprint string `json:"fingerprint,omitempty"`

	// Descriptor is the committed capability descriptor.
	Descriptor capability.Descriptor `json:"descriptor"`

	// Devices lists the output devices registered when the state was saved.
	Devices []model.DeviceInfo `json:"devices,omitempty"`
}

// DescriptorStore manages persistence of printer state to a JSON file.
type DescriptorStore struct {
	mu   sync.Mutex
	path string
}

// NewDescriptorStore creates a new descriptor store.
func NewDescriptorStore(path string) *DescriptorStore {
	return &DescriptorStore{path: path}
}

// Path returns the state file path.
func (s *DescriptorStore) Path() string {
	return s.path
}

// Save persists the printer state to disk.
func (s *DescriptorStore) Save(state *PrinterState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	return os.WriteFile(s.path, data, 0644)
}

// Load reads the printer state from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *DescriptorStore) Load() (*PrinterState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &PrinterState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if state.Version > StateVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, state.Version)
	}

	return state, nil
}

// Clear removes the state file.
func (s *DescriptorStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
