package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/infraprint/infraprint-go/pkg/capability"
	"github.com/infraprint/infraprint-go/pkg/model"
)

func TestDescriptorStore(t *testing.T) {
	t.Run("NewDescriptorStore", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "printer.json")
		store := NewDescriptorStore(path)
		if store == nil {
			t.Fatal("NewDescriptorStore() returned nil")
		}
		if store.Path() != path {
			t.Errorf("Path() = %q, want %q", store.Path(), path)
		}
	})

	t.Run("SaveSetsVersionAndTime", func(t *testing.T) {
		dir := t.TempDir()
		store := NewDescriptorStore(filepath.Join(dir, "nested", "printer.json"))

		state := &PrinterState{Printer: "infra"}
		if err := store.Save(state); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if state.Version != StateVersion {
			t.Errorf("Version = %d, want %d", state.Version, StateVersion)
		}
		if state.SavedAt.IsZero() {
			t.Error("SavedAt not set")
		}
	})

	t.Run("LoadNonExistent", func(t *testing.T) {
		dir := t.TempDir()
		store := NewDescriptorStore(filepath.Join(dir, "nonexistent.json"))

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		// Should return nil (empty state) for non-existent file
		if got != nil {
			t.Errorf("Load() = %v, want nil for non-existent file", got)
		}
	})

	t.Run("DescriptorRoundTrip", func(t *testing.T) {
		dir := t.TempDir()
		store := NewDescriptorStore(filepath.Join(dir, "printer.json"))

		d := capability.Descriptor{
			MakeAndModel:   "Infra Label Printer",
			VendorData:     map[string]string{"location": "dock 3"},
			ColorModes:     capability.ColorModeBiLevel,
			LabelModes:     capability.LabelTearOff | capability.LabelCutter,
			Media:          []string{"roll_max_4x6in", "na_index-4x6_4x6in"},
			Sources:        []string{"main-roll"},
			Bins:           []string{"Top Tray"},
			BottomTop:      423,
			Borderless:     false,
			SpeedSupported: [2]int{0, 12},
			TearOffset:     [2]int{-10, 20},
			Resolutions:    []capability.Resolution{{X: 203, Y: 203}, {X: 762, Y: 762}},
			Duplex:         capability.DuplexFlipped,
			Extension:      capability.NewInfraExtension(),
		}

		state := &PrinterState{
			SavedAt:     time.Now(),
			Printer:     "infra",
			Fingerprint: d.Fingerprint(),
			Descriptor:  d,
			Devices: []model.DeviceInfo{
				{ID: "dev-1", Name: "zebra", URI: "ipp://zebra.local/ipp/print", Attributes: 7},
			},
		}

		if err := store.Save(state); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if got.Printer != "infra" {
			t.Errorf("Printer = %q, want %q", got.Printer, "infra")
		}
		if got.Descriptor.Extension != nil {
			t.Error("Extension should not be persisted")
		}
		if got.Descriptor.Fingerprint() != state.Fingerprint {
			t.Errorf("Fingerprint() = %s, want %s", got.Descriptor.Fingerprint(), state.Fingerprint)
		}
		if got.Descriptor.Duplex != capability.DuplexFlipped {
			t.Errorf("Duplex = %s, want flipped", got.Descriptor.Duplex)
		}
		if got.Descriptor.TearOffset != [2]int{-10, 20} {
			t.Errorf("TearOffset = %v, want [-10 20]", got.Descriptor.TearOffset)
		}
		if len(got.Devices) != 1 || got.Devices[0].Attributes != 7 {
			t.Errorf("Devices = %+v", got.Devices)
		}
	})

	t.Run("UnsupportedVersion", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "printer.json")
		if err := os.WriteFile(path, []byte(`{"version": 99, "printer": "infra"}`), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := NewDescriptorStore(path).Load()
		if !errors.Is(err, ErrUnsupportedVersion) {
			t.Errorf("Load() error = %v, want ErrUnsupportedVersion", err)
		}
	})

	t.Run("Corrupt", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "printer.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := NewDescriptorStore(path).Load(); err == nil {
			t.Error("Load() expected error for corrupt file")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "printer.json")
		store := NewDescriptorStore(path)

		_ = store.Save(&PrinterState{Printer: "infra"})

		if err := store.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() after Clear() error = %v", err)
		}
		if got != nil {
			t.Errorf("Load() after Clear() = %v, want nil", got)
		}

		// Clearing again is not an error.
		if err := store.Clear(); err != nil {
			t.Errorf("second Clear() error = %v", err)
		}
	})
}
