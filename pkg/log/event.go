package log

import (
	"time"
)

// Event represents a capability log event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// PassID identifies the aggregation pass (UUID). Empty for events that
	// are not part of a pass.
	PassID string `cbor:"2,keyasint,omitempty"`

	// Printer is the infrastructure printer name.
	Printer string `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// DeviceID is the output device identifier, when the event concerns one.
	DeviceID string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Recompute *RecomputeEvent `cbor:"10,keyasint,omitempty"`
	Registry  *RegistryEvent  `cbor:"11,keyasint,omitempty"`
	Release   *ReleaseEvent   `cbor:"12,keyasint,omitempty"`
	Error     *ErrorEventData `cbor:"13,keyasint,omitempty"`
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryRecompute indicates an aggregation pass.
	CategoryRecompute Category = 0
	// CategoryRegistry indicates an output device registry change.
	CategoryRegistry Category = 1
	// CategoryRelease indicates extension teardown.
	CategoryRelease Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRecompute:
		return "RECOMPUTE"
	case CategoryRegistry:
		return "REGISTRY"
	case CategoryRelease:
		return "RELEASE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// RecomputeEvent summarizes one aggregation pass.
type RecomputeEvent struct {
	// DeviceCount is the registry length snapshotted at lock acquisition.
	DeviceCount int `cbor:"1,keyasint"`

	// Visited is the number of devices that advertised capabilities.
	Visited int `cbor:"2,keyasint"`

	// Fingerprint is the hex digest of the committed descriptor.
	Fingerprint string `cbor:"3,keyasint"`

	// Set sizes after normalization.
	Media       int `cbor:"4,keyasint"`
	Sources     int `cbor:"5,keyasint"`
	Types       int `cbor:"6,keyasint"`
	Bins        int `cbor:"7,keyasint"`
	Features    int `cbor:"8,keyasint"`
	Resolutions int `cbor:"9,keyasint"`

	// Borderless is the committed borderless flag.
	Borderless bool `cbor:"10,keyasint,omitempty"`

	// PoolSize is the number of interned strings after the pass.
	PoolSize int `cbor:"11,keyasint"`

	// Duration is the time spent in the pass.
	Duration time.Duration `cbor:"12,keyasint"`
}

// RegistryEvent captures an output device registry change.
type RegistryEvent struct {
	// Action is what happened to the device.
	Action RegistryAction `cbor:"1,keyasint"`

	// DeviceName is the human-readable device name.
	DeviceName string `cbor:"2,keyasint,omitempty"`

	// DeviceCount is the registry length after the change.
	DeviceCount int `cbor:"3,keyasint"`

	// Attributes is the number of capability attributes the device advertises.
	Attributes int `cbor:"4,keyasint,omitempty"`
}

// RegistryAction indicates what happened to an output device.
type RegistryAction uint8

const (
	// RegistryAdded indicates a device was registered.
	RegistryAdded RegistryAction = 0
	// RegistryRemoved indicates a device was deregistered.
	RegistryRemoved RegistryAction = 1
	// RegistryUpdated indicates a device replaced its capabilities.
	RegistryUpdated RegistryAction = 2
)

// String returns the action name.
func (a RegistryAction) String() string {
	switch a {
	case RegistryAdded:
		return "ADDED"
	case RegistryRemoved:
		return "REMOVED"
	case RegistryUpdated:
		return "UPDATED"
	default:
		return "UNKNOWN"
	}
}

// ReleaseEvent captures extension teardown.
type ReleaseEvent struct {
	// PoolSize is the number of interned strings released.
	PoolSize int `cbor:"1,keyasint"`
}

// ErrorEventData captures errors from surrounding subsystems.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
