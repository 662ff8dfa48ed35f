package printer

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/infraprint/infraprint-go/pkg/capability"
	"github.com/infraprint/infraprint-go/pkg/log"
	"github.com/infraprint/infraprint-go/pkg/model"
	"github.com/infraprint/infraprint-go/pkg/persistence"
)

// Printer is an infrastructure printer.
//
// Lock order is recomputeMu, publishMu, then devicesMu or dataMu. Change
// handlers run on a delivery goroutine, one descriptor at a time in commit
// order, and may call back into the printer.
type Printer struct {
	name          string
	logger        *slog.Logger
	events        log.Logger
	store         *persistence.DescriptorStore
	autoRecompute bool
	aggregator    *capability.Aggregator

	// recomputeMu serializes aggregation passes; the descriptor's string
	// pool is not safe for concurrent mutation.
	recomputeMu sync.Mutex

	devicesMu sync.RWMutex
	devices   []*model.OutputDevice

	// publishMu keeps commit, persistence and delivery queueing in one
	// order.
	publishMu sync.Mutex

	dataMu  sync.Mutex
	data    capability.Descriptor
	deleted bool

	handlersMu sync.Mutex
	handlers   []ChangeHandler

	pendingMu   sync.Mutex
	pending     []capability.Descriptor
	dispatching bool
}

// New creates a printer with an empty registry and default capabilities.
func New(name string, cfg Config) *Printer {
	events := cfg.EventLogger
	if events == nil {
		events = log.NoopLogger{}
	}

	p := &Printer{
		name:          name,
		logger:        cfg.Logger,
		events:        events,
		store:         cfg.Store,
		autoRecompute: cfg.AutoRecompute,
		aggregator: capability.NewAggregator(capability.AggregatorConfig{
			Logger:      cfg.Logger,
			EventLogger: events,
		}),
		data: capability.Descriptor{
			MakeAndModel: cfg.MakeAndModel,
			Format:       cfg.Format,
			Borderless:   true,
		},
	}
	return p
}

// Compile-time interface satisfaction check.
var _ capability.Printer = (*Printer)(nil)

// Name returns the printer name.
func (p *Printer) Name() string {
	return p.name
}

// Subscribe registers a handler for committed descriptors.
func (p *Printer) Subscribe(handler ChangeHandler) {
	p.handlersMu.Lock()
	defer p.handlersMu.Unlock()
	p.handlers = append(p.handlers, handler)
}

// Recompute runs one aggregation pass. It is a no-op after Delete.
// Aggregation must go through Recompute rather than calling
// capability.RecomputeCapabilities on the printer directly, so that passes
// never overlap.
func (p *Printer) Recompute() {
	p.recomputeMu.Lock()
	defer p.recomputeMu.Unlock()

	if p.isDeleted() {
		return
	}
	p.aggregator.Recompute(p)
}

// Restore loads the last persisted descriptor, if any, and makes it the
// current driver data. The restored descriptor carries no extension until
// the next aggregation pass. Returns false when nothing was stored.
func (p *Printer) Restore() (bool, error) {
	if p.store == nil {
		return false, nil
	}
	state, err := p.store.Load()
	if err != nil {
		return false, fmt.Errorf("restore %s: %w", p.name, err)
	}
	if state == nil {
		return false, nil
	}

	p.recomputeMu.Lock()
	defer p.recomputeMu.Unlock()
	p.dataMu.Lock()
	defer p.dataMu.Unlock()
	if p.deleted {
		return false, ErrDeleted
	}
	capability.ReleaseExtension(&p.data)
	p.data = state.Descriptor
	p.debugLog("descriptor restored",
		"printer", p.name,
		"saved_at", state.SavedAt,
		"fingerprint", state.Fingerprint)
	return true, nil
}

// Delete releases the descriptor extension and stops further aggregation.
// Calling it again has no effect.
func (p *Printer) Delete() {
	p.recomputeMu.Lock()
	defer p.recomputeMu.Unlock()

	p.dataMu.Lock()
	if p.deleted {
		p.dataMu.Unlock()
		return
	}
	p.deleted = true
	poolSize := 0
	if ext, ok := p.data.Extension.(*capability.InfraExtension); ok {
		poolSize = ext.Strings().Len()
	}
	capability.ReleaseExtension(&p.data)
	p.dataMu.Unlock()

	p.debugLog("printer deleted", "printer", p.name, "pool_size", poolSize)
	p.events.Log(log.Event{
		Timestamp: time.Now(),
		Printer:   p.name,
		Category:  log.CategoryRelease,
		Release:   &log.ReleaseEvent{PoolSize: poolSize},
	})
}

func (p *Printer) isDeleted() bool {
	p.dataMu.Lock()
	defer p.dataMu.Unlock()
	return p.deleted
}

// DriverData returns a copy of the current descriptor.
func (p *Printer) DriverData() capability.Descriptor {
	p.dataMu.Lock()
	defer p.dataMu.Unlock()
	return p.data.Clone()
}

// SetDriverData commits d as the printer's descriptor.
//
// When the previous descriptor carries a different extension, that
// extension is released. Override attributes are recorded in VendorData as
// comma-separated values. The committed descriptor is persisted when a store
// is configured and queued for every change handler.
func (p *Printer) SetDriverData(d capability.Descriptor, attrs *model.AttributeSet) {
	p.publishMu.Lock()
	defer p.publishMu.Unlock()

	p.dataMu.Lock()
	if p.deleted {
		p.dataMu.Unlock()
		// A pass that raced with Delete installed a fresh extension.
		capability.ReleaseExtension(&d)
		p.debugLog("driver data discarded", "printer", p.name, "reason", ErrDeleted)
		return
	}

	if old := p.data.Extension; old != nil && old != d.Extension {
		old.Release()
	}
	if attrs.Len() > 0 {
		d.VendorData = maps.Clone(d.VendorData)
		if d.VendorData == nil {
			d.VendorData = make(map[string]string, attrs.Len())
		}
		for _, attr := range attrs.Attributes() {
			d.VendorData[attr.Name] = formatAttribute(attr)
		}
	}
	p.data = d
	snapshot := d.Clone()
	p.dataMu.Unlock()

	p.persist(snapshot)
	p.notify(snapshot)
}

// formatAttribute renders an attribute's values as a comma-separated list.
func formatAttribute(attr *model.Attribute) string {
	values := make([]string, len(attr.Values))
	for i, v := range attr.Values {
		values[i] = model.FormatValue(attr.Tag, v)
	}
	return strings.Join(values, ",")
}

func (p *Printer) persist(d capability.Descriptor) {
	if p.store == nil {
		return
	}

	state := &persistence.PrinterState{
		SavedAt:     time.Now(),
		Printer:     p.name,
		Fingerprint: d.Fingerprint(),
		Descriptor:  d,
		Devices:     p.deviceInfos(),
	}
	if err := p.store.Save(state); err != nil {
		p.logError("persist descriptor", err)
	}
}

// notify queues d for delivery and starts the delivery goroutine if none is
// running. The caller holds publishMu.
func (p *Printer) notify(d capability.Descriptor) {
	p.pendingMu.Lock()
	defer p.pendingMu.Unlock()

	p.pending = append(p.pending, d)
	if !p.dispatching {
		p.dispatching = true
		go p.dispatch()
	}
}

// dispatch hands queued descriptors to the change handlers until the queue
// is empty.
func (p *Printer) dispatch() {
	for {
		p.pendingMu.Lock()
		if len(p.pending) == 0 {
			p.dispatching = false
			p.pendingMu.Unlock()
			return
		}
		d := p.pending[0]
		p.pending[0] = capability.Descriptor{}
		p.pending = p.pending[1:]
		p.pendingMu.Unlock()

		p.handlersMu.Lock()
		handlers := slices.Clone(p.handlers)
		p.handlersMu.Unlock()

		for _, handler := range handlers {
			handler(d.Clone())
		}
	}
}

// RLockDevices acquires the registry read lock.
func (p *Printer) RLockDevices() {
	p.devicesMu.RLock()
}

// RUnlockDevices releases the registry read lock.
func (p *Printer) RUnlockDevices() {
	p.devicesMu.RUnlock()
}

// DeviceCount returns the number of registered devices. The caller must
// hold the registry read lock.
func (p *Printer) DeviceCount() int {
	return len(p.devices)
}

// Device returns the device at index i in registration order. The caller
// must hold the registry read lock.
func (p *Printer) Device(i int) *model.OutputDevice {
	return p.devices[i]
}

// AddOutputDevice registers a copy of od and returns its ID. A UUID is
// assigned when od has none.
func (p *Printer) AddOutputDevice(od *model.OutputDevice) (string, error) {
	if od == nil {
		return "", ErrNilDevice
	}
	if p.isDeleted() {
		return "", ErrDeleted
	}

	dev := od.Clone()
	if dev.ID == "" {
		dev.ID = uuid.NewString()
	}

	p.devicesMu.Lock()
	if p.indexOf(dev.ID) >= 0 {
		p.devicesMu.Unlock()
		return "", fmt.Errorf("%w: %s", ErrDuplicateDevice, dev.ID)
	}
	p.devices = append(p.devices, dev)
	count := len(p.devices)
	p.devicesMu.Unlock()

	p.registryChanged(log.RegistryAdded, dev, count)
	return dev.ID, nil
}

// RemoveOutputDevice deregisters the device with the given ID.
func (p *Printer) RemoveOutputDevice(id string) error {
	if p.isDeleted() {
		return ErrDeleted
	}

	p.devicesMu.Lock()
	i := p.indexOf(id)
	if i < 0 {
		p.devicesMu.Unlock()
		return fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
	}
	dev := p.devices[i]
	p.devices = slices.Delete(p.devices, i, i+1)
	count := len(p.devices)
	p.devicesMu.Unlock()

	p.registryChanged(log.RegistryRemoved, dev, count)
	return nil
}

// UpdateOutputDevice replaces the capabilities of a registered device with
// a copy of attrs. A nil attrs marks the device as not reporting.
func (p *Printer) UpdateOutputDevice(id string, attrs *model.AttributeSet) error {
	if p.isDeleted() {
		return ErrDeleted
	}

	p.devicesMu.Lock()
	i := p.indexOf(id)
	if i < 0 {
		p.devicesMu.Unlock()
		return fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
	}
	dev := p.devices[i].Clone()
	dev.Attrs = attrs.Clone()
	p.devices[i] = dev
	count := len(p.devices)
	p.devicesMu.Unlock()

	p.registryChanged(log.RegistryUpdated, dev, count)
	return nil
}

// OutputDevice returns a copy of the device with the given ID.
func (p *Printer) OutputDevice(id string) (*model.OutputDevice, error) {
	p.devicesMu.RLock()
	defer p.devicesMu.RUnlock()

	i := p.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, id)
	}
	return p.devices[i].Clone(), nil
}

// OutputDevices returns copies of all registered devices in registration
// order.
func (p *Printer) OutputDevices() []*model.OutputDevice {
	p.devicesMu.RLock()
	defer p.devicesMu.RUnlock()

	result := make([]*model.OutputDevice, len(p.devices))
	for i, dev := range p.devices {
		result[i] = dev.Clone()
	}
	return result
}

// indexOf returns the registry index of id, or -1. The caller must hold
// devicesMu.
func (p *Printer) indexOf(id string) int {
	for i, dev := range p.devices {
		if dev.ID == id {
			return i
		}
	}
	return -1
}

func (p *Printer) deviceInfos() []model.DeviceInfo {
	p.devicesMu.RLock()
	defer p.devicesMu.RUnlock()

	infos := make([]model.DeviceInfo, len(p.devices))
	for i, dev := range p.devices {
		infos[i] = dev.Info()
	}
	return infos
}

// registryChanged logs a registry event and re-runs aggregation when
// AutoRecompute is set. Called without devicesMu held.
func (p *Printer) registryChanged(action log.RegistryAction, dev *model.OutputDevice, count int) {
	p.debugLog("output device "+strings.ToLower(action.String()),
		"printer", p.name,
		"device_id", dev.ID,
		"device_name", dev.Name,
		"devices", count)

	p.events.Log(log.Event{
		Timestamp: time.Now(),
		Printer:   p.name,
		Category:  log.CategoryRegistry,
		DeviceID:  dev.ID,
		Registry: &log.RegistryEvent{
			Action:      action,
			DeviceName:  dev.Name,
			DeviceCount: count,
			Attributes:  dev.Attrs.Len(),
		},
	})

	if p.autoRecompute {
		p.Recompute()
	}
}

func (p *Printer) logError(context string, err error) {
	if p.logger != nil {
		p.logger.Warn(context+" failed", "printer", p.name, "error", err)
	}
	p.events.Log(log.Event{
		Timestamp: time.Now(),
		Printer:   p.name,
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Message: err.Error(),
			Context: context,
		},
	})
}

// debugLog logs a debug message if logging is enabled.
func (p *Printer) debugLog(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
