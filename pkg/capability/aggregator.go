package capability

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/infraprint/infraprint-go/pkg/intern"
	"github.com/infraprint/infraprint-go/pkg/log"
	"github.com/infraprint/infraprint-go/pkg/model"
)

// Printer is the view of an infrastructure printer that aggregation needs:
// the driver-data accessor pair and read access to the output device registry.
type Printer interface {
	// Name returns the printer name.
	Name() string

	// DriverData returns a copy of the current descriptor.
	DriverData() Descriptor

	// SetDriverData publishes a new descriptor. attrs carries attribute
	// overrides and may be nil.
	SetDriverData(d Descriptor, attrs *model.AttributeSet)

	// RLockDevices acquires the registry read lock.
	RLockDevices()

	// RUnlockDevices releases the registry read lock.
	RUnlockDevices()

	// DeviceCount returns the number of registered devices. Only valid while
	// the read lock is held.
	DeviceCount() int

	// Device returns the device at index i. Only valid while the read lock
	// is held.
	Device(i int) *model.OutputDevice
}

// AggregatorConfig configures an Aggregator.
type AggregatorConfig struct {
	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// EventLogger receives one RECOMPUTE event per pass.
	// If nil, events are discarded.
	EventLogger log.Logger
}

// Aggregator merges output device capabilities into printer descriptors.
// It holds no per-printer state and may be shared between printers.
type Aggregator struct {
	logger *slog.Logger
	events log.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(cfg AggregatorConfig) *Aggregator {
	events := cfg.EventLogger
	if events == nil {
		events = log.NoopLogger{}
	}
	return &Aggregator{
		logger: cfg.Logger,
		events: events,
	}
}

var defaultAggregator = NewAggregator(AggregatorConfig{})

// RecomputeCapabilities recomputes p's descriptor with a silent Aggregator.
func RecomputeCapabilities(p Printer) {
	defaultAggregator.Recompute(p)
}

// Recompute rebuilds p's descriptor from the output devices registered at
// the time the registry read lock is taken, and publishes it.
//
// Devices without capabilities and attributes that are absent or mistyped
// are ignored. Bounded sets that fill up drop further values. Recompute
// never fails.
func (a *Aggregator) Recompute(p Printer) {
	start := time.Now()

	data := p.DriverData()
	ext := installExtension(&data)
	pool := ext.Strings()
	data.resetCapabilities()

	p.RLockDevices()
	count := p.DeviceCount()
	visited := 0
	for i := 0; i < count; i++ {
		od := p.Device(i)
		if !od.HasCapabilities() {
			continue
		}
		mergeDevice(&data, pool, od.Attrs)
		visited++
	}
	p.RUnlockDevices()

	data.normalize(pool)

	p.SetDriverData(data, nil)

	a.report(p.Name(), data, pool, count, visited, start)
}

// report emits the pass summary to the debug logger and the event log.
func (a *Aggregator) report(printer string, d Descriptor, pool *intern.Pool, count, visited int, startedAt time.Time) {
	elapsed := time.Since(startedAt)
	fingerprint := d.Fingerprint()

	a.debugLog("capabilities recomputed",
		"printer", printer,
		"devices", count,
		"visited", visited,
		"media", len(d.Media),
		"resolutions", len(d.Resolutions),
		"borderless", d.Borderless,
		"fingerprint", fingerprint,
	)

	a.events.Log(log.Event{
		Timestamp: startedAt,
		PassID:    uuid.NewString(),
		Printer:   printer,
		Category:  log.CategoryRecompute,
		Recompute: &log.RecomputeEvent{
			DeviceCount: count,
			Visited:     visited,
			Fingerprint: fingerprint,
			Media:       len(d.Media),
			Sources:     len(d.Sources),
			Types:       len(d.Types),
			Bins:        len(d.Bins),
			Features:    len(d.Features),
			Resolutions: len(d.Resolutions),
			Borderless:  d.Borderless,
			PoolSize:    pool.Len(),
			Duration:    elapsed,
		},
	})
}

func (a *Aggregator) debugLog(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}

// mergeDevice folds one device's attributes into d.
func mergeDevice(d *Descriptor, pool *intern.Pool, attrs *model.AttributeSet) {
	if attr := attrs.Find(model.KeywordIdentifyActions, model.TagKeyword); attr != nil {
		forEachString(attr, func(s string) { d.Identify |= IdentifyActionValue(s) })
	}

	if attr := attrs.Find(model.KeywordFeatures, model.TagKeyword); attr != nil {
		forEachString(attr, func(s string) { d.Features = addString(d.Features, MaxVendor, s, pool) })
	}

	if attr := attrs.Find(model.KeywordLabelMode, model.TagKeyword); attr != nil {
		forEachString(attr, func(s string) { d.LabelModes |= LabelModeValue(s) })
	}

	if attr := attrs.Find(model.KeywordLabelTearOffset, model.TagRange); attr != nil {
		for i := 0; i < attr.Count(); i++ {
			lower, upper := attr.GetRange(i)
			foldRange(&d.TearOffset, lower, upper)
		}
	}

	if attr := attrs.Find(model.KeywordMedia, model.TagZero); attr != nil {
		forEachString(attr, func(s string) { d.Media = addString(d.Media, MaxMedia, s, pool) })
	}

	mergeMargin(d, attrs.Find(model.KeywordMarginBottom, model.TagInteger), &d.BottomTop)
	mergeMargin(d, attrs.Find(model.KeywordMarginLeft, model.TagInteger), &d.LeftRight)
	mergeMargin(d, attrs.Find(model.KeywordMarginRight, model.TagInteger), &d.LeftRight)
	mergeMargin(d, attrs.Find(model.KeywordMarginTop, model.TagInteger), &d.BottomTop)

	if attr := attrs.Find(model.KeywordMediaSource, model.TagZero); attr != nil {
		forEachString(attr, func(s string) { d.Sources = addString(d.Sources, MaxSource, s, pool) })
	}

	if attr := attrs.Find(model.KeywordMediaTracking, model.TagKeyword); attr != nil {
		forEachString(attr, func(s string) { d.Tracking |= MediaTrackingValue(s) })
	}

	if attr := attrs.Find(model.KeywordMediaType, model.TagZero); attr != nil {
		forEachString(attr, func(s string) { d.Types = addString(d.Types, MaxType, s, pool) })
	}

	if attr := attrs.Find(model.KeywordOutputBin, model.TagZero); attr != nil {
		forEachString(attr, func(s string) { d.Bins = addString(d.Bins, MaxBin, s, pool) })
	}

	foldMax(&d.PPM, attrs.Find(model.KeywordPagesPerMinute, model.TagInteger))
	foldMax(&d.PPMColor, attrs.Find(model.KeywordPagesPerMinuteClr, model.TagInteger))

	if attr := attrs.Find(model.KeywordColorMode, model.TagKeyword); attr != nil {
		forEachString(attr, func(s string) { d.ColorModes |= ColorModeValue(s) })
	}

	foldMax(&d.Darkness, attrs.Find(model.KeywordDarkness, model.TagInteger))

	if attr := attrs.Find(model.KeywordSpeed, model.TagRange); attr != nil {
		for i := 0; i < attr.Count(); i++ {
			lower, upper := attr.GetRange(i)
			foldRange(&d.SpeedSupported, lower, upper)
		}
	} else if attr := attrs.Find(model.KeywordSpeed, model.TagInteger); attr != nil {
		for i := 0; i < attr.Count(); i++ {
			v := attr.GetInteger(i)
			foldRange(&d.SpeedSupported, v, v)
		}
	}

	if attr := attrs.Find(model.KeywordResolution, model.TagResolution); attr != nil {
		for i := 0; i < attr.Count(); i++ {
			x, y, units := attr.GetResolution(i)
			d.Resolutions = addResolution(d.Resolutions, toPerInch(x, y, units))
		}
	}

	if attr := attrs.Find(model.KeywordSheetBack, model.TagKeyword); attr != nil {
		if s, ok := attr.GetString(0); ok {
			if duplex, ok := DuplexValue(s); ok {
				d.Duplex = duplex
			}
		}
	}

	if attr := attrs.Find(model.KeywordRasterType, model.TagKeyword); attr != nil {
		forEachString(attr, func(s string) { d.RasterTypes |= RasterTypeValue(s) })
	}

	if attr := attrs.Find(model.KeywordSides, model.TagKeyword); attr != nil {
		forEachString(attr, func(s string) { d.Sides |= SidesValue(s) })
	}
}

// forEachString calls fn with every string value of attr.
func forEachString(attr *model.Attribute, fn func(string)) {
	for i := 0; i < attr.Count(); i++ {
		if s, ok := attr.GetString(i); ok {
			fn(s)
		}
	}
}

// mergeMargin ANDs zero-margin support into Borderless and raises max to the
// largest reported margin. A nil attr leaves both untouched.
func mergeMargin(d *Descriptor, attr *model.Attribute, max *int) {
	if attr == nil {
		return
	}
	d.Borderless = d.Borderless && attr.ContainsInteger(0)
	for i := 0; i < attr.Count(); i++ {
		if v := attr.GetInteger(i); v > *max {
			*max = v
		}
	}
}

// foldMax raises max to the largest integer in attr.
func foldMax(max *int, attr *model.Attribute) {
	for i := 0; i < attr.Count(); i++ {
		if v := attr.GetInteger(i); v > *max {
			*max = v
		}
	}
}

// foldRange widens bounds to include [lower, upper].
func foldRange(bounds *[2]int, lower, upper int) {
	if lower < bounds[0] {
		bounds[0] = lower
	}
	if upper > bounds[1] {
		bounds[1] = upper
	}
}

// toPerInch converts a resolution to dots per inch, truncating.
func toPerInch(x, y int, units model.ResUnits) Resolution {
	if units == model.ResPerCm {
		x = int(2.54 * float64(x))
		y = int(2.54 * float64(y))
	}
	return Resolution{X: x, Y: y}
}
