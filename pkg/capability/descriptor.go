package capability

import (
	"maps"
	"slices"

	"github.com/infraprint/infraprint-go/pkg/intern"
)

// Bounded set capacities.
const (
	MaxVendor     = 32
	MaxMedia      = 256
	MaxSource     = 16
	MaxType       = 32
	MaxBin        = 16
	MaxResolution = 4
)

// Defaults applied when no device reports a capability class.
var (
	DefaultMedia      = []string{"na_letter_8.5x11in", "iso_a4_210x297mm"}
	DefaultSources    = []string{"auto"}
	DefaultTypes      = []string{"stationery"}
	DefaultResolution = Resolution{X: 300, Y: 300}
)

// Resolution is a raster resolution in dots per inch.
type Resolution struct {
	X int `cbor:"1,keyasint" json:"x"`
	Y int `cbor:"2,keyasint" json:"y"`
}

// Descriptor is the unified capability set of an infrastructure printer.
//
// A Descriptor is a plain value. Aggregation works on a copy obtained from
// the printer and publishes it back in one call; Clone gives callers their
// own slices.
type Descriptor struct {
	// Driver metadata preserved across aggregation passes.
	MakeAndModel string            `cbor:"1,keyasint,omitempty" json:"make_and_model,omitempty"`
	Format       string            `cbor:"2,keyasint,omitempty" json:"format,omitempty"`
	VendorData   map[string]string `cbor:"3,keyasint,omitempty" json:"vendor_data,omitempty"`

	// Bitmasks, OR'd across devices.
	Identify    IdentifyAction `cbor:"10,keyasint" json:"identify_supported"`
	ColorModes  ColorMode      `cbor:"11,keyasint" json:"color_supported"`
	RasterTypes RasterType     `cbor:"12,keyasint" json:"raster_types"`
	Sides       Sides          `cbor:"13,keyasint" json:"sides_supported"`
	Tracking    MediaTracking  `cbor:"14,keyasint" json:"tracking_supported"`
	LabelModes  LabelMode      `cbor:"15,keyasint" json:"mode_supported"`

	// Bounded, deduplicated string sets. Every value is interned.
	Features []string `cbor:"20,keyasint" json:"features"`
	Media    []string `cbor:"21,keyasint" json:"media"`
	Sources  []string `cbor:"22,keyasint" json:"sources"`
	Types    []string `cbor:"23,keyasint" json:"types"`
	Bins     []string `cbor:"24,keyasint" json:"bins"`

	// Margins in hundredths of millimeters.
	BottomTop  int  `cbor:"30,keyasint" json:"bottom_top"`
	LeftRight  int  `cbor:"31,keyasint" json:"left_right"`
	Borderless bool `cbor:"32,keyasint" json:"borderless"`

	SpeedSupported [2]int `cbor:"33,keyasint" json:"speed_supported"`
	Darkness       int    `cbor:"34,keyasint" json:"darkness_supported"`
	TearOffset     [2]int `cbor:"35,keyasint" json:"tear_offset_supported"`
	PPM            int    `cbor:"36,keyasint" json:"ppm"`
	PPMColor       int    `cbor:"37,keyasint" json:"ppm_color"`

	Resolutions []Resolution `cbor:"40,keyasint" json:"resolutions"`

	// Duplex is last-writer-wins across devices.
	Duplex Duplex `cbor:"41,keyasint" json:"duplex"`

	// Extension owns driver-private storage (the string pool for
	// infrastructure printers). It is not serialized.
	Extension Extension `cbor:"-" json:"-"`
}

// Clone returns a copy of d with its own slices and map. The extension
// reference is shared.
func (d Descriptor) Clone() Descriptor {
	c := d
	c.VendorData = maps.Clone(d.VendorData)
	c.Features = slices.Clone(d.Features)
	c.Media = slices.Clone(d.Media)
	c.Sources = slices.Clone(d.Sources)
	c.Types = slices.Clone(d.Types)
	c.Bins = slices.Clone(d.Bins)
	c.Resolutions = slices.Clone(d.Resolutions)
	return c
}

// resetCapabilities sets every merged field to its neutral value.
// Minima are seeded with zero, not a sentinel.
func (d *Descriptor) resetCapabilities() {
	d.Identify = 0
	d.ColorModes = 0
	d.RasterTypes = 0
	d.Sides = 0
	d.Tracking = 0
	d.LabelModes = 0

	d.Features = nil
	d.Media = nil
	d.Sources = nil
	d.Types = nil
	d.Bins = nil

	d.BottomTop = 0
	d.LeftRight = 0
	d.Borderless = true

	d.SpeedSupported = [2]int{}
	d.Darkness = 0
	d.TearOffset = [2]int{}
	d.PPM = 0
	d.PPMColor = 0

	d.Resolutions = nil
	d.Duplex = DuplexNone
}

// normalize fills empty capability classes with defaults.
func (d *Descriptor) normalize(pool *intern.Pool) {
	if len(d.Media) == 0 {
		for _, m := range DefaultMedia {
			d.Media = append(d.Media, pool.Intern(m))
		}
	}
	if len(d.Sources) == 0 {
		for _, s := range DefaultSources {
			d.Sources = append(d.Sources, pool.Intern(s))
		}
	}
	if len(d.Types) == 0 {
		for _, t := range DefaultTypes {
			d.Types = append(d.Types, pool.Intern(t))
		}
	}
	if len(d.Resolutions) == 0 {
		d.Resolutions = append(d.Resolutions, DefaultResolution)
	}
}

// addString appends s to set unless an equal value is present or the set
// already holds limit values. Lookup is a linear scan; sets are small.
func addString(set []string, limit int, s string, pool *intern.Pool) []string {
	if slices.Contains(set, s) || len(set) >= limit {
		return set
	}
	return append(set, pool.Intern(s))
}

// addResolution appends r unless it is present or the set is full.
func addResolution(set []Resolution, r Resolution) []Resolution {
	if slices.Contains(set, r) || len(set) >= MaxResolution {
		return set
	}
	return append(set, r)
}
