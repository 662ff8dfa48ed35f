package model

// OutputDevice is a physical or remote print target registered behind an
// infrastructure printer. The registry that owns it replaces Attrs wholesale
// under its write lock; readers must hold the registry read lock.
type OutputDevice struct {
	// ID is the unique device identifier within its printer.
	ID string

	// Name is the human-readable device name.
	Name string

	// URI is the device URI (informational).
	URI string

	// Attrs are the advertised capability attributes. Nil means the device has
	// not reported any capabilities yet.
	Attrs *AttributeSet
}

// NewOutputDevice creates an output device with the given capabilities.
func NewOutputDevice(name, uri string, attrs *AttributeSet) *OutputDevice {
	return &OutputDevice{
		Name:  name,
		URI:   uri,
		Attrs: attrs,
	}
}

// HasCapabilities reports whether the device advertises any attributes.
func (d *OutputDevice) HasCapabilities() bool {
	return d != nil && d.Attrs.Len() > 0
}

// Clone returns a copy of the device with a deep-copied attribute set.
func (d *OutputDevice) Clone() *OutputDevice {
	if d == nil {
		return nil
	}
	c := *d
	c.Attrs = d.Attrs.Clone()
	return &c
}

// DeviceInfo summarizes an output device for listings.
type DeviceInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URI        string `json:"uri,omitempty"`
	Attributes int    `json:"attributes"`
}

// Info returns a summary of the device.
func (d *OutputDevice) Info() DeviceInfo {
	return DeviceInfo{
		ID:         d.ID,
		Name:       d.Name,
		URI:        d.URI,
		Attributes: d.Attrs.Len(),
	}
}
