package capability

import "github.com/infraprint/infraprint-go/pkg/intern"

// Extension is driver-private state attached to a Descriptor. The owner of
// the descriptor calls Release exactly once when the descriptor is discarded.
// Implementations must be comparable; pointer types are.
type Extension interface {
	// Release frees the extension's storage. It must not fail.
	Release()
}

// InfraExtension is the extension installed by capability aggregation. It
// owns the string pool backing every string in the descriptor.
type InfraExtension struct {
	strings  *intern.Pool
	released bool
}

// NewInfraExtension creates an extension with an empty string pool.
func NewInfraExtension() *InfraExtension {
	return &InfraExtension{strings: intern.New()}
}

// Strings returns the extension's string pool.
func (e *InfraExtension) Strings() *intern.Pool {
	return e.strings
}

// Released reports whether Release has been called.
func (e *InfraExtension) Released() bool {
	return e.released
}

// Release drops the string pool. Calling it again has no effect.
func (e *InfraExtension) Release() {
	if e.released {
		return
	}
	e.strings.Release()
	e.released = true
}

// Compile-time interface satisfaction check.
var _ Extension = (*InfraExtension)(nil)

// installExtension makes sure d carries a live InfraExtension and returns it.
// A descriptor coming from a non-infrastructure context may carry another
// extension; it is replaced here and released by the printer when the new
// descriptor is committed.
func installExtension(d *Descriptor) *InfraExtension {
	if ext, ok := d.Extension.(*InfraExtension); ok && ext != nil && !ext.released {
		return ext
	}
	ext := NewInfraExtension()
	d.Extension = ext
	return ext
}

// ReleaseExtension tears down the extension attached to d and clears the
// reference, so a second call is a no-op.
func ReleaseExtension(d *Descriptor) {
	if d == nil || d.Extension == nil {
		return
	}
	d.Extension.Release()
	d.Extension = nil
}
