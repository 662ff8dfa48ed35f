// Package persistence stores the last committed capability descriptor of an
// infrastructure printer so it can be reported before the first aggregation
// pass after a restart.
//
// State is written as indented JSON. The descriptor's extension and string
// pool are not persisted; a restored descriptor is re-interned by the next
// aggregation pass.
package persistence
