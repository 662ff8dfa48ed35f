// Package printer implements an infrastructure printer: a named print queue
// whose capabilities are the union of the output devices registered behind it.
//
// The printer owns the output device registry and the driver data. Registry
// changes re-run capability aggregation when AutoRecompute is set:
//
//	p := printer.New("office", printer.DefaultConfig())
//	id, err := p.AddOutputDevice(od)
//	caps := p.DriverData()
//
// Delete must be called once when the printer is discarded; it releases the
// descriptor's string pool.
package printer
