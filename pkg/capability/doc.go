// Package capability derives the capabilities of an infrastructure printer
// from the output devices registered behind it.
//
// # Aggregation
//
// Recompute takes a copy of the printer's Descriptor, resets every merged
// field, scans the output devices under the registry read lock, normalizes
// defaults and publishes the result with SetDriverData:
//
//	agg := capability.NewAggregator(capability.AggregatorConfig{Logger: logger})
//	agg.Recompute(printer)
//
// Each capability keyword has one merge rule:
//   - Enumerations (identify actions, color modes, raster types, sides, media
//     tracking, label modes) are OR'd into bitmasks.
//   - String lists (vendor features, media, sources, types, output bins) are
//     unioned into bounded, deduplicated, interned sets.
//   - Margins raise a maximum; zero-margin support on every side of every
//     device keeps the descriptor borderless.
//   - Speed and tear-off ranges widen a (min, max) pair seeded at zero.
//   - Resolutions are converted to dots per inch and deduplicated.
//   - The duplex sheet-back orientation is taken from the last device that
//     reports one.
//
// Empty media, source, type and resolution sets fall back to defaults
// (Letter and A4, "auto", "stationery", 300dpi).
//
// # Extensions
//
// Every string in an aggregated Descriptor lives in a string pool owned by
// the descriptor's InfraExtension. The printer calls ReleaseExtension once
// when it discards the descriptor.
package capability
