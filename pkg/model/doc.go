// Package model implements the output device data model read by capability
// aggregation.
//
// # Devices and Attributes
//
// An infrastructure printer proxies one or more output devices. Each device
// advertises a set of capability attributes:
//
//	OutputDevice (office-laser)
//	└── AttributeSet
//	    ├── media-supported            keyword  [na_letter_8.5x11in, iso_a4_210x297mm]
//	    ├── media-top-margin-supported integer  [0, 423]
//	    ├── print-speed-supported      range    [1-12]
//	    └── pwg-raster-document-resolution-supported resolution [300dpi, 118dpcm]
//
// Attribute values are typed by a ValueTag (keyword, name, integer, range,
// resolution). Lookups use Find with the expected tag; TagZero matches any
// string-like tag. A missing or mistyped attribute is reported as absent,
// never as an error.
//
// # Keyword Catalogue
//
// The capability keywords read during aggregation are exported as Keyword*
// constants. CatalogueTag returns the tag each keyword is normally advertised
// with, which device file loaders use to type untagged values.
package model
