// Package devicefile reads and writes YAML descriptions of output devices.
//
// A device file names the device and lists the capability attributes it
// advertises:
//
//	name: dock-zebra
//	uri: ipp://zebra.local/ipp/print
//	attributes:
//	  media-supported: [roll_max_4x6in, na_index-4x6_4x6in]
//	  print-darkness-supported: 30
//	  print-speed-supported: 2-12
//	  pwg-raster-document-resolution-supported: [203dpi, 118dpcm]
//	  output-bin-supported:
//	    tag: name
//	    values: [Top Tray]
//
// Value types follow the capability catalogue in package model. An explicit
// {tag, values} mapping overrides the catalogue; attributes outside the
// catalogue default to keywords. Ranges are written "lo-hi" or [lo, hi] and
// resolutions as "XxYdpi", "Xdpi" or the dpcm equivalents.
package devicefile
