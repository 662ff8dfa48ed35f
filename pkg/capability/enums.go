package capability

import "strings"

// Keyword tables. The bit for a keyword is 1 << its index, so table order is
// part of the encoding.
var (
	identifyActionKeywords = []string{"display", "flash", "sound", "speak"}

	colorModeKeywords = []string{
		"auto", "auto-monochrome", "bi-level", "color", "monochrome", "process-monochrome",
	}

	rasterTypeKeywords = []string{
		"adobe-rgb_8", "adobe-rgb_16", "black_1", "black_8", "black_16",
		"cmyk_8", "cmyk_16", "rgb_8", "rgb_16", "sgray_8", "sgray_16",
		"srgb_8", "srgb_16",
	}

	sidesKeywords = []string{"one-sided", "two-sided-long-edge", "two-sided-short-edge"}

	mediaTrackingKeywords = []string{"continuous", "gap", "mark", "web"}

	labelModeKeywords = []string{
		"applicator", "cutter", "cutter-delayed", "kiosk", "peel-off",
		"peel-off-prepeel", "rewind", "rfid", "tear-off",
	}
)

// lookupValue returns the bit for keyword in table, or 0 if it is not listed.
func lookupValue(keyword string, table []string) uint32 {
	for i, s := range table {
		if s == keyword {
			return 1 << i
		}
	}
	return 0
}

// lookupKeywords returns the keywords for every bit set in value.
func lookupKeywords(value uint32, table []string) []string {
	var keywords []string
	for i, s := range table {
		if value&(1<<i) != 0 {
			keywords = append(keywords, s)
		}
	}
	return keywords
}

// formatBits renders value as a comma-separated keyword list.
func formatBits(value uint32, table []string) string {
	if value == 0 {
		return "none"
	}
	return strings.Join(lookupKeywords(value, table), ",")
}

// IdentifyAction is a bitmask of "identify-actions-supported" values.
type IdentifyAction uint32

const (
	IdentifyDisplay IdentifyAction = 1 << iota
	IdentifyFlash
	IdentifySound
	IdentifySpeak
)

// IdentifyActionValue maps an identify action keyword to its bit.
func IdentifyActionValue(keyword string) IdentifyAction {
	return IdentifyAction(lookupValue(keyword, identifyActionKeywords))
}

// Keywords returns the keywords for the set bits.
func (a IdentifyAction) Keywords() []string {
	return lookupKeywords(uint32(a), identifyActionKeywords)
}

// String returns the set bits as a keyword list.
func (a IdentifyAction) String() string { return formatBits(uint32(a), identifyActionKeywords) }

// ColorMode is a bitmask of "print-color-mode-supported" values.
type ColorMode uint32

const (
	ColorModeAuto ColorMode = 1 << iota
	ColorModeAutoMonochrome
	ColorModeBiLevel
	ColorModeColor
	ColorModeMonochrome
	ColorModeProcessMonochrome
)

// ColorModeValue maps a color mode keyword to its bit.
func ColorModeValue(keyword string) ColorMode {
	return ColorMode(lookupValue(keyword, colorModeKeywords))
}

// Keywords returns the keywords for the set bits.
func (m ColorMode) Keywords() []string { return lookupKeywords(uint32(m), colorModeKeywords) }

// String returns the set bits as a keyword list.
func (m ColorMode) String() string { return formatBits(uint32(m), colorModeKeywords) }

// RasterType is a bitmask of "pwg-raster-document-type-supported" values.
type RasterType uint32

const (
	RasterAdobeRGB8 RasterType = 1 << iota
	RasterAdobeRGB16
	RasterBlack1
	RasterBlack8
	RasterBlack16
	RasterCMYK8
	RasterCMYK16
	RasterRGB8
	RasterRGB16
	RasterSGray8
	RasterSGray16
	RasterSRGB8
	RasterSRGB16
)

// RasterTypeValue maps a raster type keyword to its bit.
func RasterTypeValue(keyword string) RasterType {
	return RasterType(lookupValue(keyword, rasterTypeKeywords))
}

// Keywords returns the keywords for the set bits.
func (r RasterType) Keywords() []string { return lookupKeywords(uint32(r), rasterTypeKeywords) }

// String returns the set bits as a keyword list.
func (r RasterType) String() string { return formatBits(uint32(r), rasterTypeKeywords) }

// Sides is a bitmask of "sides-supported" values.
type Sides uint32

const (
	SidesOneSided Sides = 1 << iota
	SidesTwoSidedLongEdge
	SidesTwoSidedShortEdge
)

// SidesValue maps a sides keyword to its bit.
func SidesValue(keyword string) Sides {
	return Sides(lookupValue(keyword, sidesKeywords))
}

// Keywords returns the keywords for the set bits.
func (s Sides) Keywords() []string { return lookupKeywords(uint32(s), sidesKeywords) }

// String returns the set bits as a keyword list.
func (s Sides) String() string { return formatBits(uint32(s), sidesKeywords) }

// MediaTracking is a bitmask of "media-tracking-supported" values.
type MediaTracking uint32

const (
	TrackingContinuous MediaTracking = 1 << iota
	TrackingGap
	TrackingMark
	TrackingWeb
)

// MediaTrackingValue maps a media tracking keyword to its bit.
func MediaTrackingValue(keyword string) MediaTracking {
	return MediaTracking(lookupValue(keyword, mediaTrackingKeywords))
}

// Keywords returns the keywords for the set bits.
func (m MediaTracking) Keywords() []string {
	return lookupKeywords(uint32(m), mediaTrackingKeywords)
}

// String returns the set bits as a keyword list.
func (m MediaTracking) String() string { return formatBits(uint32(m), mediaTrackingKeywords) }

// LabelMode is a bitmask of "label-mode-supported" values.
type LabelMode uint32

const (
	LabelApplicator LabelMode = 1 << iota
	LabelCutter
	LabelCutterDelayed
	LabelKiosk
	LabelPeelOff
	LabelPeelOffPrepeel
	LabelRewind
	LabelRFID
	LabelTearOff
)

// LabelModeValue maps a label mode keyword to its bit.
func LabelModeValue(keyword string) LabelMode {
	return LabelMode(lookupValue(keyword, labelModeKeywords))
}

// Keywords returns the keywords for the set bits.
func (m LabelMode) Keywords() []string { return lookupKeywords(uint32(m), labelModeKeywords) }

// String returns the set bits as a keyword list.
func (m LabelMode) String() string { return formatBits(uint32(m), labelModeKeywords) }

// Duplex is the back-side orientation of duplexed raster pages
// ("pwg-raster-document-sheet-back").
type Duplex uint8

const (
	DuplexNone Duplex = iota
	DuplexNormal
	DuplexFlipped
	DuplexRotated
	DuplexManualTumble
)

// DuplexValue maps a sheet-back keyword to a Duplex. Unknown keywords report false.
func DuplexValue(keyword string) (Duplex, bool) {
	switch keyword {
	case "normal":
		return DuplexNormal, true
	case "flipped":
		return DuplexFlipped, true
	case "rotated":
		return DuplexRotated, true
	case "manual-tumble":
		return DuplexManualTumble, true
	default:
		return DuplexNone, false
	}
}

// String returns the sheet-back keyword.
func (d Duplex) String() string {
	switch d {
	case DuplexNone:
		return "none"
	case DuplexNormal:
		return "normal"
	case DuplexFlipped:
		return "flipped"
	case DuplexRotated:
		return "rotated"
	case DuplexManualTumble:
		return "manual-tumble"
	default:
		return "unknown"
	}
}
