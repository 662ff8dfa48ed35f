package model

// Capability keywords read from output devices.
const (
	KeywordIdentifyActions   = "identify-actions-supported"
	KeywordFeatures          = "ipp-features-supported"
	KeywordLabelMode         = "label-mode-supported"
	KeywordLabelTearOffset   = "label-tear-offset-supported"
	KeywordMedia             = "media-supported"
	KeywordMarginBottom      = "media-bottom-margin-supported"
	KeywordMarginLeft        = "media-left-margin-supported"
	KeywordMarginRight       = "media-right-margin-supported"
	KeywordMarginTop         = "media-top-margin-supported"
	KeywordMediaSource       = "media-source-supported"
	KeywordMediaTracking     = "media-tracking-supported"
	KeywordMediaType         = "media-type-supported"
	KeywordOutputBin         = "output-bin-supported"
	KeywordPagesPerMinute    = "pages-per-minute"
	KeywordPagesPerMinuteClr = "pages-per-minute-color"
	KeywordColorMode         = "print-color-mode-supported"
	KeywordDarkness          = "print-darkness-supported"
	KeywordSpeed             = "print-speed-supported"
	KeywordResolution        = "pwg-raster-document-resolution-supported"
	KeywordSheetBack         = "pwg-raster-document-sheet-back"
	KeywordRasterType        = "pwg-raster-document-type-supported"
	KeywordSides             = "sides-supported"
)

// catalogue maps each recognized keyword to the tag it is normally advertised with.
var catalogue = map[string]ValueTag{
	KeywordIdentifyActions:   TagKeyword,
	KeywordFeatures:          TagKeyword,
	KeywordLabelMode:         TagKeyword,
	KeywordLabelTearOffset:   TagRange,
	KeywordMedia:             TagKeyword,
	KeywordMarginBottom:      TagInteger,
	KeywordMarginLeft:        TagInteger,
	KeywordMarginRight:       TagInteger,
	KeywordMarginTop:         TagInteger,
	KeywordMediaSource:       TagKeyword,
	KeywordMediaTracking:     TagKeyword,
	KeywordMediaType:         TagKeyword,
	KeywordOutputBin:         TagKeyword,
	KeywordPagesPerMinute:    TagInteger,
	KeywordPagesPerMinuteClr: TagInteger,
	KeywordColorMode:         TagKeyword,
	KeywordDarkness:          TagInteger,
	KeywordSpeed:             TagRange,
	KeywordResolution:        TagResolution,
	KeywordSheetBack:         TagKeyword,
	KeywordRasterType:        TagKeyword,
	KeywordSides:             TagKeyword,
}

// CatalogueTag returns the natural tag for a recognized capability keyword.
// Unknown keywords report false.
func CatalogueTag(name string) (ValueTag, bool) {
	tag, ok := catalogue[name]
	return tag, ok
}

// IsCapabilityKeyword reports whether name is read by capability aggregation.
func IsCapabilityKeyword(name string) bool {
	_, ok := catalogue[name]
	return ok
}
