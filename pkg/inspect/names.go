package inspect

import (
	"slices"
	"strings"

	"github.com/infraprint/infraprint-go/pkg/model"
)

// keywordAliases maps short names accepted in paths to capability keywords.
var keywordAliases = map[string]string{
	"identify":      model.KeywordIdentifyActions,
	"features":      model.KeywordFeatures,
	"label-mode":    model.KeywordLabelMode,
	"tear-offset":   model.KeywordLabelTearOffset,
	"media":         model.KeywordMedia,
	"margin-bottom": model.KeywordMarginBottom,
	"margin-left":   model.KeywordMarginLeft,
	"margin-right":  model.KeywordMarginRight,
	"margin-top":    model.KeywordMarginTop,
	"source":        model.KeywordMediaSource,
	"tracking":      model.KeywordMediaTracking,
	"type":          model.KeywordMediaType,
	"bin":           model.KeywordOutputBin,
	"ppm":           model.KeywordPagesPerMinute,
	"ppm-color":     model.KeywordPagesPerMinuteClr,
	"color-mode":    model.KeywordColorMode,
	"darkness":      model.KeywordDarkness,
	"speed":         model.KeywordSpeed,
	"resolution":    model.KeywordResolution,
	"sheet-back":    model.KeywordSheetBack,
	"raster-type":   model.KeywordRasterType,
	"sides":         model.KeywordSides,
}

// ResolveKeyword resolves a short alias or a full capability keyword
// (case-insensitive) to the capability keyword.
func ResolveKeyword(name string) (string, bool) {
	lname := strings.ToLower(name)
	if kw, ok := keywordAliases[lname]; ok {
		return kw, true
	}
	if model.IsCapabilityKeyword(lname) {
		return lname, true
	}
	return "", false
}

// KeywordAlias returns the short alias for a capability keyword, or the
// keyword itself when it has none.
func KeywordAlias(keyword string) string {
	for alias, kw := range keywordAliases {
		if kw == keyword {
			return alias
		}
	}
	return keyword
}

// Aliases returns the known short names in sorted order.
func Aliases() []string {
	names := make([]string, 0, len(keywordAliases))
	for alias := range keywordAliases {
		names = append(names, alias)
	}
	slices.Sort(names)
	return names
}
