// Package inspect renders infrastructure printer state for humans: the
// aggregated capability descriptor, the output device registry and the
// attributes of individual devices.
//
// The inspect package offers:
//   - Parsing path expressions (e.g., "zebra-1/media")
//   - Resolving short attribute names to capability keywords
//   - Reading devices and attributes from a printer
//   - Formatting output for display
package inspect

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Path errors.
var (
	ErrEmptyPath   = errors.New("empty path")
	ErrInvalidPath = errors.New("invalid path format")
)

// keywordPattern matches attribute names outside the capability catalogue.
var keywordPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Path represents a parsed inspection path.
// Format: device[/attribute]
type Path struct {
	// DeviceID is the output device identifier.
	DeviceID string

	// Attribute is the attribute name. Short aliases are resolved to the
	// capability keyword.
	Attribute string

	// IsPartial indicates the path doesn't include an attribute
	// (used to show all attributes of a device).
	IsPartial bool

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path string into a Path struct.
//
// Supported formats:
//   - "device" - partial (for listing attributes)
//   - "device/attribute" - a single attribute
//
// Attributes can be full keywords ("media-supported"), short aliases
// ("media") or names outside the catalogue ("printer-location").
func ParsePath(input string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}

	// Check for invalid patterns
	if strings.HasPrefix(input, "/") || strings.HasSuffix(input, "/") || strings.Contains(input, "//") {
		return nil, ErrInvalidPath
	}

	parts := strings.Split(input, "/")
	if len(parts) > 2 {
		return nil, fmt.Errorf("%w: too many segments", ErrInvalidPath)
	}

	p := &Path{Raw: input, DeviceID: parts[0]}
	if len(parts) == 1 {
		p.IsPartial = true
		return p, nil
	}

	attr, err := parseAttributeName(parts[1])
	if err != nil {
		return nil, fmt.Errorf("attribute: %w", err)
	}
	p.Attribute = attr

	return p, nil
}

// String returns the path as a string.
func (p *Path) String() string {
	if p.IsPartial {
		return p.DeviceID
	}
	return p.DeviceID + "/" + p.Attribute
}

// parseAttributeName resolves an alias or keyword, accepting well-formed
// names outside the catalogue as-is.
func parseAttributeName(s string) (string, error) {
	if kw, ok := ResolveKeyword(s); ok {
		return kw, nil
	}
	if lower := strings.ToLower(s); keywordPattern.MatchString(lower) {
		return lower, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPath, s)
}
