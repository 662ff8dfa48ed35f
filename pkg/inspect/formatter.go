package inspect

import (
	"fmt"
	"strings"

	"github.com/infraprint/infraprint-go/pkg/capability"
	"github.com/infraprint/infraprint-go/pkg/model"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowMetadata includes value tags in attribute tables
	ShowMetadata bool

	// ShowIDs includes device IDs in listings
	ShowIDs bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowMetadata: true,
		ShowIDs:      true,
		IndentWidth:  2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	indent := strings.Repeat(" ", depth*width)
	return indent + content
}

// FormatMargin formats a margin in hundredths of millimeters.
func FormatMargin(hundredths int) string {
	return fmt.Sprintf("%d (%.2f mm)", hundredths, float64(hundredths)/100.0)
}

// FormatRange formats a (min, max) pair.
func FormatRange(r [2]int) string {
	return fmt.Sprintf("%d-%d", r[0], r[1])
}

// FormatResolution formats a resolution in dots per inch.
func FormatResolution(r capability.Resolution) string {
	if r.X == r.Y {
		return fmt.Sprintf("%ddpi", r.X)
	}
	return fmt.Sprintf("%dx%ddpi", r.X, r.Y)
}

// FormatList joins values for display, or "(none)" when empty.
func FormatList(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}

// FormatAttribute formats all values of an attribute.
func FormatAttribute(attr *model.Attribute) string {
	if attr.Count() == 0 {
		return "(none)"
	}
	values := make([]string, len(attr.Values))
	for i, v := range attr.Values {
		values[i] = model.FormatValue(attr.Tag, v)
	}
	return strings.Join(values, ", ")
}

// DescriptorRow is one labelled line of a descriptor listing.
type DescriptorRow struct {
	Label string
	Value string
}

// DescriptorRows flattens a descriptor into labelled rows in display order.
func DescriptorRows(d capability.Descriptor) []DescriptorRow {
	resolutions := make([]string, len(d.Resolutions))
	for i, r := range d.Resolutions {
		resolutions[i] = FormatResolution(r)
	}

	ppm := fmt.Sprintf("%d", d.PPM)
	if d.PPMColor > 0 {
		ppm += fmt.Sprintf(" (color %d)", d.PPMColor)
	}

	return []DescriptorRow{
		{"make-and-model", d.MakeAndModel},
		{"format", d.Format},
		{"media", FormatList(d.Media)},
		{"sources", FormatList(d.Sources)},
		{"types", FormatList(d.Types)},
		{"bins", FormatList(d.Bins)},
		{"features", FormatList(d.Features)},
		{"color-modes", d.ColorModes.String()},
		{"raster-types", d.RasterTypes.String()},
		{"sides", d.Sides.String()},
		{"identify", d.Identify.String()},
		{"tracking", d.Tracking.String()},
		{"label-modes", d.LabelModes.String()},
		{"resolutions", FormatList(resolutions)},
		{"duplex", d.Duplex.String()},
		{"margin-bottom-top", FormatMargin(d.BottomTop)},
		{"margin-left-right", FormatMargin(d.LeftRight)},
		{"borderless", fmt.Sprintf("%t", d.Borderless)},
		{"speed", FormatRange(d.SpeedSupported)},
		{"darkness", fmt.Sprintf("%d", d.Darkness)},
		{"tear-offset", FormatRange(d.TearOffset)},
		{"ppm", ppm},
	}
}

// FormatDescriptor formats a descriptor as an aligned listing.
func (f *Formatter) FormatDescriptor(d capability.Descriptor) string {
	rows := DescriptorRows(d)

	width := 0
	for _, row := range rows {
		width = max(width, len(row.Label))
	}

	var sb strings.Builder
	for _, row := range rows {
		if row.Value == "" {
			continue
		}
		line := fmt.Sprintf("%-*s  %s", width+1, row.Label+":", row.Value)
		sb.WriteString(f.Indent(1, line))
		sb.WriteString("\n")
	}
	if len(d.VendorData) > 0 {
		sb.WriteString(f.Indent(1, "vendor-data:\n"))
		for _, key := range sortedKeys(d.VendorData) {
			sb.WriteString(f.Indent(2, fmt.Sprintf("%s: %s\n", key, d.VendorData[key])))
		}
	}
	return sb.String()
}

// FormatDeviceList formats an output device listing.
func (f *Formatter) FormatDeviceList(devices []model.DeviceInfo) string {
	if len(devices) == 0 {
		return f.Indent(1, "(no output devices)") + "\n"
	}

	var sb strings.Builder
	for _, d := range devices {
		line := d.Name
		if f.ShowIDs {
			line = fmt.Sprintf("[%s] %s", d.ID, d.Name)
		}
		if d.URI != "" {
			line += " " + d.URI
		}
		line += fmt.Sprintf(" (%d attributes)", d.Attributes)
		sb.WriteString(f.Indent(1, line))
		sb.WriteString("\n")
	}
	return sb.String()
}

// AttributeRow represents a formatted attribute for display.
type AttributeRow struct {
	Name  string
	Value string
	Type  string
}

// AttributeRows converts an attribute set into display rows in set order.
func AttributeRows(attrs *model.AttributeSet) []AttributeRow {
	var rows []AttributeRow
	for _, attr := range attrs.Attributes() {
		rows = append(rows, AttributeRow{
			Name:  attr.Name,
			Value: FormatAttribute(attr),
			Type:  attr.Tag.String(),
		})
	}
	return rows
}

// FormatAttributeTable formats a list of attributes as a table.
func (f *Formatter) FormatAttributeTable(rows []AttributeRow) string {
	if len(rows) == 0 {
		return "  (no attributes)"
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("  %s: %s", row.Name, row.Value))
		if f.ShowMetadata && row.Type != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", row.Type))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
