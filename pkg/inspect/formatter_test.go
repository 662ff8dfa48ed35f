package inspect

import (
	"strings"
	"testing"

	"github.com/infraprint/infraprint-go/pkg/capability"
	"github.com/infraprint/infraprint-go/pkg/model"
)

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"margin", FormatMargin(423), "423 (4.23 mm)"},
		{"zero margin", FormatMargin(0), "0 (0.00 mm)"},
		{"range", FormatRange([2]int{-10, 20}), "-10-20"},
		{"square resolution", FormatResolution(capability.Resolution{X: 300, Y: 300}), "300dpi"},
		{"rect resolution", FormatResolution(capability.Resolution{X: 300, Y: 600}), "300x600dpi"},
		{"empty list", FormatList(nil), "(none)"},
		{"list", FormatList([]string{"a", "b"}), "a, b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}

func TestFormatAttribute(t *testing.T) {
	attrs := model.NewAttributeSet()
	res := attrs.Add(model.KeywordResolution, model.TagResolution,
		model.ResolutionValue(203, 203, model.ResPerInch),
		model.ResolutionValue(118, 236, model.ResPerCm))
	empty := attrs.AddStrings(model.KeywordMedia, model.TagKeyword)

	if got := FormatAttribute(res); got != "203dpi, 118x236dpcm" {
		t.Errorf("FormatAttribute(res) = %q", got)
	}
	if got := FormatAttribute(empty); got != "(none)" {
		t.Errorf("FormatAttribute(empty) = %q", got)
	}
}

func TestFormatDescriptor(t *testing.T) {
	f := NewFormatter()
	d := capability.Descriptor{
		MakeAndModel:   "Infra",
		Media:          []string{"roll_max_4x6in"},
		ColorModes:     capability.ColorModeBiLevel,
		Resolutions:    []capability.Resolution{{X: 203, Y: 203}},
		Borderless:     true,
		SpeedSupported: [2]int{0, 12},
		PPM:            20,
		PPMColor:       8,
		VendorData:     map[string]string{"z": "1", "a": "2"},
	}

	out := f.FormatDescriptor(d)

	for _, want := range []string{
		"make-and-model:",
		"Infra",
		"roll_max_4x6in",
		"bi-level",
		"203dpi",
		"borderless:",
		"true",
		"0-12",
		"20 (color 8)",
		"vendor-data:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatDescriptor() missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "format:") {
		t.Error("empty format should be omitted")
	}
	if strings.Index(out, "a: 2") > strings.Index(out, "z: 1") {
		t.Error("vendor data should be sorted")
	}
}

func TestFormatDeviceList(t *testing.T) {
	f := NewFormatter()

	if got := f.FormatDeviceList(nil); !strings.Contains(got, "(no output devices)") {
		t.Errorf("FormatDeviceList(nil) = %q", got)
	}

	devices := []model.DeviceInfo{
		{ID: "dev-1", Name: "zebra", URI: "ipp://zebra.local/ipp/print", Attributes: 4},
	}
	got := f.FormatDeviceList(devices)
	if !strings.Contains(got, "[dev-1] zebra ipp://zebra.local/ipp/print (4 attributes)") {
		t.Errorf("FormatDeviceList() = %q", got)
	}

	f.ShowIDs = false
	if got := f.FormatDeviceList(devices); strings.Contains(got, "dev-1") {
		t.Errorf("FormatDeviceList() without IDs = %q", got)
	}
}

func TestFormatAttributeTable(t *testing.T) {
	f := NewFormatter()

	if got := f.FormatAttributeTable(nil); got != "  (no attributes)" {
		t.Errorf("FormatAttributeTable(nil) = %q", got)
	}

	attrs := model.NewAttributeSet()
	attrs.AddIntegers(model.KeywordDarkness, 30)
	rows := AttributeRows(attrs)

	got := f.FormatAttributeTable(rows)
	if got != "  print-darkness-supported: 30 (integer)\n" {
		t.Errorf("FormatAttributeTable() = %q", got)
	}

	f.ShowMetadata = false
	got = f.FormatAttributeTable(rows)
	if got != "  print-darkness-supported: 30\n" {
		t.Errorf("FormatAttributeTable() without metadata = %q", got)
	}
}

func TestIndent(t *testing.T) {
	f := &Formatter{}
	if got := f.Indent(2, "x"); got != "    x" {
		t.Errorf("Indent(2) = %q", got)
	}
	f.IndentWidth = 4
	if got := f.Indent(1, "x"); got != "    x" {
		t.Errorf("Indent(1) with width 4 = %q", got)
	}
}
