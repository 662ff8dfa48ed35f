package inspect

import (
	"errors"
	"testing"

	"github.com/infraprint/infraprint-go/pkg/model"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		deviceID  string
		attribute string
		partial   bool
	}{
		{
			name:     "device only",
			input:    "zebra-1",
			deviceID: "zebra-1",
			partial:  true,
		},
		{
			name:      "alias",
			input:     "zebra-1/media",
			deviceID:  "zebra-1",
			attribute: model.KeywordMedia,
		},
		{
			name:      "full keyword",
			input:     "zebra-1/print-speed-supported",
			deviceID:  "zebra-1",
			attribute: model.KeywordSpeed,
		},
		{
			name:      "case insensitive alias",
			input:     "zebra-1/Darkness",
			deviceID:  "zebra-1",
			attribute: model.KeywordDarkness,
		},
		{
			name:      "uncatalogued attribute",
			input:     "zebra-1/printer-location",
			deviceID:  "zebra-1",
			attribute: "printer-location",
		},
		{
			name:     "whitespace trimmed",
			input:    "  laser  ",
			deviceID: "laser",
			partial:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePath(tt.input)
			if err != nil {
				t.Fatalf("ParsePath(%q) error = %v", tt.input, err)
			}
			if p.DeviceID != tt.deviceID {
				t.Errorf("DeviceID = %q, want %q", p.DeviceID, tt.deviceID)
			}
			if p.Attribute != tt.attribute {
				t.Errorf("Attribute = %q, want %q", p.Attribute, tt.attribute)
			}
			if p.IsPartial != tt.partial {
				t.Errorf("IsPartial = %v, want %v", p.IsPartial, tt.partial)
			}
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmptyPath},
		{"blank", "   ", ErrEmptyPath},
		{"leading slash", "/media", ErrInvalidPath},
		{"trailing slash", "zebra/", ErrInvalidPath},
		{"double slash", "zebra//media", ErrInvalidPath},
		{"too many segments", "zebra/media/extra", ErrInvalidPath},
		{"bad attribute", "zebra/media supported", ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePath(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParsePath(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestPathString(t *testing.T) {
	for _, input := range []string{"zebra-1", "zebra-1/" + model.KeywordMedia} {
		p, err := ParsePath(input)
		if err != nil {
			t.Fatalf("ParsePath(%q) error = %v", input, err)
		}
		if p.String() != input {
			t.Errorf("String() = %q, want %q", p.String(), input)
		}
	}
}
