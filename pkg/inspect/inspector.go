package inspect

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/infraprint/infraprint-go/pkg/capability"
	"github.com/infraprint/infraprint-go/pkg/model"
)

// Source is the printer state an Inspector reads.
type Source interface {
	Name() string
	DriverData() capability.Descriptor
	OutputDevices() []*model.OutputDevice
	OutputDevice(id string) (*model.OutputDevice, error)
}

// Inspector provides read access to a printer's capabilities and devices.
type Inspector struct {
	source Source
}

// NewInspector creates a new inspector for a printer.
func NewInspector(source Source) *Inspector {
	return &Inspector{source: source}
}

// PrinterTree is a snapshot of a printer for display.
type PrinterTree struct {
	Name        string                `json:"name"`
	Fingerprint string                `json:"fingerprint"`
	Descriptor  capability.Descriptor `json:"capabilities"`
	Devices     []model.DeviceInfo    `json:"devices"`
}

// InspectPrinter returns a snapshot of the printer.
func (i *Inspector) InspectPrinter() *PrinterTree {
	d := i.source.DriverData()
	devices := i.source.OutputDevices()

	tree := &PrinterTree{
		Name:        i.source.Name(),
		Fingerprint: d.Fingerprint(),
		Descriptor:  d,
		Devices:     make([]model.DeviceInfo, len(devices)),
	}
	for n, od := range devices {
		tree.Devices[n] = od.Info()
	}
	return tree
}

// FindDevice looks up a device by ID, falling back to a unique name match.
func (i *Inspector) FindDevice(ref string) (*model.OutputDevice, error) {
	if od, err := i.source.OutputDevice(ref); err == nil {
		return od, nil
	}

	var match *model.OutputDevice
	for _, od := range i.source.OutputDevices() {
		if od.Name != ref {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("device name %q is ambiguous", ref)
		}
		match = od
	}
	if match == nil {
		return nil, fmt.Errorf("device %q not found", ref)
	}
	return match, nil
}

// ReadAttribute reads the attribute a full path refers to.
func (i *Inspector) ReadAttribute(path *Path) (*model.Attribute, error) {
	if path.IsPartial {
		return nil, fmt.Errorf("%w: path has no attribute", ErrInvalidPath)
	}

	od, err := i.FindDevice(path.DeviceID)
	if err != nil {
		return nil, err
	}

	for _, attr := range od.Attrs.Attributes() {
		if attr.Name == path.Attribute {
			return attr, nil
		}
	}
	return nil, fmt.Errorf("device %s has no attribute %s", path.DeviceID, path.Attribute)
}

// FormatPrinterTree formats a printer snapshot for display.
func (i *Inspector) FormatPrinterTree(tree *PrinterTree, f *Formatter) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Printer: %s\n", tree.Name))
	sb.WriteString(f.Indent(1, fmt.Sprintf("fingerprint: %s\n", tree.Fingerprint)))
	sb.WriteString("Capabilities:\n")
	sb.WriteString(f.FormatDescriptor(tree.Descriptor))
	sb.WriteString(fmt.Sprintf("Output devices (%d):\n", len(tree.Devices)))
	sb.WriteString(f.FormatDeviceList(tree.Devices))

	return sb.String()
}

// FormatDevice formats one output device with its attributes.
func (i *Inspector) FormatDevice(od *model.OutputDevice, f *Formatter) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Device: %s\n", od.Name))
	if f.ShowIDs {
		sb.WriteString(f.Indent(1, fmt.Sprintf("id: %s\n", od.ID)))
	}
	if od.URI != "" {
		sb.WriteString(f.Indent(1, fmt.Sprintf("uri: %s\n", od.URI)))
	}
	if !od.HasCapabilities() {
		sb.WriteString(f.Indent(1, "(not reporting capabilities)\n"))
		return sb.String()
	}
	sb.WriteString(f.FormatAttributeTable(AttributeRows(od.Attrs)))

	return sb.String()
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
