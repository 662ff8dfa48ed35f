package devicefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/infraprint/infraprint-go/pkg/model"
)

// ErrInvalidValue is the cause of a LoadError for a value that does not
// match its attribute's type.
var ErrInvalidValue = errors.New("invalid attribute value")

// document is the top-level layout of a device file.
type document struct {
	Name       string    `yaml:"name"`
	ID         string    `yaml:"id,omitempty"`
	URI        string    `yaml:"uri,omitempty"`
	Attributes yaml.Node `yaml:"attributes,omitempty"`
}

var (
	rangePattern      = regexp.MustCompile(`^(-?\d+)-(-?\d+)$`)
	resolutionPattern = regexp.MustCompile(`^(\d+)(?:x(\d+))?(dpi|dpcm)$`)
)

// Parse parses a device file from YAML bytes.
func Parse(data []byte) (*model.OutputDevice, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}

	if doc.Name == "" {
		return nil, &LoadError{
			Message: "device name is required",
		}
	}

	attrs, err := parseAttributes(&doc.Attributes)
	if err != nil {
		return nil, err
	}

	od := model.NewOutputDevice(doc.Name, doc.URI, attrs)
	od.ID = doc.ID
	return od, nil
}

// Load loads a device file.
func Load(path string) (*model.OutputDevice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			File:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}

	od, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{
			File:    path,
			Message: err.Error(),
		}
	}

	return od, nil
}

// LoadDirectory loads all device files from a directory in name order.
// Only files with .yaml or .yml extensions are loaded.
func LoadDirectory(dir string) ([]*model.OutputDevice, error) {
	var devices []*model.OutputDevice

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{
			File:    dir,
			Message: "failed to read directory",
			Cause:   err,
		}
	}

	for _, entry := range entries {
		if entry.IsDir() || !isDeviceFile(entry.Name()) {
			continue
		}

		od, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		devices = append(devices, od)
	}

	return devices, nil
}

func isDeviceFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// parseAttributes converts the attributes mapping into an AttributeSet,
// keeping file order. A missing mapping yields a device without
// capabilities.
func parseAttributes(node *yaml.Node) (*model.AttributeSet, error) {
	if node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null") {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, &LoadError{
			Line:    node.Line,
			Message: "attributes must be a mapping",
		}
	}

	attrs := model.NewAttributeSet()
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if err := parseAttribute(attrs, name, node.Content[i+1]); err != nil {
			return nil, err
		}
	}
	return attrs, nil
}

func parseAttribute(attrs *model.AttributeSet, name string, node *yaml.Node) error {
	tag, ok := model.CatalogueTag(name)
	if !ok {
		tag = model.TagKeyword
	}

	valueNode := node
	if node.Kind == yaml.MappingNode {
		explicit, values, err := explicitTag(name, node)
		if err != nil {
			return err
		}
		tag, valueNode = explicit, values
	}

	var items []*yaml.Node
	switch {
	case valueNode == nil:
		// Explicitly typed attribute without values.
	case valueNode.Kind == yaml.ScalarNode:
		items = []*yaml.Node{valueNode}
	case valueNode.Kind == yaml.SequenceNode && tag == model.TagRange && isPair(valueNode):
		items = []*yaml.Node{valueNode}
	case valueNode.Kind == yaml.SequenceNode:
		items = valueNode.Content
	default:
		return &LoadError{
			Line:    valueNode.Line,
			Message: fmt.Sprintf("%s: unsupported value layout", name),
		}
	}

	values := make([]model.Value, 0, len(items))
	for _, item := range items {
		v, err := parseValue(tag, item)
		if err != nil {
			return &LoadError{
				Line:    item.Line,
				Message: name,
				Cause:   err,
			}
		}
		values = append(values, v)
	}

	attrs.Add(name, tag, values...)
	return nil
}

// explicitTag reads a {tag, values} mapping.
func explicitTag(name string, node *yaml.Node) (model.ValueTag, *yaml.Node, error) {
	var tagNode, values *yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch key := node.Content[i].Value; key {
		case "tag":
			tagNode = node.Content[i+1]
		case "values":
			values = node.Content[i+1]
		default:
			return 0, nil, &LoadError{
				Line:    node.Content[i].Line,
				Message: fmt.Sprintf("%s: unknown key %q", name, key),
			}
		}
	}

	if tagNode == nil {
		return 0, nil, &LoadError{
			Line:    node.Line,
			Message: fmt.Sprintf("%s: tag is required", name),
		}
	}
	tag, ok := model.ParseValueTag(tagNode.Value)
	if !ok {
		return 0, nil, &LoadError{
			Line:    tagNode.Line,
			Message: fmt.Sprintf("%s: unknown tag %q", name, tagNode.Value),
		}
	}
	return tag, values, nil
}

// isPair reports whether node is a two-element sequence of integers, the
// [lo, hi] form of a single range.
func isPair(node *yaml.Node) bool {
	if len(node.Content) != 2 {
		return false
	}
	for _, n := range node.Content {
		if n.Kind != yaml.ScalarNode {
			return false
		}
		if _, err := strconv.Atoi(n.Value); err != nil {
			return false
		}
	}
	return true
}

func parseValue(tag model.ValueTag, node *yaml.Node) (model.Value, error) {
	if tag == model.TagRange && node.Kind == yaml.SequenceNode && isPair(node) {
		lower, _ := strconv.Atoi(node.Content[0].Value)
		upper, _ := strconv.Atoi(node.Content[1].Value)
		return rangeValue(lower, upper)
	}

	if node.Kind != yaml.ScalarNode {
		return model.Value{}, fmt.Errorf("%w: expected a scalar", ErrInvalidValue)
	}
	s := strings.TrimSpace(node.Value)

	switch tag {
	case model.TagInteger:
		n, err := strconv.Atoi(s)
		if err != nil {
			return model.Value{}, fmt.Errorf("%w: integer %q", ErrInvalidValue, s)
		}
		return model.IntegerValue(n), nil

	case model.TagRange:
		return parseRange(s)

	case model.TagResolution:
		return parseResolution(s)

	default:
		return model.StringValue(node.Value), nil
	}
}

func parseRange(s string) (model.Value, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return model.RangeValue(n, n), nil
	}
	m := rangePattern.FindStringSubmatch(s)
	if m == nil {
		return model.Value{}, fmt.Errorf("%w: range %q", ErrInvalidValue, s)
	}
	lower, _ := strconv.Atoi(m[1])
	upper, _ := strconv.Atoi(m[2])
	return rangeValue(lower, upper)
}

func rangeValue(lower, upper int) (model.Value, error) {
	if lower > upper {
		return model.Value{}, fmt.Errorf("%w: range %d-%d is inverted", ErrInvalidValue, lower, upper)
	}
	return model.RangeValue(lower, upper), nil
}

func parseResolution(s string) (model.Value, error) {
	m := resolutionPattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return model.Value{}, fmt.Errorf("%w: resolution %q", ErrInvalidValue, s)
	}
	x, _ := strconv.Atoi(m[1])
	y := x
	if m[2] != "" {
		y, _ = strconv.Atoi(m[2])
	}
	units := model.ResPerInch
	if m[3] == "dpcm" {
		units = model.ResPerCm
	}
	return model.ResolutionValue(x, y, units), nil
}

// Marshal encodes od as a device file. Every attribute is written in the
// explicit {tag, values} form so the file reads back identically regardless
// of the catalogue.
func Marshal(od *model.OutputDevice) ([]byte, error) {
	if od == nil {
		return nil, errors.New("devicefile: nil device")
	}

	root := &yaml.Node{Kind: yaml.MappingNode}
	addScalar(root, "name", od.Name)
	if od.ID != "" {
		addScalar(root, "id", od.ID)
	}
	if od.URI != "" {
		addScalar(root, "uri", od.URI)
	}

	if od.Attrs.Len() > 0 {
		attrs := &yaml.Node{Kind: yaml.MappingNode}
		for _, attr := range od.Attrs.Attributes() {
			entry := &yaml.Node{Kind: yaml.MappingNode}
			addScalar(entry, "tag", attr.Tag.String())

			values := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			for _, v := range attr.Values {
				values.Content = append(values.Content, stringNode(model.FormatValue(attr.Tag, v)))
			}
			entry.Content = append(entry.Content, stringNode("values"), values)

			attrs.Content = append(attrs.Content, stringNode(attr.Name), entry)
		}
		root.Content = append(root.Content, stringNode("attributes"), attrs)
	}

	return yaml.Marshal(root)
}

func addScalar(mapping *yaml.Node, key, value string) {
	mapping.Content = append(mapping.Content, stringNode(key), stringNode(value))
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
