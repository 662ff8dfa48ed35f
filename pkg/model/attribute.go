package model

import (
	"fmt"
	"slices"
)

// ValueTag identifies the type of the values held by an attribute.
type ValueTag uint8

const (
	// TagZero matches any string-like tag (keyword or name) when passed to Find.
	// Attributes are never stored with this tag.
	TagZero ValueTag = iota
	TagKeyword
	TagName
	TagInteger
	TagRange
	TagResolution
)

// String returns the tag name.
func (t ValueTag) String() string {
	names := []string{"zero", "keyword", "name", "integer", "rangeOfInteger", "resolution"}
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// ParseValueTag maps a tag name (as used in device files) to a ValueTag.
func ParseValueTag(s string) (ValueTag, bool) {
	switch s {
	case "keyword":
		return TagKeyword, true
	case "name", "text", "string":
		return TagName, true
	case "integer", "int":
		return TagInteger, true
	case "range", "rangeOfInteger":
		return TagRange, true
	case "resolution":
		return TagResolution, true
	default:
		return TagZero, false
	}
}

// isStringTag reports whether values with this tag carry a string.
func (t ValueTag) isStringTag() bool {
	return t == TagKeyword || t == TagName
}

// ResUnits is the unit of a resolution value.
type ResUnits uint8

const (
	// ResPerInch is dots per inch.
	ResPerInch ResUnits = iota
	// ResPerCm is dots per centimeter.
	ResPerCm
)

// String returns the unit suffix.
func (u ResUnits) String() string {
	if u == ResPerCm {
		return "dpcm"
	}
	return "dpi"
}

// Value is a single attribute value. Which fields are meaningful depends on the
// owning attribute's tag.
type Value struct {
	Str   string   `json:"str,omitempty"`
	Int   int      `json:"int,omitempty"`
	Lower int      `json:"lower,omitempty"`
	Upper int      `json:"upper,omitempty"`
	XRes  int      `json:"xres,omitempty"`
	YRes  int      `json:"yres,omitempty"`
	Units ResUnits `json:"units,omitempty"`
}

// StringValue returns a string value.
func StringValue(s string) Value { return Value{Str: s} }

// IntegerValue returns an integer value.
func IntegerValue(i int) Value { return Value{Int: i} }

// RangeValue returns a rangeOfInteger value.
func RangeValue(lower, upper int) Value { return Value{Lower: lower, Upper: upper} }

// ResolutionValue returns a resolution value.
func ResolutionValue(x, y int, units ResUnits) Value {
	return Value{XRes: x, YRes: y, Units: units}
}

// Attribute is a named, typed list of values advertised by an output device.
type Attribute struct {
	Name   string
	Tag    ValueTag
	Values []Value
}

// Count returns the number of values.
func (a *Attribute) Count() int {
	if a == nil {
		return 0
	}
	return len(a.Values)
}

// GetString returns the i'th value as a string.
// Returns false if the attribute is not string-typed or i is out of range.
func (a *Attribute) GetString(i int) (string, bool) {
	if a == nil || !a.Tag.isStringTag() || i < 0 || i >= len(a.Values) {
		return "", false
	}
	return a.Values[i].Str, true
}

// GetInteger returns the i'th integer value, or 0.
func (a *Attribute) GetInteger(i int) int {
	if a == nil || a.Tag != TagInteger || i < 0 || i >= len(a.Values) {
		return 0
	}
	return a.Values[i].Int
}

// GetRange returns the i'th range value, or 0, 0.
func (a *Attribute) GetRange(i int) (lower, upper int) {
	if a == nil || a.Tag != TagRange || i < 0 || i >= len(a.Values) {
		return 0, 0
	}
	return a.Values[i].Lower, a.Values[i].Upper
}

// GetResolution returns the i'th resolution value.
func (a *Attribute) GetResolution(i int) (x, y int, units ResUnits) {
	if a == nil || a.Tag != TagResolution || i < 0 || i >= len(a.Values) {
		return 0, 0, ResPerInch
	}
	v := a.Values[i]
	return v.XRes, v.YRes, v.Units
}

// ContainsInteger reports whether an integer or range attribute includes v.
func (a *Attribute) ContainsInteger(v int) bool {
	if a == nil {
		return false
	}
	for _, val := range a.Values {
		switch a.Tag {
		case TagInteger:
			if val.Int == v {
				return true
			}
		case TagRange:
			if v >= val.Lower && v <= val.Upper {
				return true
			}
		}
	}
	return false
}

// ContainsString reports whether a string-typed attribute includes s.
func (a *Attribute) ContainsString(s string) bool {
	if a == nil || !a.Tag.isStringTag() {
		return false
	}
	for _, val := range a.Values {
		if val.Str == s {
			return true
		}
	}
	return false
}

// AttributeSet is the set of capability attributes advertised by one device.
// It is not safe for concurrent mutation; output devices replace their set
// wholesale instead of editing it in place.
type AttributeSet struct {
	attrs map[string]*Attribute
	order []string
}

// NewAttributeSet creates an empty attribute set.
func NewAttributeSet() *AttributeSet {
	return &AttributeSet{attrs: make(map[string]*Attribute)}
}

// Len returns the number of attributes.
func (s *AttributeSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.attrs)
}

// Add stores an attribute, replacing any attribute with the same name. The
// zero AttributeSet is ready to use.
func (s *AttributeSet) Add(name string, tag ValueTag, values ...Value) *Attribute {
	if tag == TagZero {
		tag = TagKeyword
	}
	if s.attrs == nil {
		s.attrs = make(map[string]*Attribute)
	}
	attr := &Attribute{Name: name, Tag: tag, Values: slices.Clone(values)}
	if _, exists := s.attrs[name]; !exists {
		s.order = append(s.order, name)
	}
	s.attrs[name] = attr
	return attr
}

// AddStrings adds a string-typed attribute.
func (s *AttributeSet) AddStrings(name string, tag ValueTag, values ...string) *Attribute {
	vals := make([]Value, len(values))
	for i, v := range values {
		vals[i] = StringValue(v)
	}
	return s.Add(name, tag, vals...)
}

// AddIntegers adds an integer attribute.
func (s *AttributeSet) AddIntegers(name string, values ...int) *Attribute {
	vals := make([]Value, len(values))
	for i, v := range values {
		vals[i] = IntegerValue(v)
	}
	return s.Add(name, TagInteger, vals...)
}

// AddRange adds a single-valued rangeOfInteger attribute.
func (s *AttributeSet) AddRange(name string, lower, upper int) *Attribute {
	return s.Add(name, TagRange, RangeValue(lower, upper))
}

// Remove deletes an attribute by name.
func (s *AttributeSet) Remove(name string) {
	if _, exists := s.attrs[name]; !exists {
		return
	}
	delete(s.attrs, name)
	s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })
}

// Find returns the named attribute if it exists with the given tag.
// TagZero matches any string-like tag. Returns nil when absent or mistyped.
func (s *AttributeSet) Find(name string, tag ValueTag) *Attribute {
	if s == nil {
		return nil
	}
	attr, exists := s.attrs[name]
	if !exists {
		return nil
	}
	if tag == TagZero {
		if attr.Tag.isStringTag() {
			return attr
		}
		return nil
	}
	if attr.Tag != tag {
		return nil
	}
	return attr
}

// Names returns attribute names in insertion order.
func (s *AttributeSet) Names() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.order)
}

// Attributes returns the attributes in insertion order.
func (s *AttributeSet) Attributes() []*Attribute {
	if s == nil {
		return nil
	}
	result := make([]*Attribute, 0, len(s.order))
	for _, name := range s.order {
		result = append(result, s.attrs[name])
	}
	return result
}

// Clone returns a deep copy of the set.
func (s *AttributeSet) Clone() *AttributeSet {
	if s == nil {
		return nil
	}
	c := NewAttributeSet()
	for _, attr := range s.Attributes() {
		c.Add(attr.Name, attr.Tag, attr.Values...)
	}
	return c
}

// FormatValue renders a value according to tag, as written in device files.
func FormatValue(tag ValueTag, v Value) string {
	switch tag {
	case TagInteger:
		return fmt.Sprintf("%d", v.Int)
	case TagRange:
		return fmt.Sprintf("%d-%d", v.Lower, v.Upper)
	case TagResolution:
		if v.XRes == v.YRes {
			return fmt.Sprintf("%d%s", v.XRes, v.Units)
		}
		return fmt.Sprintf("%dx%d%s", v.XRes, v.YRes, v.Units)
	default:
		return v.Str
	}
}
