// Package header implements the PLY header data model and its ASCII
// parser/writer: a plain data struct with a symmetric Parse/Bytes pair and
// invariants checked at the boundaries (TryParse validates what it parses,
// Bytes runs Validate before emitting).
package header

import "github.com/plyio/ply/format"

// Property is a tagged sum: either a fixed-width scalar or a length-prefixed
// list. Exactly one of the two shapes is valid per Property; IsList
// discriminates them.
type Property struct {
	Name string

	// IsList discriminates the two Property shapes.
	IsList bool

	// Kind is the scalar's kind when IsList is false.
	Kind format.ScalarKind

	// CountKind is the list's length-prefix kind when IsList is true. Must be
	// an unsigned integer kind.
	CountKind format.ScalarKind
	// ItemKind is the list's element kind when IsList is true.
	ItemKind format.ScalarKind
}

// Scalar constructs a scalar Property.
func Scalar(name string, kind format.ScalarKind) Property {
	return Property{Name: name, Kind: kind}
}

// List constructs a list Property.
func List(name string, countKind, itemKind format.ScalarKind) Property {
	return Property{Name: name, IsList: true, CountKind: countKind, ItemKind: itemKind}
}

// Element is a named record type with a declared count and an ordered,
// name-unique sequence of properties. Property order is the body layout
// order and must be preserved across decode/encode.
type Element struct {
	Name       string
	Count      uint64
	Properties []Property
}

// PropertyIndex returns the index of the named property within e, or -1.
func (e *Element) PropertyIndex(name string) int {
	for i, p := range e.Properties {
		if p.Name == name {
			return i
		}
	}

	return -1
}

// FixedRecordSize returns the byte size of one binary record, and true, if
// the element has no list properties (a prerequisite for a pure-arithmetic
// record-boundary test rather than a byte-by-byte scan).
func (e *Element) FixedRecordSize() (int, bool) {
	size := 0
	for _, p := range e.Properties {
		if p.IsList {
			return 0, false
		}
		size += p.Kind.Size()
	}

	return size, true
}

// Header is the in-memory representation of a parsed or caller-constructed
// PLY header. Element order is body stream order. Element names need not be
// unique; duplicates are matched positionally via ElementAt/ElementIndex.
type Header struct {
	Format   format.Format
	Version  string
	Elements []Element
	Comments []string
	ObjInfo  []string
}

// Element returns the first element named name, and true if found.
func (h *Header) Element(name string) (*Element, bool) {
	for i := range h.Elements {
		if h.Elements[i].Name == name {
			return &h.Elements[i], true
		}
	}

	return nil, false
}

// ElementAt returns the occurrence-th (0-based) element named name, in
// header order, disambiguating duplicate element names.
func (h *Header) ElementAt(name string, occurrence int) (*Element, bool) {
	seen := 0
	for i := range h.Elements {
		if h.Elements[i].Name == name {
			if seen == occurrence {
				return &h.Elements[i], true
			}
			seen++
		}
	}

	return nil, false
}

// ElementIndex returns the position of the occurrence-th element named name
// within h.Elements, or -1.
func (h *Header) ElementIndex(name string, occurrence int) int {
	seen := 0
	for i := range h.Elements {
		if h.Elements[i].Name == name {
			if seen == occurrence {
				return i
			}
			seen++
		}
	}

	return -1
}
