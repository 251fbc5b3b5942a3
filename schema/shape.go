// Package schema declares the abstract schema-driven visitor contract that
// the binding and decoding layers consume. It is intentionally thin: field
// names, renames, aliases, defaults, optional fields, and per-field
// conversion hooks belong to a caller-supplied record-shape framework, out
// of scope for this module. This package only fixes the interface the core
// needs to drive that framework.
package schema

import "github.com/plyio/ply/format"

// Value is the union of scalar value kinds the core ever hands to a visitor
// or reads from an emitter: any of the eight PLY scalar widths, or a slice of
// one of those kinds for a list property.
//
// The core always delivers the declared PLY scalar kind unless the shape
// itself performs a conversion; this module never coerces between widths.
type Value = any

// FieldTarget describes one field a RecordShape expects to bind against an
// Element's properties.
type FieldTarget struct {
	// PrimaryName is the field's canonical name, matched against a property's
	// declared name.
	PrimaryName string
	// Aliases are additional accepted property names, checked after PrimaryName.
	Aliases []string
	// Optional means the decoder may signal "field absent" rather than fail
	// if no property matches.
	Optional bool
	// HasDefault means the decoder presents the shape's default path rather
	// than fail if no property matches.
	HasDefault bool
	// Skip means this target is not bound to a property at all; matching
	// properties are read but never delivered on decode, and on encode the
	// writer emits the zero value of the property's kind for them without
	// asking the emitter.
	Skip bool
	// IsList is true when the target expects a list of values.
	IsList bool
}

// RecordShape is the caller-declared description of one element's expected
// record layout. A RecordShape is constructed once per element per
// decode/encode call.
type RecordShape interface {
	// Fields returns the ordered set of expected target fields for this shape.
	Fields() []FieldTarget
}

// RecordVisitor receives decoded field values for a single record, in
// property order of the element (not the order of RecordShape.Fields()).
type RecordVisitor interface {
	// Deliver hands one decoded scalar or list value to the visitor under the
	// given target's primary name.
	Deliver(target string, kind format.ScalarKind, value Value) error
	// Absent signals that an optional target had no matching property.
	Absent(target string) error
	// UseDefault signals that a has-default target had no matching property.
	UseDefault(target string) error
	// Close finalizes the record. Called exactly once after all Deliver/
	// Absent/UseDefault calls for a record have been made.
	Close() error
}

// RecordEmitter is the write-side mirror of RecordVisitor: for each property
// of the element, in property order, the writer asks the emitter for the
// value to encode.
type RecordEmitter interface {
	// Value returns the scalar or list value to encode for the named target.
	Value(target string, kind format.ScalarKind, isList bool) (Value, error)
}

// VisitorFactory and EmitterFactory are provided by the caller's record-shape
// framework to produce one visitor/emitter per record. The core calls these
// once per record; how the returned value is materialized into the caller's
// actual record type is entirely up to that external framework.
type (
	VisitorFactory func() RecordVisitor
	EmitterFactory func(recordIndex int) RecordEmitter
)
