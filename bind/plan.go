// Package bind implements the binding validator: matching a caller-supplied
// schema.RecordShape against a header.Element's properties to build an
// immutable Plan, paid once per element and reused for every record of that
// element. This separates one-time configuration validation from the
// per-record hot path, the same separation of concerns a well-layered
// codec keeps between building a decoder and driving it.
package bind

import (
	"github.com/plyio/ply/errs"
	"github.com/plyio/ply/header"
	"github.com/plyio/ply/schema"
)

// EntryKind discriminates the two PlanEntry shapes.
type EntryKind uint8

const (
	Deliver EntryKind = iota
	Skip
)

// PlanEntry is one position in a FieldPlan, corresponding 1:1 to the
// element's properties in order.
type PlanEntry struct {
	Kind EntryKind

	// Property is always set: the element property this entry advances past.
	Property header.Property

	// TargetName, IsOptional are meaningful only when Kind == Deliver.
	TargetName string
	IsOptional bool
}

// Plan is the immutable, per-element binding result. It is built once per
// element per decode/encode call and reused for every record.
type Plan struct {
	Entries []PlanEntry

	// DefaultTargets are shape targets with HasDefault that had no matching
	// property; the decoder presents the default path for each, once per
	// record.
	DefaultTargets []string

	// AbsentTargets are shape targets with Optional that had no matching
	// property; the decoder signals "field absent" for each, once per record.
	AbsentTargets []string
}

// Build matches shape against elem's properties in property order and
// returns the resulting Plan, or a *errs.FieldMismatch if the shape cannot
// be satisfied.
func Build(elem *header.Element, shape schema.RecordShape) (*Plan, error) {
	fields := shape.Fields()
	matched := make([]bool, len(fields))

	entries := make([]PlanEntry, len(elem.Properties))

	for i, prop := range elem.Properties {
		targetIdx := matchName(fields, prop.Name)

		if targetIdx >= 0 {
			matched[targetIdx] = true
			target := fields[targetIdx]

			if !target.Skip {
				if target.IsList != prop.IsList {
					return nil, &errs.FieldMismatch{
						Element: elem.Name,
						Present: prop.Name,
						Kind:    errs.KindListVsScalar,
					}
				}

				entries[i] = PlanEntry{
					Kind:       Deliver,
					Property:   prop,
					TargetName: target.PrimaryName,
					IsOptional: target.Optional,
				}

				continue
			}
		}

		entries[i] = PlanEntry{Kind: Skip, Property: prop}
	}

	plan := &Plan{Entries: entries}

	for i, target := range fields {
		if matched[i] || target.Skip {
			continue
		}

		switch {
		case target.HasDefault:
			plan.DefaultTargets = append(plan.DefaultTargets, target.PrimaryName)
		case target.Optional:
			plan.AbsentTargets = append(plan.AbsentTargets, target.PrimaryName)
		default:
			return nil, &errs.FieldMismatch{
				Element: elem.Name,
				Missing: target.PrimaryName,
				Kind:    errs.KindRequiredMissing,
			}
		}
	}

	return plan, nil
}

// matchName returns the index of the first field in fields whose primary
// name or any alias equals name, or -1.
func matchName(fields []schema.FieldTarget, name string) int {
	for i, f := range fields {
		if f.PrimaryName == name {
			return i
		}
		for _, alias := range f.Aliases {
			if alias == name {
				return i
			}
		}
	}

	return -1
}

// elementSignature produces a stable string describing an element's
// property layout, used as one half of the PlanCache memoization key.
func elementSignature(elem *header.Element) string {
	var b []byte
	for _, p := range elem.Properties {
		b = append(b, p.Name...)
		b = append(b, '\x00')
		if p.IsList {
			b = append(b, 'L', byte(p.CountKind), byte(p.ItemKind))
		} else {
			b = append(b, 'S', byte(p.Kind))
		}
		b = append(b, '\x01')
	}

	return string(b)
}

// shapeSignature produces a stable string describing a RecordShape's target
// fields, used as the other half of the PlanCache memoization key.
func shapeSignature(shape schema.RecordShape) string {
	var b []byte
	for _, f := range shape.Fields() {
		b = append(b, f.PrimaryName...)
		b = append(b, '\x00')
		for _, a := range f.Aliases {
			b = append(b, a...)
			b = append(b, ',')
		}
		b = append(b, '\x00')
		b = append(b, boolByte(f.Optional), boolByte(f.HasDefault), boolByte(f.Skip), boolByte(f.IsList))
		b = append(b, '\x01')
	}

	return string(b)
}

func boolByte(v bool) byte {
	if v {
		return 1
	}

	return 0
}

// signatureOf returns the two halves of the PlanCache memoization key for
// (elem, shape). Kept as a plain function, not a Plan method, so Build
// itself never pays for signature construction unless a cache asks for it.
func signatureOf(elem *header.Element, shape schema.RecordShape) (string, string) {
	return elementSignature(elem), shapeSignature(shape)
}
