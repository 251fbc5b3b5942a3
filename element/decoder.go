// Package element implements the per-element record decoder and encoder:
// built once per (header.Element, schema.RecordShape) pair with a single
// codec.Codec chosen for the header's Format, then driven once per record.
// This is the layer bind.Plan and codec.Codec are assembled into something
// that actually walks bytes and calls a schema.RecordVisitor.
package element

import (
	"bytes"
	"strconv"

	"github.com/plyio/ply/bind"
	"github.com/plyio/ply/codec"
	"github.com/plyio/ply/errs"
	"github.com/plyio/ply/format"
	"github.com/plyio/ply/header"
	"github.com/plyio/ply/schema"
)

// DefaultListSafetyCap bounds a decoded list property's declared length
// before any allocation is attempted, guarding against a corrupt or
// adversarial count prefix demanding an implausible allocation.
const DefaultListSafetyCap = uint64(1<<31 - 1)

// Decoder decodes successive records of one Element using a fixed Codec and
// bind.Plan. Construct one Decoder per element per decode pass; Decode is
// then safe to call once per record in sequence.
type Decoder struct {
	elem          *header.Element
	codec         codec.Codec
	plan          *bind.Plan
	listSafetyCap uint64
}

// NewDecoder builds the Plan for (elem, shape) and returns a Decoder that
// applies it using c. If cache is non-nil, the Plan is memoized across
// repeated (elem, shape) pairs.
func NewDecoder(elem *header.Element, shape schema.RecordShape, c codec.Codec, cache *bind.PlanCache) (*Decoder, error) {
	plan, err := bind.BuildCached(cache, elem, shape)
	if err != nil {
		return nil, err
	}

	return &Decoder{elem: elem, codec: c, plan: plan, listSafetyCap: DefaultListSafetyCap}, nil
}

// SetListSafetyCap overrides the default maximum accepted list length.
func (d *Decoder) SetListSafetyCap(limit uint64) { d.listSafetyCap = limit }

// RecordSize reports how many bytes of src the next record occupies,
// without decoding any value or touching a visitor. The caller must
// establish this before opening a visitor at all: opening one against a
// buffer that might not hold a complete record would deliver field values
// the caller can observe, then silently abandon when the attempt turns out
// to be short and gets retried once more bytes arrive.
//
// ASCII records are bounded by their terminating '\n': record completeness
// never depends on tokenizing a scalar that might itself be split across a
// chunk boundary, it only depends on locating the newline. Binary records
// with no list property are bounded by pure arithmetic
// (header.Element.FixedRecordSize); binary records with at least one list
// property require reading each property's count prefix to locate the
// boundary, via scanVariableRecordSize.
func (d *Decoder) RecordSize(src []byte, recordIndex uint64) (int, error) {
	if d.codec.Format() == format.ASCII {
		i := bytes.IndexByte(src, '\n')
		if i < 0 {
			return 0, codec.ErrShortBuffer
		}

		return i + 1, nil
	}

	if size, ok := d.elem.FixedRecordSize(); ok {
		if len(src) < size {
			return 0, codec.ErrShortBuffer
		}

		return size, nil
	}

	return d.scanVariableRecordSize(src, recordIndex)
}

// scanVariableRecordSize walks a binary record that has at least one list
// property, reading each list's count prefix to compute the record's total
// byte size without decoding any item value.
func (d *Decoder) scanVariableRecordSize(src []byte, recordIndex uint64) (int, error) {
	pos := 0

	for _, prop := range d.elem.Properties {
		if !prop.IsList {
			size := prop.Kind.Size()
			if len(src)-pos < size {
				return 0, codec.ErrShortBuffer
			}

			pos += size
			continue
		}

		count, n, err := d.codec.DecodeCount(src[pos:], prop.CountKind)
		if err != nil {
			return 0, err
		}
		pos += n

		if count > d.listSafetyCap {
			return 0, &errs.ListTooLarge{Element: d.elem.Name, Property: prop.Name, RecordIndex: recordIndex, Length: count}
		}

		itemsSize := int(count) * prop.ItemKind.Size()
		if len(src)-pos < itemsSize {
			return 0, codec.ErrShortBuffer
		}
		pos += itemsSize
	}

	return pos, nil
}

// Decode reads exactly one record from the start of src, delivering every
// property to visitor in property order, then presenting default and absent
// targets, then closing visitor. It returns the number of bytes of src
// consumed. Callers driving Decode from a buffer that may not yet hold a
// complete record (package stream) must call RecordSize first and only open
// a visitor once it reports a definite size: Decode itself assumes src holds
// at least one complete record and does not defend against a visitor
// receiving a partial one.
//
// A short buffer is still reported via codec.ErrShortBuffer for callers
// (such as element's own tests) that drive Decode directly against a known-
// complete buffer slice.
func (d *Decoder) Decode(src []byte, visitor schema.RecordVisitor, recordIndex uint64) (int, error) {
	pos := 0

	for _, entry := range d.plan.Entries {
		n, err := d.decodeField(src[pos:], entry, visitor, recordIndex)
		if err != nil {
			return 0, err
		}
		pos += n
	}

	if term := d.codec.RecordTerminator(); len(term) > 0 {
		n, err := d.consumeRecordTerminator(src[pos:], recordIndex)
		if err != nil {
			return 0, err
		}
		pos += n
	}

	for _, target := range d.plan.DefaultTargets {
		if err := visitor.UseDefault(target); err != nil {
			return 0, &errs.Visitor{Err: err}
		}
	}

	for _, target := range d.plan.AbsentTargets {
		if err := visitor.Absent(target); err != nil {
			return 0, &errs.Visitor{Err: err}
		}
	}

	if err := visitor.Close(); err != nil {
		return 0, &errs.Visitor{Err: err}
	}

	return pos, nil
}

func (d *Decoder) decodeField(src []byte, entry bind.PlanEntry, visitor schema.RecordVisitor, recordIndex uint64) (int, error) {
	prop := entry.Property

	if !prop.IsList {
		value, n, err := d.codec.DecodeScalar(src, prop.Kind)
		if err != nil {
			return 0, d.classifyScalarErr(err, prop, recordIndex)
		}

		if entry.Kind == bind.Deliver {
			if err := visitor.Deliver(entry.TargetName, prop.Kind, value); err != nil {
				return 0, &errs.Visitor{Err: err}
			}
		}

		return n, nil
	}

	count, pos, err := d.codec.DecodeCount(src, prop.CountKind)
	if err != nil {
		return 0, d.classifyScalarErr(err, prop, recordIndex)
	}

	if count > d.listSafetyCap {
		return 0, &errs.ListTooLarge{Element: d.elem.Name, Property: prop.Name, RecordIndex: recordIndex, Length: count}
	}

	var items []schema.Value
	if entry.Kind == bind.Deliver {
		items = make([]schema.Value, 0, count)
	}

	for i := uint64(0); i < count; i++ {
		value, itemN, err := d.codec.DecodeScalar(src[pos:], prop.ItemKind)
		if err != nil {
			return 0, d.classifyScalarErr(err, prop, recordIndex)
		}

		pos += itemN

		if entry.Kind == bind.Deliver {
			items = append(items, value)
		}
	}

	if entry.Kind == bind.Deliver {
		if err := visitor.Deliver(entry.TargetName, prop.ItemKind, items); err != nil {
			return 0, &errs.Visitor{Err: err}
		}
	}

	return pos, nil
}

// consumeRecordTerminator verifies the ASCII record line ends (only
// whitespace remains before '\n') and returns bytes consumed through the
// newline inclusive.
func (d *Decoder) consumeRecordTerminator(src []byte, recordIndex uint64) (int, error) {
	i := 0
	for i < len(src) && isAsciiSpace(src[i]) {
		i++
	}

	if i >= len(src) {
		return 0, codec.ErrShortBuffer
	}

	if src[i] != '\n' {
		return 0, &errs.TrailingGarbage{Element: d.elem.Name, RecordIndex: recordIndex}
	}

	return i + 1, nil
}

func isAsciiSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

func (d *Decoder) classifyScalarErr(err error, prop header.Property, recordIndex uint64) error {
	if err == codec.ErrShortBuffer {
		return codec.ErrShortBuffer
	}

	if d.codec.Format() == format.ASCII {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return &errs.OverflowAscii{Element: d.elem.Name, Property: prop.Name, RecordIndex: recordIndex}
		}
	}

	return err
}
