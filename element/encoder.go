package element

import (
	"github.com/plyio/ply/bind"
	"github.com/plyio/ply/codec"
	"github.com/plyio/ply/format"
	"github.com/plyio/ply/header"
	"github.com/plyio/ply/schema"
)

// Encoder is the write-side mirror of Decoder: it asks a RecordEmitter for
// one value per property, in property order, and appends the encoded record
// to a caller-supplied buffer.
type Encoder struct {
	elem  *header.Element
	codec codec.Codec
	plan  *bind.Plan
}

// NewEncoder builds the Plan for (elem, shape) and returns an Encoder that
// applies it using c.
func NewEncoder(elem *header.Element, shape schema.RecordShape, c codec.Codec, cache *bind.PlanCache) (*Encoder, error) {
	plan, err := bind.BuildCached(cache, elem, shape)
	if err != nil {
		return nil, err
	}

	return &Encoder{elem: elem, codec: c, plan: plan}, nil
}

// Encode appends one encoded record to dst, asking emitter for each
// property's value in property order, and returns the extended slice.
// Properties whose plan entry is bind.Skip (no corresponding shape field)
// are written as the zero value of their kind.
func (e *Encoder) Encode(dst []byte, emitter schema.RecordEmitter) ([]byte, error) {
	sep := e.codec.FieldSeparator()

	for i, entry := range e.plan.Entries {
		if i > 0 && len(sep) > 0 {
			dst = append(dst, sep...)
		}

		var err error
		dst, err = e.encodeField(dst, entry, emitter)
		if err != nil {
			return nil, err
		}
	}

	if term := e.codec.RecordTerminator(); len(term) > 0 {
		dst = append(dst, term...)
	}

	return dst, nil
}

func (e *Encoder) encodeField(dst []byte, entry bind.PlanEntry, emitter schema.RecordEmitter) ([]byte, error) {
	prop := entry.Property

	value, err := e.valueFor(entry, emitter)
	if err != nil {
		return nil, err
	}

	if !prop.IsList {
		return e.codec.EncodeScalar(dst, prop.Kind, value), nil
	}

	items, _ := value.([]schema.Value)
	dst = e.codec.EncodeCount(dst, prop.CountKind, uint64(len(items)))

	sep := e.codec.FieldSeparator()
	for _, item := range items {
		if len(sep) > 0 {
			dst = append(dst, sep...)
		}
		dst = e.codec.EncodeScalar(dst, prop.ItemKind, item)
	}

	return dst, nil
}

func (e *Encoder) valueFor(entry bind.PlanEntry, emitter schema.RecordEmitter) (schema.Value, error) {
	if entry.Kind == bind.Skip {
		return zeroValue(entry.Property), nil
	}

	return emitter.Value(entry.TargetName, entry.Property.Kind, entry.Property.IsList)
}

// zeroValue returns the zero-valued encoding for a property that has no
// corresponding RecordShape field: a Skip target's matching property is read
// but never delivered on decode, and written with a zero value on encode.
func zeroValue(prop header.Property) schema.Value {
	if prop.IsList {
		return []schema.Value{}
	}

	switch prop.Kind {
	case format.I8:
		return int8(0)
	case format.U8:
		return uint8(0)
	case format.I16:
		return int16(0)
	case format.U16:
		return uint16(0)
	case format.I32:
		return int32(0)
	case format.U32:
		return uint32(0)
	case format.F32:
		return float32(0)
	case format.F64:
		return float64(0)
	default:
		return nil
	}
}
