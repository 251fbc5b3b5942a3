package codec

import (
	"math"

	"github.com/plyio/ply/endian"
	"github.com/plyio/ply/format"
	"github.com/plyio/ply/schema"
)

// binaryCodec implements Codec for the two fixed-width binary body formats.
// The byte order is fixed at construction (codec.ForFormat), so there is no
// per-field branch on endianness anywhere below.
type binaryCodec struct {
	engine endian.EndianEngine
}

func (c binaryCodec) Format() format.Format {
	return endian.FormatFor(c.engine)
}

func (c binaryCodec) FieldSeparator() []byte   { return nil }
func (c binaryCodec) RecordTerminator() []byte { return nil }

func (c binaryCodec) DecodeScalar(src []byte, kind format.ScalarKind) (schema.Value, int, error) {
	size := kind.Size()
	if len(src) < size {
		return nil, 0, ErrShortBuffer
	}

	switch kind {
	case format.I8:
		return int8(src[0]), 1, nil
	case format.U8:
		return src[0], 1, nil
	case format.I16:
		return int16(c.engine.Uint16(src)), 2, nil
	case format.U16:
		return c.engine.Uint16(src), 2, nil
	case format.I32:
		return int32(c.engine.Uint32(src)), 4, nil
	case format.U32:
		return c.engine.Uint32(src), 4, nil
	case format.F32:
		return math.Float32frombits(c.engine.Uint32(src)), 4, nil
	case format.F64:
		return math.Float64frombits(c.engine.Uint64(src)), 8, nil
	default:
		return nil, 0, &unknownScalarKindError{kind}
	}
}

func (c binaryCodec) EncodeScalar(dst []byte, kind format.ScalarKind, value schema.Value) []byte {
	switch kind {
	case format.I8:
		return append(dst, byte(asInt64(value)))
	case format.U8:
		return append(dst, asUint8(value))
	case format.I16:
		return c.engine.AppendUint16(dst, uint16(asInt64(value)))
	case format.U16:
		return c.engine.AppendUint16(dst, asUint16(value))
	case format.I32:
		return c.engine.AppendUint32(dst, uint32(asInt64(value)))
	case format.U32:
		return c.engine.AppendUint32(dst, asUint32(value))
	case format.F32:
		return c.engine.AppendUint32(dst, math.Float32bits(asFloat32(value)))
	case format.F64:
		return c.engine.AppendUint64(dst, math.Float64bits(asFloat64(value)))
	default:
		panic("codec: EncodeScalar called with unrecognized kind")
	}
}

func (c binaryCodec) DecodeCount(src []byte, countKind format.ScalarKind) (uint64, int, error) {
	v, n, err := c.DecodeScalar(src, countKind)
	if err != nil {
		return 0, 0, err
	}

	return toUint64(v), n, nil
}

func (c binaryCodec) EncodeCount(dst []byte, countKind format.ScalarKind, count uint64) []byte {
	return c.EncodeScalar(dst, countKind, fromUint64(countKind, count))
}
