package codec

import (
	"math"
	"strconv"

	"github.com/plyio/ply/format"
	"github.com/plyio/ply/schema"
)

// asciiCodec implements Codec for the whitespace-delimited decimal text
// body format. A "token" is a maximal run of non-whitespace bytes; any
// number of spaces or tabs may separate tokens.
type asciiCodec struct{}

func (asciiCodec) Format() format.Format    { return format.ASCII }
func (asciiCodec) FieldSeparator() []byte   { return []byte{' '} }
func (asciiCodec) RecordTerminator() []byte { return []byte{'\n'} }

// isAsciiSpace reports whether b separates tokens within a record: ' '/'\t'
// always, and '\r' too so a "\r\n" line terminator (tolerated per spec.md
// §9) never leaks a trailing '\r' into the preceding token's text.
func isAsciiSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

// nextToken skips leading whitespace in src and returns the following
// non-whitespace run, plus the total number of bytes consumed (whitespace
// and token together). An empty return token with consumed == len(src)
// means src held only whitespace.
func nextToken(src []byte) (tok []byte, consumed int) {
	i := 0
	for i < len(src) && isAsciiSpace(src[i]) {
		i++
	}

	start := i
	for i < len(src) && !isAsciiSpace(src[i]) && src[i] != '\n' {
		i++
	}

	return src[start:i], i
}

func (asciiCodec) DecodeScalar(src []byte, kind format.ScalarKind) (schema.Value, int, error) {
	tok, consumed := nextToken(src)
	if len(tok) == 0 {
		return nil, 0, ErrShortBuffer
	}

	text := string(tok)

	switch kind {
	case format.I8:
		n, err := strconv.ParseInt(text, 10, 8)
		if err != nil {
			return nil, 0, err
		}
		return int8(n), consumed, nil
	case format.U8:
		n, err := strconv.ParseUint(text, 10, 8)
		if err != nil {
			return nil, 0, err
		}
		return uint8(n), consumed, nil
	case format.I16:
		n, err := strconv.ParseInt(text, 10, 16)
		if err != nil {
			return nil, 0, err
		}
		return int16(n), consumed, nil
	case format.U16:
		n, err := strconv.ParseUint(text, 10, 16)
		if err != nil {
			return nil, 0, err
		}
		return uint16(n), consumed, nil
	case format.I32:
		n, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, 0, err
		}
		return int32(n), consumed, nil
	case format.U32:
		n, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return nil, 0, err
		}
		return uint32(n), consumed, nil
	case format.F32:
		f, err := parseAsciiFloat(text, 32)
		if err != nil {
			return nil, 0, err
		}
		return float32(f), consumed, nil
	case format.F64:
		f, err := parseAsciiFloat(text, 64)
		if err != nil {
			return nil, 0, err
		}
		return f, consumed, nil
	default:
		return nil, 0, &unknownScalarKindError{kind}
	}
}

// parseAsciiFloat accepts strconv's own vocabulary plus the lowercase
// inf/-inf/nan spelling PLY files conventionally use.
func parseAsciiFloat(text string, bitSize int) (float64, error) {
	switch text {
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan", "-nan":
		return math.NaN(), nil
	default:
		return strconv.ParseFloat(text, bitSize)
	}
}

func (c asciiCodec) EncodeScalar(dst []byte, kind format.ScalarKind, value schema.Value) []byte {
	switch kind {
	case format.I8, format.I16, format.I32:
		return strconv.AppendInt(dst, asInt64(value), 10)
	case format.U8:
		return strconv.AppendUint(dst, uint64(asUint8(value)), 10)
	case format.U16:
		return strconv.AppendUint(dst, uint64(asUint16(value)), 10)
	case format.U32:
		return strconv.AppendUint(dst, uint64(asUint32(value)), 10)
	case format.F32:
		return appendAsciiFloat(dst, float64(asFloat32(value)), 32)
	case format.F64:
		return appendAsciiFloat(dst, asFloat64(value), 64)
	default:
		panic("codec: EncodeScalar called with unrecognized kind")
	}
}

// appendAsciiFloat writes value with enough significant digits to round-trip
// exactly (strconv's shortest-exact-representation mode already guarantees
// at least 9 digits for float32 and 17 for float64 whenever those are
// needed), spelling infinities and NaN the lowercase way PLY readers expect.
func appendAsciiFloat(dst []byte, value float64, bitSize int) []byte {
	switch {
	case math.IsInf(value, 1):
		return append(dst, "inf"...)
	case math.IsInf(value, -1):
		return append(dst, "-inf"...)
	case math.IsNaN(value):
		return append(dst, "nan"...)
	default:
		return strconv.AppendFloat(dst, value, 'g', -1, bitSize)
	}
}

func (c asciiCodec) DecodeCount(src []byte, countKind format.ScalarKind) (uint64, int, error) {
	v, n, err := c.DecodeScalar(src, countKind)
	if err != nil {
		return 0, 0, err
	}

	return toUint64(v), n, nil
}

func (c asciiCodec) EncodeCount(dst []byte, countKind format.ScalarKind, count uint64) []byte {
	return c.EncodeScalar(dst, countKind, fromUint64(countKind, count))
}
