package codec

import (
	"fmt"

	"github.com/plyio/ply/format"
)

// unknownScalarKindError reports a format.ScalarKind value outside the eight
// recognized kinds reaching a codec; this can only happen if a caller builds
// a header.Property by hand instead of through header.Scalar/header.List.
type unknownScalarKindError struct {
	kind format.ScalarKind
}

func (e *unknownScalarKindError) Error() string {
	return fmt.Sprintf("codec: unrecognized scalar kind %d", e.kind)
}

// The encode path accepts any of Go's built-in numeric types from a
// RecordEmitter, matching whatever concrete type the caller's record-shape
// framework finds natural to produce, and converts to the wire width
// declared by the property's ScalarKind rather than requiring the caller to
// pre-narrow every value.

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	default:
		panic(fmt.Sprintf("codec: value %v (%T) is not an integer", v, v))
	}
}

func asUint8(v any) uint8   { return uint8(asInt64(v)) }
func asUint16(v any) uint16 { return uint16(asInt64(v)) }
func asUint32(v any) uint32 { return uint32(asInt64(v)) }

func asFloat32(v any) float32 {
	switch n := v.(type) {
	case float32:
		return n
	case float64:
		return float32(n)
	default:
		return float32(asInt64(v))
	}
}

func asFloat64(v any) float64 {
	switch n := v.(type) {
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		return float64(asInt64(v))
	}
}

// toUint64 narrows a decoded scalar value (always one of the concrete
// integer types produced by DecodeScalar) to uint64, for use as a list
// count. Negative values cannot occur: list counts are only ever decoded
// with an IsUnsignedInteger kind (header.Validate enforces this).
func toUint64(v any) uint64 {
	switch n := v.(type) {
	case uint8:
		return uint64(n)
	case uint16:
		return uint64(n)
	case uint32:
		return uint64(n)
	case uint64:
		return n
	default:
		panic(fmt.Sprintf("codec: count value %v (%T) is not an unsigned integer", v, v))
	}
}

// fromUint64 widens a list count back to the concrete type EncodeScalar
// expects for countKind.
func fromUint64(countKind format.ScalarKind, count uint64) any {
	switch countKind {
	case format.U8:
		return uint8(count)
	case format.U16:
		return uint16(count)
	case format.U32:
		return uint32(count)
	default:
		panic("codec: fromUint64 called with non-unsigned count kind")
	}
}
