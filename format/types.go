// Package format defines the small closed enumerations that describe a PLY
// file's wire shape: the body encoding (Format) and the eight scalar widths
// (ScalarKind) a property may declare, each with a String() method and a
// keyword lookup table for parsing header text.
package format

import "fmt"

// Format identifies how an element's body records are encoded.
type Format uint8

const (
	// ASCII records are whitespace-separated decimal tokens, one line per record.
	ASCII Format = iota + 1
	// BinaryLittleEndian records are fixed-width little-endian scalars and
	// length-prefixed lists with no padding or separators.
	BinaryLittleEndian
	// BinaryBigEndian is the big-endian counterpart of BinaryLittleEndian.
	BinaryBigEndian
)

func (f Format) String() string {
	switch f {
	case ASCII:
		return "ascii"
	case BinaryLittleEndian:
		return "binary_little_endian"
	case BinaryBigEndian:
		return "binary_big_endian"
	default:
		return "unknown"
	}
}

// IsBinary reports whether f is one of the two binary body encodings.
func (f Format) IsBinary() bool {
	return f == BinaryLittleEndian || f == BinaryBigEndian
}

var formatKeywords = map[string]Format{
	"ascii":                ASCII,
	"binary_little_endian": BinaryLittleEndian,
	"binary_big_endian":    BinaryBigEndian,
}

// ParseFormat resolves a header "format" keyword to a Format.
func ParseFormat(keyword string) (Format, bool) {
	f, ok := formatKeywords[keyword]
	return f, ok
}

// ScalarKind identifies one of PLY's eight fixed-width scalar types.
type ScalarKind uint8

const (
	I8 ScalarKind = iota + 1
	U8
	I16
	U16
	I32
	U32
	F32
	F64
)

// Size returns the scalar's width in bytes.
func (k ScalarKind) Size() int {
	switch k {
	case I8, U8:
		return 1
	case I16, U16:
		return 2
	case I32, U32:
		return 4
	case F32:
		return 4
	case F64:
		return 8
	default:
		return 0
	}
}

// IsUnsignedInteger reports whether k is one of the unsigned integer kinds,
// the only kinds PLY permits for a list's count prefix.
func (k ScalarKind) IsUnsignedInteger() bool {
	switch k {
	case U8, U16, U32:
		return true
	default:
		return false
	}
}

// IsFloat reports whether k is one of the two floating point kinds.
func (k ScalarKind) IsFloat() bool {
	return k == F32 || k == F64
}

// String returns the canonical output keyword for k (char/uchar/short/...).
func (k ScalarKind) String() string {
	switch k {
	case I8:
		return "char"
	case U8:
		return "uchar"
	case I16:
		return "short"
	case U16:
		return "ushort"
	case I32:
		return "int"
	case U32:
		return "uint"
	case F32:
		return "float"
	case F64:
		return "double"
	default:
		return fmt.Sprintf("ScalarKind(%d)", uint8(k))
	}
}

// scalarKeywords maps every recognized input keyword (including synonyms
// like "int8"/"char") to its ScalarKind.
var scalarKeywords = map[string]ScalarKind{
	"char": I8, "int8": I8,
	"uchar": U8, "uint8": U8,
	"short": I16, "int16": I16,
	"ushort": U16, "uint16": U16,
	"int": I32, "int32": I32,
	"uint": U32, "uint32": U32,
	"float": F32, "float32": F32,
	"double": F64, "float64": F64,
}

// ParseScalarKind resolves a header property-type keyword (canonical or
// synonym) to a ScalarKind.
func ParseScalarKind(keyword string) (ScalarKind, bool) {
	k, ok := scalarKeywords[keyword]
	return k, ok
}
