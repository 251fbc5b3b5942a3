// Package codec implements the format-specialized scalar and list codecs:
// one Codec per body Format (ASCII, binary little-endian, binary
// big-endian), selected exactly once per element/format and then reused for
// every record and property of that element, with no per-field runtime
// branching on Format thereafter.
package codec

import (
	"errors"

	"github.com/plyio/ply/endian"
	"github.com/plyio/ply/format"
	"github.com/plyio/ply/schema"
)

// ErrShortBuffer is returned by Decode* methods when src does not contain
// enough bytes to decode the requested value. Callers in package stream
// treat this as "need more bytes", not as a malformed-data error.
var ErrShortBuffer = errors.New("codec: short buffer")

// Codec encodes and decodes scalar and list-count values for one body
// Format. A Codec is stateless and safe for concurrent use; exactly one
// instance is chosen per element via ForFormat.
type Codec interface {
	// Format identifies which body encoding this Codec implements.
	Format() format.Format

	// DecodeScalar reads one value of kind from the start of src. It returns
	// the decoded value and the number of bytes consumed from src, which for
	// ASCII includes any leading whitespace skipped before the token.
	DecodeScalar(src []byte, kind format.ScalarKind) (value schema.Value, consumed int, err error)

	// EncodeScalar appends the encoding of value (of kind) to dst and returns
	// the extended slice. It never writes a field separator or record
	// terminator; the caller supplies those via FieldSeparator/RecordTerminator.
	EncodeScalar(dst []byte, kind format.ScalarKind, value schema.Value) []byte

	// DecodeCount reads a list's length prefix, encoded as countKind, from the
	// start of src.
	DecodeCount(src []byte, countKind format.ScalarKind) (count uint64, consumed int, err error)

	// EncodeCount appends a list's length prefix to dst.
	EncodeCount(dst []byte, countKind format.ScalarKind, count uint64) []byte

	// FieldSeparator is written between two fields of the same record. Binary
	// formats return nil (fields are packed with no separator).
	FieldSeparator() []byte

	// RecordTerminator is written after a record's last field. ASCII returns
	// "\n"; binary formats return nil.
	RecordTerminator() []byte
}

// ForFormat returns the Codec for f, chosen once by the caller (typically
// element.NewDecoder/element.NewEncoder) and held for the lifetime of one
// element's decode or encode pass.
func ForFormat(f format.Format) Codec {
	switch f {
	case format.ASCII:
		return asciiCodec{}
	case format.BinaryLittleEndian:
		return binaryCodec{engine: endian.GetLittleEndianEngine()}
	case format.BinaryBigEndian:
		return binaryCodec{engine: endian.GetBigEndianEngine()}
	default:
		panic("codec: ForFormat called with unrecognized format " + f.String())
	}
}
