package compress

import "fmt"

// Compressor compresses a whole in-memory buffer, used by the facade-level
// transparent compressed-file convenience (ply.ReadCompressed/
// ply.WriteCompressed) to wrap an entire PLY stream, not by anything in the
// core header/bind/codec/element/stream/writer pipeline: PLY itself defines
// no in-band compression, so this operates strictly outside a file's own
// bytes.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor is the read-side mirror of Compressor.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// Kind identifies one of the whole-buffer compression algorithms available
// for the transparent compressed-file convenience.
type Kind uint8

const (
	None Kind = iota
	Zstd
	S2
	LZ4
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// KindForExt resolves a filename extension (as returned by path/filepath.Ext,
// including the leading dot) to the Kind a caller most likely intends, or
// reports ok == false for an unrecognized extension.
func KindForExt(ext string) (Kind, bool) {
	switch ext {
	case ".zst", ".zstd":
		return Zstd, true
	case ".s2":
		return S2, true
	case ".lz4":
		return LZ4, true
	default:
		return None, false
	}
}

// CreateCodec is a factory function that creates a Codec for the given Kind.
func CreateCodec(kind Kind) (Codec, error) {
	switch kind {
	case None:
		return NewNoOpCompressor(), nil
	case Zstd:
		return NewZstdCompressor(), nil
	case S2:
		return NewS2Compressor(), nil
	case LZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("compress: unrecognized kind %s", kind)
	}
}

var builtinCodecs = map[Kind]Codec{
	None: NewNoOpCompressor(),
	Zstd: NewZstdCompressor(),
	S2:   NewS2Compressor(),
	LZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the given Kind.
func GetCodec(kind Kind) (Codec, error) {
	if c, ok := builtinCodecs[kind]; ok {
		return c, nil
	}

	return nil, fmt.Errorf("compress: unsupported kind %s", kind)
}
