// Package compress provides whole-buffer compression codecs for the
// transparent compressed PLY file convenience (see package ply's
// ReadCompressed/WriteCompressed).
//
// PLY itself has no in-band compression: a header always declares an
// element's byte layout in the clear, and binary bodies are fixed-width per
// the declared scalar kinds. Real-world mesh and point-cloud tooling
// nonetheless routinely ships ".ply.gz"/".ply.zst" files, since PLY bodies
// (especially ASCII ones, and binary ones with repetitive list counts) often
// compress well. This package supplies that convenience as a layer entirely
// outside the header/body codec: compress/decompress the whole file, then
// hand the plaintext bytes to the regular header and stream readers.
//
// # Supported algorithms
//
//   - None: no compression, returns the input unchanged
//   - Zstd: best compression ratio, moderate speed; good for archival
//   - S2: balanced speed and ratio; good for write-heavy pipelines
//   - LZ4: fastest decompression; good for read-heavy pipelines
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// KindForExt maps a filename extension to a Kind, which a caller can then
// pass to ply.ReadCompressed (it takes the Kind explicitly and does not look
// at paths itself); CreateCodec/GetCodec construct a Codec for a Kind.
package compress
