// Package ply provides a streaming reader and writer for the PLY (Polygon
// File Format) geometry interchange format: a textual header describing a
// sequence of named, counted elements, followed by an ASCII, little-endian
// binary, or big-endian binary body.
//
// This package provides convenient top-level wrappers around the stream and
// writer packages, simplifying the most common use cases. For incremental
// decoding interleaved with other work, or for building a caller-controlled
// record shape/visitor framework, use the stream, writer, header, and
// schema packages directly.
//
// # Basic usage
//
// Reading a file's vertex and face elements into caller types requires a
// schema.RecordShape and schema.RecordVisitor per element; see the schema
// package for that contract. Once a stream.Binder is available:
//
//	h, err := ply.ReadAll(r, binder)
//
// Writing a header and its records:
//
//	w, err := ply.WriteAll(out, h)
//	err = w.WriteElement(vertexShape, len(vertices), vertexEmitters)
//	err = w.Close()
//
// # Compressed files
//
// PLY itself defines no in-band compression (mesh tooling commonly
// distributes compressed files out-of-band, e.g. ".ply.gz" or ".ply.zst").
// ReadCompressed and WriteCompressed decompress/compress a whole archive in
// memory around the normal streaming pipeline, using one of the compress
// package's kinds (zstd, s2, lz4); gzip is not among them.
package ply

import (
	"bytes"
	"io"

	"github.com/plyio/ply/compress"
	"github.com/plyio/ply/header"
	"github.com/plyio/ply/stream"
	"github.com/plyio/ply/writer"
)

// ReadAll is stream.ReadAll: it drives a chunked Reader to completion
// against src and returns the parsed header once every declared record has
// been delivered to binder's visitors.
func ReadAll(src io.Reader, binder stream.Binder, opts ...stream.ReaderOption) (*header.Header, error) {
	return stream.ReadAll(src, binder, opts...)
}

// WriteAll validates h, writes its header text to out, and returns a
// writer.Writer ready to receive each declared element's records in order
// via WriteElement.
func WriteAll(out io.Writer, h *header.Header, opts ...writer.Option) (*writer.Writer, error) {
	return writer.New(out, h, opts...)
}

// ReadCompressed decompresses src as a whole buffer using kind's algorithm,
// then drives a blocking read of the decompressed bytes exactly as ReadAll
// does. Use this for files distributed as ".ply.zst"/".ply.s2"/".ply.lz4"; a PLY
// stream's own header and body bytes carry no compression information, so
// the caller must know kind in advance (compress.KindForExt resolves it from
// a filename extension).
func ReadCompressed(src io.Reader, kind compress.Kind, binder stream.Binder, opts ...stream.ReaderOption) (*header.Header, error) {
	raw, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(kind)
	if err != nil {
		return nil, err
	}

	plain, err := codec.Decompress(raw)
	if err != nil {
		return nil, err
	}

	return ReadAll(bytes.NewReader(plain), binder, opts...)
}

// WriteCompressed builds a complete PLY stream in memory via write (which
// receives a *writer.Writer to drive with WriteElement/Close exactly as
// WriteAll's caller would), compresses the result using kind's algorithm, and
// writes the compressed bytes to out.
func WriteCompressed(out io.Writer, kind compress.Kind, h *header.Header, write func(*writer.Writer) error, opts ...writer.Option) error {
	var buf bytes.Buffer

	w, err := writer.New(&buf, h, opts...)
	if err != nil {
		return err
	}

	if err := write(w); err != nil {
		return err
	}

	if err := w.Close(); err != nil {
		return err
	}

	codec, err := compress.GetCodec(kind)
	if err != nil {
		return err
	}

	compressed, err := codec.Compress(buf.Bytes())
	if err != nil {
		return err
	}

	_, err = out.Write(compressed)
	return err
}
