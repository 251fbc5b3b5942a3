// Package writer implements the symmetric write side (spec.md §4.8): emit
// the header text once, then for each element encode exactly as many
// records as the header declared, in the header's chosen Format.
//
// Grounded on github.com/plyio/ply/header's writer.go (Header.Bytes) for the
// header-emission half, and on element.Encoder for the per-record half;
// this package is the thin driver that ties them to an io.Writer.
package writer

import (
	"io"

	"github.com/plyio/ply/bind"
	"github.com/plyio/ply/codec"
	"github.com/plyio/ply/element"
	"github.com/plyio/ply/errs"
	"github.com/plyio/ply/header"
	"github.com/plyio/ply/internal/options"
	"github.com/plyio/ply/schema"
)

type config struct {
	planCache *bind.PlanCache
}

// Option configures a Writer at construction.
type Option = options.Option[*config]

// WithPlanCache memoizes FieldPlans across elements that share a property
// layout and RecordShape, the write-side counterpart of the PlanCache that
// stream.ReadAll creates for each read. Without it, no cache is used.
func WithPlanCache(cache *bind.PlanCache) Option {
	return options.NoError(func(c *config) { c.planCache = cache })
}

// Writer emits one PLY stream to an underlying io.Writer: the header text,
// followed by each declared element's records in order.
type Writer struct {
	out       io.Writer
	header    *header.Header
	codec     codec.Codec
	planCache *bind.PlanCache

	nextElement int
}

// New validates h, writes its header text to out, and returns a Writer
// ready to receive each declared element's records in order via
// WriteElement.
func New(out io.Writer, h *header.Header, opts ...Option) (*Writer, error) {
	cfg := &config{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	text, err := h.Bytes()
	if err != nil {
		return nil, err
	}

	if _, err := out.Write(text); err != nil {
		return nil, err
	}

	return &Writer{out: out, header: h, codec: codec.ForFormat(h.Format), planCache: cfg.planCache}, nil
}

// WriteElement encodes and writes count records for the next declared
// element, using shape to bind against its properties and emitters to
// produce one RecordEmitter per record index. Elements must be written in
// the order the header declared them; count must equal that element's
// declared Count or WriteElement fails with *errs.CountMismatch before
// writing anything for this element.
func (w *Writer) WriteElement(shape schema.RecordShape, count int, emitters schema.EmitterFactory) error {
	if w.nextElement >= len(w.header.Elements) {
		return &errs.MissingElements{NextElement: "<none: all elements already written>"}
	}

	elem := &w.header.Elements[w.nextElement]
	if uint64(count) != elem.Count {
		return &errs.CountMismatch{Element: elem.Name, Expected: elem.Count, Got: uint64(count)}
	}

	enc, err := element.NewEncoder(elem, shape, w.codec, w.planCache)
	if err != nil {
		return err
	}

	var buf []byte
	for i := 0; i < count; i++ {
		buf = buf[:0]
		buf, err = enc.Encode(buf, emitters(i))
		if err != nil {
			return err
		}

		if _, err := w.out.Write(buf); err != nil {
			return err
		}
	}

	w.nextElement++

	return nil
}

// Close reports whether every declared element was written via WriteElement.
func (w *Writer) Close() error {
	if w.nextElement != len(w.header.Elements) {
		return &errs.MissingElements{NextElement: w.header.Elements[w.nextElement].Name}
	}

	return nil
}
