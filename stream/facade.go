package stream

import (
	"errors"
	"io"

	"github.com/plyio/ply/bind"
	"github.com/plyio/ply/header"
	"github.com/plyio/ply/internal/options"
)

// ReadAll drives a Reader to completion against src, feeding it in
// chunkSize-sized pieces until src is exhausted, and returns the parsed
// header once every declared record has been delivered to binder's
// visitors. It is the blocking convenience path (spec.md §6.2): internally
// it parses the header, then for each element in header order alternates
// TryNextBatch calls with reads until RecordsRemaining reaches zero, then
// calls AdvanceToNextElement, matching the driving pattern spec.md §4.7
// prescribes for the chunked API. Callers that need to interleave decoding
// with other work should drive a Reader directly instead.
func ReadAll(src io.Reader, binder Binder, opts ...ReaderOption) (*header.Header, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	cache := bind.NewPlanCache()
	r := NewReader(binder, cache)
	r.SetListSafetyCap(cfg.listSafetyCap)

	buf := make([]byte, cfg.chunkSize)
	atEOF := false

	read := func() error {
		if atEOF {
			return r.Finish()
		}

		n, err := src.Read(buf)
		if n > 0 {
			r.Feed(buf[:n])
		}

		switch {
		case err == nil:
			return nil
		case errors.Is(err, io.EOF):
			atEOF = true
			return nil
		default:
			return err
		}
	}

	for r.Header() == nil {
		progress, err := r.TryNextRecord()
		if err != nil {
			return nil, err
		}
		if !progress {
			if err := read(); err != nil {
				return nil, err
			}
		}
	}

	for !r.Done() {
		if r.RecordsRemaining() == 0 {
			if err := r.AdvanceToNextElement(); err != nil {
				return nil, err
			}
			continue
		}

		n, err := r.TryNextBatch(cfg.batchSize)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			if err := read(); err != nil {
				return nil, err
			}
		}
	}

	return r.Header(), nil
}
