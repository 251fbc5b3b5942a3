package stream

import (
	"github.com/plyio/ply/bind"
	"github.com/plyio/ply/codec"
	"github.com/plyio/ply/element"
	"github.com/plyio/ply/errs"
	"github.com/plyio/ply/header"
	"github.com/plyio/ply/schema"
)

type readerState uint8

const (
	stateHeaderPending readerState = iota
	stateBody
	stateExhausted
)

// Binder resolves, for the element at the given name and zero-based
// occurrence (spec.md §6, duplicate element names are matched positionally),
// the RecordShape to bind its properties against and the VisitorFactory that
// produces one RecordVisitor per record.
type Binder func(elementName string, occurrence int) (schema.RecordShape, schema.VisitorFactory, error)

// Reader drives a chunked decode of one PLY stream: Feed appends bytes as
// they arrive, TryNextRecord/TryNextBatch deliver complete records from the
// current element as the buffered bytes allow, AdvanceToNextElement moves
// the cursor once an element is fully drained, and Finish validates that the
// stream ended on a clean boundary.
//
// A Reader is built once per stream and is not safe for concurrent use.
type Reader struct {
	binder    Binder
	planCache *bind.PlanCache

	tail  *tailBuffer
	state readerState

	header *header.Header
	codec  codec.Codec

	elementIdx    int
	occurrence    map[string]int
	decoder       *element.Decoder
	visitors      schema.VisitorFactory
	recordsInElem uint64
	listSafetyCap uint64
}

// NewReader returns a Reader that resolves element bindings through binder.
// If cache is non-nil, per-element FieldPlans are memoized across elements
// that share the same (name, property layout) and RecordShape.
func NewReader(binder Binder, cache *bind.PlanCache) *Reader {
	return &Reader{
		binder:        binder,
		planCache:     cache,
		tail:          newTailBuffer(),
		occurrence:    make(map[string]int),
		listSafetyCap: element.DefaultListSafetyCap,
	}
}

// SetListSafetyCap overrides the default maximum accepted list length applied
// to every element this Reader decodes.
func (r *Reader) SetListSafetyCap(limit uint64) { r.listSafetyCap = limit }

// Feed appends newly available bytes to the Reader's internal tail buffer.
func (r *Reader) Feed(data []byte) {
	r.tail.feed(data)
}

// Header returns the parsed header, or nil if header parsing has not yet
// completed (more bytes are needed).
func (r *Reader) Header() *header.Header {
	return r.header
}

// Done reports whether every declared element has been fully delivered.
func (r *Reader) Done() bool {
	return r.state == stateExhausted
}

// CurrentElement returns the element the cursor currently points at and
// true, or (nil, false) before the header has parsed or after every element
// has been delivered.
func (r *Reader) CurrentElement() (*header.Element, bool) {
	if r.state != stateBody {
		return nil, false
	}

	return &r.header.Elements[r.elementIdx], true
}

// RecordsRemaining reports how many records of the current element have not
// yet been decoded.
func (r *Reader) RecordsRemaining() uint64 {
	if r.state != stateBody {
		return 0
	}

	return r.header.Elements[r.elementIdx].Count - r.recordsInElem
}

// TryNextRecord attempts to make one unit of progress: parse the header if
// it has not been seen yet, or decode and deliver one record of the current
// element. It returns progress == false, err == nil when either the buffered
// bytes are insufficient (Feed more and retry) or the current element's
// records are all delivered (call AdvanceToNextElement before retrying).
func (r *Reader) TryNextRecord() (progress bool, err error) {
	switch r.state {
	case stateHeaderPending:
		return r.tryParseHeader()
	case stateBody:
		if r.recordsInElem == r.header.Elements[r.elementIdx].Count {
			return false, nil
		}
		return r.decodeOneRecord()
	default:
		return false, nil
	}
}

// TryNextBatch decodes up to max records of the current element, stopping
// early at the first incomplete record or once the element's declared count
// is reached. It returns the number of records actually decoded; a short
// count with err == nil means the caller should Feed more bytes (if fewer
// records were decoded than RecordsRemaining) or call AdvanceToNextElement
// (if RecordsRemaining reached zero).
func (r *Reader) TryNextBatch(max int) (int, error) {
	n := 0
	for n < max && r.state == stateBody && r.recordsInElem < r.header.Elements[r.elementIdx].Count {
		progress, err := r.decodeOneRecord()
		if err != nil {
			return n, err
		}
		if !progress {
			return n, nil
		}
		n++
	}

	return n, nil
}

// AdvanceToNextElement moves the cursor to the next declared element, or to
// Exhausted if the element just completed was the last one declared. It
// fails with *errs.ElementNotFinished if the current element still has
// undelivered records.
func (r *Reader) AdvanceToNextElement() error {
	if r.state != stateBody {
		return nil
	}

	elem := &r.header.Elements[r.elementIdx]
	if r.recordsInElem != elem.Count {
		return &errs.ElementNotFinished{Element: elem.Name}
	}

	r.occurrence[elem.Name]++
	r.elementIdx++

	if r.elementIdx >= len(r.header.Elements) {
		r.state = stateExhausted
		return nil
	}

	return r.buildDecoderForCurrentElement()
}

func (r *Reader) tryParseHeader() (bool, error) {
	h, n, err := header.TryParse(r.tail.unconsumed())
	if err != nil {
		return false, err
	}
	if h == nil {
		r.tail.compact()
		return false, nil
	}

	r.tail.advance(n)
	r.header = h
	r.codec = codec.ForFormat(h.Format)
	r.elementIdx = 0
	r.recordsInElem = 0

	if len(h.Elements) == 0 {
		r.state = stateExhausted
		return true, nil
	}

	r.state = stateBody
	if err := r.buildDecoderForCurrentElement(); err != nil {
		return false, err
	}

	return true, nil
}

// buildDecoderForCurrentElement resolves the binder and constructs the
// element.Decoder for r.header.Elements[r.elementIdx]. Called once per
// element, including zero-count elements: the binder still sees every
// declared element, even ones no record will ever be decoded for.
func (r *Reader) buildDecoderForCurrentElement() error {
	elem := &r.header.Elements[r.elementIdx]
	occ := r.occurrence[elem.Name]

	shape, visitors, err := r.binder(elem.Name, occ)
	if err != nil {
		return err
	}

	dec, err := element.NewDecoder(elem, shape, r.codec, r.planCache)
	if err != nil {
		return err
	}
	dec.SetListSafetyCap(r.listSafetyCap)

	r.decoder = dec
	r.visitors = visitors
	r.recordsInElem = 0

	return nil
}

// decodeOneRecord first establishes, via Decoder.RecordSize, that the
// unconsumed tail holds a complete record; only then does it open a visitor
// and decode. This ordering matters under chunked feeding: without it, a
// record attempted against a buffer that runs out mid-record would open a
// fresh visitor, partially deliver it, and then abandon it silently on the
// next retry once more bytes arrive.
func (r *Reader) decodeOneRecord() (bool, error) {
	buf := r.tail.unconsumed()

	size, err := r.decoder.RecordSize(buf, r.recordsInElem)
	if err == codec.ErrShortBuffer {
		r.tail.compact()
		return false, nil
	}
	if err != nil {
		return false, err
	}

	visitor := r.visitors()
	n, err := r.decoder.Decode(buf[:size], visitor, r.recordsInElem)
	if err != nil {
		return false, err
	}

	r.tail.advance(n)
	r.recordsInElem++

	return true, nil
}

// Finish reports whether the stream ended cleanly. Call it once the
// underlying source has signaled end-of-data and repeated TryNextRecord/
// TryNextBatch calls report no further progress.
func (r *Reader) Finish() error {
	switch r.state {
	case stateHeaderPending:
		return &errs.TruncatedHeader{}
	case stateExhausted:
		return nil
	default:
		elem := r.header.Elements[r.elementIdx]
		if r.recordsInElem < elem.Count {
			return &errs.TruncatedBody{Element: elem.Name, Expected: elem.Count, Received: r.recordsInElem}
		}
		if r.elementIdx == len(r.header.Elements)-1 {
			return nil
		}
		return &errs.MissingElements{NextElement: r.header.Elements[r.elementIdx+1].Name}
	}
}
