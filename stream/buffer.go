// Package stream implements the chunked/streaming decode driver (spec.md
// §4.7): a state machine that accepts arbitrarily-sized byte chunks,
// retains an unconsumed tail between feeds, and yields complete header and
// record boundaries as soon as enough bytes have arrived for the header's
// declared Format to make forward progress.
//
// Grounded on github.com/arloliu/mebo's internal/pool growable byte buffer,
// reused here as the tail buffer that retains bytes spanning two Feed calls,
// and on the layered construction the rest of the module already follows:
// header, bind, codec and element are each built once, then driven
// record-by-record as bytes arrive.
package stream

import "github.com/plyio/ply/internal/pool"

// tailBuffer retains bytes fed to a Reader that have not yet been consumed
// by a complete header or record, compacting itself periodically so the
// unconsumed tail never grows unboundedly relative to the data actually
// waiting to be parsed.
type tailBuffer struct {
	buf *pool.ByteBuffer
	pos int
}

func newTailBuffer() *tailBuffer {
	return &tailBuffer{buf: pool.NewByteBuffer(pool.DefaultBufferSize)}
}

// feed appends data to the buffer's tail.
func (t *tailBuffer) feed(data []byte) {
	t.buf.MustWrite(data)
}

// unconsumed returns the bytes not yet advanced past.
func (t *tailBuffer) unconsumed() []byte {
	return t.buf.Bytes()[t.pos:]
}

// advance marks n bytes of unconsumed() as consumed.
func (t *tailBuffer) advance(n int) {
	t.pos += n
	if t.pos == t.buf.Len() {
		t.buf.Reset()
		t.pos = 0
	}
}

// compact copies the unconsumed tail to the front of the underlying slice,
// bounding memory growth across many small Feed calls.
func (t *tailBuffer) compact() {
	if t.pos == 0 {
		return
	}

	remaining := t.buf.Len() - t.pos
	copy(t.buf.Bytes()[:remaining], t.buf.Bytes()[t.pos:])
	t.buf.SetLength(remaining)
	t.pos = 0
}
