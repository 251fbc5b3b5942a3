package stream_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plyio/ply/errs"
	"github.com/plyio/ply/format"
	"github.com/plyio/ply/schema"
	"github.com/plyio/ply/stream"
)

type fixedShape []schema.FieldTarget

func (s fixedShape) Fields() []schema.FieldTarget { return s }

type collectVisitor struct {
	rows []map[string]schema.Value
	cur  map[string]schema.Value
}

func (c *collectVisitor) Deliver(target string, _ format.ScalarKind, value schema.Value) error {
	c.cur[target] = value
	return nil
}
func (c *collectVisitor) Absent(string) error     { return nil }
func (c *collectVisitor) UseDefault(string) error { return nil }
func (c *collectVisitor) Close() error            { return nil }

func vertexBinder(rows *[]map[string]schema.Value) stream.Binder {
	return func(elementName string, occurrence int) (schema.RecordShape, schema.VisitorFactory, error) {
		shape := fixedShape{{PrimaryName: "x"}, {PrimaryName: "y"}, {PrimaryName: "z"}}
		factory := func() schema.RecordVisitor {
			v := &collectVisitor{cur: make(map[string]schema.Value)}
			*rows = append(*rows, v.cur)
			return v
		}
		return shape, factory, nil
	}
}

const cubeASCII = "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n1 0 0\n0 1 0\n"

func TestReadAll_WholeBufferAtOnce(t *testing.T) {
	var rows []map[string]schema.Value
	h, err := stream.ReadAll(bytes.NewReader([]byte(cubeASCII)), vertexBinder(&rows))
	require.NoError(t, err)
	require.Equal(t, format.ASCII, h.Format)
	require.Len(t, rows, 3)
	require.Equal(t, float32(1), rows[1]["x"])
}

func TestReadAll_ByteAtATime(t *testing.T) {
	var rows []map[string]schema.Value
	h, err := stream.ReadAll(bytes.NewReader([]byte(cubeASCII)), vertexBinder(&rows), stream.WithChunkSize(1))
	require.NoError(t, err)
	require.NotNil(t, h)
	require.Len(t, rows, 3)
	require.Equal(t, float32(1), rows[2]["y"])
}

func TestReadAll_TruncatedBodyFails(t *testing.T) {
	truncated := "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n1 0 0\n"
	var rows []map[string]schema.Value
	_, err := stream.ReadAll(bytes.NewReader([]byte(truncated)), vertexBinder(&rows))
	require.Error(t, err)
}

func TestReadAll_ChunkBoundaryMidRecord(t *testing.T) {
	for split := 1; split < len(cubeASCII); split++ {
		data := []byte(cubeASCII)
		r := &twoPartReader{data: data, split: split}
		var rows []map[string]schema.Value
		_, err := stream.ReadAll(r, vertexBinder(&rows))
		require.NoErrorf(t, err, "split at %d", split)
		require.Lenf(t, rows, 3, "split at %d", split)
	}
}

// TestReadAll_ByteAtATime_NoPhantomVisitors locks in that a VisitorFactory is
// opened exactly once per complete record, never once per incomplete attempt
// that gets retried as more bytes arrive.
func TestReadAll_ByteAtATime_NoPhantomVisitors(t *testing.T) {
	opened := 0
	binder := func(string, int) (schema.RecordShape, schema.VisitorFactory, error) {
		shape := fixedShape{{PrimaryName: "x"}, {PrimaryName: "y"}, {PrimaryName: "z"}}
		factory := func() schema.RecordVisitor {
			opened++
			return &collectVisitor{cur: make(map[string]schema.Value)}
		}
		return shape, factory, nil
	}

	_, err := stream.ReadAll(bytes.NewReader([]byte(cubeASCII)), binder, stream.WithChunkSize(1))
	require.NoError(t, err)
	require.Equal(t, 3, opened)
}

const multiDigitASCII = "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nproperty float z\nend_header\n100 200 300\n-1234.5 0 9999\n"

// TestReadAll_MultiDigitTokenAcrossChunkBoundary guards against a completeness
// check that only looks for a delimiter: a multi-character token split by a
// Feed boundary (e.g. "123" arriving as "12" then "3") must never be decoded
// from the short half alone.
func TestReadAll_MultiDigitTokenAcrossChunkBoundary(t *testing.T) {
	var rows []map[string]schema.Value
	h, err := stream.ReadAll(bytes.NewReader([]byte(multiDigitASCII)), vertexBinder(&rows), stream.WithChunkSize(1))
	require.NoError(t, err)
	require.NotNil(t, h)
	require.Len(t, rows, 2)
	require.Equal(t, float32(100), rows[0]["x"])
	require.Equal(t, float32(300), rows[0]["z"])
	require.Equal(t, float32(-1234.5), rows[1]["x"])
	require.Equal(t, float32(9999), rows[1]["z"])
}

func TestReader_AdvanceToNextElementBeforeDrainedFails(t *testing.T) {
	var rows []map[string]schema.Value
	r := stream.NewReader(vertexBinder(&rows), nil)
	r.Feed([]byte(cubeASCII))

	for {
		progress, err := r.TryNextRecord()
		require.NoError(t, err)
		if r.Header() != nil {
			break
		}
		require.True(t, progress)
	}

	n, err := r.TryNextBatch(1)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.EqualValues(t, 2, r.RecordsRemaining())

	err = r.AdvanceToNextElement()
	require.Error(t, err)
	var notFinished *errs.ElementNotFinished
	require.ErrorAs(t, err, &notFinished)
	require.ErrorIs(t, err, errs.ErrElementNotFinished)
}

func TestReader_TryNextBatchThenAdvanceReachesExhausted(t *testing.T) {
	var rows []map[string]schema.Value
	r := stream.NewReader(vertexBinder(&rows), nil)
	r.Feed([]byte(cubeASCII))

	for r.Header() == nil {
		_, err := r.TryNextRecord()
		require.NoError(t, err)
	}

	n, err := r.TryNextBatch(10)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.EqualValues(t, 0, r.RecordsRemaining())

	require.NoError(t, r.AdvanceToNextElement())
	require.True(t, r.Done())
	require.NoError(t, r.Finish())
	require.Len(t, rows, 3)
}

type twoPartReader struct {
	data  []byte
	split int
	pos   int
}

func (r *twoPartReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}

	end := r.pos + 1
	if r.pos < r.split {
		end = r.split
	}
	if end > len(r.data) {
		end = len(r.data)
	}

	n := copy(p, r.data[r.pos:end])
	r.pos += n

	return n, nil
}
