package pool

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(64)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 64, bb.Cap())
}

func TestByteBuffer_MustWrite(t *testing.T) {
	bb := NewByteBuffer(DefaultBufferSize)
	bb.MustWrite([]byte("hello"))
	bb.MustWrite([]byte(" world"))
	assert.Equal(t, "hello world", string(bb.Bytes()))
}

func TestByteBuffer_MustWrite_GrowsBeyondInitialCapacity(t *testing.T) {
	bb := NewByteBuffer(4)
	data := bytes.Repeat([]byte("x"), DefaultBufferSize*5)
	bb.MustWrite(data)
	assert.Equal(t, data, bb.Bytes())
	assert.GreaterOrEqual(t, bb.Cap(), len(data))
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(DefaultBufferSize)
	bb.MustWrite([]byte("data"))
	capBefore := bb.Cap()

	bb.Reset()

	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, capBefore, bb.Cap())
}

func TestByteBuffer_Slice(t *testing.T) {
	bb := NewByteBuffer(DefaultBufferSize)
	bb.MustWrite([]byte("0123456789"))
	assert.Equal(t, []byte("234"), bb.Slice(2, 5))
}

func TestByteBuffer_Slice_InvalidIndicesPanics(t *testing.T) {
	bb := NewByteBuffer(DefaultBufferSize)
	bb.MustWrite([]byte("0123456789"))
	assert.Panics(t, func() { bb.Slice(5, 2) })
	assert.Panics(t, func() { bb.Slice(-1, 2) })
	assert.Panics(t, func() { bb.Slice(0, bb.Cap()+1) })
}

func TestByteBuffer_SetLength(t *testing.T) {
	bb := NewByteBuffer(DefaultBufferSize)
	bb.MustWrite([]byte("0123456789"))
	bb.SetLength(3)
	assert.Equal(t, "012", string(bb.Bytes()))
}

func TestByteBuffer_SetLength_InvalidPanics(t *testing.T) {
	bb := NewByteBuffer(DefaultBufferSize)
	assert.Panics(t, func() { bb.SetLength(-1) })
	assert.Panics(t, func() { bb.SetLength(bb.Cap() + 1) })
}

func TestByteBuffer_Extend(t *testing.T) {
	bb := NewByteBuffer(DefaultBufferSize)
	ok := bb.Extend(10)
	require.True(t, ok)
	assert.Equal(t, 10, bb.Len())
}

func TestByteBuffer_Extend_InsufficientCapacityFails(t *testing.T) {
	bb := NewByteBuffer(4)
	ok := bb.Extend(DefaultBufferSize)
	assert.False(t, ok)
	assert.Equal(t, 0, bb.Len())
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.ExtendOrGrow(DefaultBufferSize)
	assert.Equal(t, DefaultBufferSize, bb.Len())
	assert.GreaterOrEqual(t, bb.Cap(), DefaultBufferSize)
}

func TestByteBuffer_Grow_NoOpWhenCapacitySufficient(t *testing.T) {
	bb := NewByteBuffer(DefaultBufferSize)
	capBefore := bb.Cap()
	bb.Grow(10)
	assert.Equal(t, capBefore, bb.Cap())
}

func TestByteBuffer_Grow_SmallBufferStepsByDefaultSize(t *testing.T) {
	bb := NewByteBuffer(0)
	bb.Grow(1)
	assert.GreaterOrEqual(t, bb.Cap(), DefaultBufferSize)
}

func TestByteBuffer_Grow_LargeBufferStepsByQuarterCapacity(t *testing.T) {
	bb := NewByteBuffer(largeGrowthThreshold + 1)
	bb.B = bb.B[:largeGrowthThreshold+1]
	capBefore := bb.Cap()

	bb.Grow(1)

	assert.Greater(t, bb.Cap(), capBefore)
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(DefaultBufferSize)
	n, err := bb.Write([]byte("payload"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, "payload", string(bb.Bytes()))
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(DefaultBufferSize)
	bb.MustWrite([]byte("to writer"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	assert.EqualValues(t, len("to writer"), n)
	assert.Equal(t, "to writer", out.String())
}

type erroringWriter struct{}

func (erroringWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }

func TestByteBuffer_WriteTo_ErrorPropagation(t *testing.T) {
	bb := NewByteBuffer(DefaultBufferSize)
	bb.MustWrite([]byte("x"))

	_, err := bb.WriteTo(erroringWriter{})
	assert.Error(t, err)
}

func TestByteBuffer_FeedPattern(t *testing.T) {
	bb := NewByteBuffer(4)

	for _, chunk := range []string{"ply\n", "format ", "ascii 1.0\n", "end_header\n"} {
		bb.MustWrite([]byte(chunk))
	}

	assert.Equal(t, "ply\nformat ascii 1.0\nend_header\n", string(bb.Bytes()))
}
