package codec_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plyio/ply/codec"
	"github.com/plyio/ply/format"
)

func TestAsciiCodec_ScalarRoundTrip(t *testing.T) {
	c := codec.ForFormat(format.ASCII)

	for _, tc := range []struct {
		kind format.ScalarKind
		text string
		want any
	}{
		{format.I8, "-12", int8(-12)},
		{format.U8, "255", uint8(255)},
		{format.I32, "-70000", int32(-70000)},
		{format.U32, "4000000000", uint32(4000000000)},
		{format.F32, "1.5", float32(1.5)},
		{format.F64, "-2.25", float64(-2.25)},
	} {
		got, n, err := c.DecodeScalar([]byte(tc.text+" "), tc.kind)
		require.NoError(t, err)
		require.Equal(t, len(tc.text), n)
		require.Equal(t, tc.want, got)
	}
}

func TestAsciiCodec_LeadingWhitespaceSkipped(t *testing.T) {
	c := codec.ForFormat(format.ASCII)
	got, n, err := c.DecodeScalar([]byte("   42\n"), format.I32)
	require.NoError(t, err)
	require.Equal(t, int32(42), got)
	require.Equal(t, 5, n)
}

func TestAsciiCodec_InfNanSpelling(t *testing.T) {
	c := codec.ForFormat(format.ASCII)

	got, _, err := c.DecodeScalar([]byte("inf"), format.F32)
	require.NoError(t, err)
	require.True(t, got.(float32) > 0)

	dst := c.EncodeScalar(nil, format.F32, float32(1))
	require.Equal(t, "1", string(dst))
}

func TestBinaryCodec_ScalarRoundTrip(t *testing.T) {
	le := codec.ForFormat(format.BinaryLittleEndian)
	be := codec.ForFormat(format.BinaryBigEndian)

	buf := le.EncodeScalar(nil, format.F32, float32(3.5))
	got, n, err := le.DecodeScalar(buf, format.F32)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, float32(3.5), got)

	buf = be.EncodeScalar(nil, format.U32, uint32(123456))
	got, n, err = be.DecodeScalar(buf, format.U32)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, uint32(123456), got)
}

func TestBinaryCodec_ShortBuffer(t *testing.T) {
	le := codec.ForFormat(format.BinaryLittleEndian)
	_, _, err := le.DecodeScalar([]byte{0x01, 0x02}, format.U32)
	require.ErrorIs(t, err, codec.ErrShortBuffer)
}

func TestCount_RoundTrip(t *testing.T) {
	le := codec.ForFormat(format.BinaryLittleEndian)
	buf := le.EncodeCount(nil, format.U8, 200)
	n, consumed, err := le.DecodeCount(buf, format.U8)
	require.NoError(t, err)
	require.Equal(t, 1, consumed)
	require.EqualValues(t, 200, n)

	ascii := codec.ForFormat(format.ASCII)
	buf = ascii.EncodeCount(nil, format.U32, 300)
	n, _, err = ascii.DecodeCount(append(buf, '\n'), format.U32)
	require.NoError(t, err)
	require.EqualValues(t, 300, n)
}
