package envelope

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarintRoundTrip(t *testing.T) {
	cases := []uint32{0, 1, 127, 128, 16383, 16384, 1<<28 - 1}
	for _, v := range cases {
		enc := EncodeVarint(nil, v)
		require.Len(t, enc, VarintLen(v))
		got, n, err := DecodeVarint(enc)
		require.NoError(t, err)
		require.Equal(t, len(enc), n)
		require.Equal(t, v, got)
	}
}

func TestVarintEdgeEncodings(t *testing.T) {
	require.Equal(t, []byte{0x7f}, EncodeVarint(nil, 127))
	require.Equal(t, []byte{0x80, 0x01}, EncodeVarint(nil, 128))
}

func TestDecodeVarintRejectsOverlong(t *testing.T) {
	// five continuation bytes before the terminator: shift exceeds 28.
	overlong := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	_, _, err := DecodeVarint(overlong)
	require.ErrorIs(t, err, ErrBadHeader)
}

func TestDecodeVarintRejectsTruncated(t *testing.T) {
	_, _, err := DecodeVarint([]byte{0x80})
	require.ErrorIs(t, err, ErrBadHeader)
}

func TestEnvelopeRoundTrip(t *testing.T) {
	payload := []byte("ok")
	env := Encode(payload)

	hdr, n, err := DecodeHeader(env)
	require.NoError(t, err)
	require.EqualValues(t, 0, hdr.Version)
	require.EqualValues(t, len(payload), hdr.PayloadSize)

	got := env[n : n+int(hdr.PayloadSize)]
	tail := env[n+int(hdr.PayloadSize) : n+int(hdr.PayloadSize)+HashSize]
	require.Equal(t, payload, got)
	require.True(t, Verify(got, tail))
}

func TestEnvelopeEmptyPayload(t *testing.T) {
	env := Encode(nil)
	require.Equal(t, Len(0), len(env))
	hdr, n, err := DecodeHeader(env)
	require.NoError(t, err)
	require.EqualValues(t, 0, hdr.PayloadSize)
	tail := env[n:]
	require.True(t, Verify(nil, tail))
}

func TestDecodeHeaderRejectsNonzeroVersion(t *testing.T) {
	var buf []byte
	buf = EncodeVarint(buf, 1) // version = 1
	buf = EncodeVarint(buf, 0)
	_, _, err := DecodeHeader(buf)
	require.ErrorIs(t, err, ErrBadHeader)
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	env := Encode([]byte("ok"))
	hdr, n, _ := DecodeHeader(env)
	payload := append([]byte(nil), env[n:n+int(hdr.PayloadSize)]...)
	tail := env[n+int(hdr.PayloadSize) : n+int(hdr.PayloadSize)+HashSize]
	payload[0] ^= 0xff
	require.False(t, Verify(payload, tail))
}
