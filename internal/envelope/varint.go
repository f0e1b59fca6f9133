// Package envelope implements the variable-length header, payload framing
// and trailing integrity hash striped across a container's pixels.
package envelope

import "errors"

// ErrBadHeader is returned when a varint is truncated or overlong (a fifth
// continuation byte, i.e. more than 5 bytes), or when the decoded header
// version is nonzero.
var ErrBadHeader = errors.New("envelope: bad header")

// EncodeVarint appends the LEB128 unsigned encoding of v to dst and returns
// the result. Low-order 7 bits per byte, continuation bit set on all but
// the final byte.
func EncodeVarint(dst []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if v == 0 {
			return dst
		}
	}
}

// VarintLen returns the number of bytes EncodeVarint would emit for v.
func VarintLen(v uint32) int {
	n := 1
	for v >>= 7; v != 0; v >>= 7 {
		n++
	}
	return n
}

// DecodeVarint reads a LEB128 unsigned varint from the front of src,
// returning the value and the number of bytes consumed. A varint longer
// than 5 bytes (shift beyond 28 bits) is rejected with ErrBadHeader.
func DecodeVarint(src []byte) (uint32, int, error) {
	var result uint32
	var shift uint
	for i := 0; i < len(src); i++ {
		b := src[i]
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
		if shift > 28 {
			return 0, 0, ErrBadHeader
		}
	}
	return 0, 0, ErrBadHeader
}
