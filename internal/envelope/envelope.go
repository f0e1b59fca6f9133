package envelope

import "crypto/sha1"

const (
	// Version is the only header version this codec emits or accepts.
	Version = 0
	// HashSize is the length, in bytes, of the trailing SHA-1 integrity tail.
	HashSize = sha1.Size
)

// Encode builds the full envelope byte stream: varint(version) ||
// varint(len(payload)) || payload || sha1(payload).
func Encode(payload []byte) []byte {
	out := make([]byte, 0, VarintLen(Version)+VarintLen(uint32(len(payload)))+len(payload)+HashSize)
	out = EncodeVarint(out, Version)
	out = EncodeVarint(out, uint32(len(payload)))
	out = append(out, payload...)
	sum := sha1.Sum(payload)
	out = append(out, sum[:]...)
	return out
}

// Len returns the total encoded envelope size for a payload of the given
// length.
func Len(payloadSize int) int {
	return VarintLen(Version) + VarintLen(uint32(payloadSize)) + payloadSize + HashSize
}

// Header is the parsed version/payload-size pair at the front of an
// envelope.
type Header struct {
	Version     uint32
	PayloadSize uint32
}

// Len is the number of bytes Encode emits for h's two varints, which is
// what DecodeHeader consumes for a minimally encoded header.
func (h Header) Len() int {
	return VarintLen(h.Version) + VarintLen(h.PayloadSize)
}

// DecodeHeader parses the two leading varints of an envelope, rejecting a
// nonzero version with ErrBadHeader
func DecodeHeader(src []byte) (Header, int, error) {
	version, n1, err := DecodeVarint(src)
	if err != nil {
		return Header{}, 0, err
	}
	if version != Version {
		return Header{}, 0, ErrBadHeader
	}
	payloadSize, n2, err := DecodeVarint(src[n1:])
	if err != nil {
		return Header{}, 0, err
	}
	return Header{Version: version, PayloadSize: payloadSize}, n1 + n2, nil
}

// Verify checks the trailing SHA-1 tail against the payload bytes,
// returning false on a mismatch. Callers translate a false result into the
// "no content matches this password" outcome, never a surfaced error.
func Verify(payload, tail []byte) bool {
	if len(tail) != HashSize {
		return false
	}
	sum := sha1.Sum(payload)
	for i := range sum {
		if sum[i] != tail[i] {
			return false
		}
	}
	return true
}
