// Package mtrand implements the password-seeded pseudo-random stream shared
// by the encoder and decoder. It reproduces the C++ standard library's
// std::seed_seq expansion algorithm and a 32-bit std::mt19937 so that a Go
// encoder and a Go decoder (or, in principle, the original C++ tool) derive
// byte-identical streams from the same password.
package mtrand

// seedSeq reproduces std::seed_seq's generate() algorithm as specified by
// the C++ standard ([rand.util.seedseq]). Every conforming C++ standard
// library implements the same algorithm, which is why the reference notes
// this initialization as part of the wire contract: any deviation here
// desynchronizes the encoder and decoder streams.
type seedSeq struct {
	v []uint32
}

func newSeedSeq(v []uint32) *seedSeq {
	cp := make([]uint32, len(v))
	copy(cp, v)
	return &seedSeq{v: cp}
}

func t(x uint32) uint32 {
	return x ^ (x >> 27)
}

// generate fills a slice of length n following [rand.util.seedseq]/generate.
func (s *seedSeq) generate(n int) []uint32 {
	dst := make([]uint32, n)
	if n == 0 {
		return dst
	}
	for i := range dst {
		dst[i] = 0x8b8b8b8b
	}

	sz := len(s.v)
	var tt int
	switch {
	case n >= 623:
		tt = 11
	case n >= 68:
		tt = 7
	case n >= 39:
		tt = 5
	case n >= 7:
		tt = 3
	default:
		tt = (n - 1) / 2
	}
	p := (n - tt) / 2
	q := p + tt
	m := sz + 1
	if n > m {
		m = n
	}

	for k := 0; k < m; k++ {
		r1 := 1664525 * t(dst[k%n]^dst[(k+p)%n]^dst[(k+n-1)%n])
		var r2 uint32
		switch {
		case k == 0:
			r2 = r1 + uint32(sz)
		case k <= sz:
			r2 = r1 + uint32(k%n) + s.v[k-1]
		default:
			r2 = r1 + uint32(k%n)
		}
		dst[(k+p)%n] += r1
		dst[(k+q)%n] += r2
		dst[k%n] = r2
	}

	for k := m; k < m+n; k++ {
		r3 := 1566083941 * t(dst[k%n]+dst[(k+p)%n]+dst[(k+n-1)%n])
		r4 := r3 - uint32(k%n)
		dst[(k+p)%n] ^= r3
		dst[(k+q)%n] ^= r4
		dst[k%n] = r4
	}

	return dst
}
