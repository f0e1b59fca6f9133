package mtrand

const (
	stateSize   = 624
	shiftSize   = 397
	matrixA     = 0x9908b0df
	upperMask   = 0x80000000
	lowerMask   = 0x7fffffff
	tempering1  = 0x9d2c5680
	tempering2  = 0xefc60000
	tamperingB  = tempering1
	tamperingC  = tempering2
)

// MT19937 is a from-scratch 32-bit Mersenne Twister (period 2^19937-1),
// matching std::mt19937's parameters and std::seed_seq-based seeding.
type MT19937 struct {
	state [stateSize]uint32
	index int
}

// NewFromSeedWords seeds the generator from the five 32-bit words produced
// by hashing the password (see Seed), following std::mt19937's
// seed(Sseq&) overload: the seed sequence generates 624 words, those
// become the initial state verbatim, and when the top bit of the first
// word and every other word are all zero, the first word is replaced with
// 2^31 as the standard mandates.
func NewFromSeedWords(words [5]uint32) *MT19937 {
	seq := newSeedSeq(words[:])
	gen := seq.generate(stateSize)

	m := &MT19937{}
	copy(m.state[:], gen)
	if m.state[0]&upperMask == 0 {
		allZero := true
		for _, w := range m.state[1:] {
			if w != 0 {
				allZero = false
				break
			}
		}
		if allZero {
			m.state[0] = 1 << 31
		}
	}
	m.index = stateSize
	return m
}

// NewFromScalarSeed seeds the generator the classical single-uint32 way
// (init_genrand). The password-seeded stream does not use it, and neither
// does the auxiliary generator (Aux), which wraps math/rand.
func NewFromScalarSeed(seed uint32) *MT19937 {
	m := &MT19937{}
	m.state[0] = seed
	for i := 1; i < stateSize; i++ {
		prev := m.state[i-1]
		m.state[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	m.index = stateSize
	return m
}

func (m *MT19937) twist() {
	for i := 0; i < stateSize; i++ {
		x := (m.state[i] & upperMask) | (m.state[(i+1)%stateSize] & lowerMask)
		xA := x >> 1
		if x&1 != 0 {
			xA ^= matrixA
		}
		m.state[i] = m.state[(i+shiftSize)%stateSize] ^ xA
	}
	m.index = 0
}

// Uint32 draws the next 32-bit word from the stream.
func (m *MT19937) Uint32() uint32 {
	if m.index >= stateSize {
		m.twist()
	}
	y := m.state[m.index]
	m.index++

	y ^= y >> 11
	y ^= (y << 7) & tamperingB
	y ^= (y << 15) & tamperingC
	y ^= y >> 18
	return y
}

// Intn returns Uint32() mod n. This draws exactly one word per decision and
// reduces it with a plain modulo — not rejection sampling — so encoder and
// decoder consume the stream in lockstep regardless of any modulo bias.
func (m *MT19937) Intn(n int) int {
	if n <= 0 {
		panic("mtrand: Intn called with n <= 0")
	}
	return int(m.Uint32() % uint32(n))
}
