package mtrand

import (
	"crypto/sha1"
	"encoding/binary"
	"math/rand"
	"time"
)

// WordsFromPassword hashes the raw password bytes with SHA-1 (no salt, no
// length prefix) and splits the 20-byte digest into five big-endian 32-bit
// words.
func WordsFromPassword(password []byte) [5]uint32 {
	digest := sha1.Sum(password)
	var words [5]uint32
	for i := 0; i < 5; i++ {
		words[i] = binary.BigEndian.Uint32(digest[i*4 : i*4+4])
	}
	return words
}

// New builds the password-seeded, reproducible stream shared by encoder and
// decoder.
func New(password []byte) *MT19937 {
	return NewFromSeedWords(WordsFromPassword(password))
}

// Aux is a thin wrapper around the standard library's math/rand generator,
// used only for the encoder-only, non-reproducible steps: palette extension
// and trailing pad bits. It must never be consulted by the decoder.
type Aux struct {
	r *rand.Rand
}

// NewAux seeds an auxiliary generator from wall-clock time. It is
// intentionally not reproducible; pass a fixed seed in tests that need to
// pin its output.
func NewAux() *Aux {
	return &Aux{r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewAuxFromSeed builds a deterministic auxiliary generator, for tests that
// need to stub the palette-extension / padding step.
func NewAuxFromSeed(seed int64) *Aux {
	return &Aux{r: rand.New(rand.NewSource(seed))}
}

func (a *Aux) Intn(n int) int {
	return a.r.Intn(n)
}

func (a *Aux) Bit() uint8 {
	return uint8(a.r.Intn(2))
}
