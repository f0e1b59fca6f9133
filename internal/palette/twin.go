package palette

import "errors"

// ErrOddPalette is returned when twin pairing receives an odd-sized color
// set.
var ErrOddPalette = errors.New("palette: odd-sized color set cannot be paired")

// Involution is a total, self-inverse function over a palette's color set:
// Twin(Twin(c)) == c and Twin(c) != c for every c in the palette.
type Involution struct {
	m map[uint32]Color
}

// Twin returns the paired color for c. Panics if c is not a member of the
// involution — callers only ever query colors read back from a frame built
// from this same palette.
func (inv *Involution) Twin(c Color) Color {
	t, ok := inv.m[c.pack()]
	if !ok {
		panic("palette: color not present in twin involution")
	}
	return t
}

// Len reports the number of colors covered by the involution.
func (inv *Involution) Len() int { return len(inv.m) }

// BuildTwins computes the twin involution for an even-sized color set using
// greedy globally-closest-pair matching. Ties are broken by iteration order
// over the input slice, which callers must keep stable across encode and
// decode for wire compatibility.
func BuildTwins(colors []Color) (*Involution, error) {
	if len(colors)%2 != 0 {
		return nil, ErrOddPalette
	}

	remaining := make([]Color, len(colors))
	copy(remaining, colors)

	inv := &Involution{m: make(map[uint32]Color, len(colors))}

	for len(remaining) > 0 {
		bestI, bestJ := -1, -1
		var bestDist float32
		for i := 0; i < len(remaining); i++ {
			for j := 0; j < len(remaining); j++ {
				if i == j {
					continue
				}
				d := Distance(remaining[i], remaining[j])
				if bestI < 0 || d < bestDist {
					bestDist = d
					bestI, bestJ = i, j
				}
			}
		}

		a, b := remaining[bestI], remaining[bestJ]
		inv.m[a.pack()] = b
		inv.m[b.pack()] = a

		// Remove both, preserving relative order of the rest.
		lo, hi := bestI, bestJ
		if lo > hi {
			lo, hi = hi, lo
		}
		remaining = append(remaining[:lo], remaining[lo+1:]...)
		hi-- // index shifted down by the first removal
		remaining = append(remaining[:hi], remaining[hi+1:]...)
	}

	return inv, nil
}

// Lower and Upper return the pair's ordering under Color.Less: within a
// pair {a,b} with a<b, a is the lower and b is the upper twin.
func Lower(a, b Color) (lower, upper Color) {
	if a.Less(b) {
		return a, b
	}
	return b, a
}
