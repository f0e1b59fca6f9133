// Package framecodec implements the per-pixel embedding/extraction pass: a
// seeded permutation of pixel coordinates, a per-pixel swap-mask bit, and
// twin-pair color selection that stores one payload bit per pixel.
package framecodec

import (
	"errors"

	"github.com/zanicar/steganogif/internal/mtrand"
	"github.com/zanicar/steganogif/internal/palette"
)

// ErrBadGeometry is returned when a frame's pixel count is not a multiple
// of 8, the codec's permutation and byte-packing precondition.
var ErrBadGeometry = errors.New("framecodec: frame pixel count is not a multiple of 8")

// Plane is the mutable index-plane view of one frame: a flat, row-major
// array of palette indices plus the palette that resolves them to colors.
// Container format details (GIF graphic blocks, local vs global palette)
// are left to the caller.
type Plane struct {
	Width, Height int
	Palette       []palette.Color // len in (0, 256]
	Indices       []uint8         // len == Width*Height

	colorIndex map[uint32]uint8
}

func packColor(c palette.Color) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// NewPlane builds a Plane and its internal color->index lookup table.
func NewPlane(width, height int, pal []palette.Color, indices []uint8) *Plane {
	p := &Plane{Width: width, Height: height, Palette: pal, Indices: indices}
	p.colorIndex = make(map[uint32]uint8, len(pal))
	for i, c := range pal {
		p.colorIndex[packColor(c)] = uint8(i)
	}
	return p
}

func (p *Plane) colorAt(x, y int) palette.Color {
	idx := p.Indices[y*p.Width+x]
	return p.Palette[idx]
}

func (p *Plane) setColorAt(x, y int, c palette.Color) {
	idx, ok := p.colorIndex[packColor(c)]
	if !ok {
		panic("framecodec: color not present in frame palette")
	}
	p.Indices[y*p.Width+x] = idx
}

type point struct{ x, y int }

// pixelList builds the row-major coordinate list the per-frame permutation
// draws from, i.e. [(x,y) for y in [0,H) for x in [0,W)].
func pixelList(width, height int) []point {
	out := make([]point, width*height)
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out[i] = point{x, y}
			i++
		}
	}
	return out
}

func checkGeometry(width, height int) error {
	if (width*height)%8 != 0 {
		return ErrBadGeometry
	}
	return nil
}

// padSource supplies padding bits once the byte buffer is exhausted, and is
// satisfied by internal/mtrand.Aux. It must never be consulted by Decode.
type padSource interface {
	Bit() uint8
}

// Encode embeds the bytes of buf, starting at bit offset offsetBits, into
// plane's pixels. It returns the bit offset to resume at for the next
// frame. Once buf is exhausted, pad bits are drawn from pad (ignored on
// reveal, since the decoded stream is truncated to the envelope length).
func Encode(plane *Plane, inv *palette.Involution, rng *mtrand.MT19937, pad padSource, buf []byte, offsetBits int) (nextOffsetBits int, err error) {
	if err := checkGeometry(plane.Width, plane.Height); err != nil {
		return 0, err
	}

	pixels := pixelList(plane.Width, plane.Height)
	n := len(pixels)

	for i := 0; i < n; i++ {
		j := i + rng.Intn(n-i)
		pixels[i], pixels[j] = pixels[j], pixels[i]

		bitPos := offsetBits + i
		byteIdx := bitPos / 8
		var data uint8
		if byteIdx < len(buf) {
			data = (buf[byteIdx] >> uint(bitPos%8)) & 1
		} else {
			data = pad.Bit()
		}

		swap := uint8(rng.Uint32() & 1)

		pt := pixels[i]
		c := plane.colorAt(pt.x, pt.y)
		t := inv.Twin(c)
		lower, upper := palette.Lower(c, t)

		var out palette.Color
		if (data^swap) != 0 {
			out = upper
		} else {
			out = lower
		}
		plane.setColorAt(pt.x, pt.y, out)
	}

	return offsetBits + n, nil
}

// Decode extracts plane.Width*plane.Height bits from plane's pixels and
// appends the resulting bytes to dst, returning the updated byte slice.
// Exactly Width*Height/8 bytes are appended.
func Decode(plane *Plane, inv *palette.Involution, rng *mtrand.MT19937, dst []byte) ([]byte, error) {
	if err := checkGeometry(plane.Width, plane.Height); err != nil {
		return nil, err
	}

	pixels := pixelList(plane.Width, plane.Height)
	n := len(pixels)

	var current byte
	for i := 0; i < n; i++ {
		j := i + rng.Intn(n-i)
		pixels[i], pixels[j] = pixels[j], pixels[i]

		swap := uint8(rng.Uint32() & 1)

		pt := pixels[i]
		c := plane.colorAt(pt.x, pt.y)
		t := inv.Twin(c)
		bit := boolToBit(t.Less(c)) ^ swap

		current |= bit << uint(i%8)
		if i%8 == 7 {
			dst = append(dst, current)
			current = 0
		}
	}

	return dst, nil
}

// FrameCount returns ceil(8*envelopeLen / (width*height)), the number of
// fixed-geometry frames needed to carry envelopeLen bytes one bit per pixel.
func FrameCount(envelopeLen, width, height int) int {
	bits := 8 * envelopeLen
	capacity := width * height
	return (bits + capacity - 1) / capacity
}

func boolToBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
