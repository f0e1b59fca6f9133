package gif

import (
	"image"
	"log"

	"github.com/zanicar/steganogif/internal/mtrand"
	"github.com/zanicar/steganogif/internal/palette"
)

// maxPaletteAttempts bounds the retries tolerated for the wall-clock-seeded
// extension step, which is probabilistic but overwhelmingly likely to
// succeed on the first try.
const maxPaletteAttempts = 64

// template is the fixed-geometry, fixed-palette index plane every output
// frame starts from, before any twin-pair bits are written.
type template struct {
	width, height int
	palette       []palette.Color
	indices       []uint8
}

// buildTemplate reduces img to an 8-bit indexed plane:
// an already-paletted carrier (≤256 colors, i.e. ≤8 bits per pixel) is used
// as-is; a true-color carrier is quantized to a freshly built 256-color
// palette.
func buildTemplate(img image.Image) (*template, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if p, ok := img.(*image.Paletted); ok {
		log.Printf("carrier already paletted: %d colors, skipping reduction", len(p.Palette))
		idx := make([]uint8, width*height)
		for y := 0; y < height; y++ {
			row := p.Pix[y*p.Stride : y*p.Stride+width]
			copy(idx[y*width:(y+1)*width], row)
		}
		pal := padToEven(colorsFromImagePalette(p.Palette))
		return &template{width: width, height: height, palette: pal, indices: idx}, nil
	}

	var built [256]palette.Color
	var err error
	for attempt := 0; attempt < maxPaletteAttempts; attempt++ {
		built, err = palette.Build(mtrand.NewAux())
		if err == nil {
			break
		}
		log.Printf("palette extension collided on attempt %d, retrying", attempt+1)
	}
	if err != nil {
		return nil, err
	}

	idx := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			c := palette.Color{R: byte(r >> 8), G: byte(g >> 8), B: byte(b >> 8)}
			idx[y*width+x] = nearestIndex(built[:], c)
		}
	}
	log.Printf("reduced true-color carrier to 256-color palette (%dx%d)", width, height)

	return &template{width: width, height: height, palette: built[:], indices: idx}, nil
}

// padToEven appends a single synthesized filler color when pal has an odd
// length, which a PNG carrier's PLTE chunk can legally have even though
// palette.BuildTwins requires an even-sized, duplicate-free set. The filler
// is chosen to not collide with any existing entry; no pixel index ever
// points at it, so it has no effect beyond satisfying the pairing
// precondition.
func padToEven(pal []palette.Color) []palette.Color {
	if len(pal)%2 == 0 {
		return pal
	}
	seen := make(map[palette.Color]bool, len(pal))
	for _, c := range pal {
		seen[c] = true
	}
	filler := palette.Color{}
	for seen[filler] {
		filler.B++
		if filler.B == 0 {
			filler.G++
		}
	}
	return append(pal, filler)
}

// nearestIndex snaps c to its closest palette entry by Euclidean RGB
// distance.
func nearestIndex(pal []palette.Color, c palette.Color) uint8 {
	best := 0
	bestDist := palette.Distance(pal[0], c)
	for i := 1; i < len(pal); i++ {
		if d := palette.Distance(pal[i], c); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}
