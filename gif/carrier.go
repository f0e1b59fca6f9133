package gif

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg" // register JPEG carrier decoding
	_ "image/png"  // register PNG carrier decoding

	_ "golang.org/x/image/bmp" // register BMP carrier decoding, the original tool's carrier format
	"github.com/pkg/errors"

	"github.com/zanicar/steganogif/internal/palette"
)

// decodeCarrier decodes a still-image carrier through the standard image
// registry, extended with golang.org/x/image/bmp so BMP carriers (the
// original tool's format) decode the same way PNG and JPEG carriers do.
func decodeCarrier(raw []byte) (image.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "carrier decode")
	}
	return src, nil
}

func colorsFromImagePalette(p color.Palette) []palette.Color {
	out := make([]palette.Color, len(p))
	for i, c := range p {
		r, g, b, _ := c.RGBA()
		out[i] = palette.Color{R: byte(r >> 8), G: byte(g >> 8), B: byte(b >> 8)}
	}
	return out
}

// toImagePalette is the inverse of colorsFromImagePalette, used when
// writing an image.Paletted frame for the output container.
func toImagePalette(pal []palette.Color) color.Palette {
	out := make(color.Palette, len(pal))
	for i, c := range pal {
		out[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}
	return out
}
