package gif

import (
	"bytes"
	"image"
	"image/color"
	stdgif "image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	steganogif "github.com/zanicar/steganogif"
	"github.com/zanicar/steganogif/internal/framecodec"
)

// distinctPalette256 returns 256 colors that vary only in the red channel,
// guaranteeing distinctness without relying on the real palette builder.
func distinctPalette256() color.Palette {
	pal := make(color.Palette, 256)
	for i := range pal {
		pal[i] = color.RGBA{R: byte(i), G: 0, B: 0, A: 0xff}
	}
	return pal
}

func samplePalettedCarrier(width, height int) *image.Paletted {
	pal := distinctPalette256()
	img := image.NewPaletted(image.Rect(0, 0, width, height), pal)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetColorIndex(x, y, uint8((x+y*width)%256))
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestConcealRevealRoundTripTinyPayload(t *testing.T) {
	carrier := samplePalettedCarrier(4, 2)
	carrierBytes := encodePNG(t, carrier)

	data := []byte("ok")
	password := []byte("correct horse battery staple")

	var container bytes.Buffer
	s := New()
	require.NoError(t, s.Conceal(data, password, bytes.NewReader(carrierBytes), &container))

	var revealed bytes.Buffer
	require.NoError(t, s.Reveal(bytes.NewReader(container.Bytes()), password, &revealed))
	require.Equal(t, data, revealed.Bytes())
}

func TestConcealRevealRoundTripMultiFrame(t *testing.T) {
	carrier := samplePalettedCarrier(8, 8)
	carrierBytes := encodePNG(t, carrier)

	data := bytes.Repeat([]byte("the quick brown fox "), 8)
	password := []byte("multi-frame-password")

	var container bytes.Buffer
	s := New()
	require.NoError(t, s.Conceal(data, password, bytes.NewReader(carrierBytes), &container))

	var revealed bytes.Buffer
	require.NoError(t, s.Reveal(bytes.NewReader(container.Bytes()), password, &revealed))
	require.Equal(t, data, revealed.Bytes())
}

func TestRevealWithWrongPasswordReportsNoContent(t *testing.T) {
	carrier := samplePalettedCarrier(4, 2)
	carrierBytes := encodePNG(t, carrier)

	data := []byte("ok")

	var container bytes.Buffer
	s := New()
	require.NoError(t, s.Conceal(data, []byte("right password"), bytes.NewReader(carrierBytes), &container))

	var revealed bytes.Buffer
	err := s.Reveal(bytes.NewReader(container.Bytes()), []byte("wrong password"), &revealed)
	require.ErrorIs(t, err, steganogif.ErrNoContent)
	require.Zero(t, revealed.Len())
}

func TestConcealRejectsBadGeometry(t *testing.T) {
	carrier := samplePalettedCarrier(3, 3) // 9 pixels, not a multiple of 8
	carrierBytes := encodePNG(t, carrier)

	var container bytes.Buffer
	s := New()
	err := s.Conceal([]byte("ok"), []byte("password"), bytes.NewReader(carrierBytes), &container)
	require.ErrorIs(t, err, framecodec.ErrBadGeometry)
}

// TestRevealIgnoresDisposalMethodThreeOnNonFinalFrame guards against
// extraction being affected by a third-party container's disposal bytes:
// per-frame decoding reads each frame's own Pix/Palette directly, so a
// disposal-3 ("restore to previous") frame in the middle of the sequence
// must decode identically to one with disposal left at its original value.
func TestRevealIgnoresDisposalMethodThreeOnNonFinalFrame(t *testing.T) {
	carrier := samplePalettedCarrier(8, 8)
	carrierBytes := encodePNG(t, carrier)

	data := bytes.Repeat([]byte("the quick brown fox "), 8)
	password := []byte("disposal-test-password")

	var container bytes.Buffer
	s := New()
	require.NoError(t, s.Conceal(data, password, bytes.NewReader(carrierBytes), &container))

	g, err := stdgif.DecodeAll(bytes.NewReader(container.Bytes()))
	require.NoError(t, err)
	require.Greater(t, len(g.Image), 1)
	g.Disposal[0] = stdgif.DisposalPrevious

	var mutated bytes.Buffer
	require.NoError(t, stdgif.EncodeAll(&mutated, g))

	var revealed bytes.Buffer
	require.NoError(t, s.Reveal(bytes.NewReader(mutated.Bytes()), password, &revealed))
	require.Equal(t, data, revealed.Bytes())
}

func TestConcealRevealEmptyPayload(t *testing.T) {
	carrier := samplePalettedCarrier(4, 2)
	carrierBytes := encodePNG(t, carrier)

	password := []byte("password")

	var container bytes.Buffer
	s := New()
	require.NoError(t, s.Conceal(nil, password, bytes.NewReader(carrierBytes), &container))

	var revealed bytes.Buffer
	require.NoError(t, s.Reveal(bytes.NewReader(container.Bytes()), password, &revealed))
	require.Empty(t, revealed.Bytes())
}
