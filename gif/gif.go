// Copyright 2018 Zanicar. All rights reserved.
// Utilizes a BSD-3 license. Refer to the included LICENSE file for details.

// Package gif provides a steganography implementation that outputs
// animated-GIF steganograms built from a true-color or paletted carrier
// still image. It accepts BMP, PNG and JPEG carriers.
package gif

import (
	"bytes"
	"image"
	stdgif "image/gif"
	"io"
	"io/ioutil"
	"log"

	"github.com/pkg/errors"

	steganogif "github.com/zanicar/steganogif"
	"github.com/zanicar/steganogif/internal/envelope"
	"github.com/zanicar/steganogif/internal/framecodec"
	"github.com/zanicar/steganogif/internal/mtrand"
	"github.com/zanicar/steganogif/internal/palette"
)

var (
	_ steganogif.Stegano = &SteganoGIF{}
)

// frameDelay is the per-frame display delay, in hundredths of a second,
// used for every emitted frame.
const frameDelay = 10

// SteganoGIF implements the Stegano interface for animated-GIF
// steganograms built around the palette-twin codec.
type SteganoGIF struct{}

// New returns a pointer to a new instance of SteganoGIF that is ready to
// use.
func New() *SteganoGIF {
	return &SteganoGIF{}
}

// Conceal reduces the carrier to an 8-bit indexed template, derives the
// password-seeded embedding stream, and writes a multi-frame animated GIF
// whose frames are each a twin-swapped copy of the carrier, striping the
// envelope (header || data || SHA-1 tail) across as many frames as
// required.
func (s SteganoGIF) Conceal(data []byte, password []byte, carrier io.Reader, writer io.Writer) error {
	log.Print("Conceal")

	raw, err := ioutil.ReadAll(carrier)
	if err != nil {
		return errors.Wrap(err, "read carrier")
	}

	img, err := decodeCarrier(raw)
	if err != nil {
		return err
	}

	tmpl, err := buildTemplate(img)
	if err != nil {
		return errors.Wrap(err, "build palette template")
	}

	inv, err := palette.BuildTwins(tmpl.palette)
	if err != nil {
		return errors.Wrap(err, "twin pairing")
	}

	env := envelope.Encode(data)
	frameCount := framecodec.FrameCount(len(env), tmpl.width, tmpl.height)
	log.Printf("envelope=%d bytes frames=%d geometry=%dx%d", len(env), frameCount, tmpl.width, tmpl.height)

	colorPalette := toImagePalette(tmpl.palette)

	rng := mtrand.New(password)
	pad := mtrand.NewAux()

	out := &stdgif.GIF{LoopCount: 0}
	offsetBits := 0
	for i := 0; i < frameCount; i++ {
		indices := make([]uint8, len(tmpl.indices))
		copy(indices, tmpl.indices)

		plane := framecodec.NewPlane(tmpl.width, tmpl.height, tmpl.palette, indices)
		offsetBits, err = framecodec.Encode(plane, inv, rng, pad, env, offsetBits)
		if err != nil {
			return errors.Wrap(err, "encode frame")
		}

		frame := &image.Paletted{
			Pix:     indices,
			Stride:  tmpl.width,
			Rect:    image.Rect(0, 0, tmpl.width, tmpl.height),
			Palette: colorPalette,
		}
		out.Image = append(out.Image, frame)
		out.Delay = append(out.Delay, frameDelay)
		out.Disposal = append(out.Disposal, stdgif.DisposalNone)
	}

	if err := stdgif.EncodeAll(writer, out); err != nil {
		return errors.Wrap(err, "write container")
	}

	log.Printf("%d bytes concealed across %d frames", len(data), frameCount)
	return nil
}

// Reveal parses the animated-GIF container frame by frame, rebuilding the
// twin involution from each frame's own active palette, deferring the
// envelope header parse until enough bits have been decoded, and verifying
// the trailing hash before writing anything.
func (s SteganoGIF) Reveal(reader io.Reader, password []byte, writer io.Writer) error {
	log.Print("Reveal")

	raw, err := ioutil.ReadAll(reader)
	if err != nil {
		return errors.Wrap(err, "read container")
	}

	g, err := stdgif.DecodeAll(bytes.NewReader(raw))
	if err != nil {
		return errors.Wrap(err, "decode container")
	}
	if len(g.Image) == 0 {
		return steganogif.ErrNoContent
	}

	rng := mtrand.New(password)

	var out []byte
	var hdr envelope.Header
	haveHeader := false
	headerFailed := false
	totalFrames := len(g.Image)

	for i, frame := range g.Image {
		rect := frame.Rect

		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		validateDisposal(i, disposal)

		pal := colorsFromImagePalette(frame.Palette)
		inv, err := palette.BuildTwins(pal)
		if err != nil {
			return errors.Wrapf(err, "frame %d twin pairing", i)
		}

		width, height := rect.Dx(), rect.Dy()
		idx := make([]uint8, width*height)
		for y := 0; y < height; y++ {
			row := frame.Pix[y*frame.Stride : y*frame.Stride+width]
			copy(idx[y*width:(y+1)*width], row)
		}
		plane := framecodec.NewPlane(width, height, pal, idx)

		out, err = framecodec.Decode(plane, inv, rng, out)
		if err != nil {
			return errors.Wrapf(err, "frame %d decode", i)
		}

		if !haveHeader && !headerFailed {
			h, _, herr := envelope.DecodeHeader(out)
			switch {
			case herr == nil:
				hdr = h
				haveHeader = true
				totalFrames = framecodec.FrameCount(envelope.Len(int(hdr.PayloadSize)), width, height)
				log.Printf("header parsed: payload=%d bytes frames=%d", hdr.PayloadSize, totalFrames)
			case errors.Is(herr, envelope.ErrBadHeader) && len(out) >= 10:
				// Five bytes is the maximum a varint can occupy; two
				// varints of garbage that still won't decode after ten
				// bytes means this is not our envelope at all (wrong
				// password), not a transient "not enough bytes yet".
				headerFailed = true
			}
		}

		if haveHeader && i+1 >= totalFrames {
			break
		}
	}

	if !haveHeader || headerFailed || len(g.Image) < totalFrames {
		return steganogif.ErrNoContent
	}

	envLen := envelope.Len(int(hdr.PayloadSize))
	if len(out) < envLen {
		return steganogif.ErrNoContent
	}

	headerLen := hdr.Len()
	payload := out[headerLen : headerLen+int(hdr.PayloadSize)]
	tail := out[headerLen+int(hdr.PayloadSize) : envLen]
	if !envelope.Verify(payload, tail) {
		return steganogif.ErrNoContent
	}

	n, err := writer.Write(payload)
	if err != nil {
		return errors.Wrap(err, "write payload")
	}
	log.Printf("%d bytes revealed", n)
	return nil
}
