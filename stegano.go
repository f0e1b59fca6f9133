// Copyright 2018 Zanicar. All rights reserved.
// Utilizes a BSD-3 license. Refer to the included LICENSE file for details.

// Package steganogif provides a simple interface for steganography
// implementations that hide a payload inside an animated GIF built from a
// true-color or paletted carrier still image.
package steganogif

import (
	"errors"
	"io"
)

// ErrCapacityMax means that a conceal received a length of bytes that
// exceeds its maximum representable size.
var ErrCapacityMax = errors.New("maximum capacity exceeded")

// ErrCapacityOverflow means that a conceal requires greater concealment
// capacity than the carrier's fixed geometry and frame count can provide.
var ErrCapacityOverflow = errors.New("concealment capacity exceeded")

// ErrNoContent is returned by Reveal when the extracted envelope's
// integrity hash does not match its payload — either because the password
// was wrong or because the container was tampered with. Callers must treat
// this as a clean, successful "nothing found" outcome, not a failure: no
// output is written and no error is surfaced to the end user.
var ErrNoContent = errors.New("no content matches this password")

// Stegano is the interface that groups the basic Conceal and Reveal methods.
type Stegano interface {
	Concealer
	Revealer
}

// Concealer is the interface that wraps the basic Conceal method.
//
// Conceal conceals data into the carrier image read from carrier, using
// password to derive the deterministic embedding stream, and writes the
// resulting animated container to writer.
// Conceal must not modify the data slice, even temporarily.
//
// Implementations must not retain data.
type Concealer interface {
	Conceal(data []byte, password []byte, carrier io.Reader, writer io.Writer) error
}

// Revealer is the interface that wraps the basic Reveal method.
//
// Reveal reveals the underlying data from the container read from reader
// using password, and writes it to writer. Reveal returns ErrNoContent
// (never any other error for this specific outcome) when the password does
// not match what the container was concealed with.
type Revealer interface {
	Reveal(reader io.Reader, password []byte, writer io.Writer) error
}
