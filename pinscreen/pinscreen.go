// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pinscreen renders the state of expander pins as colored blocks on
// the terminal using ANSI color codes.
//
// Useful while you are waiting for your relay board to come by mail.
package pinscreen

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/gpio"
)

// Opts represents the options available for the screen.
type Opts struct {
	// Pins is the number of pins to render. Defaults to 16.
	Pins int
	// High and Low are the colors of a released and a driven pin. They
	// default to green and red.
	High color.NRGBA
	Low  color.NRGBA
	// Palette converts the colors to ANSI codes. Defaults to
	// ansi256.Default.
	Palette *ansi256.Palette
	// W is where the screen is drawn. Defaults to a colorable stdout.
	W io.Writer

	_ struct{}
}

// Dev is a pin state emulator that outputs to the console. Pin 0 is the
// leftmost block.
type Dev struct {
	w       io.Writer
	n       int
	palette ansi256.Palette
	high    color.NRGBA
	low     color.NRGBA

	buf bytes.Buffer
}

// New returns a Dev that displays pin levels at the console.
//
// Permits local testing of GPIO output sequencing.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	n := opts.Pins
	if n == 0 {
		n = 16
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	high := opts.High
	if high == (color.NRGBA{}) {
		high = color.NRGBA{G: 255, A: 255}
	}
	low := opts.Low
	if low == (color.NRGBA{}) {
		low = color.NRGBA{R: 255, A: 255}
	}
	return &Dev{
		w:       w,
		n:       n,
		palette: *p,
		high:    high,
		low:     low,
	}
}

func (d *Dev) String() string {
	return "PinScreen"
}

// Halt implements conn.Resource.
//
// It moves to the next line and resets the colors so the terminal is not
// corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Update redraws the screen with the given pin levels, bit 0 first.
func (d *Dev) Update(levels gpio.GPIOValue) error {
	// This code is designed to minimize the amount of memory allocated per
	// call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i := 0; i < d.n; i++ {
		c := d.low
		if levels&(1<<i) != 0 {
			c = d.high
		}
		_, _ = io.WriteString(&d.buf, d.palette.Block(c))
	}
	_, _ = d.buf.WriteString("\033[0m ")
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ fmt.Stringer = &Dev{}
