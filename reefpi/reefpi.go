// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package reefpi exposes the expander through reef-pi's hardware
// abstraction layer, as a digital input and output driver.
//
// reef-pi equipment control maps cleanly onto the chip: an outlet switched
// on releases its pin, an outlet switched off sinks it low, and float
// switches wired between a pin and ground read low when triggered.
package reefpi

import (
	"fmt"
	"sort"

	"github.com/reef-pi/hal"
	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/pcf8575"
)

// halPin is one expander pin seen through reef-pi's HAL.
type halPin struct {
	dev    *pcf8575.Dev
	number int
}

func (p *halPin) Name() string {
	return fmt.Sprintf("PCF8575:%d", p.number)
}

func (p *halPin) Number() int {
	return p.number
}

func (p *halPin) Close() error {
	return nil
}

// Read returns the electrical state of the pin. A pin that was driven low,
// by the expander itself or by something external, reads false.
func (p *halPin) Read() (bool, error) {
	l, err := p.dev.ReadPin(p.number)
	return bool(l), err
}

// Write drives the pin. true releases it so it floats high, false sinks it
// to ground.
func (p *halPin) Write(b bool) error {
	return p.dev.WritePin(p.number, gpio.Level(b))
}

// LastState reports the latch bit from the last successful write, not the
// electrical state of the pin. Use Read for that.
func (p *halPin) LastState() bool {
	return p.dev.LastWritten()&(1<<p.number) != 0
}

// Driver adapts an expander to reef-pi's HAL driver interfaces.
type Driver struct {
	dev  *pcf8575.Dev
	meta hal.Metadata
	pins []*halPin
}

// Wrap exposes an existing expander through reef-pi's HAL.
func Wrap(dev *pcf8575.Dev) *Driver {
	d := &Driver{dev: dev, meta: metadata()}
	for i := range dev.Pins {
		d.pins = append(d.pins, &halPin{dev: dev, number: i})
	}
	return d
}

func metadata() hal.Metadata {
	return hal.Metadata{
		Name:        "pcf8575",
		Description: "PCF8575 16-bit I2C GPIO expander. Bit=1 releases the pin, bit=0 drives it low.",
		Capabilities: []hal.Capability{
			hal.DigitalInput,
			hal.DigitalOutput,
		},
	}
}

func (d *Driver) Metadata() hal.Metadata {
	return d.meta
}

func (d *Driver) Close() error {
	return d.dev.Close()
}

func (d *Driver) Pins(cap hal.Capability) ([]hal.Pin, error) {
	switch cap {
	case hal.DigitalInput, hal.DigitalOutput:
		pins := make([]hal.Pin, len(d.pins))
		for i, p := range d.pins {
			pins[i] = p
		}
		sort.Slice(pins, func(i, j int) bool { return pins[i].Number() < pins[j].Number() })
		return pins, nil
	default:
		return nil, fmt.Errorf("reefpi: unsupported capability: %s", cap.String())
	}
}

func (d *Driver) DigitalInputPins() []hal.DigitalInputPin {
	out := make([]hal.DigitalInputPin, len(d.pins))
	for i, p := range d.pins {
		out[i] = p
	}
	return out
}

func (d *Driver) DigitalOutputPins() []hal.DigitalOutputPin {
	out := make([]hal.DigitalOutputPin, len(d.pins))
	for i, p := range d.pins {
		out[i] = p
	}
	return out
}

func (d *Driver) DigitalInputPin(n int) (hal.DigitalInputPin, error) {
	if n < 0 || n >= len(d.pins) {
		return nil, fmt.Errorf("reefpi: invalid pin %d", n)
	}
	return d.pins[n], nil
}

func (d *Driver) DigitalOutputPin(n int) (hal.DigitalOutputPin, error) {
	if n < 0 || n >= len(d.pins) {
		return nil, fmt.Errorf("reefpi: invalid pin %d", n)
	}
	return d.pins[n], nil
}

var _ hal.DigitalInputDriver = &Driver{}
var _ hal.DigitalOutputDriver = &Driver{}
