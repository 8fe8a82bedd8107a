// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8575

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/pin"
)

// Group is a set of pins on the expander that can be written and read as a
// unit, in one bus transaction.
type Group struct {
	dev  *Dev
	pins []*pcfPin
}

// Group returns a gpio.Group made up of the specified pin numbers. Bit 0 of
// a group value maps to the first pin number given, bit 1 to the second,
// and so on.
func (dev *Dev) Group(pinNumbers ...int) (gpio.Group, error) {
	gr := &Group{dev: dev, pins: make([]*pcfPin, len(pinNumbers))}
	for ix, pinNumber := range pinNumbers {
		if pinNumber < 0 || pinNumber >= len(dev.Pins) {
			return nil, ErrInvalidPin
		}
		p, ok := dev.Pins[pinNumber].(*pcfPin)
		if !ok {
			return nil, fmt.Errorf("pcf8575: pin %d is not owned by this device", pinNumber)
		}
		gr.pins[ix] = p
	}
	return gr, nil
}

// Pins returns the pins that make up the group.
func (gr *Group) Pins() []pin.Pin {
	pins := make([]pin.Pin, len(gr.pins))
	for ix := range gr.pins {
		pins[ix] = gr.pins[ix]
	}
	return pins
}

// ByOffset returns the pin at the given offset within the group, or nil if
// the offset is out of range.
func (gr *Group) ByOffset(offset int) pin.Pin {
	if offset < 0 || offset >= len(gr.pins) {
		return nil
	}
	return gr.pins[offset]
}

// ByName returns the pin with the given name, or nil.
func (gr *Group) ByName(name string) pin.Pin {
	for _, p := range gr.pins {
		if p.name == name {
			return p
		}
	}
	return nil
}

// ByNumber returns the pin with the given number on the device, or nil.
func (gr *Group) ByNumber(number int) pin.Pin {
	for _, p := range gr.pins {
		if p.number == number {
			return p
		}
	}
	return nil
}

// devMask converts a mask of group offsets into a mask of device pins.
func (gr *Group) devMask(mask gpio.GPIOValue) uint16 {
	m := uint16(0)
	for ix := range gr.pins {
		if mask&(1<<ix) != 0 {
			m |= 1 << gr.pins[ix].number
		}
	}
	return m
}

// Out writes value to the pins of the group selected by mask, in a single
// bus transaction. A mask of 0 selects all pins in the group.
func (gr *Group) Out(value, mask gpio.GPIOValue) error {
	if mask == 0 {
		mask = (1 << len(gr.pins)) - 1
	}
	wrMask := gr.devMask(mask)
	wr := uint16(0)
	for ix, p := range gr.pins {
		if value&(1<<ix) != 0 {
			wr |= 1 << p.number
		}
	}
	gr.dev.mu.Lock()
	defer gr.dev.mu.Unlock()
	return gr.dev.write(wr, wrMask)
}

// Read returns the state of the pins of the group selected by mask. A mask
// of 0 selects all pins in the group.
func (gr *Group) Read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	if mask == 0 {
		mask = (1 << len(gr.pins)) - 1
	}
	gr.dev.mu.Lock()
	v, err := gr.dev.read()
	gr.dev.mu.Unlock()
	if err != nil {
		return 0, err
	}
	result := gpio.GPIOValue(0)
	for ix, p := range gr.pins {
		if mask&(1<<ix) == 0 {
			continue
		}
		if v&(1<<p.number) != 0 {
			result |= 1 << ix
		}
	}
	return result, nil
}

// WaitForEdge is not available. The interrupt line of the chip fires on any
// pin change without saying which pin changed, so group edge detection
// cannot be provided. Wire the INT pin to a host GPIO and watch that
// instead.
func (gr *Group) WaitForEdge(timeout time.Duration) (int, gpio.Edge, error) {
	return -1, gpio.NoEdge, gpio.ErrGroupFeatureNotImplemented
}

// Halt releases the pins of the group so they float high, then empties the
// group so it can no longer drive them. String keeps working on a halted
// group.
func (gr *Group) Halt() error {
	if len(gr.pins) == 0 {
		return nil
	}
	mask := gr.devMask((1 << len(gr.pins)) - 1)
	gr.dev.mu.Lock()
	err := gr.dev.write(mask, mask)
	gr.dev.mu.Unlock()
	gr.pins = nil
	return err
}

func (gr *Group) String() string {
	s := gr.dev.String() + "[ "
	for _, p := range gr.pins {
		s += fmt.Sprintf("%d ", p.number)
	}
	s += "]"
	return s
}

var _ gpio.Group = &Group{}
