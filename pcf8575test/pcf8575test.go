// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcf8575test simulates a PCF8575 so that code using the expander
// can be tested without hardware.
//
// The simulated chip behaves like the real part: it latches whatever is
// written to it, and a read returns the latch with the externally driven
// pins masked off. Use DriveLow and Release to play the role of buttons or
// other devices connected to the pins.
package pcf8575test

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Chip is a simulated PCF8575 that implements i2c.Bus.
//
// Use the embedded Mutex when touching the fields directly while the bus is
// in use by another goroutine.
type Chip struct {
	sync.Mutex
	// Addr is the i2c address the simulated chip answers on.
	Addr uint16
	// Latch is the 16-bit quasi-bidirectional latch. It powers up as
	// 0xffff, all pins released.
	Latch uint16
	// ExternalLow is the set of pins currently driven low from outside the
	// chip. A pin reads low when its latch bit is 0 or its ExternalLow bit
	// is 1.
	ExternalLow uint16
	// Err, when set, is returned by every transaction.
	Err error
	// Count is the number of transactions attempted.
	Count int
}

// NewChip returns a simulated chip in the power-on state, answering on
// addr.
func NewChip(addr uint16) *Chip {
	return &Chip{Addr: addr, Latch: 0xffff}
}

func (c *Chip) String() string {
	return "pcf8575sim"
}

// Tx handles one transaction against the simulated chip. A write latches
// the two transmitted bytes, least significant byte first. A read returns
// the electrical state of the pins.
func (c *Chip) Tx(addr uint16, w, r []byte) error {
	c.Lock()
	defer c.Unlock()
	c.Count++
	if c.Err != nil {
		return c.Err
	}
	if addr != c.Addr {
		return fmt.Errorf("pcf8575test: no device at address %#x", addr)
	}
	if len(w) > 0 {
		if len(w) != 2 {
			return fmt.Errorf("pcf8575test: writes must be 2 bytes, got %d", len(w))
		}
		c.Latch = uint16(w[0]) | uint16(w[1])<<8
	}
	if len(r) > 0 {
		if len(r) != 2 {
			return fmt.Errorf("pcf8575test: reads must be 2 bytes, got %d", len(r))
		}
		v := c.levels()
		r[0] = byte(v)
		r[1] = byte(v >> 8)
	}
	return nil
}

// SetSpeed is a no-op on the simulated chip.
func (c *Chip) SetSpeed(f physic.Frequency) error {
	return nil
}

// DriveLow simulates an external device sinking the pin to ground. Panics
// if pin is outside 0..15.
func (c *Chip) DriveLow(pin int) {
	checkPin(pin)
	c.Lock()
	defer c.Unlock()
	c.ExternalLow |= 1 << pin
}

// Release removes the external drive on the pin, letting the latch and the
// weak pull-up determine its level again. Panics if pin is outside 0..15.
func (c *Chip) Release(pin int) {
	checkPin(pin)
	c.Lock()
	defer c.Unlock()
	c.ExternalLow &^= 1 << pin
}

func checkPin(pin int) {
	if pin < 0 || pin > 15 {
		panic(fmt.Sprintf("pcf8575test: pin %d is outside 0..15", pin))
	}
}

// Levels returns the electrical state of the 16 pins.
func (c *Chip) Levels() uint16 {
	c.Lock()
	defer c.Unlock()
	return c.levels()
}

// levels requires c to be held.
func (c *Chip) levels() uint16 {
	return c.Latch &^ c.ExternalLow
}

var _ i2c.Bus = &Chip{}
