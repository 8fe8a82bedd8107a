// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcf8575 provides a driver for the NXP/TI PCF8575 16-bit I2C I/O
// expander.
//
// The PCF8575 exposes 16 "quasi-bidirectional" pins. There is no direction
// register: writing a 1 releases a pin and a weak internal pull-up lets it
// float high, so the pin can be used as an input or as a logic high output.
// Writing a 0 sinks the line to ground through an open drain transistor.
// Input and output are therefore emulated on top of a single 16-bit latch,
// and a pin that is driven low externally reads low even when its latch bit
// is 1.
//
// The chip has no registers. Every transfer is two bytes wide, least
// significant byte first: a write sets all 16 pins at once, a read samples
// them. The power-on state of the latch is 0xffff, all pins released.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/pcf8575.pdf
//
// Adafruit sells a breakout board with this chip. See here:
//
// https://www.adafruit.com/product/5611
package pcf8575

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
)

// DefaultAddress is the i2c address with all three address straps low. The
// straps select an address in the range 0x20 to 0x27.
const DefaultAddress uint16 = 0x20

// pinCount is the number of quasi-bidirectional pins on the expander.
const pinCount = 16

var (
	// ErrInvalidAddress is returned by New when the device address does not
	// fit in 7 bits.
	ErrInvalidAddress = errors.New("pcf8575: address must be a 7-bit value")
	// ErrInvalidPin is returned when a pin number is outside 0..15.
	ErrInvalidPin = errors.New("pcf8575: pin number must be in the range 0..15")
	// ErrPullDownNotSupported is returned when a pull other than the built-in
	// pull-up is requested. The chip has a fixed weak pull-up on every pin
	// and no way to pull a pin down.
	ErrPullDownNotSupported = errors.New("pcf8575: pull-down resistors are not supported")
	// ErrEdgeNotSupported is returned when edge detection is requested. The
	// INT line of the chip fires on any pin change and does not report which
	// pin changed, so per-pin edges cannot be implemented over i2c.
	ErrEdgeNotSupported = errors.New("pcf8575: edge detection is not supported")
	// ErrUnsupportedFunc is returned by SetFunc for functions other than
	// gpio.IN and gpio.OUT.
	ErrUnsupportedFunc = errors.New("pcf8575: function not supported")
	// ErrNotImplemented is returned for operations the chip cannot perform,
	// such as PWM.
	ErrNotImplemented = errors.New("pcf8575: not implemented")
)

// Dev is a handle to a PCF8575 on an i2c bus.
type Dev struct {
	// Pins is the set of 16 quasi-bidirectional pins exposed by the device.
	Pins []Pin

	mu    sync.Mutex
	d     *i2c.Dev
	value uint16
	wbuf  [2]byte
	rbuf  [2]byte
}

// New creates a new PCF8575 io expander at the given address and registers
// its pins with the gpio registry. No bus traffic is generated; the latch is
// assumed to hold its power-on value of 0xffff until the first write.
func New(bus i2c.Bus, address uint16) (*Dev, error) {
	if address > 0x7f {
		return nil, ErrInvalidAddress
	}
	dev := &Dev{
		d:     &i2c.Dev{Bus: bus, Addr: address},
		value: 0xffff,
	}
	dev.Pins = make([]Pin, pinCount)
	sDev := dev.String()
	for ix := range pinCount {
		name := fmt.Sprintf("%s_GPIO%d", sDev, ix)
		dev.Pins[ix] = &pcfPin{dev: dev, number: ix, name: name, fn: gpio.IN}
		_ = gpioreg.Register(dev.Pins[ix])
	}
	return dev, nil
}

// WriteGPIO sets all 16 pins at once. A 1 bit releases the corresponding pin
// so it floats high, a 0 bit drives it low.
func (dev *Dev) WriteGPIO(value uint16) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.write(value, 0xffff)
}

// ReadGPIO returns the electrical state of all 16 pins. A pin whose latch
// bit is 1 reads low when something external drives the line down.
func (dev *Dev) ReadGPIO() (uint16, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.read()
}

// WritePin sets a single pin without disturbing the other 15. The whole
// latch is retransmitted on every call, whether or not the bit changed.
func (dev *Dev) WritePin(pinNumber int, l gpio.Level) error {
	if pinNumber < 0 || pinNumber >= pinCount {
		return ErrInvalidPin
	}
	mask := uint16(1) << pinNumber
	value := uint16(0)
	if l {
		value = mask
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.write(value, mask)
}

// ReadPin returns the electrical state of a single pin.
func (dev *Dev) ReadPin(pinNumber int) (gpio.Level, error) {
	if pinNumber < 0 || pinNumber >= pinCount {
		return gpio.Low, ErrInvalidPin
	}
	dev.mu.Lock()
	defer dev.mu.Unlock()
	v, err := dev.read()
	if err != nil {
		return gpio.Low, err
	}
	return gpio.Level(v&(1<<pinNumber) != 0), nil
}

// LastWritten returns the last value successfully written to the latch.
// Before the first write it reports the power-on value, 0xffff.
func (dev *Dev) LastWritten() uint16 {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.value
}

// Pin returns the handle for a single pin.
func (dev *Dev) Pin(pinNumber int) (Pin, error) {
	if pinNumber < 0 || pinNumber >= len(dev.Pins) {
		return nil, ErrInvalidPin
	}
	return dev.Pins[pinNumber], nil
}

// Halt returns all pins to the power-on state, releasing every line so it
// floats high. It implements conn.Resource.
func (dev *Dev) Halt() error {
	return dev.WriteGPIO(0xffff)
}

// Close unregisters the pins from the gpio registry and discards the pin
// handles; Pin and Group report ErrInvalidPin afterwards. The latch is left
// as-is; call Halt first to release the lines.
func (dev *Dev) Close() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	var err error
	for _, p := range dev.Pins {
		if err2 := gpioreg.Unregister(p.Name()); err2 != nil && err == nil {
			err = err2
		}
	}
	dev.Pins = nil
	return err
}

func (dev *Dev) String() string {
	return fmt.Sprintf("PCF8575_%x", dev.d.Addr)
}

// write drives the pins selected by mask to value, leaving the other bits of
// the latch alone, and transmits the whole 16-bit latch to the device. The
// cached latch value is only updated once the transfer succeeded. dev.mu
// must be held.
func (dev *Dev) write(value, mask uint16) error {
	wrValue := (dev.value &^ mask) | (value & mask)
	dev.wbuf[0] = byte(wrValue)
	dev.wbuf[1] = byte(wrValue >> 8)
	if err := dev.d.Tx(dev.wbuf[:], nil); err != nil {
		return fmt.Errorf("pcf8575: %w", err)
	}
	dev.value = wrValue
	return nil
}

// read samples the 16 pins. It does not touch the latch: pins that were
// driven low keep reading low until they are released. dev.mu must be held.
func (dev *Dev) read() (uint16, error) {
	if err := dev.d.Tx(nil, dev.rbuf[:]); err != nil {
		return 0, fmt.Errorf("pcf8575: %w", err)
	}
	return uint16(dev.rbuf[0]) | uint16(dev.rbuf[1])<<8, nil
}

var _ conn.Resource = &Dev{}
