// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8575

import (
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// Pin extends gpio.PinIO with the features supported by the expander.
//
// The chip has no direction register, so the input/output function reported
// by Func is a bookkeeping tag on top of the latch: In releases the pin and
// tags it gpio.IN, SetFunc(gpio.OUT) drives it low and tags it gpio.OUT,
// while Out writes the level without touching the tag.
type Pin interface {
	gpio.PinIO
	pin.PinFunc
	// SetPull configures the pull resistor of the pin. Only gpio.PullUp is
	// accepted; the built-in weak pull-up cannot be turned off or reversed.
	// gpio.PullNoChange is a no-op.
	SetPull(pull gpio.Pull) error
}

type pcfPin struct {
	dev    *Dev
	number int
	name   string
	fn     pin.Func // guarded by dev.mu
}

func (p *pcfPin) String() string {
	return p.name
}

// Halt releases the pin so it floats high, the power-on state.
func (p *pcfPin) Halt() error {
	return p.In(gpio.Float, gpio.NoEdge)
}

func (p *pcfPin) Name() string {
	return p.name
}

func (p *pcfPin) Number() int {
	return p.number
}

func (p *pcfPin) Function() string {
	return string(p.Func())
}

// In configures the pin for input. The latch bit is written high so the
// weak pull-up can float the line; anything external pulling the line down
// will then be seen by Read. Requesting gpio.PullDown fails before any bus
// traffic is generated.
func (p *pcfPin) In(pull gpio.Pull, edge gpio.Edge) error {
	switch pull {
	case gpio.PullDown:
		return ErrPullDownNotSupported
	case gpio.PullUp, gpio.Float, gpio.PullNoChange:
		// The fixed pull-up makes these all behave the same.
	}
	if edge != gpio.NoEdge {
		return ErrEdgeNotSupported
	}
	mask := uint16(1) << p.number
	p.dev.mu.Lock()
	defer p.dev.mu.Unlock()
	if err := p.dev.write(mask, mask); err != nil {
		return err
	}
	p.fn = gpio.IN
	return nil
}

// Read returns the electrical state of the pin. On a bus error the error is
// logged and Low is returned.
func (p *pcfPin) Read() gpio.Level {
	l, err := p.dev.ReadPin(p.number)
	if err != nil {
		log.Println(err)
		return gpio.Low
	}
	return l
}

// The chip has an interrupt line that fires on any pin change, but it does
// not report which pin changed, so edges cannot be watched per pin.
func (p *pcfPin) WaitForEdge(timeout time.Duration) bool {
	return false
}

func (p *pcfPin) Pull() gpio.Pull {
	return gpio.PullUp
}

func (p *pcfPin) DefaultPull() gpio.Pull {
	return gpio.PullUp
}

// SetPull accepts gpio.PullUp, which releases the pin so the built-in
// pull-up takes over. Any other pull cannot be provided by the chip.
func (p *pcfPin) SetPull(pull gpio.Pull) error {
	switch pull {
	case gpio.PullUp:
	case gpio.PullNoChange:
		return nil
	default:
		return ErrPullDownNotSupported
	}
	return p.dev.WritePin(p.number, gpio.High)
}

// Out drives the pin. The input/output tag reported by Func is not changed;
// use SetFunc to switch the pin function explicitly.
func (p *pcfPin) Out(l gpio.Level) error {
	return p.dev.WritePin(p.number, l)
}

func (p *pcfPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (p *pcfPin) Func() pin.Func {
	p.dev.mu.Lock()
	defer p.dev.mu.Unlock()
	return p.fn
}

func (p *pcfPin) SupportedFuncs() []pin.Func {
	return supportedFuncs[:]
}

// SetFunc switches the pin function. gpio.IN releases the pin like In,
// gpio.OUT drives it low, matching the safe state of an output that was
// just switched on.
func (p *pcfPin) SetFunc(f pin.Func) error {
	mask := uint16(1) << p.number
	var value uint16
	switch f {
	case gpio.IN:
		value = mask
	case gpio.OUT:
		value = 0
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFunc, f)
	}
	p.dev.mu.Lock()
	defer p.dev.mu.Unlock()
	if err := p.dev.write(value, mask); err != nil {
		return err
	}
	p.fn = f
	return nil
}

var supportedFuncs = [...]pin.Func{gpio.IN, gpio.OUT}

var _ Pin = &pcfPin{}
