// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package reefpi

import (
	"errors"
	"fmt"

	rpii2c "github.com/reef-pi/rpi/i2c"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// busAdapter exposes a reef-pi i2c bus as a periph one, so the expander
// driver can run unchanged inside reef-pi. Combined write+read transactions
// are not supported; the expander never issues them.
type busAdapter struct {
	bus rpii2c.Bus
}

func (b *busAdapter) String() string {
	return "reef-pi"
}

func (b *busAdapter) Tx(addr uint16, w, r []byte) error {
	switch {
	case len(w) > 0 && len(r) > 0:
		return errors.New("reefpi: combined write and read transactions are not supported")
	case len(w) > 0:
		return b.bus.WriteBytes(byte(addr), w)
	case len(r) > 0:
		got, err := b.bus.ReadBytes(byte(addr), len(r))
		if err != nil {
			return err
		}
		if len(got) < len(r) {
			return fmt.Errorf("reefpi: short read: got %d of %d bytes", len(got), len(r))
		}
		copy(r, got)
	}
	return nil
}

func (b *busAdapter) SetSpeed(f physic.Frequency) error {
	return errors.New("reefpi: bus speed control is not supported")
}

var _ i2c.Bus = &busAdapter{}
