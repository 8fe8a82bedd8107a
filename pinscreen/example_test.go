// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pinscreen_test

import (
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/pcf8575"
	"github.com/GermanBionicSystems/pcf8575/pcf8575test"
	"github.com/GermanBionicSystems/pcf8575/pinscreen"
)

// Example animates a chaser pattern on a simulated expander and renders it
// to the terminal.
func Example() {
	chip := pcf8575test.NewChip(pcf8575.DefaultAddress)
	dev, err := pcf8575.New(chip, pcf8575.DefaultAddress)
	if err != nil {
		log.Fatal(err)
	}
	screen := pinscreen.New(&pinscreen.Opts{})
	defer screen.Halt()

	for i := range 16 {
		if err := dev.WriteGPIO(0xffff &^ (1 << i)); err != nil {
			log.Fatal(err)
		}
		levels, err := dev.ReadGPIO()
		if err != nil {
			log.Fatal(err)
		}
		if err := screen.Update(gpio.GPIOValue(levels)); err != nil {
			log.Fatal(err)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
