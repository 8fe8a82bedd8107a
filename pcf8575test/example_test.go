// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8575test_test

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio"

	"github.com/GermanBionicSystems/pcf8575"
	"github.com/GermanBionicSystems/pcf8575/pcf8575test"
)

// ExampleChip exercises the driver against the simulated chip, no hardware
// required.
func ExampleChip() {
	chip := pcf8575test.NewChip(pcf8575.DefaultAddress)
	dev, err := pcf8575.New(chip, pcf8575.DefaultAddress)
	if err != nil {
		log.Fatal(err)
	}

	if err := dev.WritePin(3, gpio.Low); err != nil {
		log.Fatal(err)
	}
	v, err := dev.ReadGPIO()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%#04x\n", v)

	// A button press pulls pin 0 to ground.
	chip.DriveLow(0)
	l, err := dev.ReadPin(0)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(l)
	// Output:
	// 0xfff7
	// Low
}
