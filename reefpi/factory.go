// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package reefpi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/reef-pi/hal"
	rpii2c "github.com/reef-pi/rpi/i2c"

	"github.com/GermanBionicSystems/pcf8575"
)

const paramAddress = "Address"

type factory struct {
	meta       hal.Metadata
	parameters []hal.ConfigParameter
}

var (
	f    *factory
	once sync.Once
)

// Factory returns the reef-pi driver factory for the expander.
func Factory() hal.DriverFactory {
	once.Do(func() {
		f = &factory{
			meta: metadata(),
			parameters: []hal.ConfigParameter{
				{Name: paramAddress, Type: hal.String, Order: 0, Default: "0x20"},
			},
		}
	})
	return f
}

func (f *factory) Metadata() hal.Metadata {
	return f.meta
}

func (f *factory) GetParameters() []hal.ConfigParameter {
	return f.parameters
}

// parseAddr accepts "0x20" style hex or "32" style decimal.
func parseAddr(s string) (uint16, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, errors.New("empty address")
	}
	var v uint64
	var err error
	if strings.HasPrefix(s, "0x") {
		v, err = strconv.ParseUint(s[2:], 16, 8)
	} else {
		v, err = strconv.ParseUint(s, 10, 8)
	}
	return uint16(v), err
}

func (f *factory) ValidateParameters(params map[string]interface{}) (bool, map[string][]string) {
	errs := make(map[string][]string)
	addrStr, _ := params[paramAddress].(string)
	addrStr = strings.TrimSpace(addrStr)
	if addrStr == "" {
		errs[paramAddress] = append(errs[paramAddress], "is required (e.g. 0x20)")
	} else {
		addr, err := parseAddr(addrStr)
		if err != nil {
			errs[paramAddress] = append(errs[paramAddress], "must be a valid i2c address like 0x20..0x27")
		} else if addr > 0x7f {
			errs[paramAddress] = append(errs[paramAddress], "must be a 7-bit address (0..127)")
		}
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

func (f *factory) NewDriver(params map[string]interface{}, bus interface{}) (hal.Driver, error) {
	if ok, failures := f.ValidateParameters(params); !ok {
		return nil, errors.New(hal.ToErrorString(failures))
	}
	rpiBus, ok := bus.(rpii2c.Bus)
	if !ok {
		return nil, fmt.Errorf("reefpi: expected i2c.Bus, got %T", bus)
	}
	addrStr, _ := params[paramAddress].(string)
	addr, err := parseAddr(addrStr)
	if err != nil {
		return nil, fmt.Errorf("reefpi: invalid %s %q: %w", paramAddress, addrStr, err)
	}
	dev, err := pcf8575.New(&busAdapter{bus: rpiBus}, addr)
	if err != nil {
		return nil, err
	}
	// Apply the power-on state so no pin is left driven low from a previous
	// run.
	if err := dev.Halt(); err != nil {
		return nil, err
	}
	return Wrap(dev), nil
}
