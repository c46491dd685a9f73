// Package reefpi exposes an ADC Pi board to reef-pi as a HAL driver with
// eight analog input pins.
package reefpi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/reef-pi/hal"
	"github.com/reef-pi/rpi/i2c"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cgxeiji/adcpi"
	"github.com/cgxeiji/adcpi/bus"
)

const driverName = "ADC Pi"

const (
	debugParam        = "Debug"
	addressParam      = "Address"
	address2Param     = "Address2"
	resolutionParam   = "Resolution"
	gainParam         = "Gain"
	differentialParam = "Differential"
)

type factory struct {
	meta       hal.Metadata
	parameters []hal.ConfigParameter
}

var f *factory
var once sync.Once

// Factory returns the driver factory.
func Factory() hal.DriverFactory {
	once.Do(func() {
		f = &factory{
			meta: hal.Metadata{
				Name:         driverName,
				Description:  "ADC Pi 8-channel 18-bit analog to digital converter (two MCP3424 on I2C). Single-ended or differential.",
				Capabilities: []hal.Capability{hal.AnalogInput},
			},
			parameters: []hal.ConfigParameter{
				{Name: debugParam, Type: hal.Boolean, Order: 0, Default: false},
				{Name: addressParam, Type: hal.String, Order: 1, Default: "0x68"},
				{Name: address2Param, Type: hal.String, Order: 2, Default: "0x69"},
				{Name: resolutionParam, Type: hal.Integer, Order: 3, Default: 18},
				{Name: gainParam, Type: hal.Integer, Order: 4, Default: 1},
				{Name: differentialParam, Type: hal.Boolean, Order: 5, Default: false},
			},
		}
	})
	return f
}

func (f *factory) Metadata() hal.Metadata               { return f.meta }
func (f *factory) GetParameters() []hal.ConfigParameter { return f.parameters }

// ValidateParameters checks parameter values and returns per-key errors.
// Missing parameters take their default value.
func (f *factory) ValidateParameters(p map[string]interface{}) (bool, map[string][]string) {
	_, failures := parseConfig(p)
	return len(failures) == 0, failures
}

// NewDriver returns a driver over the reef-pi I²C bus in hardwareResources.
func (f *factory) NewDriver(p map[string]interface{}, hardwareResources interface{}) (hal.Driver, error) {
	if ok, failures := f.ValidateParameters(p); !ok {
		return nil, errors.New(hal.ToErrorString(failures))
	}
	i2cBus, ok := hardwareResources.(i2c.Bus)
	if !ok {
		return nil, fmt.Errorf("reefpi: expected i2c.Bus, got %T", hardwareResources)
	}
	c, _ := parseConfig(p)

	l := log.With().Str("driver", driverName).Logger().Level(zerolog.InfoLevel)
	if c.debug {
		l = l.Level(zerolog.DebugLevel)
	}

	d, err := newDriver(bus.NewReefPi(i2cBus), c, f.meta, l)
	if err != nil {
		return nil, fmt.Errorf("reefpi: could not initialize %s: %w", driverName, err)
	}
	return d, nil
}

type config struct {
	debug        bool
	addrA, addrB byte
	resolution   int
	gain         int
	differential bool
}

func parseConfig(p map[string]interface{}) (config, map[string][]string) {
	c := config{
		addrA:      adcpi.DefaultAddrA,
		addrB:      adcpi.DefaultAddrB,
		resolution: 18,
		gain:       1,
	}
	failures := map[string][]string{}
	fail := func(name, msg string) {
		failures[name] = append(failures[name], msg)
	}

	if v, ok := p[debugParam]; ok {
		b, ok := v.(bool)
		if !ok {
			fail(debugParam, "must be boolean")
		}
		c.debug = b
	}
	if v, ok := p[differentialParam]; ok {
		b, ok := v.(bool)
		if !ok {
			fail(differentialParam, "must be boolean")
		}
		c.differential = b
	}

	if v, ok := p[addressParam]; ok {
		a, err := parseAddress(v)
		if err != nil {
			fail(addressParam, err.Error())
		}
		c.addrA = a
	}
	if v, ok := p[address2Param]; ok {
		a, err := parseAddress(v)
		if err != nil {
			fail(address2Param, err.Error())
		}
		c.addrB = a
	}
	_, badA := failures[addressParam]
	_, badB := failures[address2Param]
	if !badA && !badB && c.addrA == c.addrB {
		fail(address2Param, "must differ from "+addressParam)
	}

	if v, ok := p[resolutionParam]; ok {
		i, ok := hal.ConvertToInt(v)
		if !ok || (i != 12 && i != 14 && i != 16 && i != 18) {
			fail(resolutionParam, "must be 12, 14, 16 or 18")
		}
		c.resolution = i
	}
	if v, ok := p[gainParam]; ok {
		i, ok := hal.ConvertToInt(v)
		if !ok || (i != 1 && i != 2 && i != 4 && i != 8) {
			fail(gainParam, "must be 1, 2, 4 or 8")
		}
		c.gain = i
	}

	return c, failures
}

// parseAddress accepts "0x68" style hex, "104" style decimal or a number.
func parseAddress(v interface{}) (byte, error) {
	var n uint64
	switch t := v.(type) {
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		if s == "" {
			return 0, errors.New("is required (e.g. 0x68)")
		}
		var err error
		n, err = strconv.ParseUint(s, 0, 8)
		if err != nil {
			return 0, errors.New("must be a valid I2C address like 0x68")
		}
	default:
		i, ok := hal.ConvertToInt(v)
		if !ok || i < 0 {
			return 0, errors.New("must be a valid I2C address like 0x68")
		}
		n = uint64(i)
	}
	if n > 0x7F {
		return 0, errors.New("must be a 7-bit address (0..127)")
	}
	return byte(n), nil
}
