package reefpi

import (
	"fmt"
	"sync"

	"github.com/reef-pi/hal"
	"github.com/rs/zerolog"

	"github.com/cgxeiji/adcpi"
)

// Driver exposes the eight channels of a board as analog input pins 0-7.
type Driver struct {
	// mu serializes channel selection and conversion reads across pins.
	mu   sync.Mutex
	dev  *adcpi.Device
	meta hal.Metadata
	pins []*pin
	log  zerolog.Logger
}

type pin struct {
	d   *Driver
	ch  int
	cal hal.Calibrator
}

func newDriver(b adcpi.Bus, c config, meta hal.Metadata, log zerolog.Logger) (*Driver, error) {
	opts := []adcpi.Option{
		adcpi.Addresses(c.addrA, c.addrB),
		adcpi.Resolution(c.resolution),
		adcpi.Gain(c.gain),
		adcpi.WithLogger(log),
	}

	var dev *adcpi.Device
	if c.differential {
		dd, err := adcpi.NewDifferential(b, opts...)
		if err != nil {
			return nil, err
		}
		dev = dd.Device
	} else {
		d, err := adcpi.New(b, opts...)
		if err != nil {
			return nil, err
		}
		dev = d
	}

	d := &Driver{
		dev:  dev,
		meta: meta,
		log:  log,
	}
	for ch := 1; ch <= adcpi.Channels; ch++ {
		d.pins = append(d.pins, &pin{d: d, ch: ch})
	}

	log.Info().
		Hex("addr", []byte{c.addrA, c.addrB}).
		Int("resolution", c.resolution).
		Int("gain", c.gain).
		Bool("differential", c.differential).
		Msg("driver ready")

	return d, nil
}

func (d *Driver) Name() string           { return driverName }
func (d *Driver) Close() error           { return nil }
func (d *Driver) Metadata() hal.Metadata { return d.meta }

func (d *Driver) AnalogInputPins() []hal.AnalogInputPin {
	pins := make([]hal.AnalogInputPin, len(d.pins))
	for i, p := range d.pins {
		pins[i] = p
	}
	return pins
}

func (d *Driver) AnalogInputPin(n int) (hal.AnalogInputPin, error) {
	if n < 0 || n >= len(d.pins) {
		return nil, fmt.Errorf("%s: invalid pin %d, it should be 0 to %d", driverName, n, len(d.pins)-1)
	}
	return d.pins[n], nil
}

func (d *Driver) Pins(cap hal.Capability) ([]hal.Pin, error) {
	if cap != hal.AnalogInput {
		return nil, fmt.Errorf("unsupported capability: %s", cap.String())
	}
	pins := make([]hal.Pin, len(d.pins))
	for i, p := range d.pins {
		pins[i] = p
	}
	return pins, nil
}

func (p *pin) Name() string           { return fmt.Sprintf("%s channel %d", driverName, p.ch) }
func (p *pin) Number() int            { return p.ch - 1 }
func (p *pin) Close() error           { return nil }
func (p *pin) Metadata() hal.Metadata { return p.d.meta }

// Measure returns the uncalibrated voltage of the pin.
func (p *pin) Measure() (float64, error) {
	p.d.mu.Lock()
	defer p.d.mu.Unlock()

	return p.measure()
}

// Value returns the voltage of the pin with its calibration applied.
func (p *pin) Value() (float64, error) {
	p.d.mu.Lock()
	defer p.d.mu.Unlock()

	v, err := p.measure()
	if err != nil {
		return 0, err
	}
	if p.cal == nil {
		return v, nil
	}
	return p.cal.Calibrate(v), nil
}

func (p *pin) measure() (float64, error) {
	v, err := p.d.dev.ReadVoltage(p.ch)
	if err != nil {
		p.d.log.Error().Err(err).Int("channel", p.ch).Msg("read failed")
		return 0, err
	}
	p.d.log.Debug().Int("channel", p.ch).Float64("voltage", v).Msg("read")
	return v, nil
}

// Calibrate replaces the calibration of the pin. An empty ms removes it.
func (p *pin) Calibrate(ms []hal.Measurement) error {
	var cal hal.Calibrator
	if len(ms) > 0 {
		var err error
		if cal, err = hal.CalibratorFactory(ms); err != nil {
			return err
		}
	}

	p.d.mu.Lock()
	p.cal = cal
	p.d.mu.Unlock()

	return nil
}
