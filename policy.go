package adcpi

import (
	"fmt"

	"github.com/cgxeiji/adcpi/mcp342x"
)

// VoltagePolicy converts a decoded sample to volts. scale is the voltage of
// one count after gain scaling (LSB / gain multiplier).
type VoltagePolicy interface {
	Voltage(s mcp342x.Sample, scale float64) float64
}

// SingleEnded is the voltage policy of the unipolar 8-channel board. A
// reading with the sign bit set is out of range for the board's input
// divider and reads as 0 V.
type SingleEnded struct{}

// Voltage implements VoltagePolicy.
func (SingleEnded) Voltage(s mcp342x.Sample, scale float64) float64 {
	if s.Negative {
		return 0
	}
	return float64(s.Magnitude) * scale * singleEndedScale
}

// Differential is the voltage policy of the differential-pair board.
type Differential struct{}

// Voltage implements VoltagePolicy.
func (Differential) Voltage(s mcp342x.Sample, scale float64) float64 {
	v := float64(s.Magnitude) * scale
	if s.Negative {
		return v - differentialOffset
	}
	return v
}

// DifferentialDevice defines a differential-pair board. It shares every
// operation of Device and adds ReadDifferential.
type DifferentialDevice struct {
	*Device
}

// NewDifferential returns a new differential-pair board on bus. It accepts
// the same options as New.
func NewDifferential(bus Bus, options ...Option) (*DifferentialDevice, error) {
	d, err := newDevice(bus, Differential{}, options...)
	if err != nil {
		return nil, err
	}

	return &DifferentialDevice{Device: d}, nil
}

// ReadDifferential reads channel a, then channel b, and returns the voltage
// of b minus the voltage of a.
func (d *DifferentialDevice) ReadDifferential(a, b int) (float64, error) {
	for _, ch := range []int{a, b} {
		if ch < 1 || ch > Channels {
			return 0, fmt.Errorf("%w: channel %d, it should be 1 to %d", ErrInvalidArgument, ch, Channels)
		}
	}

	va, err := d.ReadVoltage(a)
	if err != nil {
		return 0, err
	}
	vb, err := d.ReadVoltage(b)
	if err != nil {
		return 0, err
	}

	return vb - va, nil
}
