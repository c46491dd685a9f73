package adcpi

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Option defines a functional option for the device.
type Option func(d *Device) (Option, error)

// Options set different configuration options and returns the previous value
// of the last option passed. Options applied after New take effect on the bus
// immediately. If an option fails, the options already applied are undone in
// reverse order.
func (d *Device) Options(options ...Option) (Option, error) {
	undo := make([]Option, 0, len(options))
	for _, opt := range options {
		old, err := opt(d)
		if err != nil {
			return nil, errors.Join(err, d.rollback(undo))
		}
		undo = append(undo, old)
	}

	if len(undo) == 0 {
		return nil, nil
	}
	return undo[len(undo)-1], nil
}

func (d *Device) rollback(undo []Option) error {
	var errs []error
	for i := len(undo) - 1; i >= 0; i-- {
		if _, err := undo[i](d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Addresses sets the I²C addresses of the chip serving channels 1-4 and the
// chip serving channels 5-8. By default, they are 0x68 and 0x69.
func Addresses(a, b byte) Option {
	return func(d *Device) (Option, error) {
		if a > 0x7F || b > 0x7F || a == b {
			return nil, fmt.Errorf("%w: addresses %#02x and %#02x", ErrInvalidArgument, a, b)
		}
		oldA, oldB := d.Addresses()
		d.chips[0].addr = a
		d.chips[1].addr = b
		if a != oldA {
			d.chips[0].dirty = true
		}
		if b != oldB {
			d.chips[1].dirty = true
		}
		if err := d.flush(); err != nil {
			return nil, err
		}

		return Addresses(oldA, oldB), nil
	}
}

// Resolution sets the resolution in bits (12, 14, 16 or 18). By default, it
// is 18 bits.
func Resolution(bits int) Option {
	return func(d *Device) (Option, error) {
		old := d.Resolution()
		if err := d.SetResolution(bits); err != nil {
			return nil, err
		}

		return Resolution(old), nil
	}
}

// Gain sets the PGA gain (1, 2, 4 or 8). By default, it is 1.
func Gain(gain int) Option {
	return func(d *Device) (Option, error) {
		old := d.Gain()
		if err := d.SetGain(gain); err != nil {
			return nil, err
		}

		return Gain(old), nil
	}
}

// MaxRetries sets how many extra reads are issued while a chip reports an
// incomplete conversion before ErrConversionTimeout is returned. It must be
// at least 1. By default, it is 1000.
func MaxRetries(n int) Option {
	return func(d *Device) (Option, error) {
		if n < 1 {
			return nil, fmt.Errorf("%w: max retries %d, it should be at least 1", ErrInvalidArgument, n)
		}
		old := d.maxRetries
		d.maxRetries = uint64(n)

		return MaxRetries(int(old)), nil
	}
}

// PollInterval sets the wait between two conversion reads. By default, the
// chip is read back to back.
func PollInterval(interval time.Duration) Option {
	return func(d *Device) (Option, error) {
		if interval < 0 {
			return nil, fmt.Errorf("%w: poll interval %v", ErrInvalidArgument, interval)
		}
		old := d.pollInterval
		d.pollInterval = interval

		return PollInterval(old), nil
	}
}

// WithLogger sets the logger used for bus and configuration events. By
// default, nothing is logged.
func WithLogger(log zerolog.Logger) Option {
	return func(d *Device) (Option, error) {
		old := d.log
		d.log = log

		return WithLogger(old), nil
	}
}
