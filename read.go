package adcpi

import (
	"errors"
	"fmt"

	"github.com/cenkalti/backoff"

	"github.com/cgxeiji/adcpi/mcp342x"
)

// Sample selects channel ch (1-8), waits for the owning chip to finish a
// conversion and returns the decoded result.
func (d *Device) Sample(ch int) (mcp342x.Sample, error) {
	c, err := d.selectChannel(ch)
	if err != nil {
		return mcp342x.Sample{}, err
	}
	if err := d.writeConfig(c); err != nil {
		return mcp342x.Sample{}, err
	}

	payload, err := d.waitConversion(c)
	if err != nil {
		return mcp342x.Sample{}, fmt.Errorf("adcpi: could not read channel %d: %w", ch, err)
	}

	s, err := mcp342x.Decode(payload, d.res)
	if err != nil {
		return mcp342x.Sample{}, fmt.Errorf("adcpi: could not decode channel %d: %w", ch, err)
	}

	return s, nil
}

// ReadRaw returns the raw magnitude of channel ch (1-8) and whether its
// sign bit was set. The sign bit is not part of the returned magnitude.
func (d *Device) ReadRaw(ch int) (int, bool, error) {
	s, err := d.Sample(ch)
	if err != nil {
		return 0, false, err
	}

	return int(s.Magnitude), s.Negative, nil
}

// ReadVoltage returns the voltage of channel ch (1-8).
func (d *Device) ReadVoltage(ch int) (float64, error) {
	s, err := d.Sample(ch)
	if err != nil {
		return 0, err
	}

	return d.Voltage(s), nil
}

// Voltage converts s to volts using the board's voltage policy and the
// current gain.
func (d *Device) Voltage(s mcp342x.Sample) float64 {
	return d.policy.Voltage(s, s.Resolution.LSB()/d.gain.Multiplier())
}

// waitConversion reads the chip until its ready flag clears. Transport
// failures are returned at once; a chip that is still busy after
// maxRetries extra reads yields ErrConversionTimeout.
func (d *Device) waitConversion(c *chip) ([]byte, error) {
	n := d.res.BlockLen()
	reads := 0
	var payload []byte

	read := func() error {
		reads++
		b, err := d.bus.ReadBlock(c.addr, c.cfg.Byte(), n)
		if err != nil {
			return backoff.Permanent(&BusError{Op: "read", Addr: c.addr, Err: err})
		}

		status, err := mcp342x.Status(b, d.res)
		if err != nil {
			return backoff.Permanent(&BusError{Op: "read", Addr: c.addr, Err: err})
		}
		if !status.Ready() {
			return errNotReady
		}

		payload = b
		return nil
	}

	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(d.pollInterval), d.maxRetries)
	if err := backoff.Retry(read, b); err != nil {
		if errors.Is(err, errNotReady) {
			d.log.Warn().
				Hex("addr", []byte{c.addr}).
				Int("reads", reads).
				Msg("conversion did not complete")
			return nil, fmt.Errorf("%w: chip %#02x still busy after %d reads", ErrConversionTimeout, c.addr, reads)
		}
		return nil, err
	}

	if reads > 1 {
		d.log.Debug().
			Hex("addr", []byte{c.addr}).
			Int("reads", reads).
			Msg("conversion ready")
	}

	return payload, nil
}
