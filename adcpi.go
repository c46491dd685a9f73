// Package adcpi drives 8-channel delta-sigma ADC expansion boards built
// from two MCP3424-class converters on an I²C bus. The single-ended board
// is returned by New and the differential board by NewDifferential; both
// share the same register model and conversion reader.
package adcpi

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cgxeiji/adcpi/mcp342x"
)

// Bus is the two-wire transport shared by both chips of a board.
type Bus interface {
	// SendByte writes a single byte to the device at addr.
	SendByte(addr, value byte) error
	// ReadBlock writes reg to the device at addr and reads n bytes back.
	ReadBlock(addr, reg byte, n int) ([]byte, error)
}

type chip struct {
	addr  byte
	cfg   mcp342x.Config
	dirty bool // cfg has not been written to the chip yet
}

// Device defines an ADC board. A Device is not safe for concurrent use:
// a channel selection followed by a read must not interleave with another
// caller's, so callers sharing a board hold a lock around each read.
type Device struct {
	bus    Bus
	chips  [2]chip
	res    mcp342x.Resolution
	gain   mcp342x.Gain
	policy VoltagePolicy

	maxRetries   uint64
	pollInterval time.Duration
	log          zerolog.Logger

	configured bool
}

// New returns a new single-ended board on bus. By default, the chips are
// at 0x68 and 0x69, sampling at 18 bits with a gain of 1x. The initial
// configuration is written to both chips before New returns.
func New(bus Bus, options ...Option) (*Device, error) {
	return newDevice(bus, SingleEnded{}, options...)
}

func newDevice(bus Bus, policy VoltagePolicy, options ...Option) (*Device, error) {
	if bus == nil {
		return nil, fmt.Errorf("adcpi: could not initialize device: %w: nil bus", ErrInvalidArgument)
	}

	d := &Device{
		bus:          bus,
		res:          mcp342x.Bits18,
		gain:         mcp342x.Gain1,
		policy:       policy,
		maxRetries:   DefaultMaxRetries,
		pollInterval: DefaultPollInterval,
		log:          zerolog.Nop(),
	}
	d.chips[0] = chip{addr: DefaultAddrA, cfg: mcp342x.DefaultConfig, dirty: true}
	d.chips[1] = chip{addr: DefaultAddrB, cfg: mcp342x.DefaultConfig, dirty: true}

	if _, err := d.Options(options...); err != nil {
		return nil, fmt.Errorf("adcpi: could not initialize device: %w", err)
	}

	d.configured = true
	if err := d.flush(); err != nil {
		return nil, fmt.Errorf("adcpi: could not initialize device: %w", err)
	}

	return d, nil
}

// SetGain sets the PGA gain (1, 2, 4 or 8) of both chips and writes the
// new configuration to the bus. An invalid gain leaves the device
// untouched.
func (d *Device) SetGain(gain int) error {
	g, err := mcp342x.ParseGain(gain)
	if err != nil {
		return err
	}

	for i := range d.chips {
		cfg, err := d.chips[i].cfg.WithGain(g)
		if err != nil {
			return err
		}
		d.chips[i].cfg = cfg
		d.chips[i].dirty = true
	}
	d.gain = g

	d.log.Debug().
		Stringer("gain", g).
		Float64("multiplier", g.Multiplier()).
		Msg("set gain")

	return d.flush()
}

// SetResolution sets the resolution (12, 14, 16 or 18 bits) of both chips
// and writes the new configuration to the bus. An invalid resolution
// leaves the device untouched.
func (d *Device) SetResolution(bits int) error {
	r, err := mcp342x.ParseResolution(bits)
	if err != nil {
		return err
	}

	for i := range d.chips {
		cfg, err := d.chips[i].cfg.WithResolution(r)
		if err != nil {
			return err
		}
		d.chips[i].cfg = cfg
		d.chips[i].dirty = true
	}
	d.res = r

	d.log.Debug().
		Stringer("resolution", r).
		Float64("lsb", r.LSB()).
		Msg("set resolution")

	return d.flush()
}

// Gain returns the nominal gain (1, 2, 4 or 8).
func (d *Device) Gain() int {
	return int(d.gain)
}

// Resolution returns the resolution in bits.
func (d *Device) Resolution() int {
	return int(d.res)
}

// LSB returns the voltage of one count at the current resolution, before
// gain scaling.
func (d *Device) LSB() float64 {
	return d.res.LSB()
}

// Multiplier returns the gain factor used by the voltage formulas.
func (d *Device) Multiplier() float64 {
	return d.gain.Multiplier()
}

// Addresses returns the addresses of the chips serving channels 1-4 and
// 5-8.
func (d *Device) Addresses() (byte, byte) {
	return d.chips[0].addr, d.chips[1].addr
}

// ChipState is a snapshot of one chip.
type ChipState struct {
	Addr    byte           `json:"addr"`
	Config  mcp342x.Config `json:"config"`
	Channel int            `json:"channel"`
	Pending bool           `json:"pending"`
}

// State is a snapshot of the device settings.
type State struct {
	Resolution int          `json:"resolution"`
	Gain       int          `json:"gain"`
	LSB        float64      `json:"lsb"`
	Multiplier float64      `json:"multiplier"`
	Chips      [2]ChipState `json:"chips"`
}

// State returns a snapshot of the device settings.
func (d *Device) State() State {
	s := State{
		Resolution: d.Resolution(),
		Gain:       d.Gain(),
		LSB:        d.LSB(),
		Multiplier: d.Multiplier(),
	}
	for i, c := range d.chips {
		s.Chips[i] = ChipState{
			Addr:    c.addr,
			Config:  c.cfg,
			Channel: i*mcp342x.ChipChannels + c.cfg.Channel(),
			Pending: c.dirty,
		}
	}
	return s
}

// selectChannel points the owning chip of ch at it. The chip is only
// marked for a bus write when its selection changes.
func (d *Device) selectChannel(ch int) (*chip, error) {
	if ch < 1 || ch > Channels {
		return nil, fmt.Errorf("%w: channel %d, it should be 1 to %d", ErrInvalidArgument, ch, Channels)
	}

	c := &d.chips[(ch-1)/mcp342x.ChipChannels]
	offset := (ch-1)%mcp342x.ChipChannels + 1
	if c.cfg.Channel() == offset {
		return c, nil
	}

	cfg, err := c.cfg.WithChannel(offset)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.dirty = true

	d.log.Debug().
		Int("channel", ch).
		Hex("addr", []byte{c.addr}).
		Msg("select channel")

	return c, nil
}

// flush writes the configuration of every chip that has pending changes.
// Nothing is written while the device is still being initialized.
func (d *Device) flush() error {
	if !d.configured {
		return nil
	}
	for i := range d.chips {
		if err := d.writeConfig(&d.chips[i]); err != nil {
			return err
		}
	}
	return nil
}

func (d *Device) writeConfig(c *chip) error {
	if !c.dirty {
		return nil
	}
	if err := d.bus.SendByte(c.addr, c.cfg.Byte()); err != nil {
		return &BusError{Op: "write", Addr: c.addr, Err: err}
	}
	c.dirty = false

	d.log.Debug().
		Hex("addr", []byte{c.addr}).
		Stringer("config", c.cfg).
		Msg("wrote config")

	return nil
}
