package mcp342x

import "fmt"

// Config is the 8-bit configuration register of one chip. The same layout
// is returned as the status byte at the end of every conversion read.
//
//	bit 7    RDY (ready flag; 1 = output not updated yet)
//	bit 6-5  C1-C0 (channel select)
//	bit 4    O/C (1 = continuous conversion)
//	bit 3-2  S1-S0 (sample rate / resolution)
//	bit 1-0  G1-G0 (PGA gain)
type Config byte

// Byte returns the raw register value.
func (c Config) Byte() byte {
	return byte(c)
}

// Ready reports whether the conversion result is valid. The chip clears
// the RDY bit once a new result is available.
func (c Config) Ready() bool {
	return GetBit(uint32(c), ReadyBit) == 0
}

// Continuous reports whether the chip is in continuous conversion mode.
func (c Config) Continuous() bool {
	return GetBit(uint32(c), ContinuousBit) == 1
}

// Gain returns the gain selected by the G1-G0 bits.
func (c Config) Gain() Gain {
	switch byte(c) & gainMask {
	case 0b01:
		return Gain2
	case 0b10:
		return Gain4
	case 0b11:
		return Gain8
	}
	return Gain1
}

// Resolution returns the resolution selected by the S1-S0 bits.
func (c Config) Resolution() Resolution {
	switch (byte(c) & rateMask) >> RateBit {
	case 0b01:
		return Bits14
	case 0b10:
		return Bits16
	case 0b11:
		return Bits18
	}
	return Bits12
}

// Channel returns the in-chip channel (1-4) selected by the C1-C0 bits.
func (c Config) Channel() int {
	return int((byte(c)&channelMask)>>ChannelBit) + 1
}

// WithGain returns c with the gain bits set to g.
func (c Config) WithGain(g Gain) (Config, error) {
	if !g.Valid() {
		return c, fmt.Errorf("%w: gain %d, it should be 1, 2, 4 or 8", ErrInvalidArgument, g)
	}
	return c.field(GainBit, g.bits()), nil
}

// WithResolution returns c with the rate bits set to r.
func (c Config) WithResolution(r Resolution) (Config, error) {
	if !r.Valid() {
		return c, fmt.Errorf("%w: resolution %d, it should be 12, 14, 16 or 18", ErrInvalidArgument, r)
	}
	return c.field(RateBit, r.bits()), nil
}

// WithChannel returns c with the channel bits set to the in-chip channel
// ch (1-4).
func (c Config) WithChannel(ch int) (Config, error) {
	if ch < 1 || ch > ChipChannels {
		return c, fmt.Errorf("%w: chip channel %d, it should be 1 to %d", ErrInvalidArgument, ch, ChipChannels)
	}
	return c.field(ChannelBit, byte(ch-1)), nil
}

// WithContinuous returns c with the conversion mode bit set.
func (c Config) WithContinuous(on bool) Config {
	var v uint
	if on {
		v = 1
	}
	w, _ := SetBit(uint32(c), ContinuousBit, v)
	return Config(w)
}

// field writes the two low bits of v at positions lo and lo+1.
func (c Config) field(lo uint, v byte) Config {
	w := uint32(c)
	w, _ = SetBit(w, lo, uint(v&1))
	w, _ = SetBit(w, lo+1, uint(v>>1&1))
	return Config(w)
}

func (c Config) String() string {
	mode := "one-shot"
	if c.Continuous() {
		mode = "continuous"
	}
	return fmt.Sprintf("%#02x (ch%d %v %v %s)", byte(c), c.Channel(), c.Resolution(), c.Gain(), mode)
}
