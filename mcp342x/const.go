package mcp342x

// Configuration register bit positions
const (
	GainBit       = 0 // bits 0-1
	RateBit       = 2 // bits 2-3
	ContinuousBit = 4
	ChannelBit    = 5 // bits 5-6
	ReadyBit      = 7
)

// Configuration register flags
const (
	// Ready is set in a read while the output register has not been updated
	// yet. Writing it in one-shot mode starts a conversion.
	Ready      byte = (1 << ReadyBit)
	Continuous byte = (1 << ContinuousBit)

	gainMask    byte = 0b0000_0011
	rateMask    byte = 0b0000_1100
	channelMask byte = 0b0110_0000
)

// Device constants
const (
	// AddrA is the default address of the chip serving channels 1-4.
	AddrA = 0x68
	// AddrB is the default address of the chip serving channels 5-8.
	AddrB = 0x69

	// ChipChannels is the number of inputs on each chip.
	ChipChannels = 4
)

// DefaultConfig is the configuration the board starts with: continuous
// conversion, 18 bits, gain x1, channel 1.
const DefaultConfig Config = 0x1C
