package adcpi

import (
	"time"

	"github.com/cgxeiji/adcpi/mcp342x"
)

// Board constants
const (
	// Channels is the number of logical channels on a board.
	Channels = 2 * mcp342x.ChipChannels

	// DefaultAddrA is the default address of the chip serving channels 1-4.
	DefaultAddrA byte = mcp342x.AddrA
	// DefaultAddrB is the default address of the chip serving channels 5-8.
	DefaultAddrB byte = mcp342x.AddrB

	// DefaultMaxRetries is the default number of extra reads issued while
	// waiting for a conversion to complete.
	DefaultMaxRetries = 1000
	// DefaultPollInterval is the default wait between two conversion reads.
	DefaultPollInterval time.Duration = 0
)

// Calibration constants
const (
	// singleEndedScale reconciles the raw LSB scale with the input voltage
	// divider of the single-ended board.
	singleEndedScale = 2.448579823702253
	// differentialOffset is subtracted from negative readings of the
	// differential board.
	differentialOffset = 2.048
)
