package bus

import (
	"fmt"

	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/host"
)

// Periph defines a transport over a periph I²C bus.
type Periph struct {
	bus    i2c.Bus
	closer i2c.BusCloser
}

// NewPeriph returns a transport over an already opened periph bus. Closing
// the transport does not close b.
func NewPeriph(b i2c.Bus) *Periph {
	return &Periph{bus: b}
}

// OpenPeriph initializes the host drivers and opens the named I²C bus.
//
// Argument "name" can be used to specify the exact bus to use ("/dev/i2c-1",
// "I2C1", "1"). If "name" is an empty string "" the first available bus will
// be used.
func OpenPeriph(name string) (*Periph, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("bus: could not initialize host: %w", err)
	}

	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("bus: could not open I2C bus: %w", err)
	}

	return &Periph{bus: b, closer: b}, nil
}

// SendByte implements adcpi.Bus.
func (p *Periph) SendByte(addr, value byte) error {
	return sendByte(p.bus, addr, value)
}

// ReadBlock implements adcpi.Bus.
func (p *Periph) ReadBlock(addr, reg byte, n int) ([]byte, error) {
	return readBlock(p.bus, addr, reg, n)
}

func (p *Periph) String() string {
	return p.bus.String()
}

// Close closes the bus if it was opened by OpenPeriph.
func (p *Periph) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}
