package bus

import (
	"github.com/reef-pi/rpi/i2c"
)

// ReefPi defines a transport over a reef-pi I²C bus.
type ReefPi struct {
	bus i2c.Bus
}

// NewReefPi returns a transport over b. The bus is owned by reef-pi and is
// never closed by the transport.
func NewReefPi(b i2c.Bus) *ReefPi {
	return &ReefPi{bus: b}
}

// SendByte implements adcpi.Bus.
func (r *ReefPi) SendByte(addr, value byte) error {
	return r.bus.WriteBytes(addr, []byte{value})
}

// ReadBlock implements adcpi.Bus.
func (r *ReefPi) ReadBlock(addr, reg byte, n int) ([]byte, error) {
	if err := checkBlock(n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := r.bus.ReadFromReg(addr, reg, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
