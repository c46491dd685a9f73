package bus

import (
	"tinygo.org/x/drivers"
)

// TinyGo defines a transport over a TinyGo I²C peripheral.
type TinyGo struct {
	bus drivers.I2C
}

// NewTinyGo returns a transport over b, usually a configured machine.I2C.
func NewTinyGo(b drivers.I2C) *TinyGo {
	return &TinyGo{bus: b}
}

// SendByte implements adcpi.Bus.
func (t *TinyGo) SendByte(addr, value byte) error {
	return sendByte(t.bus, addr, value)
}

// ReadBlock implements adcpi.Bus.
func (t *TinyGo) ReadBlock(addr, reg byte, n int) ([]byte, error) {
	return readBlock(t.bus, addr, reg, n)
}
