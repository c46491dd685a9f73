package bus

import (
	"fmt"

	"github.com/go-daq/smbus"
)

// SMBus defines a transport over the kernel SMBus interface
// (/dev/i2c-N).
type SMBus struct {
	conn *smbus.Conn
}

// NewSMBus returns a transport over an open SMBus connection.
func NewSMBus(conn *smbus.Conn) *SMBus {
	return &SMBus{conn: conn}
}

// OpenSMBus opens /dev/i2c-<n>. addr is the device selected first; every
// transaction selects its own address afterwards.
func OpenSMBus(n int, addr byte) (*SMBus, error) {
	conn, err := smbus.Open(n, addr)
	if err != nil {
		return nil, fmt.Errorf("bus: could not open SMBus %d: %w", n, err)
	}
	return &SMBus{conn: conn}, nil
}

// SendByte implements adcpi.Bus.
func (s *SMBus) SendByte(addr, value byte) error {
	if err := s.conn.SetAddr(addr); err != nil {
		return err
	}
	_, err := s.conn.WriteByte(value)
	return err
}

// ReadBlock implements adcpi.Bus with an I²C block read.
func (s *SMBus) ReadBlock(addr, reg byte, n int) ([]byte, error) {
	if err := checkBlock(n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := s.conn.ReadBlockData(addr, reg, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Close closes the connection.
func (s *SMBus) Close() error {
	return s.conn.Close()
}
