// Package bus provides adcpi.Bus transports over the I²C stacks a board can
// be attached through: periph on Linux hosts, the kernel SMBus interface,
// TinyGo on microcontrollers and the reef-pi HAL.
package bus

import (
	"errors"
	"fmt"
)

var (
	// ErrBlockSize is returned when a block read asks for more bytes than an
	// SMBus block transfer can carry.
	ErrBlockSize = errors.New("bus: invalid block size")
)

// MaxBlock is the longest block read supported by every transport.
const MaxBlock = 32

// txer is a combined write-then-read I²C transaction, as exposed by periph
// and TinyGo.
type txer interface {
	Tx(addr uint16, w, r []byte) error
}

func sendByte(t txer, addr, value byte) error {
	return t.Tx(uint16(addr), []byte{value}, nil)
}

func readBlock(t txer, addr, reg byte, n int) ([]byte, error) {
	if err := checkBlock(n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := t.Tx(uint16(addr), []byte{reg}, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func checkBlock(n int) error {
	if n < 1 || n > MaxBlock {
		return fmt.Errorf("%w: %d bytes, it should be 1 to %d", ErrBlockSize, n, MaxBlock)
	}
	return nil
}
