package adcpi

import (
	"github.com/l0nax/go-spew/spew"
)

var pprint = spew.ConfigState{
	Indent:                  "\t",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

type sendOp struct {
	addr  byte
	value byte
}

type readOp struct {
	addr byte
	reg  byte
	n    int
}

// fakeBus records every transaction. Reads are answered from a per-address
// queue; an empty queue answers with a ready, all-zero payload.
type fakeBus struct {
	sends   []sendOp
	reads   []readOp
	replies map[byte][][]byte

	sendErr error
	readErr error
}

func newFakeBus() *fakeBus {
	return &fakeBus{replies: make(map[byte][][]byte)}
}

func (b *fakeBus) SendByte(addr, value byte) error {
	if b.sendErr != nil {
		return b.sendErr
	}
	b.sends = append(b.sends, sendOp{addr, value})
	return nil
}

func (b *fakeBus) ReadBlock(addr, reg byte, n int) ([]byte, error) {
	b.reads = append(b.reads, readOp{addr, reg, n})
	if b.readErr != nil {
		return nil, b.readErr
	}
	q := b.replies[addr]
	if len(q) == 0 {
		return make([]byte, n), nil
	}
	b.replies[addr] = q[1:]
	return q[0], nil
}

func (b *fakeBus) queue(addr byte, payloads ...[]byte) {
	b.replies[addr] = append(b.replies[addr], payloads...)
}

// reset forgets recorded transactions.
func (b *fakeBus) reset() {
	b.sends = nil
	b.reads = nil
}

// payload18 encodes an 18-bit conversion result with a ready status byte.
func payload18(word uint32) []byte {
	return []byte{byte(word >> 16 & 0x03), byte(word >> 8), byte(word), 0x1C}
}

// busy18 is an 18-bit payload whose status byte reports an incomplete
// conversion.
func busy18() []byte {
	return []byte{0x00, 0x00, 0x00, 0x9C}
}
