package mcp342x

import "fmt"

// Resolution is the sample width in bits. It also selects the conversion
// rate of the chip.
type Resolution uint8

// Resolutions supported by the chip.
//
//	12 bits: 240 SPS max
//	14 bits:  60 SPS max
//	16 bits:  15 SPS max
//	18 bits: 3.75 SPS max
const (
	Bits12 Resolution = 12
	Bits14 Resolution = 14
	Bits16 Resolution = 16
	Bits18 Resolution = 18
)

// ParseResolution returns the Resolution for bits (12, 14, 16 or 18).
func ParseResolution(bits int) (Resolution, error) {
	r := Resolution(bits)
	if bits < 0 || bits > 255 || !r.Valid() {
		return 0, fmt.Errorf("%w: resolution %d, it should be 12, 14, 16 or 18", ErrInvalidArgument, bits)
	}
	return r, nil
}

// Valid reports whether r is one of the supported resolutions.
func (r Resolution) Valid() bool {
	switch r {
	case Bits12, Bits14, Bits16, Bits18:
		return true
	}
	return false
}

// LSB returns the voltage of one count at this resolution, before gain
// scaling.
func (r Resolution) LSB() float64 {
	switch r {
	case Bits12:
		return 0.0005
	case Bits14:
		return 0.000125
	case Bits16:
		return 0.00003125
	case Bits18:
		return 0.0000078125
	}
	return 0
}

// BlockLen returns the number of bytes a conversion read returns: three
// data bytes and the status byte for 18 bits, two data bytes and the
// status byte otherwise.
func (r Resolution) BlockLen() int {
	if r == Bits18 {
		return 4
	}
	return 3
}

// SignBit returns the index of the sign bit in an assembled sample word.
func (r Resolution) SignBit() uint {
	return uint(r) - 1
}

func (r Resolution) bits() byte {
	switch r {
	case Bits14:
		return 0b01
	case Bits16:
		return 0b10
	case Bits18:
		return 0b11
	}
	return 0b00
}

func (r Resolution) String() string {
	return fmt.Sprintf("%d-bit", uint8(r))
}

// Gain is the nominal PGA gain selector.
type Gain uint8

// Gains supported by the chip.
const (
	Gain1 Gain = 1
	Gain2 Gain = 2
	Gain4 Gain = 4
	Gain8 Gain = 8
)

// ParseGain returns the Gain for g (1, 2, 4 or 8).
func ParseGain(g int) (Gain, error) {
	gain := Gain(g)
	if g < 0 || g > 255 || !gain.Valid() {
		return 0, fmt.Errorf("%w: gain %d, it should be 1, 2, 4 or 8", ErrInvalidArgument, g)
	}
	return gain, nil
}

// Valid reports whether g is one of the supported gains.
func (g Gain) Valid() bool {
	switch g {
	case Gain1, Gain2, Gain4, Gain8:
		return true
	}
	return false
}

// Multiplier returns the factor used by the voltage formulas. It is half
// of the nominal gain.
func (g Gain) Multiplier() float64 {
	switch g {
	case Gain1:
		return 0.5
	case Gain2:
		return 1
	case Gain4:
		return 2
	case Gain8:
		return 4
	}
	return 0
}

func (g Gain) bits() byte {
	switch g {
	case Gain2:
		return 0b01
	case Gain4:
		return 0b10
	case Gain8:
		return 0b11
	}
	return 0b00
}

func (g Gain) String() string {
	return fmt.Sprintf("x%d", uint8(g))
}
