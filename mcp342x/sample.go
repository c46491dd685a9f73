package mcp342x

import "fmt"

// Sample is a decoded conversion result. Magnitude holds the data bits
// with the sign bit cleared; Negative holds the sign bit.
type Sample struct {
	Magnitude  uint32
	Negative   bool
	Resolution Resolution
}

// Signed returns the two's complement value of the sample.
func (s Sample) Signed() int64 {
	word := s.Magnitude
	if s.Negative {
		word |= 1 << s.Resolution.SignBit()
	}
	return SignExtend(word, s.Resolution.SignBit())
}

func (s Sample) String() string {
	sign := "+"
	if s.Negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%d (%v)", sign, s.Magnitude, s.Resolution)
}

// Status returns the status byte of a conversion payload read at
// resolution r.
func Status(payload []byte, r Resolution) (Config, error) {
	if !r.Valid() {
		return 0, fmt.Errorf("%w: resolution %d", ErrInvalidArgument, r)
	}
	n := r.BlockLen()
	if len(payload) < n {
		return 0, fmt.Errorf("%w: got %d bytes, want %d", ErrShortPayload, len(payload), n)
	}
	return Config(payload[n-1]), nil
}

// Decode assembles the data bytes of a conversion payload read at
// resolution r. The payload is (high, mid, low, status) for 18 bits and
// (high, mid, status) otherwise. The ready flag is not checked.
func Decode(payload []byte, r Resolution) (Sample, error) {
	if _, err := Status(payload, r); err != nil {
		return Sample{}, err
	}

	h := uint32(payload[0])
	m := uint32(payload[1])

	var word uint32
	switch r {
	case Bits18:
		word = (h&0b0000_0011)<<16 | m<<8 | uint32(payload[2])
	case Bits16:
		word = h<<8 | m
	case Bits14:
		word = (h&0b0011_1111)<<8 | m
	case Bits12:
		word = (h&0b0000_1111)<<8 | m
	}

	s := Sample{Resolution: r}
	sign := r.SignBit()
	if GetBit(word, sign) == 1 {
		s.Negative = true
		word = ClearBit(word, sign)
	}
	s.Magnitude = word

	return s, nil
}
