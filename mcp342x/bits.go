package mcp342x

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a channel, gain, resolution or bit
	// value is outside its allowed set.
	ErrInvalidArgument = errors.New("mcp342x: invalid argument")
	// ErrShortPayload is returned when a conversion payload is shorter than
	// the current resolution requires.
	ErrShortPayload = errors.New("mcp342x: short payload")
)

// SetBit returns word with the bit at index set to value, which must be 0
// or 1.
func SetBit(word uint32, bit uint, value uint) (uint32, error) {
	if bit > 31 {
		return word, fmt.Errorf("%w: bit index %d out of range", ErrInvalidArgument, bit)
	}

	switch value {
	case 0:
		return word &^ (1 << bit), nil
	case 1:
		return word | (1 << bit), nil
	}

	return word, fmt.Errorf("%w: bit value %d, it should be 1 or 0", ErrInvalidArgument, value)
}

// GetBit returns the bit at index in word (0 or 1).
func GetBit(word uint32, bit uint) uint {
	return uint(word>>bit) & 1
}

// ClearBit returns word with the bit at index cleared.
func ClearBit(word uint32, bit uint) uint32 {
	return word &^ (1 << bit)
}

// SignExtend interprets the low signBit+1 bits of value as a two's
// complement number and returns it as a signed integer. Bits above signBit
// are ignored.
func SignExtend(value uint32, signBit uint) int64 {
	width := signBit + 1
	v := int64(value) & (1<<width - 1)
	if GetBit(value, signBit) == 1 {
		return v - 1<<width
	}

	return v
}
