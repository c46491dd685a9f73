package mcp342x

import (
	"errors"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		res     Resolution
		mag     uint32
		neg     bool
		signed  int64
	}{
		{"18Bit", []byte{0x01, 0x00, 0x00, 0x00}, Bits18, 0x10000, false, 0x10000},
		{"18BitMasksHigh", []byte{0xFD, 0x12, 0x34, 0x00}, Bits18, 0x11234, false, 0x11234},
		{"18BitNegative", []byte{0x03, 0xFF, 0xFF, 0x00}, Bits18, 0x1FFFF, true, -1},
		{"16Bit", []byte{0x7F, 0xFF, 0x00}, Bits16, 0x7FFF, false, 32767},
		{"16BitNegative", []byte{0x80, 0x00, 0x00}, Bits16, 0, true, -32768},
		{"14Bit", []byte{0xC5, 0x01, 0x00}, Bits14, 0x0501, false, 0x0501},
		{"14BitNegative", []byte{0x3F, 0xFE, 0x00}, Bits14, 0x1FFE, true, -2},
		{"12Bit", []byte{0xF7, 0xFF, 0x00}, Bits12, 0x07FF, false, 2047},
		{"12BitNegative", []byte{0x08, 0x00, 0x00}, Bits12, 0, true, -2048},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode(tt.payload, tt.res)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Magnitude != tt.mag {
				t.Errorf("expected magnitude %#x, got %#x", tt.mag, s.Magnitude)
			}
			if s.Negative != tt.neg {
				t.Errorf("expected negative=%v, got %v", tt.neg, s.Negative)
			}
			if s.Signed() != tt.signed {
				t.Errorf("expected signed %d, got %d", tt.signed, s.Signed())
			}
			if s.Resolution != tt.res {
				t.Errorf("expected resolution %v, got %v", tt.res, s.Resolution)
			}
		})
	}
}

func TestDecodeShortPayload(t *testing.T) {
	if _, err := Decode([]byte{0x01, 0x00, 0x00}, Bits18); !errors.Is(err, ErrShortPayload) {
		t.Errorf("expected ErrShortPayload, got %v", err)
	}
	if _, err := Decode(nil, Bits12); !errors.Is(err, ErrShortPayload) {
		t.Errorf("expected ErrShortPayload, got %v", err)
	}
}

func TestDecodeInvalidResolution(t *testing.T) {
	if _, err := Decode([]byte{0, 0, 0, 0}, 17); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	st, err := Status([]byte{0x00, 0x00, 0x00, 0x9C}, Bits18)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Ready() {
		t.Error("expected not ready")
	}

	st, err = Status([]byte{0x00, 0x00, 0x1C, 0xFF}, Bits16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.Ready() {
		t.Error("expected ready, the fourth byte must be ignored below 18 bits")
	}
}

func TestResolution(t *testing.T) {
	tests := []struct {
		bits    int
		lsb     float64
		block   int
		signBit uint
	}{
		{12, 0.0005, 3, 11},
		{14, 0.000125, 3, 13},
		{16, 0.00003125, 3, 15},
		{18, 0.0000078125, 4, 17},
	}
	for _, tt := range tests {
		r, err := ParseResolution(tt.bits)
		if err != nil {
			t.Fatalf("%d: unexpected error: %v", tt.bits, err)
		}
		if r.LSB() != tt.lsb {
			t.Errorf("%d: expected LSB %v, got %v", tt.bits, tt.lsb, r.LSB())
		}
		if r.BlockLen() != tt.block {
			t.Errorf("%d: expected block length %d, got %d", tt.bits, tt.block, r.BlockLen())
		}
		if r.SignBit() != tt.signBit {
			t.Errorf("%d: expected sign bit %d, got %d", tt.bits, tt.signBit, r.SignBit())
		}
	}

	for _, bits := range []int{0, 8, 13, 20, 256 + 12, -12} {
		if _, err := ParseResolution(bits); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%d: expected ErrInvalidArgument, got %v", bits, err)
		}
	}
}

func TestGain(t *testing.T) {
	tests := []struct {
		g    int
		mult float64
	}{
		{1, 0.5},
		{2, 1},
		{4, 2},
		{8, 4},
	}
	for _, tt := range tests {
		g, err := ParseGain(tt.g)
		if err != nil {
			t.Fatalf("%d: unexpected error: %v", tt.g, err)
		}
		if g.Multiplier() != tt.mult {
			t.Errorf("%d: expected multiplier %v, got %v", tt.g, tt.mult, g.Multiplier())
		}
	}

	for _, g := range []int{0, 3, 16, 257} {
		if _, err := ParseGain(g); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%d: expected ErrInvalidArgument, got %v", g, err)
		}
	}
}
