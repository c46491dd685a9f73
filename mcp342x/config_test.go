package mcp342x

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig
	if c.Gain() != Gain1 {
		t.Errorf("unexpected gain %v", c.Gain())
	}
	if c.Resolution() != Bits18 {
		t.Errorf("unexpected resolution %v", c.Resolution())
	}
	if c.Channel() != 1 {
		t.Errorf("unexpected channel %d", c.Channel())
	}
	if !c.Continuous() {
		t.Error("expected continuous mode")
	}
	if !c.Ready() {
		t.Error("expected ready flag clear")
	}
}

func TestConfigWithChannel(t *testing.T) {
	tests := []struct {
		ch   int
		want Config
	}{
		{1, 0x1C},
		{2, 0x3C},
		{3, 0x5C},
		{4, 0x7C},
	}
	for _, tt := range tests {
		got, err := DefaultConfig.WithChannel(tt.ch)
		if err != nil {
			t.Fatalf("channel %d: unexpected error: %v", tt.ch, err)
		}
		if got != tt.want {
			t.Errorf("channel %d: expected %#x, got %#x", tt.ch, tt.want, got)
		}
		if got.Channel() != tt.ch {
			t.Errorf("channel %d: Channel() = %d", tt.ch, got.Channel())
		}
	}

	for _, ch := range []int{0, 5, -1} {
		got, err := DefaultConfig.WithChannel(ch)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("channel %d: expected ErrInvalidArgument, got %v", ch, err)
		}
		if got != DefaultConfig {
			t.Errorf("channel %d: config changed on error: %v", ch, got)
		}
	}
}

func TestConfigWithGain(t *testing.T) {
	tests := []struct {
		g    Gain
		bits byte
	}{
		{Gain1, 0b00},
		{Gain2, 0b01},
		{Gain4, 0b10},
		{Gain8, 0b11},
	}
	for _, tt := range tests {
		got, err := DefaultConfig.WithGain(tt.g)
		if err != nil {
			t.Fatalf("gain %v: unexpected error: %v", tt.g, err)
		}
		if got.Byte()&gainMask != tt.bits {
			t.Errorf("gain %v: expected bits %02b, got %08b", tt.g, tt.bits, got.Byte())
		}
		if got.Byte()&^gainMask != DefaultConfig.Byte()&^gainMask {
			t.Errorf("gain %v: other bits changed: %08b", tt.g, got.Byte())
		}
		if got.Gain() != tt.g {
			t.Errorf("gain %v: Gain() = %v", tt.g, got.Gain())
		}
	}

	if _, err := DefaultConfig.WithGain(3); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestConfigWithResolution(t *testing.T) {
	tests := []struct {
		r    Resolution
		bits byte
	}{
		{Bits12, 0b00},
		{Bits14, 0b01},
		{Bits16, 0b10},
		{Bits18, 0b11},
	}
	for _, tt := range tests {
		got, err := Config(0).WithResolution(tt.r)
		if err != nil {
			t.Fatalf("resolution %v: unexpected error: %v", tt.r, err)
		}
		if (got.Byte()&rateMask)>>RateBit != tt.bits {
			t.Errorf("resolution %v: expected bits %02b, got %08b", tt.r, tt.bits, got.Byte())
		}
		if got.Resolution() != tt.r {
			t.Errorf("resolution %v: Resolution() = %v", tt.r, got.Resolution())
		}
	}

	if _, err := DefaultConfig.WithResolution(10); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestConfigReady(t *testing.T) {
	if Config(0x9C).Ready() {
		t.Error("RDY bit set should not report ready")
	}
	if !Config(0x1C).Ready() {
		t.Error("RDY bit clear should report ready")
	}
}

func TestConfigWithContinuous(t *testing.T) {
	c := DefaultConfig.WithContinuous(false)
	if c.Continuous() || c != 0x0C {
		t.Errorf("expected one-shot 0x0c, got %v", c)
	}
	if c.WithContinuous(true) != DefaultConfig {
		t.Errorf("expected %v", DefaultConfig)
	}
}
