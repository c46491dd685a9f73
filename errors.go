package adcpi

import (
	"errors"
	"fmt"

	"github.com/cgxeiji/adcpi/mcp342x"
)

var (
	// ErrInvalidArgument is returned when a channel, gain, resolution or
	// option value is not allowed. Nothing is written to the bus.
	ErrInvalidArgument = mcp342x.ErrInvalidArgument
	// ErrBus matches every *BusError with errors.Is.
	ErrBus = errors.New("adcpi: bus error")
	// ErrConversionTimeout is returned when a chip keeps reporting an
	// incomplete conversion after the configured number of retries.
	ErrConversionTimeout = errors.New("adcpi: conversion timeout")

	errNotReady = errors.New("conversion not ready")
)

// BusError is a failed transport operation on one chip.
type BusError struct {
	// Op is the transport operation ("write" or "read").
	Op   string
	Addr byte
	Err  error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("adcpi: could not %s chip %#02x: %v", e.Op, e.Addr, e.Err)
}

// Unwrap returns the transport error.
func (e *BusError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrBus) hold for every BusError.
func (e *BusError) Is(target error) bool {
	return target == ErrBus
}
