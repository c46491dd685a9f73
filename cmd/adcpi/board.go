package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/cgxeiji/adcpi"
	"github.com/cgxeiji/adcpi/bus"
)

var errSingleEnded = errors.New("board is single-ended")

// board is an opened ADC Pi with its transport.
type board struct {
	*adcpi.Device
	// diff is nil on single-ended boards.
	diff   *adcpi.DifferentialDevice
	closer io.Closer
}

func newBoard(b adcpi.Bus, c Config, log zerolog.Logger) (*board, error) {
	opts := append(c.options(), adcpi.WithLogger(log))

	if c.Differential {
		d, err := adcpi.NewDifferential(b, opts...)
		if err != nil {
			return nil, err
		}
		return &board{Device: d.Device, diff: d}, nil
	}

	d, err := adcpi.New(b, opts...)
	if err != nil {
		return nil, err
	}
	return &board{Device: d}, nil
}

// openBoard opens the transport named by c. With trace set, every bus
// transaction is logged.
func openBoard(c Config, log zerolog.Logger, trace bool) (*board, error) {
	var (
		b      adcpi.Bus
		closer io.Closer
	)

	switch c.Transport {
	case "smbus":
		n, err := busNumber(c.Bus)
		if err != nil {
			return nil, err
		}
		s, err := bus.OpenSMBus(n, c.AddressA)
		if err != nil {
			return nil, err
		}
		log.Debug().Int("bus", n).Msg("opened SMBus")
		b, closer = s, s
	default:
		p, err := bus.OpenPeriph(c.Bus)
		if err != nil {
			return nil, err
		}
		log.Debug().Stringer("bus", p).Msg("opened periph bus")
		b, closer = p, p
	}

	if trace {
		b = bus.NewRecorder(b, log)
	}

	bd, err := newBoard(b, c, log)
	if err != nil {
		return nil, errors.Join(err, closer.Close())
	}
	bd.closer = closer

	return bd, nil
}

func busNumber(s string) (int, error) {
	if s == "" || s == "detect" {
		return bus.DetectBus()
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: SMBus number %q", adcpi.ErrInvalidArgument, s)
	}
	return n, nil
}

func (b *board) readDifferential(a, c int) (float64, error) {
	if b.diff == nil {
		return 0, errSingleEnded
	}
	return b.diff.ReadDifferential(a, c)
}

// reader returns the board as a voltage reader for the Monitor.
func (b *board) reader() adcpi.Reader {
	if b.diff != nil {
		return b.diff
	}
	return b.Device
}

func (b *board) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}
