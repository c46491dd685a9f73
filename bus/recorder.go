package bus

import (
	"github.com/rs/zerolog"

	"github.com/cgxeiji/adcpi"
)

// Recorder wraps a transport and logs every transaction at trace level.
type Recorder struct {
	next adcpi.Bus
	log  zerolog.Logger
}

// NewRecorder returns a Recorder logging the traffic of next to log.
func NewRecorder(next adcpi.Bus, log zerolog.Logger) *Recorder {
	return &Recorder{
		next: next,
		log:  log.With().Str("component", "bus").Logger(),
	}
}

// SendByte implements adcpi.Bus.
func (r *Recorder) SendByte(addr, value byte) error {
	err := r.next.SendByte(addr, value)
	r.log.Trace().
		Hex("addr", []byte{addr}).
		Hex("w", []byte{value}).
		Err(err).
		Msg("send")
	return err
}

// ReadBlock implements adcpi.Bus.
func (r *Recorder) ReadBlock(addr, reg byte, n int) ([]byte, error) {
	b, err := r.next.ReadBlock(addr, reg, n)
	r.log.Trace().
		Hex("addr", []byte{addr}).
		Hex("w", []byte{reg}).
		Hex("r", b).
		Err(err).
		Msg("read")
	return b, err
}

var (
	_ adcpi.Bus = (*Periph)(nil)
	_ adcpi.Bus = (*SMBus)(nil)
	_ adcpi.Bus = (*TinyGo)(nil)
	_ adcpi.Bus = (*ReefPi)(nil)
	_ adcpi.Bus = (*Recorder)(nil)
)
