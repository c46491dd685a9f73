package adcpi

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Reader reads the voltage of a logical channel. It is implemented by
// *Device and *DifferentialDevice.
type Reader interface {
	ReadVoltage(ch int) (float64, error)
}

// Reading is one voltage reading with the statistics of its channel.
type Reading struct {
	Channel  int       `json:"channel"`
	Time     time.Time `json:"time"`
	Voltage  float64   `json:"voltage"`
	Smoothed float64   `json:"smoothed"`
	Mean     float64   `json:"mean"`
	Min      float64   `json:"min"`
	Max      float64   `json:"max"`
	Ripple   float64   `json:"ripple"`
}

// Monitor samples channels of a board and keeps rolling statistics for
// each of them. Like the Reader it wraps, a Monitor is not safe for
// concurrent use.
type Monitor struct {
	r      Reader
	window int
	series map[int]*Series
	avg    map[int]*movingAverage
	now    func() time.Time
}

// NewMonitor returns a Monitor over r keeping the last window readings of
// each channel.
func NewMonitor(r Reader, window int) *Monitor {
	if window < 1 {
		window = 1
	}
	return &Monitor{
		r:      r,
		window: window,
		series: make(map[int]*Series),
		avg:    make(map[int]*movingAverage),
		now:    time.Now,
	}
}

// Sample reads channel ch once and updates its statistics.
func (m *Monitor) Sample(ch int) (Reading, error) {
	v, err := m.r.ReadVoltage(ch)
	if err != nil {
		return Reading{}, err
	}

	s, ok := m.series[ch]
	if !ok {
		s = NewSeries(m.window)
		m.series[ch] = s
		m.avg[ch] = &movingAverage{}
	}
	s.Add(v)
	avg := m.avg[ch]
	avg.add(v)

	return Reading{
		Channel:  ch,
		Time:     m.now(),
		Voltage:  v,
		Smoothed: avg.mean,
		Mean:     s.Mean(),
		Min:      s.Min(),
		Max:      s.Max(),
		Ripple:   s.Ripple(),
	}, nil
}

// Series returns the readings of channel ch, or nil if it was never
// sampled.
func (m *Monitor) Series(ch int) *Series {
	return m.series[ch]
}

// Reset drops the statistics of every channel.
func (m *Monitor) Reset() {
	for ch, a := range m.avg {
		a.reset()
		m.series[ch] = NewSeries(m.window)
	}
}

// Run samples channels in turn, waiting on lim before every read, and calls
// fn with each reading. It returns when ctx is done, a read fails or fn
// returns an error. A nil lim does not limit the sampling rate.
func (m *Monitor) Run(ctx context.Context, lim *rate.Limiter, channels []int, fn func(Reading) error) error {
	if len(channels) == 0 {
		return fmt.Errorf("%w: no channels to sample", ErrInvalidArgument)
	}
	for _, ch := range channels {
		if ch < 1 || ch > Channels {
			return fmt.Errorf("%w: channel %d, it should be 1 to %d", ErrInvalidArgument, ch, Channels)
		}
	}
	if lim == nil {
		lim = rate.NewLimiter(rate.Inf, 1)
	}

	for {
		for _, ch := range channels {
			if err := lim.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return err
			}

			r, err := m.Sample(ch)
			if err != nil {
				return err
			}
			if err := fn(r); err != nil {
				return err
			}
		}
	}
}
