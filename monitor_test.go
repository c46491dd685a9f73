package adcpi

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

type fakeReader struct {
	values map[int][]float64
	err    error
	calls  []int
}

func (r *fakeReader) ReadVoltage(ch int) (float64, error) {
	r.calls = append(r.calls, ch)
	if r.err != nil {
		return 0, r.err
	}
	q := r.values[ch]
	if len(q) == 0 {
		return 0, nil
	}
	r.values[ch] = q[1:]
	return q[0], nil
}

func TestMonitorSample(t *testing.T) {
	r := &fakeReader{values: map[int][]float64{
		1: {1, 3, 2},
	}}
	m := NewMonitor(r, 2)
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	var last Reading
	for i := 0; i < 3; i++ {
		var err error
		if last, err = m.Sample(1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	want := Reading{
		Channel:  1,
		Time:     now,
		Voltage:  2,
		Smoothed: 1.625,
		Mean:     2.5,
		Min:      2,
		Max:      3,
		Ripple:   1,
	}
	if !reflect.DeepEqual(last, want) {
		t.Errorf("unexpected reading\n%s\nwant\n%s", pprint.Sdump(last), pprint.Sdump(want))
	}
	if m.Series(1).Len() != 2 || m.Series(2) != nil {
		t.Errorf("unexpected series")
	}

	m.Reset()
	if m.Series(1).Len() != 0 {
		t.Errorf("expected an empty series after reset")
	}
}

func TestMonitorRun(t *testing.T) {
	errStop := errors.New("stop")

	t.Run("RoundRobin", func(t *testing.T) {
		r := &fakeReader{values: map[int][]float64{}}
		m := NewMonitor(r, 4)

		var got []int
		err := m.Run(context.Background(), nil, []int{3, 7}, func(rd Reading) error {
			got = append(got, rd.Channel)
			if len(got) == 5 {
				return errStop
			}
			return nil
		})
		if !errors.Is(err, errStop) {
			t.Fatalf("expected %v, got %v", errStop, err)
		}
		want := []int{3, 7, 3, 7, 3}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected channels %v, got %v", want, got)
		}
	})

	t.Run("Cancel", func(t *testing.T) {
		r := &fakeReader{values: map[int][]float64{}}
		m := NewMonitor(r, 4)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := m.Run(ctx, rate.NewLimiter(rate.Every(time.Hour), 1), []int{1}, func(Reading) error {
			return nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if len(r.calls) != 0 {
			t.Errorf("expected no reads, got %v", r.calls)
		}
	})

	t.Run("ReadError", func(t *testing.T) {
		r := &fakeReader{err: ErrConversionTimeout}
		m := NewMonitor(r, 4)

		err := m.Run(context.Background(), nil, []int{1}, func(Reading) error {
			return nil
		})
		if !errors.Is(err, ErrConversionTimeout) {
			t.Fatalf("expected ErrConversionTimeout, got %v", err)
		}
	})

	t.Run("InvalidChannels", func(t *testing.T) {
		m := NewMonitor(&fakeReader{}, 4)
		for _, channels := range [][]int{nil, {0}, {1, 9}} {
			err := m.Run(context.Background(), nil, channels, func(Reading) error { return nil })
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("%v: expected ErrInvalidArgument, got %v", channels, err)
			}
		}
	})

	t.Run("Device", func(t *testing.T) {
		bus := newFakeBus()
		d, err := New(bus)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		bus.queue(0x69, payload18(128000))
		m := NewMonitor(d, 4)

		var rd Reading
		err = m.Run(context.Background(), nil, []int{5}, func(r Reading) error {
			rd = r
			return errStop
		})
		if !errors.Is(err, errStop) {
			t.Fatalf("expected %v, got %v", errStop, err)
		}
		if rd.Voltage == 0 || rd.Voltage != rd.Smoothed || rd.Ripple != 0 {
			t.Errorf("unexpected reading\n%s", pprint.Sdump(rd))
		}
	})
}
