package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"golang.org/x/time/rate"

	"github.com/cgxeiji/adcpi"
)

var (
	voltColor  = color.New(color.FgGreen, color.Bold).SprintfFunc()
	rangeColor = color.New(color.FgCyan).SprintfFunc()
	noiseColor = color.New(color.FgYellow).SprintfFunc()
)

// watch samples channels at c.Rate readings per second until ctx is done
// and prints every reading with the rolling statistics of its channel.
func watch(ctx context.Context, w io.Writer, r adcpi.Reader, c Config, channels []int) error {
	m := adcpi.NewMonitor(r, c.Window)
	lim := rate.NewLimiter(rate.Limit(c.Rate), 1)

	err := m.Run(ctx, lim, channels, func(rd adcpi.Reading) error {
		_, err := fmt.Fprintf(w, "%s ch%d %s avg %s [%s, %s] ripple %s\n",
			rd.Time.Format(time.StampMilli),
			rd.Channel,
			voltColor("%9.6f V", rd.Voltage),
			voltColor("%9.6f V", rd.Smoothed),
			rangeColor("%9.6f", rd.Min),
			rangeColor("%9.6f", rd.Max),
			noiseColor("%.6f", rd.Ripple),
		)
		return err
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
