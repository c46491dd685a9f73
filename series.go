package adcpi

// Series keeps the last readings of one channel in a ring buffer and
// tracks their extremes.
type Series struct {
	buffer []float64
	idx    int
	n      int
	sum    float64

	max float64
	min float64
}

// NewSeries returns a Series holding up to size readings. size is at least
// 1.
func NewSeries(size int) *Series {
	if size < 1 {
		size = 1
	}
	return &Series{
		buffer: make([]float64, size),
		idx:    -1,
	}
}

// Add appends entries, dropping the oldest readings once the buffer is full.
func (t *Series) Add(entries ...float64) {
	for _, e := range entries {
		t.idx++
		t.idx %= len(t.buffer)

		if t.n < len(t.buffer) {
			t.n++
			t.buffer[t.idx] = e
			t.sum += e
			if t.n == 1 {
				t.max = e
				t.min = e
			}
			t.minmax(e)
			continue
		}

		old := t.buffer[t.idx]
		t.buffer[t.idx] = e
		t.sum += e - old

		if old == t.max || old == t.min {
			t.max = e
			t.min = e
			for _, b := range t.buffer {
				t.minmax(b)
			}
		} else {
			t.minmax(e)
		}
	}
}

func (t *Series) minmax(v float64) {
	if v > t.max {
		t.max = v
	}
	if v < t.min {
		t.min = v
	}
}

// Len returns the number of readings held.
func (t *Series) Len() int {
	return t.n
}

// Last returns the latest reading, or 0 if the series is empty.
func (t *Series) Last() float64 {
	if t.n == 0 {
		return 0
	}
	return t.buffer[t.idx]
}

// Min returns the lowest reading held.
func (t *Series) Min() float64 {
	return t.min
}

// Max returns the highest reading held.
func (t *Series) Max() float64 {
	return t.max
}

// Mean returns the mean of the readings held, or 0 if the series is empty.
func (t *Series) Mean() float64 {
	if t.n == 0 {
		return 0
	}
	return t.sum / float64(t.n)
}

// Ripple returns the peak-to-peak spread of the readings held.
func (t *Series) Ripple() float64 {
	return t.max - t.min
}
