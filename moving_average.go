package adcpi

// movingAverage smooths the voltages of one channel. Each new reading moves
// the mean a quarter of the way towards it.
type movingAverage struct {
	mean   float64
	primed bool
}

func (m *movingAverage) add(n float64) {
	// the first reading seeds the mean.
	if !m.primed {
		m.mean = n
		m.primed = true
		return
	}
	m.mean += (n - m.mean) / 4
}

func (m *movingAverage) reset() {
	m.mean = 0
	m.primed = false
}
