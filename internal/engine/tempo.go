package engine

import "math"

// tempoStage changes duration without changing pitch by removing or
// repeating whole pitch periods.
type tempoStage struct {
	sampleRate  int
	minPeriod   int
	maxPeriod   int
	maxRequired int

	// Samples still to be copied verbatim after the last skip or insert.
	remaining int

	// Period estimate from the previous search and its normalized AMDF.
	prevPeriod  int
	prevMinDiff int

	// Decimated signal for the FAST coarse search.
	down []int
}

func newTempoStage(sampleRate int) *tempoStage {
	minPeriod := max(sampleRate/maxPitchHz, 1)
	maxPeriod := max(sampleRate/minPitchHz, minPeriod)

	return &tempoStage{
		sampleRate:  sampleRate,
		minPeriod:   minPeriod,
		maxPeriod:   maxPeriod,
		maxRequired: 2 * maxPeriod,
	}
}

func (t *tempoStage) clearRemaining() {
	t.remaining = 0
}

func (t *tempoStage) reset() {
	t.remaining = 0
	t.prevPeriod = 0
	t.prevMinDiff = 0
}

// process appends the tempo-adjusted form of in to out and returns how many
// input samples were consumed. Fewer than maxRequired samples are always
// left in place when speed differs from 1.
func (t *tempoStage) process(in []int16, speed float64, quality Quality, out []int16) (int, []int16) {
	if math.Abs(speed-1) < unitySpeedTolerance {
		t.remaining = 0
		return len(in), append(out, in...)
	}

	pos := 0
	for pos+t.maxRequired <= len(in) {
		window := in[pos:]

		if t.remaining > 0 {
			n := min(t.remaining, t.maxRequired)
			out = append(out, window[:n]...)
			t.remaining -= n
			pos += n
			continue
		}

		period := t.findPitchPeriod(window, quality)
		if speed > 1 {
			var n int
			n, out = t.skipPitchPeriod(window, speed, period, out)
			pos += period + n
		} else {
			var n int
			n, out = t.insertPitchPeriod(window, speed, period, out)
			pos += n
		}
	}

	return pos, out
}

// skipPitchPeriod drops one period, cross-fading across the gap.
func (t *tempoStage) skipPitchPeriod(in []int16, speed float64, period int, out []int16) (int, []int16) {
	var n int
	if speed >= doubleSpeed {
		n = int(float64(period) / (speed - 1))
	} else {
		n = period
		t.remaining = int(float64(period) * (doubleSpeed - speed) / (speed - 1))
	}

	return n, overlapAdd(out, n, in, in[period:])
}

// insertPitchPeriod repeats one period, cross-fading back into the signal.
func (t *tempoStage) insertPitchPeriod(in []int16, speed float64, period int, out []int16) (int, []int16) {
	var n int
	if speed < halfSpeed {
		n = max(int(float64(period)*speed/(1-speed)), 1)
	} else {
		n = period
		t.remaining = int(float64(period) * (2*speed - 1) / (1 - speed))
	}

	out = append(out, in[:period]...)
	return n, overlapAdd(out, n, in[period:], in)
}

// overlapAdd appends n samples fading linearly from down into up.
func overlapAdd(out []int16, n int, down, up []int16) []int16 {
	for i := range n {
		v := (int(down[i])*(n-i) + int(up[i])*i) / n
		out = append(out, int16(v))
	}
	return out
}
