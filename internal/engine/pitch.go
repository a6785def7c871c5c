package engine

// findPitchPeriod estimates the pitch period at the start of in, which must
// hold at least maxRequired samples.
func (t *tempoStage) findPitchPeriod(in []int16, quality Quality) int {
	skip := 1
	if quality == QualityFast && t.sampleRate > amdfFrequency {
		skip = t.sampleRate / amdfFrequency
	}

	var period, minDiff, maxDiff int
	if skip == 1 {
		period, minDiff, maxDiff = findPeriodInRange(in, t.minPeriod, t.maxPeriod)
	} else {
		t.down = downsample(t.down[:0], in[:t.maxRequired], skip)
		period, _, _ = findPeriodInRange(t.down, max(t.minPeriod/skip, 1), max(t.maxPeriod/skip, 1))

		period *= skip
		lo := max(period-refineSteps*skip, t.minPeriod)
		hi := min(period+refineSteps*skip, t.maxPeriod)
		period, minDiff, maxDiff = findPeriodInRange(in, lo, hi)
	}

	result := period
	if t.prevPeriodBetter(minDiff, maxDiff) {
		result = t.prevPeriod
	}
	t.prevMinDiff = minDiff
	t.prevPeriod = period
	return result
}

// prevPeriodBetter reports whether the last estimate should be kept because
// the new one is not a clearly better match.
func (t *tempoStage) prevPeriodBetter(minDiff, maxDiff int) bool {
	if minDiff == 0 || t.prevPeriod == 0 {
		return false
	}
	if maxDiff > minDiff*3 {
		return false
	}
	if minDiff*2 <= t.prevMinDiff*3 {
		return false
	}
	return true
}

// findPeriodInRange runs an average magnitude difference search over
// [minPeriod, maxPeriod]. It returns the best period together with the
// per-sample difference at the best and worst periods. in must hold at
// least 2*maxPeriod samples.
func findPeriodInRange[S int16 | int](in []S, minPeriod, maxPeriod int) (period, minDiff, maxDiff int) {
	bestPeriod, worstPeriod := 0, 255
	minDiff, maxDiff = 1, 0

	for p := minPeriod; p <= maxPeriod; p++ {
		diff := 0
		for i := range p {
			d := int(in[i]) - int(in[i+p])
			if d < 0 {
				d = -d
			}
			diff += d
		}

		// Compare diff/p against the current extremes without dividing.
		if bestPeriod == 0 || diff*bestPeriod < minDiff*p {
			minDiff = diff
			bestPeriod = p
		}
		if diff*worstPeriod > maxDiff*p {
			maxDiff = diff
			worstPeriod = p
		}
	}

	if bestPeriod == 0 {
		return minPeriod, 0, 0
	}
	return bestPeriod, minDiff / bestPeriod, maxDiff / worstPeriod
}

// downsample box-averages in by factor skip.
func downsample(dst []int, in []int16, skip int) []int {
	for i := 0; i+skip <= len(in); i += skip {
		sum := 0
		for _, v := range in[i : i+skip] {
			sum += int(v)
		}
		dst = append(dst, sum/skip)
	}
	return dst
}
