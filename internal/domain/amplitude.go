package domain

import "math"

// AmplitudeRange returns the minimum and maximum of samples, seeded from the
// first sample. NaN samples are ignored; an empty or all-NaN slice yields 0, 0.
func AmplitudeRange(samples []float32) (lo, hi float32) {
	seeded := false

	for _, v := range samples {
		if math.IsNaN(float64(v)) {
			continue
		}
		if !seeded {
			lo, hi = v, v
			seeded = true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	return lo, hi
}
