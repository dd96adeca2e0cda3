package dsp

import "math"

// Highpass implements a first-order high-pass filter (no heap allocations
// in Process). It removes DC offset and low-frequency rumble before the
// novelty stage so hum cannot leak into the onset envelope.
type Highpass struct {
	alpha float64

	// State (previous samples)
	x1 float64 // input history
	y1 float64 // output history

	primed bool
}

// NewHighpass creates a high-pass filter for the given sample rate and
// cutoff frequency in Hz.
func NewHighpass(sampleRate int, cutoffHz float64) *Highpass {
	rc := 1.0 / (2.0 * math.Pi * cutoffHz)
	dt := 1.0 / float64(sampleRate)
	return &Highpass{alpha: rc / (rc + dt)}
}

// Process processes one sample through the filter. The first sample passes
// through unchanged; there is no phase correction at the start of the
// stream.
func (h *Highpass) Process(input float64) float64 {
	if !h.primed {
		h.primed = true
		h.x1 = input
		h.y1 = input
		return input
	}
	output := h.alpha * (h.y1 + input - h.x1)
	h.x1 = input
	h.y1 = output
	return output
}

// Reset clears the filter state.
func (h *Highpass) Reset() {
	h.x1, h.y1 = 0, 0
	h.primed = false
}

// HighpassFilter runs a single causal pass over samples and returns the
// filtered copy. Empty input returns an empty slice.
func HighpassFilter(samples []float64, sampleRate int, cutoffHz float64) []float64 {
	out := make([]float64, len(samples))
	if len(samples) == 0 {
		return out
	}
	h := NewHighpass(sampleRate, cutoffHz)
	for i, s := range samples {
		out[i] = h.Process(s)
	}
	return out
}
