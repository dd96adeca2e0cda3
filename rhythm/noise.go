package rhythm

import "math"

// NoiseFloor measures the ambient noise level as the RMS amplitude of the
// first second of audio, or of the whole signal when it is shorter. The
// opening second is assumed to contain no intentional hits.
func NoiseFloor(samples []float64, sampleRate int) float64 {
	if len(samples) == 0 {
		return 0
	}
	n := sampleRate
	if n > len(samples) {
		n = len(samples)
	}
	var sum float64
	for _, s := range samples[:n] {
		sum += s * s
	}
	return math.Sqrt(sum / float64(n))
}
