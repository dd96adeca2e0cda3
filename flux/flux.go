// Package flux computes spectral-flux onset-strength envelopes and a coarse
// tempo estimate from them. It is the default novelty provider for the
// rhythm analyzer; the analyzer itself accepts any provider with the same
// contract.
package flux

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
)

// OnsetStrength computes a half-wave-rectified spectral-flux envelope: one
// value per hop, each the summed per-bin magnitude increase since the
// previous frame, normalized so the strongest frame is 1. Input shorter
// than one window yields an empty envelope.
func OnsetStrength(samples []float64, sampleRate, windowSize, hopSize int) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0, got %d", sampleRate)
	}
	if windowSize <= 0 || hopSize <= 0 {
		return nil, fmt.Errorf("window %d and hop %d must be > 0", windowSize, hopSize)
	}
	if len(samples) < windowSize {
		return nil, nil
	}

	plan, err := algofft.NewPlanReal64(windowSize)
	if err != nil {
		return nil, fmt.Errorf("fft plan: %w", err)
	}

	hann := make([]float64, windowSize)
	for i := range hann {
		hann[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(windowSize-1))
	}

	nBins := windowSize/2 + 1
	spec := make([]complex128, nBins)
	buf := make([]float64, windowSize)
	prevMag := make([]float64, nBins)
	mag := make([]float64, nBins)

	numFrames := 1 + (len(samples)-windowSize)/hopSize
	env := make([]float64, numFrames)

	for frame := 0; frame < numFrames; frame++ {
		pos := frame * hopSize
		for i := 0; i < windowSize; i++ {
			buf[i] = samples[pos+i] * hann[i]
		}
		plan.Forward(spec, buf)

		var sum float64
		for k := 1; k < nBins; k++ {
			mag[k] = cmplx.Abs(spec[k])
			if d := mag[k] - prevMag[k]; d > 0 && frame > 0 {
				sum += d
			}
		}
		env[frame] = sum
		prevMag, mag = mag, prevMag
	}

	normalize(env)
	return env, nil
}

// normalize scales the envelope so its maximum is 1. An all-zero envelope
// is left untouched.
func normalize(env []float64) {
	var max float64
	for _, v := range env {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return
	}
	for i := range env {
		env[i] /= max
	}
}
