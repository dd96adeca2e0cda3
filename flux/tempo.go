package flux

import "math"

// Tempo scan range. Estimates outside this band are folded back into it by
// octave halving/doubling.
const (
	minScanBPM = 60.0
	maxScanBPM = 200.0

	tempoWindowSize = 1024
	tempoHopSize    = 512

	// Minimum separation between coarse beats, milliseconds.
	beatSepMs = 250.0
)

// EstimateTempo estimates the dominant tempo of a recording from the mean
// interval between coarse onset-envelope beats, and returns the BPM together
// with the beat times. When the signal carries fewer than two usable beats
// it returns a zero BPM and whatever beats were found; deciding on a
// fallback tempo is the caller's job.
func EstimateTempo(samples []float64, sampleRate int) (float64, []float64, error) {
	env, err := OnsetStrength(samples, sampleRate, tempoWindowSize, tempoHopSize)
	if err != nil {
		return 0, nil, err
	}

	beats := coarseBeats(env, sampleRate, tempoHopSize)
	if len(beats) < 2 {
		return 0, beats, nil
	}

	meanInterval := (beats[len(beats)-1] - beats[0]) / float64(len(beats)-1)
	if meanInterval <= 0 {
		return 0, beats, nil
	}

	bpm := 60.0 / meanInterval
	for bpm > maxScanBPM {
		bpm /= 2
	}
	for bpm < minScanBPM {
		bpm *= 2
	}
	return bpm, beats, nil
}

// coarseBeats picks prominent envelope maxima, at least beatSepMs apart,
// above mean plus one standard deviation. This is deliberately cruder than
// the analyzer's own peak picker: it only has to anchor the grid and feed
// the interval estimate.
func coarseBeats(env []float64, sampleRate, hopSize int) []float64 {
	if len(env) < 3 {
		return nil
	}

	var mean float64
	for _, v := range env {
		mean += v
	}
	mean /= float64(len(env))
	var sq float64
	for _, v := range env {
		d := v - mean
		sq += d * d
	}
	threshold := mean + math.Sqrt(sq/float64(len(env)))

	minFrames := int(beatSepMs / 1000.0 * float64(sampleRate) / float64(hopSize))
	if minFrames < 1 {
		minFrames = 1
	}

	var beats []float64
	lastFrame := -minFrames
	for i := 1; i < len(env)-1; i++ {
		if env[i] < threshold || env[i] <= env[i-1] || env[i] < env[i+1] {
			continue
		}
		if i-lastFrame < minFrames {
			continue
		}
		beats = append(beats, float64(i)*float64(hopSize)/float64(sampleRate))
		lastFrame = i
	}
	return beats
}
