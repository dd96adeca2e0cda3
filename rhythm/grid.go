package rhythm

import "fmt"

// BeatGrid generates the expected metronome click times: floor(duration /
// (60/bpm)) entries spaced exactly 60/bpm seconds apart, starting at offset.
// The offset shifts the grid without changing its length.
func BeatGrid(bpm, duration, offset float64) ([]float64, error) {
	if bpm <= 0 {
		return nil, fmt.Errorf("%w: bpm must be > 0, got %g", ErrInvalidParameter, bpm)
	}
	if duration < 0 {
		return nil, fmt.Errorf("%w: duration must be >= 0, got %g", ErrInvalidParameter, duration)
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0, got %g", ErrInvalidParameter, offset)
	}

	interval := 60.0 / bpm
	numBeats := int(duration / interval)
	grid := make([]float64, numBeats)
	for i := range grid {
		grid[i] = offset + float64(i)*interval
	}
	return grid, nil
}
