package pbp

import (
	"fmt"
	"math"
)

// MaxCheckpoints bounds the length of a grid
const MaxCheckpoints = 1_000_000

// Checkpoints returns the grid 0, step, 2*step, ... up to and including end.
// Values are computed as i*step rather than by repeated addition so the grid
// does not drift. Grids longer than MaxCheckpoints are rejected.
func Checkpoints(step, end float64) ([]float64, error) {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil, fmt.Errorf("checkpoint step must be positive, got %v", step)
	}
	if end < 0 || math.IsNaN(end) || math.IsInf(end, 0) {
		return nil, fmt.Errorf("checkpoint end must be >= 0, got %v", end)
	}

	last := math.Floor(end/step + 1e-9)
	if last >= MaxCheckpoints {
		return nil, fmt.Errorf("checkpoint grid up to %v by %v exceeds %d points", end, step, MaxCheckpoints)
	}

	n := int(last) + 1
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * step
	}
	return times, nil
}
