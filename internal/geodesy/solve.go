package geodesy

import (
	"errors"
	"fmt"
)

// MaxIterations bounds every fixed-point loop.
const MaxIterations = 50

// MaxInDomainSteps is the most steps either loop takes for points on the
// grid (E 100-650 km, N 0-1200 km).
const MaxInDomainSteps = 6

var (
	// ErrNotConverged is returned when a fixed-point loop exhausts MaxIterations.
	// The input is outside the valid domain or numerically degenerate (NaN, poles).
	ErrNotConverged = errors.New("geodesy: iteration did not converge")

	// ErrDatumMismatch is returned when a coordinate is handed to an operation
	// defined for a different datum.
	ErrDatumMismatch = errors.New("geodesy: datum mismatch")
)

// Solve runs step from the initial state until it reports done, and returns
// the final state. It fails with ErrNotConverged instead of returning a
// partially converged state.
func Solve[S any](s S, step func(S) (S, bool)) (S, error) {
	for i := 0; i < MaxIterations; i++ {
		var done bool
		s, done = step(s)
		if done {
			return s, nil
		}
	}
	return s, fmt.Errorf("%w after %d iterations", ErrNotConverged, MaxIterations)
}
