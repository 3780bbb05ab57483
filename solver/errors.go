package solver

import "fmt"

// DivergenceError reports numerical blow-up: a non-finite field value, or a
// field magnitude exceeding DivergenceFactor times its initial magnitude.
// Fatal: the run aborts, preserving the last valid snapshot. Stiffness
// induced instability is a modeling problem, not a transient fault, so
// there is no retry.
type DivergenceError struct {
	Step int
	Time float64
	Err  error
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("solution diverged at step %d, t = %g: %v", e.Step, e.Time, e.Err)
}

func (e *DivergenceError) Unwrap() error { return e.Err }

// OutputSinkError wraps a failure from the snapshot callback. Fatal to the
// run with the same last-state preservation guarantee.
type OutputSinkError struct {
	Time float64
	Err  error
}

func (e *OutputSinkError) Error() string {
	return fmt.Sprintf("output sink failed at t = %g: %v", e.Time, e.Err)
}

func (e *OutputSinkError) Unwrap() error { return e.Err }
