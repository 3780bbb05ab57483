package solver

import (
	"github.com/notargets/gospectral/utils"
)

// Snapshot is an immutable sample of the field at one simulation time,
// projected to the requested output resolution in physical space. Produced
// at each sampling boundary; never mutated after creation.
type Snapshot struct {
	Time       float64
	Step       int
	Size       []int
	Bounds     [][2]float64
	Components int
	ValueRange [2]float64 // display range hint from preferences, zero if unset

	values utils.CMatrix // physical space, read-only
}

// SnapshotFunc consumes snapshots in strictly increasing time order,
// exactly once per sampled time. It must not re-enter the solver; an error
// aborts the run.
type SnapshotFunc func(s *Snapshot) error

// Values exposes the physical-space field, points x components. The matrix
// is read-only.
func (s *Snapshot) Values() utils.CMatrix { return s.values }

// Component copies one component of the field.
func (s *Snapshot) Component(j int) []complex128 {
	return s.values.Col(j)
}

// Real copies the real part of one component, the common case for real
// valued PDEs.
func (s *Snapshot) Real(j int) []float64 {
	col := s.values.Col(j)
	out := make([]float64, len(col))
	for i, v := range col {
		out[i] = real(v)
	}
	return out
}
