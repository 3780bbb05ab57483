package solver

import (
	"context"
	"fmt"
	"math"

	"github.com/notargets/gospectral/integrators"
	"github.com/notargets/gospectral/operators"
	"github.com/notargets/gospectral/spectral"
	"github.com/notargets/gospectral/utils"
)

// RunPhase tracks the time loop state machine.
type RunPhase uint8

const (
	Initializing RunPhase = iota
	Stepping
	Sampling
	Finished
	Failed
)

func (p RunPhase) String() string {
	switch p {
	case Initializing:
		return "initializing"
	case Stepping:
		return "stepping"
	case Sampling:
		return "sampling"
	case Finished:
		return "finished"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// DivergenceFactor is the blowup threshold: the run fails once the transform
// magnitude exceeds this multiple of (1 + initial magnitude).
const DivergenceFactor = 1.e10

// Result is what a completed (or interrupted) run hands back.
type Result struct {
	Final *Snapshot // most recent sampled snapshot
	Times []float64 // sampled times, strictly increasing
	Steps int       // steps completed
	Phase RunPhase
}

// TimeLoop owns the integration of one problem from t0 to t1.
type TimeLoop struct {
	Spec  *operators.Spec
	Prefs *Preferences

	grid    *spectral.Grid
	outGrid *spectral.Grid // nil when output matches the compute grid
	driver  *integrators.Driver
	uHat    utils.CMatrix

	Dt     float64
	Nsteps int
	step   int
	time   float64
	phase  RunPhase

	blowup float64 // divergence threshold for |uHat|max
	times  []float64
	last   *Snapshot
}

// NewTimeLoop validates the problem and preferences, builds the grid,
// assembles integrator coefficients and leaves the loop ready to Run.
// The step size is adjusted downward so an integer number of steps lands
// exactly on the final time.
func NewTimeLoop(spec *operators.Spec, gridSize []int, dt float64, prefs *Preferences) (tl *TimeLoop, err error) {
	if prefs == nil {
		prefs = DefaultPreferences()
	}
	if err = spec.Validate(gridSize); err != nil {
		return nil, err
	}
	if err = prefs.Validate(len(gridSize)); err != nil {
		return nil, err
	}
	if !(dt > 0) || math.IsInf(dt, 0) || math.IsNaN(dt) {
		return nil, operators.Configf("time step must be positive and finite, got %g", dt)
	}
	tl = &TimeLoop{
		Spec:  spec,
		Prefs: prefs,
		phase: Initializing,
	}
	if tl.grid, err = spectral.NewGrid(gridSize, spec.Domain); err != nil {
		return nil, err
	}
	if len(prefs.OutputSize) != 0 && !sameSize(prefs.OutputSize, gridSize) {
		if tl.outGrid, err = spectral.NewGrid(prefs.OutputSize, spec.Domain); err != nil {
			return nil, err
		}
	}
	span := spec.TSpan[1] - spec.TSpan[0]
	tl.Nsteps = int(math.Ceil(span/dt - 1.e-9))
	if tl.Nsteps < 1 {
		tl.Nsteps = 1
	}
	tl.Dt = span / float64(tl.Nsteps)
	tl.time = spec.TSpan[0]

	tl.uHat = tl.grid.Forward(spec.InitialField(tl.grid))
	tl.blowup = DivergenceFactor * (1 + tl.uHat.MaxAbs())

	scheme, err := integrators.NewSchemeType(prefs.Scheme)
	if err != nil {
		return nil, operators.Configf("%s", err.Error())
	}
	lambda := spec.Eigenvalues(tl.grid)
	cache := integrators.NewCache()
	coeffs := cache.Get(scheme, tl.Dt, tl.grid.Signature(), lambda)
	var bootCoeffs *integrators.Coefficients
	if scheme.StartupSteps() > 0 {
		bootCoeffs = cache.Get(integrators.ETDRK4, tl.Dt, tl.grid.Signature(), lambda)
	}
	nl := nonlinearFunc(spec, tl.grid)
	if tl.driver, err = integrators.NewDriver(scheme, coeffs, bootCoeffs, nl); err != nil {
		return nil, err
	}
	return tl, nil
}

// Solve runs the problem to completion.
func Solve(spec *operators.Spec, gridSize []int, dt float64, prefs *Preferences) (*Result, error) {
	return SolveContext(context.Background(), spec, gridSize, dt, prefs)
}

// SolveContext runs the problem until the final time or until ctx is
// cancelled. Cancellation is polled between output intervals only; on
// cancellation the partial result is returned along with ctx.Err().
func SolveContext(ctx context.Context, spec *operators.Spec, gridSize []int, dt float64, prefs *Preferences) (*Result, error) {
	tl, err := NewTimeLoop(spec, gridSize, dt, prefs)
	if err != nil {
		return nil, err
	}
	return tl.Run(ctx)
}

// Run advances the solution from the initial time to the final time,
// sampling at the initial time, every PlotEvery steps, and the final step.
func (tl *TimeLoop) Run(ctx context.Context) (*Result, error) {
	if tl.Prefs.Verbose {
		scheme := tl.driver.Scheme()
		fmt.Printf("%s: %s, order %d, %d nonlinear evals/step, dt = %g, %d steps, grid %v\n",
			tl.Spec.Name, scheme, scheme.Order(), scheme.Evaluations(),
			tl.Dt, tl.Nsteps, tl.grid.Size)
	}
	tl.phase = Sampling
	if err := tl.sample(); err != nil {
		tl.phase = Failed
		return tl.result(), err
	}
	tl.phase = Stepping
	for tl.step < tl.Nsteps {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				// Interrupted mid-run: the phase stays at Stepping so the
				// result does not claim the final time was reached.
				return tl.result(), err
			}
		}
		chunk := tl.Prefs.PlotEvery
		if rem := tl.Nsteps - tl.step; chunk > rem {
			chunk = rem
		}
		for i := 0; i < chunk; i++ {
			if err := tl.advance(); err != nil {
				tl.phase = Failed
				return tl.result(), err
			}
		}
		tl.phase = Sampling
		if err := tl.sample(); err != nil {
			tl.phase = Failed
			return tl.result(), err
		}
		tl.phase = Stepping
	}
	tl.phase = Finished
	return tl.result(), nil
}

func (tl *TimeLoop) advance() (err error) {
	u1, err := tl.driver.Advance(tl.uHat)
	tl.step++
	tl.time = tl.Spec.TSpan[0] + float64(tl.step)*tl.Dt
	if err != nil {
		return &DivergenceError{Step: tl.step, Time: tl.time, Err: err}
	}
	if mag := u1.MaxAbs(); mag > tl.blowup {
		return &DivergenceError{
			Step: tl.step, Time: tl.time,
			Err: fmt.Errorf("solution magnitude %g exceeds divergence threshold %g", mag, tl.blowup),
		}
	}
	tl.uHat = u1
	return nil
}

// sample captures a snapshot of the current state and delivers it to the
// output sink. A sink failure preserves the snapshot in the result.
func (tl *TimeLoop) sample() error {
	s := tl.snapshot()
	tl.last = s
	tl.times = append(tl.times, tl.time)
	if tl.Prefs.Verbose {
		fmt.Printf("Time = %8.4f, step = %6d of %6d, |u|max = %10.6g\n",
			tl.time, tl.step, tl.Nsteps, s.Values().MaxAbs())
	}
	if tl.Prefs.Plot && tl.Prefs.Sink != nil {
		if err := tl.Prefs.Sink(s); err != nil {
			return &OutputSinkError{Time: tl.time, Err: err}
		}
	}
	return nil
}

func (tl *TimeLoop) snapshot() *Snapshot {
	g := tl.grid
	coef := tl.uHat
	if tl.outGrid != nil {
		coef = tl.grid.Resample(tl.uHat, tl.outGrid)
		g = tl.outGrid
	}
	phys := g.Inverse(coef)
	phys.SetReadOnly("Snapshot")
	return &Snapshot{
		Time:       tl.time,
		Step:       tl.step,
		Size:       append([]int{}, g.Size...),
		Bounds:     g.Bounds,
		Components: tl.Spec.Components,
		ValueRange: tl.Prefs.ValueRange,
		values:     phys,
	}
}

func (tl *TimeLoop) result() *Result {
	return &Result{
		Final: tl.last,
		Times: tl.times,
		Steps: tl.step,
		Phase: tl.phase,
	}
}

func sameSize(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
