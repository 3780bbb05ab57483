package operators

import (
	"github.com/notargets/gospectral/spectral"
	"github.com/notargets/gospectral/utils"
)

// LinearSymbol maps a per-dimension physical wavenumber vector to one
// eigenvalue per solution component. It must be a pure function of the
// wavenumber; it is evaluated once per (grid, domain) into a table.
type LinearSymbol func(k []float64) []complex128

// PointwiseFunc maps the per-point component values of the physical field
// to a new set of component values. Components may couple.
type PointwiseFunc func(u []complex128) []complex128

// InitialFunc generates the initial condition at a physical coordinate,
// one value per component.
type InitialFunc func(x []float64) []complex128

// Nonlinearity is the non-stiff part of the operator: a pointwise function
// of the field, optionally followed by a fixed spectral derivative and a
// constant scalar factor. A convective term like -1/2*(u^2)_x is expressed
// as Eval u->u^2, Deriv {1}, Coeff -0.5.
type Nonlinearity struct {
	Eval  PointwiseFunc
	Deriv []int      // per-dimension derivative order applied in transform space, nil = none
	Coeff complex128 // fixed scalar factor; the zero value means 1
}

// EffectiveCoeff resolves the zero-value convention.
func (n *Nonlinearity) EffectiveCoeff() complex128 {
	if n.Coeff == 0 {
		return 1
	}
	return n.Coeff
}

// Spec is the full description of one PDE initial value problem:
// u_t = L u + N(u) on a periodic rectangular domain.
type Spec struct {
	Name       string
	Domain     [][2]float64 // one interval per dimension, 1 to 3
	TSpan      [2]float64
	Components int

	Linear    LinearSymbol
	Nonlinear *Nonlinearity // nil for a purely linear operator

	// Exactly one of Init (closed form generator) or InitData (sampled
	// values on the compute grid, points x components) must be set.
	Init     InitialFunc
	InitData utils.CMatrix
}

// Validate checks the specification against a compute grid size before any
// stepping happens.
func (s *Spec) Validate(gridSize []int) error {
	if len(s.Domain) < 1 || len(s.Domain) > 3 {
		return Configf("domain must have 1 to 3 dimensions, have %d", len(s.Domain))
	}
	for d, b := range s.Domain {
		if b[1]-b[0] <= 0 {
			return Configf("domain extent must be positive in dimension %d, have [%g,%g]", d, b[0], b[1])
		}
	}
	if len(gridSize) != len(s.Domain) {
		return Configf("grid size has %d dimensions, domain has %d", len(gridSize), len(s.Domain))
	}
	for d, n := range gridSize {
		if n < 2 {
			return Configf("grid size must be at least 2 per dimension, have %d in dimension %d", n, d)
		}
	}
	if s.Components < 1 {
		return Configf("component count must be at least 1, have %d", s.Components)
	}
	if s.TSpan[1] <= s.TSpan[0] {
		return Configf("time span must have positive length, have [%g,%g]", s.TSpan[0], s.TSpan[1])
	}
	if s.Linear == nil {
		return Configf("linear symbol is required")
	}
	if ev := s.Linear(make([]float64, len(s.Domain))); len(ev) != s.Components {
		return Configf("linear symbol yields %d components, spec declares %d", len(ev), s.Components)
	}
	if s.Nonlinear != nil {
		if s.Nonlinear.Eval == nil {
			return Configf("nonlinear term is present but has no pointwise function")
		}
		if out := s.Nonlinear.Eval(make([]complex128, s.Components)); len(out) != s.Components {
			return Configf("nonlinear term yields %d components, spec declares %d", len(out), s.Components)
		}
		if s.Nonlinear.Deriv != nil && len(s.Nonlinear.Deriv) != len(s.Domain) {
			return Configf("nonlinear derivative orders have %d dimensions, domain has %d", len(s.Nonlinear.Deriv), len(s.Domain))
		}
		for d, o := range s.Nonlinear.Deriv {
			if o < 0 {
				return Configf("nonlinear derivative order must be non-negative, have %d in dimension %d", o, d)
			}
		}
	}
	total := 1
	for _, n := range gridSize {
		total *= n
	}
	switch {
	case s.Init == nil && s.InitData.IsEmpty():
		return Configf("initial condition is required, set Init or InitData")
	case s.Init != nil && !s.InitData.IsEmpty():
		return Configf("initial condition is ambiguous, set only one of Init and InitData")
	case !s.InitData.IsEmpty():
		nr, nc := s.InitData.Dims()
		if nr != total || nc != s.Components {
			return Configf("sampled initial condition is %dx%d, grid wants %dx%d", nr, nc, total, s.Components)
		}
	}
	if v := s.Init; v != nil {
		if out := v(make([]float64, len(s.Domain))); len(out) != s.Components {
			return Configf("initial condition yields %d components, spec declares %d", len(out), s.Components)
		}
	}
	return nil
}

// Eigenvalues tabulates the linear symbol on a grid: one eigenvalue per
// mode per component, in the transform layout.
func (s *Spec) Eigenvalues(g *spectral.Grid) (lambda utils.CMatrix) {
	lambda = utils.NewCMatrix(g.Total, s.Components)
	var (
		data = lambda.Data()
		k    = make([]float64, g.Dims)
	)
	for idx := 0; idx < g.Total; idx++ {
		for d := 0; d < g.Dims; d++ {
			k[d] = g.K[d][g.ModeOffset(idx, d)]
		}
		ev := s.Linear(k)
		if len(ev) != s.Components {
			panic("linear symbol component count changed between calls")
		}
		for j := 0; j < s.Components; j++ {
			data[idx*s.Components+j] = ev[j]
		}
	}
	lambda.SetReadOnly("Eigenvalues")
	return
}

// InitialField samples the initial condition onto a grid in physical space.
func (s *Spec) InitialField(g *spectral.Grid) (phys utils.CMatrix) {
	if !s.InitData.IsEmpty() {
		return s.InitData.Copy()
	}
	phys = g.NewField(s.Components)
	data := phys.Data()
	for idx := 0; idx < g.Total; idx++ {
		vals := s.Init(g.Point(idx))
		for j := 0; j < s.Components; j++ {
			data[idx*s.Components+j] = vals[j]
		}
	}
	return
}
