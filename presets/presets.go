// Package presets bundles ready to run model problems: classic stiff PDEs
// with known good grids and step sizes, used by the command line driver and
// as end to end test fixtures.
package presets

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/notargets/gospectral/operators"
	"github.com/notargets/gospectral/solver"
)

// Problem couples a PDE specification with the discretization defaults it
// is known to run well with.
type Problem struct {
	Spec     *operators.Spec
	GridSize []int
	Dt       float64
	Prefs    *solver.Preferences
}

var registry = map[string]func() *Problem{
	"heat":           Heat,
	"allencahn":      AllenCahn,
	"ks":             KuramotoSivashinsky,
	"kdv":            KortewegDeVries,
	"burgers":        Burgers,
	"nls":            Schrodinger,
	"grayscott":      GrayScott,
	"ginzburglandau": GinzburgLandau,
}

// Names lists the available presets in sorted order.
func Names() (names []string) {
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Get constructs the named preset.
func Get(name string) (*Problem, error) {
	build, ok := registry[name]
	if !ok {
		return nil, operators.Configf("unknown preset %q, have %v", name, Names())
	}
	return build(), nil
}

func prefsWith(plotEvery int) *solver.Preferences {
	p := solver.DefaultPreferences()
	p.PlotEvery = plotEvery
	return p
}

// Heat is the periodic heat equation u_t = u_xx with a single sine mode.
// Every coefficient decays as exp(-k^2 t), which makes it the reference
// problem for integrator accuracy.
func Heat() *Problem {
	return &Problem{
		Spec: &operators.Spec{
			Name:       "heat",
			Domain:     [][2]float64{{0, 2 * math.Pi}},
			TSpan:      [2]float64{0, 1},
			Components: 1,
			Linear: func(k []float64) []complex128 {
				return []complex128{complex(-k[0]*k[0], 0)}
			},
			Init: func(x []float64) []complex128 {
				return []complex128{complex(math.Sin(x[0]), 0)}
			},
		},
		GridSize: []int{64},
		Dt:       1.e-2,
		Prefs:    prefsWith(10),
	}
}

// AllenCahn is u_t = eps*u_xx + u - u^3, metastable interface motion.
func AllenCahn() *Problem {
	const eps = 5.e-3
	return &Problem{
		Spec: &operators.Spec{
			Name:       "allencahn",
			Domain:     [][2]float64{{0, 2 * math.Pi}},
			TSpan:      [2]float64{0, 60},
			Components: 1,
			Linear: func(k []float64) []complex128 {
				return []complex128{complex(-eps*k[0]*k[0]+1, 0)}
			},
			Nonlinear: &operators.Nonlinearity{
				Eval: func(u []complex128) []complex128 {
					return []complex128{-u[0] * u[0] * u[0]}
				},
			},
			Init: func(x []float64) []complex128 {
				return []complex128{complex(math.Tanh(2*math.Sin(x[0])), 0)}
			},
		},
		GridSize: []int{128},
		Dt:       1.e-1,
		Prefs:    prefsWith(10),
	}
}

// KuramotoSivashinsky is u_t = -u_xx - u_xxxx - u*u_x on [0, 32*pi],
// the standard chaotic test case for exponential integrators.
func KuramotoSivashinsky() *Problem {
	return &Problem{
		Spec: &operators.Spec{
			Name:       "ks",
			Domain:     [][2]float64{{0, 32 * math.Pi}},
			TSpan:      [2]float64{0, 150},
			Components: 1,
			Linear: func(k []float64) []complex128 {
				k2 := k[0] * k[0]
				return []complex128{complex(k2-k2*k2, 0)}
			},
			Nonlinear: &operators.Nonlinearity{
				Eval: func(u []complex128) []complex128 {
					return []complex128{u[0] * u[0]}
				},
				Deriv: []int{1},
				Coeff: -0.5,
			},
			Init: func(x []float64) []complex128 {
				s := x[0] / 16
				return []complex128{complex(math.Cos(s)*(1+math.Sin(s)), 0)}
			},
		},
		GridSize: []int{128},
		Dt:       0.25,
		Prefs:    prefsWith(4),
	}
}

// KortewegDeVries is u_t = -u_xxx - 3*(u^2)_x with a two soliton initial
// state. The linear symbol is purely dispersive.
func KortewegDeVries() *Problem {
	sech := func(z float64) float64 { return 1 / math.Cosh(z) }
	const a, b = 25.0, 16.0
	return &Problem{
		Spec: &operators.Spec{
			Name:       "kdv",
			Domain:     [][2]float64{{-math.Pi, math.Pi}},
			TSpan:      [2]float64{0, 0.006},
			Components: 1,
			Linear: func(k []float64) []complex128 {
				return []complex128{complex(0, k[0]*k[0]*k[0])}
			},
			Nonlinear: &operators.Nonlinearity{
				Eval: func(u []complex128) []complex128 {
					return []complex128{u[0] * u[0]}
				},
				Deriv: []int{1},
				Coeff: -3,
			},
			Init: func(x []float64) []complex128 {
				sa := sech(a * (x[0] + 2))
				sb := sech(b * (x[0] + 1))
				return []complex128{complex(3*a*a*sa*sa+3*b*b*sb*sb, 0)}
			},
		},
		GridSize: []int{256},
		Dt:       2.e-6,
		Prefs:    prefsWith(250),
	}
}

// Burgers is the viscous Burgers equation u_t = nu*u_xx - 1/2*(u^2)_x.
func Burgers() *Problem {
	const nu = 0.03
	return &Problem{
		Spec: &operators.Spec{
			Name:       "burgers",
			Domain:     [][2]float64{{0, 2 * math.Pi}},
			TSpan:      [2]float64{0, 2},
			Components: 1,
			Linear: func(k []float64) []complex128 {
				return []complex128{complex(-nu*k[0]*k[0], 0)}
			},
			Nonlinear: &operators.Nonlinearity{
				Eval: func(u []complex128) []complex128 {
					return []complex128{u[0] * u[0]}
				},
				Deriv: []int{1},
				Coeff: -0.5,
			},
			Init: func(x []float64) []complex128 {
				s := math.Sin(x[0] / 2)
				return []complex128{complex(math.Exp(-10*s*s), 0)}
			},
		},
		GridSize: []int{256},
		Dt:       1.e-3,
		Prefs:    prefsWith(100),
	}
}

// Schrodinger is the focusing cubic NLS i*u_t + u_xx + 2*|u|^2*u = 0,
// written as u_t = i*u_xx + 2i*|u|^2*u, with a single soliton.
func Schrodinger() *Problem {
	return &Problem{
		Spec: &operators.Spec{
			Name:       "nls",
			Domain:     [][2]float64{{-16, 16}},
			TSpan:      [2]float64{0, 4},
			Components: 1,
			Linear: func(k []float64) []complex128 {
				return []complex128{complex(0, -k[0]*k[0])}
			},
			Nonlinear: &operators.Nonlinearity{
				Eval: func(u []complex128) []complex128 {
					mag2 := real(u[0])*real(u[0]) + imag(u[0])*imag(u[0])
					return []complex128{complex(0, 2*mag2) * u[0]}
				},
			},
			Init: func(x []float64) []complex128 {
				return []complex128{complex(2/math.Cosh(2*x[0]), 0) *
					cmplx.Exp(complex(0, x[0]/2))}
			},
		},
		GridSize: []int{256},
		Dt:       5.e-3,
		Prefs:    prefsWith(20),
	}
}

// GrayScott is the two component reaction diffusion system
//
//	u_t = eps1*lap(u) + b*(1-u) - u*v^2
//	v_t = eps2*lap(v) - d*v + u*v^2
//
// on a 2D square, with the linear reaction terms folded into the symbol.
func GrayScott() *Problem {
	const (
		eps1 = 2.e-5
		eps2 = 1.e-5
		b    = 0.04
		d    = 0.1
	)
	return &Problem{
		Spec: &operators.Spec{
			Name:       "grayscott",
			Domain:     [][2]float64{{0, 2.5}, {0, 2.5}},
			TSpan:      [2]float64{0, 2000},
			Components: 2,
			Linear: func(k []float64) []complex128 {
				k2 := k[0]*k[0] + k[1]*k[1]
				return []complex128{
					complex(-eps1*k2-b, 0),
					complex(-eps2*k2-d, 0),
				}
			},
			Nonlinear: &operators.Nonlinearity{
				Eval: func(u []complex128) []complex128 {
					uv2 := u[0] * u[1] * u[1]
					return []complex128{b - uv2, uv2}
				},
			},
			Init: func(x []float64) []complex128 {
				r2 := (x[0]-1.25)*(x[0]-1.25) + (x[1]-1.25)*(x[1]-1.25)
				bump := math.Exp(-80 * r2)
				return []complex128{complex(1-bump, 0), complex(bump, 0)}
			},
		},
		GridSize: []int{128, 128},
		Dt:       2,
		Prefs:    prefsWith(50),
	}
}

// GinzburgLandau is the 2D complex Ginzburg Landau equation
// u_t = lap(u) + u - (1+1.3i)*|u|^2*u, a complex field with spiral wave
// dynamics. The initial state is a small deterministic perturbation.
func GinzburgLandau() *Problem {
	const l = 100.0
	return &Problem{
		Spec: &operators.Spec{
			Name:       "ginzburglandau",
			Domain:     [][2]float64{{0, l}, {0, l}},
			TSpan:      [2]float64{0, 50},
			Components: 1,
			Linear: func(k []float64) []complex128 {
				return []complex128{complex(-(k[0]*k[0]+k[1]*k[1])+1, 0)}
			},
			Nonlinear: &operators.Nonlinearity{
				Eval: func(u []complex128) []complex128 {
					mag2 := real(u[0])*real(u[0]) + imag(u[0])*imag(u[0])
					return []complex128{-complex(mag2, 1.3*mag2) * u[0]}
				},
			},
			Init: func(x []float64) []complex128 {
				s, t := 2*math.Pi*x[0]/l, 2*math.Pi*x[1]/l
				re := 0.1 * (math.Cos(s)*math.Sin(3*t) + math.Sin(2*s)*math.Cos(t))
				im := 0.1 * (math.Sin(s+2*t) + math.Cos(3*s)*math.Sin(t))
				return []complex128{complex(re, im)}
			},
		},
		GridSize: []int{128, 128},
		Dt:       0.1,
		Prefs:    prefsWith(25),
	}
}
