package integrators

import (
	"fmt"

	"github.com/notargets/gospectral/utils"
)

// Coefficients holds the precomputed stage tables of one scheme applied to
// one diagonalized linear operator: every entry is a function of
// z = dt*lambda evaluated per mode per component. Computed once per
// (scheme, grid, dt, domain, components) and reused every step; immutable
// afterwards.
type Coefficients struct {
	Scheme SchemeType
	Dt     float64

	E  utils.CMatrix // exp(z), the exact linear propagator
	E2 utils.CMatrix // exp(z/2), ETDRK4 half step
	Q  utils.CMatrix // ETDRK4 internal stage weight

	F [3]utils.CMatrix // ETDRK4 combination weights
	B []utils.CMatrix  // multistep history weights (predictor weights for PECEC433)
	C []utils.CMatrix  // corrector weights
}

// phiCombo tabulates dt * sum_j w[j]*phi_j(z) over all modes and components.
// w[0] weights phi1, w[1] phi2, and so on.
func phiCombo(lambda utils.CMatrix, dt float64, w ...float64) (R utils.CMatrix) {
	var (
		nr, nc = lambda.Dims()
		lam    = lambda.Data()
	)
	R = utils.NewCMatrix(nr, nc)
	data := R.Data()
	for i, l := range lam {
		z := complex(dt, 0) * l
		var sum complex128
		for j, wj := range w {
			if wj == 0 {
				continue
			}
			sum += complex(wj, 0) * Phi(j+1, z)
		}
		data[i] = complex(dt, 0) * sum
	}
	return
}

// expTable tabulates exp(scale*dt*lambda).
func expTable(lambda utils.CMatrix, dt, scale float64) (R utils.CMatrix) {
	var (
		nr, nc = lambda.Dims()
		lam    = lambda.Data()
	)
	R = utils.NewCMatrix(nr, nc)
	data := R.Data()
	for i, l := range lam {
		data[i] = Phi(0, complex(scale*dt, 0)*l)
	}
	return
}

// NewCoefficients builds the stage tables for a scheme from the eigenvalue
// table of the linear operator.
func NewCoefficients(scheme SchemeType, dt float64, lambda utils.CMatrix) (c *Coefficients) {
	if dt <= 0 {
		panic(fmt.Errorf("time step must be positive, have %g", dt))
	}
	c = &Coefficients{
		Scheme: scheme,
		Dt:     dt,
		E:      expTable(lambda, dt, 1),
	}
	switch scheme {
	case ETDRK4:
		/*
			Cox-Matthews ETDRK4 with the Kassam-Trefethen coefficient
			combinations:
				alpha = phi1 - 3 phi2 + 4 phi3
				beta  = phi2 - 2 phi3
				gamma = 4 phi3 - phi2
			The factor 2 on the middle-stage pair is folded into F[1].
		*/
		c.E2 = expTable(lambda, dt, 0.5)
		c.Q = halfPhi1(lambda, dt)
		c.F[0] = phiCombo(lambda, dt, 1, -3, 4)
		c.F[1] = phiCombo(lambda, dt, 0, 2, -4)
		c.F[2] = phiCombo(lambda, dt, 0, -1, 4)
	case ABNORSETT4:
		// Exponential Adams-Bashforth over N_n..N_{n-3}; the weights reduce
		// to classical AB4 (55,-59,37,-9)/24 as z -> 0.
		c.B = []utils.CMatrix{
			phiCombo(lambda, dt, 1, 11./6, 2, 1),
			phiCombo(lambda, dt, 0, -3, -5, -3),
			phiCombo(lambda, dt, 0, 3./2, 4, 3),
			phiCombo(lambda, dt, 0, -1./3, -1, -1),
		}
	case PECEC433:
		// Predictor: 3rd order exponential Adams-Bashforth over
		// N_n..N_{n-2} (classical limit 23,-16,5 over 12).
		c.B = []utils.CMatrix{
			phiCombo(lambda, dt, 1, 3./2, 1),
			phiCombo(lambda, dt, 0, -2, -2),
			phiCombo(lambda, dt, 0, 1./2, 1),
		}
		// Corrector: 4th order exponential Adams-Moulton over the predicted
		// N_{n+1} and N_n..N_{n-2} (classical limit 9,19,-5,1 over 24).
		c.C = []utils.CMatrix{
			phiCombo(lambda, dt, 0, 1./3, 1, 1),
			phiCombo(lambda, dt, 1, 1./2, -2, -3),
			phiCombo(lambda, dt, 0, -1, 1, 3),
			phiCombo(lambda, dt, 0, 1./6, 0, -1),
		}
	default:
		panic("unknown scheme")
	}
	c.freeze()
	return
}

// halfPhi1 tabulates (dt/2)*phi1(z/2), the ETDRK4 internal stage weight.
func halfPhi1(lambda utils.CMatrix, dt float64) (R utils.CMatrix) {
	var (
		nr, nc = lambda.Dims()
		lam    = lambda.Data()
	)
	R = utils.NewCMatrix(nr, nc)
	data := R.Data()
	for i, l := range lam {
		z2 := complex(dt/2, 0) * l
		data[i] = complex(dt/2, 0) * Phi(1, z2)
	}
	return
}

func (c *Coefficients) freeze() {
	c.E.SetReadOnly("E")
	if !c.E2.IsEmpty() {
		c.E2.SetReadOnly("E2")
	}
	if !c.Q.IsEmpty() {
		c.Q.SetReadOnly("Q")
	}
	for i := range c.F {
		if !c.F[i].IsEmpty() {
			c.F[i].SetReadOnly("F")
		}
	}
	for i := range c.B {
		c.B[i].SetReadOnly("B")
	}
	for i := range c.C {
		c.C[i].SetReadOnly("C")
	}
}

// Cache memoizes coefficient tables across chunks so adaptive step changes
// only pay for distinct (scheme, dt, operator) combinations. The solver is
// single threaded, as is this cache.
type Cache struct {
	entries map[string]*Coefficients
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Coefficients)}
}

// Get returns cached coefficients, computing them on a miss. The signature
// must identify the grid, domain and component count the eigenvalue table
// was built from.
func (cc *Cache) Get(scheme SchemeType, dt float64, signature string, lambda utils.CMatrix) *Coefficients {
	key := fmt.Sprintf("%s|dt=%.17g|%s", scheme, dt, signature)
	if c, ok := cc.entries[key]; ok {
		return c
	}
	c := NewCoefficients(scheme, dt, lambda)
	cc.entries[key] = c
	return c
}
