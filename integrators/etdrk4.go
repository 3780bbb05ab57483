package integrators

import (
	"github.com/notargets/gospectral/utils"
)

// etdrk4 is the Cox-Matthews 4th order exponential Runge-Kutta scheme in
// the Kassam-Trefethen formulation: four nonlinear evaluations per step, no
// history. It doubles as the startup engine for the multistep schemes.
type etdrk4 struct {
	coeffs *Coefficients
	nl     NonlinearFunc
	firstN utils.CMatrix // N(u_n) from the most recent step, for seeding
}

func (s *etdrk4) Scheme() SchemeType { return ETDRK4 }

func (s *etdrk4) Seed(utils.CMatrix) {} // one-step scheme, no history

// FirstStageN is the nonlinear evaluation at the accepted state of the most
// recent step, used to seed multistep history during startup.
func (s *etdrk4) FirstStageN() utils.CMatrix { return s.firstN }

func (s *etdrk4) Advance(u utils.CMatrix) (utils.CMatrix, error) {
	var (
		c  = s.coeffs
		Nu = evalN(s.nl, u)
	)
	s.firstN = Nu

	// a = E2.u + Q.Nu
	a := u.Copy().ElMul(c.E2).Add(Nu.Copy().ElMul(c.Q))
	Na := evalN(s.nl, a)

	// b = E2.u + Q.Na
	b := u.Copy().ElMul(c.E2).Add(Na.Copy().ElMul(c.Q))
	Nb := evalN(s.nl, b)

	// cStage = E2.a + Q.(2Nb - Nu)
	cStage := a.Copy().ElMul(c.E2).
		Add(Nb.Copy().Scale(2).Subtract(Nu).ElMul(c.Q))
	Nc := evalN(s.nl, cStage)

	// u1 = E.u + F1.Nu + F2.(Na+Nb) + F3.Nc
	u1 := u.Copy().ElMul(c.E).
		Add(Nu.Copy().ElMul(c.F[0])).
		Add(Na.Copy().Add(Nb).ElMul(c.F[1])).
		Add(Nc.Copy().ElMul(c.F[2]))

	return u1, checkFinite(u1)
}
