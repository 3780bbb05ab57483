package integrators

import (
	"fmt"

	"github.com/notargets/gospectral/utils"
)

// abNorsett4 is the 4th order exponential Adams-Bashforth scheme: one
// nonlinear evaluation per step against a history of the three previous
// evaluations. Cheapest per step, needs three startup entries.
type abNorsett4 struct {
	coeffs  *Coefficients
	nl      NonlinearFunc
	history []utils.CMatrix // N_{n-1}, N_{n-2}, N_{n-3}, newest first
}

func (s *abNorsett4) Scheme() SchemeType { return ABNORSETT4 }

func (s *abNorsett4) Seed(nHat utils.CMatrix) {
	// Seeds arrive oldest first; keep newest first internally.
	s.history = append([]utils.CMatrix{nHat}, s.history...)
	if len(s.history) > ABNORSETT4.HistoryLength() {
		s.history = s.history[:ABNORSETT4.HistoryLength()]
	}
}

func (s *abNorsett4) Advance(u utils.CMatrix) (utils.CMatrix, error) {
	if len(s.history) < ABNORSETT4.HistoryLength() {
		return utils.CMatrix{}, fmt.Errorf("abnorsett4 needs %d history entries, have %d", ABNORSETT4.HistoryLength(), len(s.history))
	}
	var (
		c  = s.coeffs
		Nn = evalN(s.nl, u)
	)
	// u1 = E.u + B0.N_n + B1.N_{n-1} + B2.N_{n-2} + B3.N_{n-3}
	u1 := u.Copy().ElMul(c.E).
		Add(Nn.Copy().ElMul(c.B[0])).
		Add(s.history[0].Copy().ElMul(c.B[1])).
		Add(s.history[1].Copy().ElMul(c.B[2])).
		Add(s.history[2].Copy().ElMul(c.B[3]))

	// shift: oldest discarded after the accepted step
	s.history = []utils.CMatrix{Nn, s.history[0], s.history[1]}
	return u1, checkFinite(u1)
}
