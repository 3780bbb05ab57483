package integrators

import (
	"fmt"

	"github.com/notargets/gospectral/utils"
)

// pecec433 is a 4th order, 3-step exponential predictor-corrector:
// Predict with 3rd order Adams-Bashforth over the history, Evaluate at the
// prediction, Correct with 4th order Adams-Moulton, Evaluate at the
// correction, Correct again. Two nonlinear evaluations per accepted step;
// the final evaluation becomes the history head for the next step.
type pecec433 struct {
	coeffs  *Coefficients
	nl      NonlinearFunc
	history []utils.CMatrix // N_n, N_{n-1}, N_{n-2}, newest first
}

func (s *pecec433) Scheme() SchemeType { return PECEC433 }

func (s *pecec433) Seed(nHat utils.CMatrix) {
	s.history = append([]utils.CMatrix{nHat}, s.history...)
	if len(s.history) > PECEC433.HistoryLength() {
		s.history = s.history[:PECEC433.HistoryLength()]
	}
}

func (s *pecec433) Advance(u utils.CMatrix) (utils.CMatrix, error) {
	if len(s.history) < PECEC433.StartupSteps() {
		return utils.CMatrix{}, fmt.Errorf("pecec433 needs %d history entries, have %d", PECEC433.StartupSteps(), len(s.history))
	}
	if len(s.history) == PECEC433.StartupSteps() {
		// One extra evaluation on the very first step completes the
		// history head at the current accepted state.
		s.history = append([]utils.CMatrix{evalN(s.nl, u)}, s.history...)
	}
	var (
		c     = s.coeffs
		Eu    = u.Copy().ElMul(c.E)
		histC = func(w []utils.CMatrix, lead utils.CMatrix) utils.CMatrix {
			// Eu + w0.lead + w1.N_n + w2.N_{n-1} (+ w3.N_{n-2})
			r := Eu.Copy().Add(lead.Copy().ElMul(w[0]))
			for i := 1; i < len(w); i++ {
				r.Add(s.history[i-1].Copy().ElMul(w[i]))
			}
			return r
		}
	)

	// Predict: AB3 over N_n, N_{n-1}, N_{n-2}
	uP := Eu.Copy().
		Add(s.history[0].Copy().ElMul(c.B[0])).
		Add(s.history[1].Copy().ElMul(c.B[1])).
		Add(s.history[2].Copy().ElMul(c.B[2]))
	Np := evalN(s.nl, uP)

	// Correct: AM4 with the predicted nonlinearity leading
	uC := histC(c.C, Np)
	Nc := evalN(s.nl, uC)

	// Correct once more with the refreshed evaluation
	u1 := histC(c.C, Nc)

	// the final evaluation stands in for N_{n+1} in the next step's history
	s.history = []utils.CMatrix{Nc, s.history[0], s.history[1]}
	return u1, checkFinite(u1)
}
