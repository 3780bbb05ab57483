package integrators

import (
	"errors"
	"fmt"

	"github.com/notargets/gospectral/utils"
)

// ErrNonFinite is returned by a stepper whose result contains NaN or Inf
// entries. The time loop wraps it with the step index and time at which the
// field diverged.
var ErrNonFinite = errors.New("field is no longer finite")

// NonlinearFunc evaluates the operator's nonlinear term on a transform
// space field and returns the transform-space, dealiased result. A nil
// NonlinearFunc means the operator is purely linear.
type NonlinearFunc func(uHat utils.CMatrix) utils.CMatrix

// Stepper advances the transform-space field by one fixed step dt. Each
// scheme is a fixed sequence of stages; multistep schemes additionally keep
// a short history of nonlinear evaluations from completed steps, shifted
// after each accepted step.
type Stepper interface {
	Scheme() SchemeType
	// Advance maps u_n to u_{n+1}. The input is not modified.
	Advance(uHat utils.CMatrix) (utils.CMatrix, error)
	// Seed appends one startup history entry, the nonlinear evaluation at
	// an accepted state. Multistep schemes need SchemeType.StartupSteps()
	// of these, oldest first, before the first Advance.
	Seed(nHat utils.CMatrix)
}

// NewStepper builds the stepper for a scheme. The nonlinear function may be
// nil for a purely linear operator; every scheme then reduces to exact
// multiplication by exp(dt*lambda).
func NewStepper(scheme SchemeType, coeffs *Coefficients, nl NonlinearFunc) (Stepper, error) {
	if coeffs == nil {
		return nil, fmt.Errorf("stepper for scheme %v needs coefficients", scheme)
	}
	if coeffs.Scheme != scheme {
		return nil, fmt.Errorf("coefficients are for scheme %v, stepper wants %v", coeffs.Scheme, scheme)
	}
	switch scheme {
	case ETDRK4:
		return &etdrk4{coeffs: coeffs, nl: nl}, nil
	case ABNORSETT4:
		return &abNorsett4{coeffs: coeffs, nl: nl}, nil
	case PECEC433:
		return &pecec433{coeffs: coeffs, nl: nl}, nil
	}
	return nil, fmt.Errorf("unknown scheme %d", scheme)
}

// evalN runs the nonlinear function, or yields a zero field for purely
// linear operators.
func evalN(nl NonlinearFunc, uHat utils.CMatrix) utils.CMatrix {
	if nl == nil {
		nr, nc := uHat.Dims()
		return utils.NewCMatrix(nr, nc)
	}
	return nl(uHat)
}

func checkFinite(uHat utils.CMatrix) error {
	if !uHat.IsFinite() {
		return ErrNonFinite
	}
	return nil
}
