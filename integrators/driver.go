package integrators

import (
	"github.com/notargets/gospectral/utils"
)

// Driver runs a scheme including its startup phase: multistep schemes take
// their first StartupSteps() steps with ETDRK4 while the one-step scheme's
// nonlinear evaluations at the accepted states seed the history buffer.
// One-step schemes pass straight through.
type Driver struct {
	scheme     SchemeType
	main       Stepper
	boot       *etdrk4
	stepsTaken int
}

// NewDriver builds the driver. bootCoeffs must be ETDRK4 coefficients for
// the same operator and dt when the scheme is multistep; it is ignored for
// one-step schemes.
func NewDriver(scheme SchemeType, coeffs, bootCoeffs *Coefficients, nl NonlinearFunc) (d *Driver, err error) {
	d = &Driver{scheme: scheme}
	if d.main, err = NewStepper(scheme, coeffs, nl); err != nil {
		return nil, err
	}
	if scheme.StartupSteps() > 0 {
		boot, err := NewStepper(ETDRK4, bootCoeffs, nl)
		if err != nil {
			return nil, err
		}
		d.boot = boot.(*etdrk4)
	}
	return d, nil
}

func (d *Driver) Scheme() SchemeType { return d.scheme }

// Advance takes one step, transparently handling startup.
func (d *Driver) Advance(uHat utils.CMatrix) (utils.CMatrix, error) {
	if d.boot != nil && d.stepsTaken < d.scheme.StartupSteps() {
		u1, err := d.boot.Advance(uHat)
		if err == nil {
			d.main.Seed(d.boot.FirstStageN().Copy())
		}
		d.stepsTaken++
		return u1, err
	}
	d.stepsTaken++
	return d.main.Advance(uHat)
}
