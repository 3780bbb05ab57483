package integrators

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gospectral/utils"
)

var allSchemes = []SchemeType{ETDRK4, ABNORSETT4, PECEC433}

func TestSchemeMetadata(t *testing.T) {
	for _, scheme := range allSchemes {
		assert.Equal(t, 4, scheme.Order(), scheme.String())
	}
	assert.Equal(t, 4, ETDRK4.Evaluations())
	assert.Equal(t, 1, ABNORSETT4.Evaluations())
	assert.Equal(t, 2, PECEC433.Evaluations())
	assert.Equal(t, 3, ABNORSETT4.HistoryLength())
	assert.Equal(t, 0, ETDRK4.StartupSteps())
	_, err := NewSchemeType("rk4")
	assert.Error(t, err)
}

func scalar(v complex128) utils.CMatrix {
	return utils.NewCMatrix(1, 1, []complex128{v})
}

// With no nonlinear term, every scheme must reduce to exact multiplication
// by exp(dt*lambda), regardless of history content.
func TestLinearExactness(t *testing.T) {
	var (
		lambda = complex(-2, 1)
		dt     = 0.1
		nSteps = 25
	)
	for _, scheme := range allSchemes {
		coeffs := NewCoefficients(scheme, dt, scalar(lambda))
		s, err := NewStepper(scheme, coeffs, nil)
		assert.NoError(t, err)
		for k := 0; k < scheme.StartupSteps(); k++ {
			s.Seed(scalar(0))
		}
		u := scalar(1)
		for n := 0; n < nSteps; n++ {
			u, err = s.Advance(u)
			assert.NoError(t, err)
		}
		want := cmplx.Exp(complex(float64(nSteps)*dt, 0) * lambda)
		assert.Less(t, cmplx.Abs(u.At(0, 0)-want), 1.e-13, scheme.String())
	}
}

// solveScalarODE integrates u' = u - u^3, u(0) = 1/2, whose closed form is
// u(t) = 1/sqrt(1 + 3*exp(-2t)), through the full startup machinery.
func solveScalarODE(t *testing.T, scheme SchemeType, dt float64, tFinal float64) complex128 {
	var (
		lambda = scalar(1)
		nl     = func(u utils.CMatrix) utils.CMatrix {
			v := u.At(0, 0)
			return scalar(-v * v * v)
		}
		coeffs     = NewCoefficients(scheme, dt, lambda)
		bootCoeffs = NewCoefficients(ETDRK4, dt, lambda)
	)
	d, err := NewDriver(scheme, coeffs, bootCoeffs, nl)
	assert.NoError(t, err)
	u := scalar(0.5)
	n := int(math.Round(tFinal / dt))
	for k := 0; k < n; k++ {
		u, err = d.Advance(u)
		assert.NoError(t, err)
	}
	return u.At(0, 0)
}

func TestNonlinearConvergence(t *testing.T) {
	var (
		tFinal = 1.0
		exact  = complex(1/math.Sqrt(1+3*math.Exp(-2*tFinal)), 0)
	)
	for _, scheme := range allSchemes {
		// Step sizes small enough that every scheme, including the
		// predictor-corrector, is past its pre-asymptotic regime.
		errCoarse := cmplx.Abs(solveScalarODE(t, scheme, 1./80, tFinal) - exact)
		errFine := cmplx.Abs(solveScalarODE(t, scheme, 1./160, tFinal) - exact)
		assert.Greater(t, errCoarse, 1.e-14, scheme.String())
		// 4th order: halving dt shrinks the error about 16x
		order := math.Log2(errCoarse / errFine)
		assert.InDelta(t, 4, order, 1, scheme.String())
	}
}

func TestMultistepNeedsHistory(t *testing.T) {
	for _, scheme := range []SchemeType{ABNORSETT4, PECEC433} {
		coeffs := NewCoefficients(scheme, 0.1, scalar(-1))
		s, _ := NewStepper(scheme, coeffs, nil)
		_, err := s.Advance(scalar(1))
		assert.Error(t, err, scheme.String())
	}
}

func TestNonFiniteDetection(t *testing.T) {
	var (
		coeffs = NewCoefficients(ETDRK4, 0.1, scalar(1))
		blowUp = func(u utils.CMatrix) utils.CMatrix {
			return scalar(cmplx.Inf())
		}
	)
	s, _ := NewStepper(ETDRK4, coeffs, blowUp)
	_, err := s.Advance(scalar(1))
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestStepperCoefficientMismatch(t *testing.T) {
	coeffs := NewCoefficients(ETDRK4, 0.1, scalar(-1))
	_, err := NewStepper(ABNORSETT4, coeffs, nil)
	assert.Error(t, err)
	_, err = NewStepper(ABNORSETT4, nil, nil)
	assert.Error(t, err)
}
