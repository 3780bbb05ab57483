package solver

import (
	"github.com/notargets/gospectral/integrators"
	"github.com/notargets/gospectral/operators"
	"github.com/notargets/gospectral/spectral"
	"github.com/notargets/gospectral/utils"
)

// nonlinearFunc wires an operator's nonlinear term to a grid:
// inverse transform to physical space, pointwise evaluation, forward
// transform, derivative symbol, fixed coefficient, then the mandatory
// dealias mask. Returns nil for a purely linear operator.
func nonlinearFunc(spec *operators.Spec, g *spectral.Grid) integrators.NonlinearFunc {
	if spec.Nonlinear == nil {
		return nil
	}
	var (
		nl    = spec.Nonlinear
		nc    = spec.Components
		coeff = nl.EffectiveCoeff()
	)
	return func(uHat utils.CMatrix) utils.CMatrix {
		phys := g.Inverse(uHat)
		var (
			data = phys.Data()
			u    = make([]complex128, nc)
		)
		for idx := 0; idx < g.Total; idx++ {
			copy(u, data[idx*nc:(idx+1)*nc])
			out := nl.Eval(u)
			copy(data[idx*nc:(idx+1)*nc], out)
		}
		nHat := g.Forward(phys)
		if nl.Deriv != nil {
			g.Deriv(nHat, nl.Deriv)
		}
		if coeff != 1 {
			nHat.Scale(coeff)
		}
		return g.Dealias(nHat)
	}
}
