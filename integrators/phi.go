package integrators

import (
	"math"
	"math/cmplx"
)

/*
	The phi functions

		phi0(z) = exp(z)
		phi_{j+1}(z) = (phi_j(z) - 1/j!) / z

	are entire, but their closed forms suffer catastrophic cancellation as
	z -> 0: (exp(z)-1-z)/z^2 loses all digits well before z reaches the
	rounding threshold. Every run hits that regime, since the spectrum of
	dt*L always contains near-zero wavenumbers (including wavenumber zero
	itself for non-diffusive components).

	Below the switch radius the closed form is replaced by a Cauchy-integral
	average over a circle centered on z: phi(z) = mean of phi over M
	equispaced points on the contour, by the trapezoid rule, which converges
	geometrically for entire functions. The contour radius is 2, so every
	quadrature point sits at |w| >= 1 where the closed form is safe. The two
	paths agree to near machine precision in the overlap 1 <= |z| <= 3,
	which is what TestPhiPathConsistency pins down.
*/

const (
	phiSwitchRadius  = 1.0
	phiContourRadius = 2.0
	phiContourPoints = 32
)

// Phi evaluates phi_j at z for j in 0..4 using the numerically stable path
// selection. phi0 is exp and never needs the contour.
func Phi(j int, z complex128) complex128 {
	if j == 0 {
		return cmplx.Exp(z)
	}
	if cmplx.Abs(z) >= phiSwitchRadius {
		return phiDirect(j, z)
	}
	return phiContour(j, z)
}

// phiDirect is the closed form, valid away from the origin.
func phiDirect(j int, z complex128) complex128 {
	ez := cmplx.Exp(z)
	switch j {
	case 0:
		return ez
	case 1:
		return (ez - 1) / z
	case 2:
		return (ez - 1 - z) / (z * z)
	case 3:
		return (ez - 1 - z - z*z/2) / (z * z * z)
	case 4:
		return (ez - 1 - z - z*z/2 - z*z*z/6) / (z * z * z * z)
	}
	panic("phi order out of range")
}

// phiContour averages the closed form over a circle of radius
// phiContourRadius centered on z.
func phiContour(j int, z complex128) complex128 {
	var sum complex128
	for m := 0; m < phiContourPoints; m++ {
		theta := 2 * math.Pi * (float64(m) + 0.5) / phiContourPoints
		w := z + cmplx.Rect(phiContourRadius, theta)
		sum += phiDirect(j, w)
	}
	return sum / complex(phiContourPoints, 0)
}
