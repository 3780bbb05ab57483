package integrators

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhiPathConsistency(t *testing.T) {
	// The closed form and the contour average must agree where both are
	// valid, 1 <= |z| <= 3
	for _, r := range []float64{1, 1.5, 2, 3} {
		for m := 0; m < 16; m++ {
			theta := 2 * math.Pi * float64(m) / 16
			z := cmplx.Rect(r, theta)
			for j := 1; j <= 4; j++ {
				direct := phiDirect(j, z)
				contour := phiContour(j, z)
				assert.Less(t, cmplx.Abs(direct-contour), 1.e-11*(1+cmplx.Abs(direct)),
					"phi%d at z=%v", j, z)
			}
		}
	}
}

func TestPhiSmallArgument(t *testing.T) {
	// Values at zero are 1/j!
	want0 := []complex128{1, 1, 0.5, 1. / 6, 1. / 24}
	for j := 0; j <= 4; j++ {
		assert.InDelta(t, real(want0[j]), real(Phi(j, 0)), 1.e-13)
		assert.InDelta(t, 0, imag(Phi(j, 0)), 1.e-13)
	}
	// Taylor expansion near zero, where the closed form would cancel
	// catastrophically: phi1(z) = 1 + z/2 + z^2/6 + O(z^3)
	for _, z := range []complex128{1.e-8, 1.e-8i, complex(1.e-4, 1.e-4), -1.e-4} {
		want := 1 + z/2 + z*z/6 + z*z*z/24
		assert.Less(t, cmplx.Abs(Phi(1, z)-want), 1.e-12)
	}
}

func TestPhiRecurrence(t *testing.T) {
	// phi_{j+1}(z) = (phi_j(z) - 1/j!) / z away from the origin
	fact := []float64{1, 1, 2, 6}
	for _, z := range []complex128{2, -1.5, 1i * 2.5, complex(1, -2)} {
		for j := 0; j <= 3; j++ {
			want := (Phi(j, z) - complex(1/fact[j], 0)) / z
			assert.Less(t, cmplx.Abs(Phi(j+1, z)-want), 1.e-12)
		}
	}
}

func TestPhiZeroIsExp(t *testing.T) {
	for _, z := range []complex128{0, 0.5, -3, 2i, complex(-1, 4)} {
		assert.Equal(t, cmplx.Exp(z), Phi(0, z))
	}
}
