package spectral

import (
	"fmt"

	"github.com/notargets/gospectral/utils"
)

// buildDealiasMask marks every mode at or beyond the 2/3-rule cutoff in any
// dimension. The unmatched Nyquist mode of an even-sized dimension is always
// inside the masked band.
func (g *Grid) buildDealiasMask() {
	g.mask = make([]bool, g.Total)
	cut := make([]int, g.Dims)
	for d := 0; d < g.Dims; d++ {
		cut[d] = g.Size[d] / 3
	}
	for idx := 0; idx < g.Total; idx++ {
		m := g.modeIndex(idx)
		for d := 0; d < g.Dims; d++ {
			a := m[d]
			if a < 0 {
				a = -a
			}
			if a > cut[d] {
				g.mask[idx] = true
				break
			}
		}
	}
}

// Dealias zeroes every masked mode of a transform-space field, in place.
// Applied after every nonlinear evaluation; not optional for nonlinear terms
// of degree two or higher.
func (g *Grid) Dealias(coef utils.CMatrix) utils.CMatrix {
	nr, nc := coef.Dims()
	if nr != g.Total {
		panic("field does not match grid size")
	}
	data := coef.Data()
	for idx := 0; idx < g.Total; idx++ {
		if !g.mask[idx] {
			continue
		}
		for j := 0; j < nc; j++ {
			data[idx*nc+j] = 0
		}
	}
	return coef
}

// Dealiased reports whether a mode index is inside the masked band.
func (g *Grid) Dealiased(idx int) bool {
	return g.mask[idx]
}

// Deriv multiplies a transform-space field by (i*k_d)^orders[d] per
// dimension, in place. Order zero in a dimension leaves it untouched.
func (g *Grid) Deriv(coef utils.CMatrix, orders []int) utils.CMatrix {
	nr, nc := coef.Dims()
	if nr != g.Total {
		panic("field does not match grid size")
	}
	if len(orders) != g.Dims {
		panic(fmt.Errorf("derivative orders have %d dimensions, grid has %d", len(orders), g.Dims))
	}
	data := coef.Data()
	for idx := 0; idx < g.Total; idx++ {
		factor := complex(1, 0)
		for d := 0; d < g.Dims; d++ {
			i := (idx / g.stride[d]) % g.Size[d]
			ik := complex(0, g.K[d][i])
			for o := 0; o < orders[d]; o++ {
				factor *= ik
			}
		}
		if factor == 1 {
			continue
		}
		for j := 0; j < nc; j++ {
			data[idx*nc+j] *= factor
		}
	}
	return coef
}

// Resample maps normalized coefficients from this grid onto a target grid
// with the same domain: shared wavenumbers are copied, new wavenumbers are
// zero, dropped wavenumbers are truncated. Pure spectral interpolation.
func (g *Grid) Resample(coef utils.CMatrix, target *Grid) (out utils.CMatrix) {
	nr, nc := coef.Dims()
	if nr != g.Total {
		panic("field does not match grid size")
	}
	if target.Dims != g.Dims {
		panic("resample target has a different dimensionality")
	}
	out = utils.NewCMatrix(target.Total, nc)
	var (
		src = coef.Data()
		dst = out.Data()
	)
	for idx := 0; idx < target.Total; idx++ {
		m := target.modeIndex(idx)
		srcIdx := 0
		ok := true
		for d := 0; d < g.Dims; d++ {
			n := g.Size[d]
			lo, hi := -(n / 2), (n-1)/2
			if m[d] < lo || m[d] > hi {
				ok = false
				break
			}
			i := m[d]
			if i < 0 {
				i += n
			}
			srcIdx += i * g.stride[d]
		}
		if !ok {
			continue
		}
		for j := 0; j < nc; j++ {
			dst[idx*nc+j] = src[srcIdx*nc+j]
		}
	}
	return
}
