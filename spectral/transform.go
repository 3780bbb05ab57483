package spectral

import (
	"github.com/notargets/gospectral/utils"
)

/*
	Multi-dimensional transforms are built from 1D complex FFTs applied one
	dimension at a time along strided lines of the flattened field, the same
	way the transform factors over a tensor grid. Lines within one dimension
	are independent and are fanned out over goroutines; dimensions are
	processed sequentially.
*/

// Forward transforms a physical field (points x components) to normalized
// Fourier coefficients. The input is not modified.
func (g *Grid) Forward(phys utils.CMatrix) (coef utils.CMatrix) {
	nr, nc := phys.Dims()
	if nr != g.Total {
		panic("field does not match grid size")
	}
	coef = phys.Copy()
	for j := 0; j < nc; j++ {
		col := coef.Col(j)
		for d := 0; d < g.Dims; d++ {
			g.transformDim(col, d, false)
		}
		coef.SetCol(j, col)
	}
	scale := complex(1/float64(g.Total), 0)
	coef.Scale(scale)
	return
}

// Inverse transforms normalized Fourier coefficients back to a physical
// field. The input is not modified. Round trips with Forward are exact to
// floating point.
func (g *Grid) Inverse(coef utils.CMatrix) (phys utils.CMatrix) {
	nr, nc := coef.Dims()
	if nr != g.Total {
		panic("field does not match grid size")
	}
	phys = coef.Copy()
	for j := 0; j < nc; j++ {
		col := phys.Col(j)
		for d := 0; d < g.Dims; d++ {
			g.transformDim(col, d, true)
		}
		phys.SetCol(j, col)
	}
	return
}

// transformDim applies the 1D transform along dimension d to every line of
// the flattened array, in place.
func (g *Grid) transformDim(data []complex128, d int, inverse bool) {
	var (
		n         = g.Size[d]
		stride    = g.stride[d]
		lineCount = g.Total / n
	)
	pm := utils.NewPartitionMap(g.NP, lineCount)
	utils.RunParallel(pm, func(bucket, lMin, lMax int) {
		var (
			plan = g.plans[d][bucket]
			in   = make([]complex128, n)
			out  = make([]complex128, n)
		)
		for l := lMin; l < lMax; l++ {
			o, i := l/stride, l%stride
			base := o*n*stride + i
			for k := 0; k < n; k++ {
				in[k] = data[base+k*stride]
			}
			if inverse {
				plan.Sequence(out, in)
			} else {
				plan.Coefficients(out, in)
			}
			for k := 0; k < n; k++ {
				data[base+k*stride] = out[k]
			}
		}
	})
}
