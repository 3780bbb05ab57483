package spectral

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gospectral/utils"
)

func fillField(g *Grid, f func(x []float64) complex128) (phys utils.CMatrix) {
	phys = g.NewField(1)
	for idx := 0; idx < g.Total; idx++ {
		phys.Set(idx, 0, f(g.Point(idx)))
	}
	return
}

func maxDiff(a, b utils.CMatrix) float64 {
	return a.Copy().Subtract(b).MaxAbs()
}

func TestTransformRoundTrip(t *testing.T) {
	twoPi := [][2]float64{{0, 2 * math.Pi}, {0, 2 * math.Pi}, {0, 2 * math.Pi}}
	cases := [][]int{{16}, {8, 4}, {4, 4, 4}}
	for _, size := range cases {
		g, err := NewGrid(size, twoPi[:len(size)])
		assert.NoError(t, err)
		phys := fillField(g, func(x []float64) complex128 {
			s := 0.
			for d, xd := range x {
				s += math.Sin(float64(d+1)*xd) + 0.3*math.Cos(2*xd)
			}
			return complex(s, 0.1*s)
		})
		back := g.Inverse(g.Forward(phys))
		assert.Less(t, maxDiff(phys, back), utils.NODETOL)
	}
}

func TestTransformNormalization(t *testing.T) {
	// A pure mode exp(i*3x) with amplitude 2 has coefficient 2 at integer
	// wavenumber 3 and nothing anywhere else
	g, _ := NewGrid([]int{16}, [][2]float64{{0, 2 * math.Pi}})
	phys := fillField(g, func(x []float64) complex128 {
		return 2 * cmplx.Exp(complex(0, 3*x[0]))
	})
	coef := g.Forward(phys)
	for idx := 0; idx < g.Total; idx++ {
		if g.KInt[0][idx] == 3 {
			assert.InDelta(t, 2, real(coef.At(idx, 0)), 1.e-13)
			assert.InDelta(t, 0, imag(coef.At(idx, 0)), 1.e-13)
		} else {
			assert.Less(t, cmplx.Abs(coef.At(idx, 0)), 1.e-13)
		}
	}
}

func TestDerivative(t *testing.T) {
	// d/dx sin(x) = cos(x)
	{
		g, _ := NewGrid([]int{32}, [][2]float64{{0, 2 * math.Pi}})
		phys := fillField(g, func(x []float64) complex128 {
			return complex(math.Sin(x[0]), 0)
		})
		coef := g.Deriv(g.Forward(phys), []int{1})
		want := fillField(g, func(x []float64) complex128 {
			return complex(math.Cos(x[0]), 0)
		})
		assert.Less(t, maxDiff(g.Inverse(coef), want), utils.NODETOL)
	}
	// Domain scaling: d/dx sin(2*pi*x/L) = (2*pi/L)*cos(2*pi*x/L)
	{
		const l = 10.
		g, _ := NewGrid([]int{32}, [][2]float64{{0, l}})
		phys := fillField(g, func(x []float64) complex128 {
			return complex(math.Sin(2*math.Pi*x[0]/l), 0)
		})
		coef := g.Deriv(g.Forward(phys), []int{1})
		want := fillField(g, func(x []float64) complex128 {
			return complex(2*math.Pi/l*math.Cos(2*math.Pi*x[0]/l), 0)
		})
		assert.Less(t, maxDiff(g.Inverse(coef), want), utils.NODETOL)
	}
	// Mixed dimensions: d/dy sin(x)*cos(y) = -sin(x)*sin(y)
	{
		g, _ := NewGrid([]int{16, 16}, [][2]float64{{0, 2 * math.Pi}, {0, 2 * math.Pi}})
		phys := fillField(g, func(x []float64) complex128 {
			return complex(math.Sin(x[0])*math.Cos(x[1]), 0)
		})
		coef := g.Deriv(g.Forward(phys), []int{0, 1})
		want := fillField(g, func(x []float64) complex128 {
			return complex(-math.Sin(x[0])*math.Sin(x[1]), 0)
		})
		assert.Less(t, maxDiff(g.Inverse(coef), want), utils.NODETOL)
	}
}

func TestDealias(t *testing.T) {
	g, _ := NewGrid([]int{32}, [][2]float64{{0, 2 * math.Pi}})
	coef := g.NewField(1)
	for idx := 0; idx < g.Total; idx++ {
		coef.Set(idx, 0, 1)
	}
	g.Dealias(coef)
	for idx := 0; idx < g.Total; idx++ {
		k := g.KInt[0][idx]
		if k < 0 {
			k = -k
		}
		if k > 32/3 {
			assert.Equal(t, complex128(0), coef.At(idx, 0))
			assert.True(t, g.Dealiased(idx))
		} else {
			assert.Equal(t, complex128(1), coef.At(idx, 0))
			assert.False(t, g.Dealiased(idx))
		}
	}
}

func TestResample(t *testing.T) {
	bounds := [][2]float64{{0, 2 * math.Pi}}
	coarse, _ := NewGrid([]int{16}, bounds)
	fine, _ := NewGrid([]int{32}, bounds)
	f := func(x []float64) complex128 {
		return complex(math.Sin(3*x[0])+0.5*math.Cos(x[0]), 0)
	}
	// Upsampling a band limited field reproduces it exactly on the fine grid
	{
		coef := coarse.Forward(fillField(coarse, f))
		up := coarse.Resample(coef, fine)
		assert.Less(t, maxDiff(fine.Inverse(up), fillField(fine, f)), utils.NODETOL)
	}
	// Downsampling drops modes the coarse grid cannot represent
	{
		coef := fine.Forward(fillField(fine, func(x []float64) complex128 {
			return complex(math.Sin(3*x[0])+math.Sin(12*x[0]), 0)
		}))
		down := fine.Resample(coef, coarse)
		want := coarse.Forward(fillField(coarse, func(x []float64) complex128 {
			return complex(math.Sin(3*x[0]), 0)
		}))
		assert.Less(t, maxDiff(down, want), utils.NODETOL)
	}
	// Same size is a no op
	{
		coef := coarse.Forward(fillField(coarse, f))
		same := coarse.Resample(coef, coarse)
		assert.Less(t, maxDiff(coef, same), 1.e-15)
	}
}

func TestGridValidation(t *testing.T) {
	var err error
	_, err = NewGrid([]int{}, [][2]float64{})
	assert.Error(t, err)
	_, err = NewGrid([]int{4, 4, 4, 4}, [][2]float64{{0, 1}, {0, 1}, {0, 1}, {0, 1}})
	assert.Error(t, err)
	_, err = NewGrid([]int{1}, [][2]float64{{0, 1}})
	assert.Error(t, err)
	_, err = NewGrid([]int{8}, [][2]float64{{1, 1}})
	assert.Error(t, err)
	_, err = NewGrid([]int{8, 8}, [][2]float64{{0, 1}})
	assert.Error(t, err)
	g, err := NewGrid([]int{8}, [][2]float64{{0, 1}})
	assert.NoError(t, err)
	assert.Equal(t, 8, g.Total)
}

func TestGridCoords(t *testing.T) {
	g, _ := NewGrid([]int{4}, [][2]float64{{0, 2 * math.Pi}})
	x := g.Coords(0)
	assert.Equal(t, 4, len(x))
	// Uniform spacing, periodic endpoint excluded
	for i, xi := range x {
		assert.InDelta(t, float64(i)*math.Pi/2, xi, 1.e-14)
	}
	// Point agrees with the per-dimension coordinates
	assert.InDelta(t, x[3], g.Point(3)[0], 1.e-14)
	// Wavenumbers follow the transform layout 0,1,..,-n/2,..,-1
	assert.Equal(t, []int{0, 1, -2, -1}, g.KInt[0])
	assert.InDelta(t, 1, g.Wavenumbers(0)[1], 1.e-14)
}
