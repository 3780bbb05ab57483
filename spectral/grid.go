package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gospectral/utils"
)

// Grid is a uniform periodic tensor grid in 1, 2 or 3 dimensions together
// with the FFT plans and wavenumber tables needed to move fields between
// physical and transform space.
//
// Transform-space coefficients are normalized mode amplitudes: the forward
// transform divides by the point count, so a pure mode exp(i*k*x) with unit
// amplitude has coefficient 1 at wavenumber k. With that convention,
// resampling between grid sizes is a pure pad/truncate of coefficients.
type Grid struct {
	Dims   int
	Size   []int        // points per dimension
	Bounds [][2]float64 // interval per dimension, periodic
	Total  int          // total number of points / modes

	K      [][]float64           // physical wavenumber 2*pi*n/L per dimension, FFT layout
	KInt   [][]int               // integer wavenumber n per dimension, FFT layout
	stride []int                 // flattened stride per dimension, last dimension fastest
	mask   []bool                // true where the 2/3-rule dealias mask zeroes the mode
	plans  [][]*fourier.CmplxFFT // [dim][worker]
	pm     *utils.PartitionMap   // partition over the largest line count
	NP     int
}

func NewGrid(size []int, bounds [][2]float64) (g *Grid, err error) {
	if len(size) < 1 || len(size) > 3 {
		return nil, fmt.Errorf("grid must have 1 to 3 dimensions, have %d", len(size))
	}
	if len(bounds) != len(size) {
		return nil, fmt.Errorf("grid size has %d dimensions, domain has %d", len(size), len(bounds))
	}
	g = &Grid{
		Dims:   len(size),
		Size:   append([]int{}, size...),
		Bounds: append([][2]float64{}, bounds...),
		Total:  1,
		NP:     utils.DefaultParallelDegree(),
	}
	for d, n := range size {
		if n < 2 {
			return nil, fmt.Errorf("grid size must be at least 2 per dimension, have %d in dimension %d", n, d)
		}
		length := bounds[d][1] - bounds[d][0]
		if length <= 0 {
			return nil, fmt.Errorf("domain extent must be positive in dimension %d, have [%g,%g]", d, bounds[d][0], bounds[d][1])
		}
		g.Total *= n
	}
	g.stride = make([]int, g.Dims)
	s := 1
	for d := g.Dims - 1; d >= 0; d-- {
		g.stride[d] = s
		s *= size[d]
	}
	g.K = make([][]float64, g.Dims)
	g.KInt = make([][]int, g.Dims)
	g.plans = make([][]*fourier.CmplxFFT, g.Dims)
	for d := 0; d < g.Dims; d++ {
		g.K[d], g.KInt[d] = waveNumbers(size[d], bounds[d][1]-bounds[d][0])
		g.plans[d] = make([]*fourier.CmplxFFT, g.NP)
		for np := 0; np < g.NP; np++ {
			g.plans[d][np] = fourier.NewCmplxFFT(size[d])
		}
	}
	g.buildDealiasMask()
	return g, nil
}

// waveNumbers follows the FFT coefficient layout: zero, positive, then
// negative wavenumbers. The physical wavenumber includes the 2*pi/L domain
// scaling so differentiation is multiplication by (i*k)^order.
func waveNumbers(n int, length float64) (k []float64, kInt []int) {
	k = make([]float64, n)
	kInt = make([]int, n)
	scale := 2 * math.Pi / length
	for i := 0; i < n; i++ {
		var m int
		if i < (n+1)/2 {
			m = i
		} else {
			m = i - n
		}
		kInt[i] = m
		k[i] = scale * float64(m)
	}
	return
}

// Wavenumbers returns the physical wavenumber vector for one dimension in
// the transform's layout.
func (g *Grid) Wavenumbers(dim int) []float64 {
	return g.K[dim]
}

// Coords returns the physical grid point coordinates for one dimension,
// excluding the periodic endpoint.
func (g *Grid) Coords(dim int) (x []float64) {
	var (
		n  = g.Size[dim]
		lo = g.Bounds[dim][0]
		h  = (g.Bounds[dim][1] - g.Bounds[dim][0]) / float64(n)
	)
	x = make([]float64, n)
	floats.Span(x, lo, lo+float64(n-1)*h)
	return
}

// Point returns the physical coordinates of a flattened grid index.
func (g *Grid) Point(idx int) (x []float64) {
	x = make([]float64, g.Dims)
	for d := 0; d < g.Dims; d++ {
		i := (idx / g.stride[d]) % g.Size[d]
		lo := g.Bounds[d][0]
		h := (g.Bounds[d][1] - lo) / float64(g.Size[d])
		x[d] = lo + float64(i)*h
	}
	return
}

// ModeOffset returns the index into dimension d's wavenumber table for a
// flattened mode index.
func (g *Grid) ModeOffset(idx, d int) int {
	return (idx / g.stride[d]) % g.Size[d]
}

// modeIndex returns the per-dimension integer wavenumbers of a flattened
// mode index.
func (g *Grid) modeIndex(idx int) (m []int) {
	m = make([]int, g.Dims)
	for d := 0; d < g.Dims; d++ {
		m[d] = g.KInt[d][g.ModeOffset(idx, d)]
	}
	return
}

// Signature identifies the grid for coefficient caching: size and domain
// together determine the wavenumber set.
func (g *Grid) Signature() string {
	return fmt.Sprintf("size=%v|bounds=%v", g.Size, g.Bounds)
}

// NewField allocates a zero field (points x components) on this grid.
func (g *Grid) NewField(components int) utils.CMatrix {
	return utils.NewCMatrix(g.Total, components)
}
