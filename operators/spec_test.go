package operators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gospectral/spectral"
	"github.com/notargets/gospectral/utils"
)

func validSpec() *Spec {
	return &Spec{
		Name:       "test",
		Domain:     [][2]float64{{0, 2 * math.Pi}},
		TSpan:      [2]float64{0, 1},
		Components: 1,
		Linear: func(k []float64) []complex128 {
			return []complex128{complex(-k[0]*k[0], 0)}
		},
		Init: func(x []float64) []complex128 {
			return []complex128{complex(math.Sin(x[0]), 0)}
		},
	}
}

func TestSpecValidation(t *testing.T) {
	gridSize := []int{16}
	assert.NoError(t, validSpec().Validate(gridSize))
	var cfgErr *ConfigurationError
	// Degenerate domain
	{
		s := validSpec()
		s.Domain = [][2]float64{{1, 1}}
		err := s.Validate(gridSize)
		assert.ErrorAs(t, err, &cfgErr)
	}
	// Dimension mismatch between grid and domain
	{
		s := validSpec()
		assert.Error(t, s.Validate([]int{16, 16}))
	}
	// Grid too small
	{
		s := validSpec()
		assert.Error(t, s.Validate([]int{1}))
	}
	// Empty time span
	{
		s := validSpec()
		s.TSpan = [2]float64{1, 1}
		assert.Error(t, s.Validate(gridSize))
	}
	// Missing linear symbol
	{
		s := validSpec()
		s.Linear = nil
		assert.Error(t, s.Validate(gridSize))
	}
	// Component count mismatch from the linear symbol
	{
		s := validSpec()
		s.Components = 2
		assert.Error(t, s.Validate(gridSize))
	}
	// Nonlinear term without a pointwise function
	{
		s := validSpec()
		s.Nonlinear = &Nonlinearity{}
		assert.Error(t, s.Validate(gridSize))
	}
	// Derivative order dimensionality
	{
		s := validSpec()
		s.Nonlinear = &Nonlinearity{
			Eval:  func(u []complex128) []complex128 { return u },
			Deriv: []int{1, 1},
		}
		assert.Error(t, s.Validate(gridSize))
	}
	// Negative derivative order
	{
		s := validSpec()
		s.Nonlinear = &Nonlinearity{
			Eval:  func(u []complex128) []complex128 { return u },
			Deriv: []int{-1},
		}
		assert.Error(t, s.Validate(gridSize))
	}
	// Missing and ambiguous initial conditions
	{
		s := validSpec()
		s.Init = nil
		assert.Error(t, s.Validate(gridSize))
		s.InitData = utils.NewCMatrix(16, 1)
		assert.NoError(t, s.Validate(gridSize))
		s.Init = validSpec().Init
		assert.Error(t, s.Validate(gridSize))
	}
	// Sampled initial condition must match the grid
	{
		s := validSpec()
		s.Init = nil
		s.InitData = utils.NewCMatrix(8, 1)
		assert.Error(t, s.Validate(gridSize))
	}
}

func TestEigenvalueTable(t *testing.T) {
	s := validSpec()
	g, _ := spectral.NewGrid([]int{8}, s.Domain)
	lambda := s.Eigenvalues(g)
	nr, nc := lambda.Dims()
	assert.Equal(t, 8, nr)
	assert.Equal(t, 1, nc)
	for idx := 0; idx < g.Total; idx++ {
		k := g.K[0][idx]
		assert.InDelta(t, -k*k, real(lambda.At(idx, 0)), 1.e-14)
	}
	// Table is frozen
	assert.Panics(t, func() { lambda.Zero() })
}

func TestInitialField(t *testing.T) {
	s := validSpec()
	g, _ := spectral.NewGrid([]int{16}, s.Domain)
	// Closed form sampling
	phys := s.InitialField(g)
	for idx := 0; idx < g.Total; idx++ {
		x := g.Point(idx)
		assert.InDelta(t, math.Sin(x[0]), real(phys.At(idx, 0)), 1.e-14)
	}
	// Sampled data is copied, not aliased
	s.Init = nil
	s.InitData = utils.NewCMatrix(16, 1)
	s.InitData.Set(3, 0, 7)
	phys = s.InitialField(g)
	phys.Set(3, 0, 0)
	assert.Equal(t, complex128(7), s.InitData.At(3, 0))
}

func TestEffectiveCoeff(t *testing.T) {
	n := &Nonlinearity{}
	assert.Equal(t, complex128(1), n.EffectiveCoeff())
	n.Coeff = -0.5
	assert.Equal(t, complex128(-0.5), n.EffectiveCoeff())
}

func TestConfigurationError(t *testing.T) {
	err := Configf("bad value %d", 3)
	assert.Equal(t, "configuration error: bad value 3", err.Error())
}
