package utils

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/mat"
)

// CMatrix is a chainable wrapper around a gonum CDense. Solver fields are
// stored one grid point (or transform mode) per row, one solution component
// per column.
type CMatrix struct {
	M        *mat.CDense
	readOnly bool
	name     string
}

func NewCMatrix(nr, nc int, dataO ...[]complex128) (R CMatrix) {
	var m *mat.CDense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewCMatrix nr,nc = %v,%v, len(data[0]) = %v\n", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewCDense(nr, nc, dataO[0])
	} else {
		m = mat.NewCDense(nr, nc, make([]complex128, nr*nc))
	}
	R = CMatrix{
		m,
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

func (m CMatrix) Dims() (r, c int)       { return m.M.Dims() }
func (m CMatrix) At(i, j int) complex128 { return m.M.At(i, j) }
func (m CMatrix) Data() []complex128     { return m.M.RawCMatrix().Data }
func (m CMatrix) IsEmpty() bool          { return m.M == nil }

func (m *CMatrix) SetReadOnly(name ...string) CMatrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m *CMatrix) SetWritable() CMatrix {
	m.readOnly = false
	return *m
}

func (m CMatrix) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func (m CMatrix) Copy() (R CMatrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		dataR  = make([]complex128, nr*nc)
	)
	copy(dataR, m.Data())
	R = NewCMatrix(nr, nc, dataR)
	return
}

func (m CMatrix) Set(i, j int, val complex128) CMatrix { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m CMatrix) Scale(a complex128) CMatrix { // Changes receiver
	m.checkWritable()
	cmplxs.Scale(a, m.Data())
	return m
}

func (m CMatrix) Add(A CMatrix) CMatrix { // Changes receiver
	m.checkWritable()
	var (
		data  = m.Data()
		dataA = A.Data()
	)
	if len(data) != len(dataA) {
		panic(fmt.Errorf("dimension mismatch in Add: %d vs %d", len(data), len(dataA)))
	}
	cmplxs.Add(data, dataA)
	return m
}

func (m CMatrix) Subtract(A CMatrix) CMatrix { // Changes receiver
	m.checkWritable()
	var (
		data  = m.Data()
		dataA = A.Data()
	)
	if len(data) != len(dataA) {
		panic(fmt.Errorf("dimension mismatch in Subtract: %d vs %d", len(data), len(dataA)))
	}
	cmplxs.Sub(data, dataA)
	return m
}

// ElMul multiplies elementwise, the workhorse for applying diagonal
// transform-space operators.
func (m CMatrix) ElMul(A CMatrix) CMatrix { // Changes receiver
	m.checkWritable()
	var (
		data  = m.Data()
		dataA = A.Data()
	)
	if len(data) != len(dataA) {
		panic(fmt.Errorf("dimension mismatch in ElMul: %d vs %d", len(data), len(dataA)))
	}
	cmplxs.Mul(data, dataA)
	return m
}

func (m CMatrix) Apply(f func(complex128) complex128) CMatrix { // Changes receiver
	m.checkWritable()
	var (
		data = m.Data()
	)
	for i, val := range data {
		data[i] = f(val)
	}
	return m
}

// AddScaled accumulates a*A into the receiver without allocating.
func (m CMatrix) AddScaled(A CMatrix, a complex128) CMatrix { // Changes receiver
	m.checkWritable()
	var (
		data  = m.Data()
		dataA = A.Data()
	)
	if len(data) != len(dataA) {
		panic(fmt.Errorf("dimension mismatch in AddScaled: %d vs %d", len(data), len(dataA)))
	}
	cmplxs.AddScaled(data, a, dataA)
	return m
}

func (m CMatrix) Col(j int) (C []complex128) {
	var (
		nr, nc = m.Dims()
		data   = m.Data()
	)
	C = make([]complex128, nr)
	for i := 0; i < nr; i++ {
		C[i] = data[i*nc+j]
	}
	return
}

func (m CMatrix) SetCol(j int, C []complex128) CMatrix { // Changes receiver
	m.checkWritable()
	var (
		nr, nc = m.Dims()
		data   = m.Data()
	)
	if len(C) != nr {
		panic(fmt.Errorf("dimension mismatch in SetCol: %d vs %d", len(C), nr))
	}
	for i := 0; i < nr; i++ {
		data[i*nc+j] = C[i]
	}
	return m
}

func (m CMatrix) MaxAbs() (max float64) {
	for _, val := range m.Data() {
		if a := cmplx.Abs(val); a > max {
			max = a
		}
	}
	return
}

// IsFinite reports whether every entry is finite, the cheap per-step
// divergence probe.
func (m CMatrix) IsFinite() bool {
	for _, val := range m.Data() {
		re, im := real(val), imag(val)
		if math.IsNaN(re) || math.IsInf(re, 0) || math.IsNaN(im) || math.IsInf(im, 0) {
			return false
		}
	}
	return true
}

func (m CMatrix) Zero() CMatrix { // Changes receiver
	m.checkWritable()
	data := m.Data()
	for i := range data {
		data[i] = 0
	}
	return m
}
