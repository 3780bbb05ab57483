package input

import (
	"testing"

	"github.com/magiconair/properties/assert"
)

func TestRunParameters(t *testing.T) {
	var (
		err error
	)
	fileInput := []byte(`
Title: Test Case
Preset: ks
Scheme: abnorsett4
Dt: 0.05
FinalTime: 30.
GridSize: [256]
OutputSize: [512]
PlotEvery: 10
ValueRange: [-3., 3.]
Plot: true
Verbose: true
`)
	var rp RunParameters
	if err = rp.Parse(fileInput); err != nil {
		panic(err)
	}
	assert.Equal(t, rp.Title, "Test Case")
	assert.Equal(t, rp.Preset, "ks")
	assert.Equal(t, rp.Scheme, "abnorsett4")
	assert.Equal(t, rp.Dt, 0.05)
	assert.Equal(t, rp.FinalTime, 30.)
	assert.Equal(t, rp.GridSize, []int{256})
	assert.Equal(t, rp.OutputSize, []int{512})
	assert.Equal(t, rp.PlotEvery, 10)
	assert.Equal(t, rp.ValueRange, [2]float64{-3, 3})
	assert.Equal(t, rp.Plot, true)
	assert.Equal(t, rp.Verbose, true)
	rp.Print()
	// Omitted fields keep their zero values
	var empty RunParameters
	if err = empty.Parse([]byte("Title: minimal\n")); err != nil {
		panic(err)
	}
	assert.Equal(t, empty.Dt, 0.)
	assert.Equal(t, len(empty.GridSize), 0)
}
