package input

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type RunParameters struct {
	Title      string     `yaml:"Title"`
	Preset     string     `yaml:"Preset"`     // preset name, when running a bundled problem
	Scheme     string     `yaml:"Scheme"`     // etdrk4, abnorsett4 or pecec433
	Dt         float64    `yaml:"Dt"`         // time step, 0 keeps the preset default
	FinalTime  float64    `yaml:"FinalTime"`  // overrides the preset final time when > 0
	GridSize   []int      `yaml:"GridSize"`   // compute grid, per dimension
	OutputSize []int      `yaml:"OutputSize"` // output grid, empty = compute grid
	PlotEvery  int        `yaml:"PlotEvery"`
	ValueRange [2]float64 `yaml:"ValueRange"`
	Plot       bool       `yaml:"Plot"`
	Verbose    bool       `yaml:"Verbose"`
}

func (rp *RunParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, rp)
}

func (rp *RunParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", rp.Title)
	fmt.Printf("[%s]\t\t= Preset\n", rp.Preset)
	fmt.Printf("[%s]\t\t= Scheme\n", rp.Scheme)
	fmt.Printf("%8.5g\t\t= Dt\n", rp.Dt)
	fmt.Printf("%8.5f\t\t= FinalTime\n", rp.FinalTime)
	fmt.Printf("%v\t\t= GridSize\n", rp.GridSize)
	if len(rp.OutputSize) != 0 {
		fmt.Printf("%v\t\t= OutputSize\n", rp.OutputSize)
	}
	fmt.Printf("[%d]\t\t\t= PlotEvery\n", rp.PlotEvery)
}
