/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/gospectral/graphics"
	"github.com/notargets/gospectral/input"
	"github.com/notargets/gospectral/presets"
	"github.com/notargets/gospectral/solver"
)

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a model problem to its final time",
	Long: `
Runs one of the bundled model problems, optionally overriding the grid,
time step and integration scheme,

gospectral run -p ks `,
	Run: func(cmd *cobra.Command, args []string) {
		rm := &RunModel{}
		rm.Preset, _ = cmd.Flags().GetString("preset")
		rm.InputFile, _ = cmd.Flags().GetString("input")
		rm.Scheme, _ = cmd.Flags().GetString("scheme")
		rm.Dt, _ = cmd.Flags().GetFloat64("dt")
		rm.FinalTime, _ = cmd.Flags().GetFloat64("finalTime")
		rm.GridSize, _ = cmd.Flags().GetIntSlice("gridSize")
		rm.OutputSize, _ = cmd.Flags().GetIntSlice("outputSize")
		rm.PlotEvery, _ = cmd.Flags().GetInt("plotEvery")
		rm.Plot, _ = cmd.Flags().GetBool("plot")
		rm.PlotDir, _ = cmd.Flags().GetString("plotDir")
		rm.Verbose, _ = cmd.Flags().GetBool("verbose")
		rm.Profile, _ = cmd.Flags().GetBool("profile")
		RunSolver(rm)
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("preset", "p", "heat", "model problem to run, see the list command")
	RunCmd.Flags().StringP("input", "i", "", "YAML run parameter file, overrides preset defaults")
	RunCmd.Flags().StringP("scheme", "s", "", "integration scheme: etdrk4, abnorsett4, pecec433")
	RunCmd.Flags().Float64("dt", 0, "time step, 0 keeps the preset default")
	RunCmd.Flags().Float64("finalTime", 0, "FinalTime - the target end time for the sim, 0 keeps the preset default")
	RunCmd.Flags().IntSliceP("gridSize", "n", nil, "compute grid size per dimension, e.g. 128,128")
	RunCmd.Flags().IntSlice("outputSize", nil, "output grid size per dimension, defaults to the compute grid")
	RunCmd.Flags().Int("plotEvery", 0, "steps between output samples, 0 keeps the preset default")
	RunCmd.Flags().BoolP("plot", "g", false, "write a PNG snapshot at each output sample")
	RunCmd.Flags().String("plotDir", "plots", "directory for PNG output")
	RunCmd.Flags().BoolP("verbose", "v", false, "print progress at each output sample")
	RunCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
}

// RunModel collects the command line and input file configuration for one
// solver run.
type RunModel struct {
	Preset, InputFile, Scheme string
	Dt, FinalTime             float64
	GridSize, OutputSize      []int
	PlotEvery                 int
	Plot, Verbose, Profile    bool
	PlotDir                   string
}

func RunSolver(rm *RunModel) {
	if rm.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	var rp *input.RunParameters
	if rm.InputFile != "" {
		var err error
		if rp, err = loadInputFile(rm.InputFile); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// The input file names its own preset; the flag is a fallback
		if rp.Preset != "" {
			rm.Preset = rp.Preset
		}
	}
	prob, err := presets.Get(rm.Preset)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if rp != nil {
		applyParameters(prob, rp)
	}
	applyFlags(prob, rm)
	if prob.Prefs.Plot && prob.Prefs.Sink == nil {
		prob.Prefs.Sink = graphics.NewPNGSink(rm.PlotDir, prob.Spec.Name, 0)
	}
	res, err := solver.Solve(prob.Spec, prob.GridSize, prob.Dt, prob.Prefs)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Printf("%s: %d steps, %d samples, finished at t = %g\n",
		prob.Spec.Name, res.Steps, len(res.Times), res.Final.Time)
}

func loadInputFile(fname string) (*input.RunParameters, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	var rp input.RunParameters
	if err = rp.Parse(data); err != nil {
		return nil, err
	}
	rp.Print()
	return &rp, nil
}

func applyParameters(prob *presets.Problem, rp *input.RunParameters) {
	if rp.Scheme != "" {
		prob.Prefs.Scheme = rp.Scheme
	}
	if rp.Dt > 0 {
		prob.Dt = rp.Dt
	}
	if rp.FinalTime > 0 {
		prob.Spec.TSpan[1] = rp.FinalTime
	}
	if len(rp.GridSize) != 0 {
		prob.GridSize = rp.GridSize
	}
	if len(rp.OutputSize) != 0 {
		prob.Prefs.OutputSize = rp.OutputSize
	}
	if rp.PlotEvery > 0 {
		prob.Prefs.PlotEvery = rp.PlotEvery
	}
	prob.Prefs.ValueRange = rp.ValueRange
	prob.Prefs.Plot = prob.Prefs.Plot || rp.Plot
	prob.Prefs.Verbose = prob.Prefs.Verbose || rp.Verbose
}

func applyFlags(prob *presets.Problem, rm *RunModel) {
	if rm.Scheme != "" {
		prob.Prefs.Scheme = rm.Scheme
	}
	if rm.Dt > 0 {
		prob.Dt = rm.Dt
	}
	if rm.FinalTime > 0 {
		prob.Spec.TSpan[1] = rm.FinalTime
	}
	if len(rm.GridSize) != 0 {
		prob.GridSize = rm.GridSize
	}
	if len(rm.OutputSize) != 0 {
		prob.Prefs.OutputSize = rm.OutputSize
	}
	if rm.PlotEvery > 0 {
		prob.Prefs.PlotEvery = rm.PlotEvery
	}
	prob.Prefs.Plot = prob.Prefs.Plot || rm.Plot
	prob.Prefs.Verbose = prob.Prefs.Verbose || rm.Verbose
}
