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

	"github.com/spf13/cobra"

	"github.com/notargets/gospectral/integrators"
	"github.com/notargets/gospectral/presets"
)

// ListCmd represents the list command
var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the bundled model problems and integration schemes",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("presets:")
		for _, name := range presets.Names() {
			prob, _ := presets.Get(name)
			fmt.Printf("  %-16s %dD, grid %v, dt = %g, t in [%g, %g]\n",
				name, len(prob.Spec.Domain), prob.GridSize, prob.Dt,
				prob.Spec.TSpan[0], prob.Spec.TSpan[1])
		}
		fmt.Println("schemes:")
		for _, name := range integrators.SchemeNames() {
			st, _ := integrators.NewSchemeType(name)
			fmt.Printf("  %-16s order %d, %d nonlinear evals/step\n",
				name, st.Order(), st.Evaluations())
		}
	},
}

func init() {
	rootCmd.AddCommand(ListCmd)
}
