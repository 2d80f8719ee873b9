// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available chips",
		Long: `List the built-in primitives and the chips defined in the library file.

Examples:
  chipsim list
  chipsim list -f lib.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, _, err := loadLibrary(g.library)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, n := range lib.Names() {
				s, _ := lib.Spec(n)
				kind := "composite"
				if s.IsPrimitive() {
					kind = "primitive"
				}
				fmt.Fprintf(w, "%-12s %-9s in: %d, out: %d\n", n, kind, len(s.Inputs), len(s.Outputs))
			}
			return nil
		},
	}
}
