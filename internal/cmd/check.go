// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/db47h/chipsim"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newCheckCmd(g *globalFlags) *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a circuit library",
		Long: `Load a circuit library, instantiate its chips and print the evaluation
schedule of each one: parts in dependency order, then parts caught in
feedback loops.

Examples:
  chipsim check -f lib.yaml
  chipsim check -f lib.yaml -c ALU`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.library == "" {
				return errors.New("no library file")
			}
			lib, f, err := loadLibrary(g.library)
			if err != nil {
				return err
			}
			names := []string{root}
			if root == "" {
				names = names[:0]
				for _, c := range f.Chips {
					names = append(names, c.Name)
				}
			}
			for _, n := range names {
				c, err := lib.New(n, "")
				if err != nil {
					return err
				}
				printSchedule(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&root, "chip", "c", "", "only check this chip")
	return cmd
}

func chipNames(cs []*chipsim.Chip) string {
	if len(cs) == 0 {
		return "-"
	}
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func printSchedule(w io.Writer, c *chipsim.Chip) {
	if c.IsPrimitive() {
		fmt.Fprintf(w, "%s: primitive\n", c.Kind)
		return
	}
	s := chipsim.ScheduleOf(c)
	fmt.Fprintf(w, "%s: order: %s", c.Kind, chipNames(s.Order))
	if len(s.Cyclic) > 0 {
		fmt.Fprintf(w, "; cycles: %s", chipNames(s.Cyclic))
	}
	fmt.Fprintln(w)
}
