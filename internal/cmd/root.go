// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cmd implements the chipsim command line.
//
package cmd

import (
	"fmt"
	"os"

	"github.com/db47h/chipsim"
	"github.com/db47h/chipsim/chiplib"
	"github.com/db47h/chipsim/internal/chipfile"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Execute runs the chipsim command and returns the process exit code.
//
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "chipsim:", err)
		return 1
	}
	return 0
}

type globalFlags struct {
	logLevel string
	library  string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "chipsim",
		Short: "Digital logic chip simulator",
		Long: `chipsim simulates hierarchical digital circuits.

Composite chips are read from a YAML circuit library file and may use the
built-in primitives (NAND, NOT, DFF, CLOCK, ...). Run "chipsim list" to see
them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addGlobalFlags(root.PersistentFlags(), g)
	root.AddCommand(newRunCmd(g), newCheckCmd(g), newListCmd(g))
	return root
}

func addGlobalFlags(fs *pflag.FlagSet, g *globalFlags) {
	fs.StringVar(&g.logLevel, "log-level", logrus.InfoLevel.String(), "log level (trace, debug, info, warn, error)")
	fs.StringVarP(&g.library, "file", "f", "", "circuit library file (YAML)")
}

func newLogger(cmd *cobra.Command, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.Out = cmd.ErrOrStderr()
	logger.SetLevel(lvl)
	logger.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	return logger, nil
}

// loadLibrary returns the built-in primitives plus the chips of the library
// file at path, if any.
//
func loadLibrary(path string) (*chipsim.Library, *chipfile.File, error) {
	lib := chiplib.NewLibrary()
	if path == "" {
		return lib, &chipfile.File{}, nil
	}
	f, err := chipfile.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err = f.Register(lib); err != nil {
		return nil, nil, errors.Wrap(err, path)
	}
	return lib, f, nil
}
