package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/chazu/chronospatial/harness"
	"github.com/chazu/chronospatial/manifest"
)

// app holds state shared by every subcommand.
type app struct {
	stdout io.Writer
	stderr io.Writer

	verbose    int
	configPath string

	manifest *manifest.Manifest
	registry *harness.Registry
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdout:   stdout,
		stderr:   stderr,
		registry: harness.Default,
	}

	root := &cobra.Command{
		Use:   "aoc",
		Short: "Run puzzle solutions and inspect Chronospatial programs",
		Long: `aoc dispatches puzzle solutions by day and part, and includes tools for
the day 17 Chronospatial Computer: disassembly, tracing and the
self-reproduction solver.

Settings are read from aoc.toml (or aoc.yaml) in the current directory or
any parent.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().CountVarP(&a.verbose, "verbose", "v", "Increase log verbosity (repeatable)")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to aoc.toml or aoc.yaml")

	root.AddCommand(
		a.newRunCmd(),
		a.newVerifyCmd(),
		a.newSolveCmd(),
		a.newDisasmCmd(),
		a.newTraceCmd(),
	)
	return root
}

// setup loads the manifest and configures logging.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var err error
	switch {
	case a.configPath != "":
		a.manifest, err = manifest.LoadFile(a.configPath)
	default:
		a.manifest, err = manifest.FindAndLoad(".")
	}
	if err != nil {
		return err
	}
	if a.manifest == nil {
		a.manifest = manifest.Default()
		if a.manifest.Dir, err = os.Getwd(); err != nil {
			return err
		}
	}

	verbosity := a.manifest.Log.Verbosity
	if a.verbose > 0 {
		verbosity = a.verbose
	}
	commonlog.Configure(verbosity, a.manifest.LogFile())
	return nil
}

func (a *app) env(cmd *cobra.Command) *harness.Env {
	return &harness.Env{Context: cmd.Context(), Manifest: a.manifest}
}

// printAnswer writes a labelled answer to a terminal, or the bare answer
// when output is piped.
func (a *app) printAnswer(label, answer string) {
	if isTerminal(a.stdout) {
		fmt.Fprintf(a.stdout, "%s: %s\n", label, answer)
		return
	}
	fmt.Fprintln(a.stdout, answer)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
