package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/chazu/chronospatial/days"
	"github.com/chazu/chronospatial/pkg/chrono"
	"github.com/chazu/chronospatial/pkg/solver"
)

// loadMachine reads a Chronospatial program file.
func loadMachine(path string) (*chrono.Machine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	defer f.Close()

	m, err := chrono.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func (a *app) newSolveCmd() *cobra.Command {
	var (
		brute     bool
		timeout   time.Duration
		maxChunk  uint64
		skipShape bool
	)

	cmd := &cobra.Command{
		Use:   "solve <file>",
		Short: "Find the smallest A that makes a program print itself",
		Long: `Runs the chunk search, which assumes the program is a single loop that
shifts A right by 3 per output (see "aoc disasm"). --brute tries every A in
order instead and is only practical for short programs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMachine(args[0])
			if err != nil {
				return err
			}

			cfg := a.manifest.Solver
			if cmd.Flags().Changed("brute") {
				cfg.BruteForce = brute
			}
			if cmd.Flags().Changed("timeout") {
				cfg.BruteTimeout = timeout
			}
			if cmd.Flags().Changed("max-chunk") {
				cfg.MaxChunk = maxChunk
			}
			if cmd.Flags().Changed("skip-shape-check") {
				cfg.SkipShapeCheck = skipShape
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			seed, err := days.Seed(ctx, m, cfg)
			if err != nil {
				return err
			}
			a.printAnswer("A", strconv.FormatUint(seed, 10))
			return nil
		},
	}
	cmd.Flags().BoolVar(&brute, "brute", false, "Try every A in order instead of the chunk search")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Stop a brute force search after this long")
	cmd.Flags().Uint64Var(&maxChunk, "max-chunk", solver.DefaultMaxChunk, "Exclusive bound on chunk values per round")
	cmd.Flags().BoolVar(&skipShape, "skip-shape-check", false, "Search even if the program is not a shift-by-3 loop")
	return cmd
}

func (a *app) newDisasmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <file>",
		Short: "Print a listing of a Chronospatial program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMachine(args[0])
			if err != nil {
				return err
			}
			listing := m.Program().DisassembleWithName(filepath.Base(args[0]))
			fmt.Fprint(a.stdout, listing)
			if err := chrono.CheckShape(m.Program()); err != nil {
				fmt.Fprintf(a.stdout, "\n; %v\n", err)
			}
			return nil
		},
	}
}

func (a *app) newTraceCmd() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "trace <file>",
		Short: "Run a program, logging every instruction to stderr",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadMachine(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("a") {
				m = m.WithA(seed)
			}
			m.Trace = a.stderr

			out, err := m.RunToCompletion()
			if err != nil {
				return err
			}
			a.printAnswer("Output", chrono.Join(out))
			fmt.Fprintf(a.stderr, "halted at %d: A=%d B=%d C=%d\n", m.Counter(), m.A, m.B, m.C)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "a", 0, "Override register A")
	return cmd
}
