package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chazu/chronospatial/harness"
)

func (a *app) newRunCmd() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "run <day> [part]",
		Short: "Solve a day's parts against its puzzle input",
		Long: `Reads the day's input (inputs/dayNN.txt by default, relative to the
manifest) and prints the answer of the given part, or of every registered
part when none is given.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, parts, err := a.parseDayParts(args)
			if err != nil {
				return err
			}

			if inputPath == "" {
				inputPath = a.manifest.InputPath(day)
			}
			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("cannot read input: %w", err)
			}

			env := a.env(cmd)
			for _, part := range parts {
				answer, err := a.registry.Run(env, day, part, string(data))
				if err != nil {
					return err
				}
				a.printAnswer(fmt.Sprintf("Day %d, part %d", day, part), answer)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input file (default from manifest)")
	return cmd
}

func (a *app) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [day] [part]",
		Short: "Check solutions against their registered examples",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			days := a.registry.Days()
			var parts []int
			if len(args) > 0 {
				day, p, err := a.parseDayParts(args)
				if err != nil {
					return err
				}
				days, parts = []int{day}, p
			}

			env := a.env(cmd)
			failed := 0
			for _, day := range days {
				dayParts := parts
				if dayParts == nil {
					dayParts = a.registry.Parts(day)
				}
				for _, part := range dayParts {
					status := "ok"
					if err := a.registry.Verify(env, day, part); err != nil {
						status = err.Error()
						failed++
					}
					fmt.Fprintf(a.stdout, "day %2d part %d: %s\n", day, part, status)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d part(s) failed verification", failed)
			}
			return nil
		},
	}
}

// parseDayParts reads "<day> [part]" arguments.
func (a *app) parseDayParts(args []string) (int, []int, error) {
	day, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, nil, fmt.Errorf("invalid day %q", args[0])
	}
	if len(args) < 2 {
		parts := a.registry.Parts(day)
		if len(parts) == 0 {
			return 0, nil, fmt.Errorf("day %d: %w", day, harness.ErrNotRegistered)
		}
		return day, parts, nil
	}
	part, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, nil, fmt.Errorf("invalid part %q", args[1])
	}
	return day, []int{part}, nil
}
