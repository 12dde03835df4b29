// Package days registers each day's solutions with the harness.
package days

import (
	"context"
	"strconv"

	"github.com/chazu/chronospatial/harness"
	"github.com/chazu/chronospatial/manifest"
	"github.com/chazu/chronospatial/pkg/chrono"
	"github.com/chazu/chronospatial/pkg/solver"
)

// Day17Example is the part 1 example from the puzzle text.
const Day17Example = `Register A: 729
Register B: 0
Register C: 0

Program: 0,1,5,4,3,0
`

// Day17QuineExample is the part 2 example from the puzzle text.
const Day17QuineExample = `Register A: 2024
Register B: 0
Register C: 0

Program: 0,3,5,4,3,0
`

func init() {
	harness.Register(17, 1, day17Part1,
		harness.Example{Name: "729", Input: Day17Example, Want: "4,6,3,5,6,3,5,2,1,0"})
	harness.Register(17, 2, day17Part2,
		harness.Example{Name: "quine", Input: Day17QuineExample, Want: "117440"})
}

// day17Part1 runs the loaded program and joins its output.
func day17Part1(_ *harness.Env, input string) (string, error) {
	m, err := chrono.Parse(input)
	if err != nil {
		return "", err
	}
	out, err := m.RunToCompletion()
	if err != nil {
		return "", err
	}
	return chrono.Join(out), nil
}

// day17Part2 finds the smallest A that makes the program print itself.
func day17Part2(env *harness.Env, input string) (string, error) {
	m, err := chrono.Parse(input)
	if err != nil {
		return "", err
	}

	a, err := Seed(env.Ctx(), m, env.Config().Solver)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(a, 10), nil
}

// Seed finds the self-reproducing A for m using the configured method: the
// chunk search by default, or brute force bounded by cfg.BruteTimeout.
func Seed(ctx context.Context, m *chrono.Machine, cfg manifest.SolverConfig) (uint64, error) {
	if cfg.BruteForce {
		if cfg.BruteTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.BruteTimeout)
			defer cancel()
		}
		return solver.BruteForce(ctx, m)
	}
	return solver.New(solver.Options{
		MaxChunk:       cfg.MaxChunk,
		SkipShapeCheck: cfg.SkipShapeCheck,
	}).Solve(m)
}
