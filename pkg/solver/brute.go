package solver

import (
	"context"
	"fmt"
	"math"

	"github.com/chazu/chronospatial/pkg/chrono"
)

// cancelCheckInterval is how many candidates BruteForce tries between
// context checks.
const cancelCheckInterval = 4096

// BruteForce tries A = 0, 1, 2, ... and returns the first seed that makes m's
// program print itself. It makes no assumption about program shape and has
// no bound other than ctx; it exists to cross-check Solve on small programs.
func BruteForce(ctx context.Context, m *chrono.Machine) (uint64, error) {
	program := m.Program()
	for a := uint64(0); ; a++ {
		if a%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, fmt.Errorf("solver: brute force stopped at A=%d: %w", a, err)
			}
		}

		ok, err := reproduces(m.WithA(a), program)
		if err != nil {
			return 0, fmt.Errorf("solver: brute force, A=%d: %w", a, err)
		}
		if ok {
			log.Infof("brute force found A=%d", a)
			return a, nil
		}
		if a == math.MaxUint64 {
			return 0, fmt.Errorf("solver: brute force: %w", ErrNoSolution)
		}
	}
}

// reproduces consumes m's output lazily and stops at the first value that
// diverges from program.
func reproduces(m *chrono.Machine, program chrono.Program) (bool, error) {
	i := 0
	for v, err := range m.Outputs() {
		if err != nil {
			return false, err
		}
		if i >= len(program) || program[i] != v {
			return false, nil
		}
		i++
	}
	return i == len(program), nil
}
