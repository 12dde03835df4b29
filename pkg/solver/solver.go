// Package solver finds register A seeds that make a Chronospatial program
// print itself.
package solver

import (
	"errors"
	"fmt"
	"math"

	"github.com/tliron/commonlog"

	"github.com/chazu/chronospatial/pkg/chrono"
	"github.com/chazu/chronospatial/pkg/memo"
)

// DefaultMaxChunk is the exclusive upper bound on chunk values: one round
// resolves three bits of A.
const DefaultMaxChunk = 8

var (
	// ErrNoSolution indicates the chunk search was exhausted. For a program
	// that passes chrono.CheckShape this means no seed exists; otherwise the
	// shape assumption does not hold.
	ErrNoSolution = errors.New("no solution for this program shape")

	// ErrNotReproduced indicates a seed whose output is not the program.
	ErrNotReproduced = errors.New("output does not reproduce program")
)

var log = commonlog.GetLogger("chrono.solver")

// Options configures a Solver.
type Options struct {
	// MaxChunk bounds the chunk values tried per round, exclusive.
	// Zero means DefaultMaxChunk.
	MaxChunk uint64

	// SkipShapeCheck runs the chunk search without chrono.CheckShape.
	SkipShapeCheck bool

	// NoCache disables memoization of candidate runs.
	NoCache bool
}

// Solver searches for self-reproducing seeds. It memoizes candidate runs
// keyed on the machine snapshot, so repeated solves or verification of the
// same program reuse earlier work. A Solver is not safe for concurrent use.
type Solver struct {
	maxChunk   uint64
	checkShape bool
	cache      *memo.Cache[[]uint64]
}

// New creates a solver.
func New(opts Options) *Solver {
	s := &Solver{
		maxChunk:   opts.MaxChunk,
		checkShape: !opts.SkipShapeCheck,
	}
	if s.maxChunk == 0 || s.maxChunk > DefaultMaxChunk {
		s.maxChunk = DefaultMaxChunk
	}
	if !opts.NoCache {
		s.cache = memo.New[[]uint64]()
	}
	return s
}

// Solve returns the smallest A for which m's program, started with that A and
// m's B and C, outputs exactly its own program. m must be in its initial
// state; it is not modified.
func Solve(m *chrono.Machine) (uint64, error) {
	return New(Options{}).Solve(m)
}

// Solve runs the chunk search.
//
// Round k fixes the next 3-bit chunk of A below the chunks already accepted
// (the needle). A candidate needle+chunk is accepted when its output equals
// the last k+1 values of the program. The search tries chunks in increasing
// order and backtracks when a round runs out, so the first full-length match
// is the minimal seed.
//
// This relies on the loop shape checked by chrono.CheckShape and is not a
// general inverse of the machine.
func (s *Solver) Solve(m *chrono.Machine) (uint64, error) {
	program := m.Program()
	if len(program) == 0 {
		return 0, fmt.Errorf("solver: empty program: %w", ErrNoSolution)
	}
	if s.checkShape {
		if err := chrono.CheckShape(program); err != nil {
			return 0, fmt.Errorf("solver: %w", err)
		}
	}

	key, _ := program.Fingerprint()
	log.Debugf("solving program %s (%d values, chunk bound %d)", key.Short(), len(program), s.maxChunk)

	a, found, err := s.search(m, program, 0, 0)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("solver: %w", ErrNoSolution)
	}
	if err := s.Verify(m, a); err != nil {
		return 0, err
	}

	log.Infof("program %s reproduces itself with A=%d", key.Short(), a)
	return a, nil
}

// search tries every chunk for the given round and recurses into the next
// round on acceptance.
func (s *Solver) search(base *chrono.Machine, program chrono.Program, needle uint64, round int) (uint64, bool, error) {
	for chunk := uint64(0); chunk < s.maxChunk; chunk++ {
		candidate := needle + chunk
		out, err := s.run(base.WithA(candidate))
		if err != nil {
			return 0, false, fmt.Errorf("solver: round %d, A=%d: %w", round, candidate, err)
		}
		if !matchesTail(out, program, round+1) {
			continue
		}
		if len(out) == len(program) {
			return candidate, true, nil
		}
		if candidate > math.MaxUint64>>3 {
			return 0, false, fmt.Errorf("solver: round %d: A would overflow: %w", round, ErrNoSolution)
		}

		log.Debugf("round %d: accepted chunk %d (A=%d)", round, chunk, candidate)
		a, found, err := s.search(base, program, candidate<<3, round+1)
		if err != nil || found {
			return a, found, err
		}
		log.Debugf("round %d: backtracking from chunk %d", round, chunk)
	}
	return 0, false, nil
}

// Verify checks that A=a makes m's program print exactly itself.
func (s *Solver) Verify(m *chrono.Machine, a uint64) error {
	program := m.Program()
	out, err := s.run(m.WithA(a))
	if err != nil {
		return fmt.Errorf("solver: verifying A=%d: %w", a, err)
	}
	if !program.Equal(out) {
		return fmt.Errorf("solver: A=%d prints %s, want %s: %w",
			a, chrono.Join(out), program, ErrNotReproduced)
	}
	return nil
}

// CacheStats reports memoization counters.
func (s *Solver) CacheStats() memo.Stats {
	if s.cache == nil {
		return memo.Stats{}
	}
	return s.cache.Stats()
}

// run executes m to completion, memoized on its snapshot.
func (s *Solver) run(m *chrono.Machine) ([]uint64, error) {
	if s.cache == nil {
		return m.RunToCompletion()
	}
	key, err := m.Snapshot().Key()
	if err != nil {
		return nil, err
	}
	return s.cache.Do(key, m.RunToCompletion)
}

// matchesTail reports whether out is exactly the last n values of program.
func matchesTail(out []uint64, program chrono.Program, n int) bool {
	if len(out) != n || n > len(program) {
		return false
	}
	return program[len(program)-n:].Equal(out)
}
