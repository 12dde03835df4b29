// Package harness dispatches puzzle solutions by day and part.
//
// Days register their parts from init functions; the CLI looks them up by
// number and runs them against an input text.
package harness

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/chazu/chronospatial/manifest"
)

// ErrNotRegistered indicates a day or part with no solution.
var ErrNotRegistered = errors.New("not registered")

// ErrExampleFailed indicates a registered example whose answer differs.
var ErrExampleFailed = errors.New("example failed")

var log = commonlog.GetLogger("chrono.harness")

// Env carries per-run settings into a solution.
type Env struct {
	Context  context.Context
	Manifest *manifest.Manifest
}

// DefaultEnv returns an Env with a background context and default manifest.
func DefaultEnv() *Env {
	return &Env{Context: context.Background(), Manifest: manifest.Default()}
}

// Config returns the run's manifest, or the default one when unset.
func (e *Env) Config() *manifest.Manifest {
	if e == nil || e.Manifest == nil {
		return manifest.Default()
	}
	return e.Manifest
}

// Ctx returns the run's context, or a background context when unset.
func (e *Env) Ctx() context.Context {
	if e == nil || e.Context == nil {
		return context.Background()
	}
	return e.Context
}

// Solution computes one part's answer from puzzle input.
type Solution func(env *Env, input string) (string, error)

// Example is a known input and its expected answer.
type Example struct {
	Name  string
	Input string
	Want  string
}

// Key identifies a registered part.
type Key struct {
	Day  int
	Part int
}

func (k Key) String() string {
	return fmt.Sprintf("day %d part %d", k.Day, k.Part)
}

type entry struct {
	solve    Solution
	examples []Example
}

// Registry maps (day, part) to solutions.
type Registry struct {
	entries map[Key]*entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Key]*entry)}
}

// Default is the registry days register into.
var Default = NewRegistry()

// Register adds a solution. Registering the same day and part twice panics,
// since it can only happen through a programming error at init time.
func (r *Registry) Register(day, part int, solve Solution, examples ...Example) {
	key := Key{Day: day, Part: part}
	if _, dup := r.entries[key]; dup {
		panic(fmt.Sprintf("harness: %s registered twice", key))
	}
	r.entries[key] = &entry{solve: solve, examples: examples}
}

// Register adds a solution to the Default registry.
func Register(day, part int, solve Solution, examples ...Example) {
	Default.Register(day, part, solve, examples...)
}

// Days returns registered day numbers in ascending order.
func (r *Registry) Days() []int {
	var days []int
	for key := range r.entries {
		if !slices.Contains(days, key.Day) {
			days = append(days, key.Day)
		}
	}
	slices.Sort(days)
	return days
}

// Parts returns the registered parts of a day in ascending order.
func (r *Registry) Parts(day int) []int {
	var parts []int
	for key := range r.entries {
		if key.Day == day {
			parts = append(parts, key.Part)
		}
	}
	slices.Sort(parts)
	return parts
}

// Run solves one part.
func (r *Registry) Run(env *Env, day, part int, input string) (string, error) {
	key := Key{Day: day, Part: part}
	e, ok := r.entries[key]
	if !ok {
		return "", fmt.Errorf("harness: %s: %w", key, ErrNotRegistered)
	}
	if env == nil {
		env = DefaultEnv()
	}

	log.Debugf("running %s (%d bytes of input)", key, len(input))
	answer, err := e.solve(env, input)
	if err != nil {
		return "", fmt.Errorf("harness: %s: %w", key, err)
	}
	return answer, nil
}

// Verify runs every example registered for a part.
func (r *Registry) Verify(env *Env, day, part int) error {
	key := Key{Day: day, Part: part}
	e, ok := r.entries[key]
	if !ok {
		return fmt.Errorf("harness: %s: %w", key, ErrNotRegistered)
	}

	var failures []string
	for i, ex := range e.examples {
		name := ex.Name
		if name == "" {
			name = fmt.Sprintf("example %d", i+1)
		}
		got, err := r.Run(env, day, part, ex.Input)
		switch {
		case err != nil:
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
		case got != ex.Want:
			failures = append(failures, fmt.Sprintf("%s: got %q, want %q", name, got, ex.Want))
		default:
			log.Debugf("%s %s ok", key, name)
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("harness: %s: %w: %s", key, ErrExampleFailed, strings.Join(failures, "; "))
	}
	return nil
}

// Examples returns the examples registered for a part.
func (r *Registry) Examples(day, part int) []Example {
	if e, ok := r.entries[Key{Day: day, Part: part}]; ok {
		return slices.Clone(e.examples)
	}
	return nil
}
