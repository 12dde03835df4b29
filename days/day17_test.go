package days

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/chronospatial/harness"
	"github.com/chazu/chronospatial/manifest"
	"github.com/chazu/chronospatial/pkg/chrono"
	"github.com/chazu/chronospatial/pkg/solver"
)

// TestDay17_Registered verifies both parts are registered with examples.
func TestDay17_Registered(t *testing.T) {
	assert.Contains(t, harness.Default.Days(), 17)
	assert.Equal(t, []int{1, 2}, harness.Default.Parts(17))
	assert.NotEmpty(t, harness.Default.Examples(17, 1))
	assert.NotEmpty(t, harness.Default.Examples(17, 2))
}

// TestDay17_Examples verifies the registered examples pass.
func TestDay17_Examples(t *testing.T) {
	require.NoError(t, harness.Default.Verify(nil, 17, 1))
	require.NoError(t, harness.Default.Verify(nil, 17, 2))
}

// TestDay17_Part1 verifies the output of the example program.
func TestDay17_Part1(t *testing.T) {
	got, err := harness.Default.Run(nil, 17, 1, Day17Example)
	require.NoError(t, err)
	assert.Equal(t, "4,6,3,5,6,3,5,2,1,0", got)

	// Part 1 runs any program, including ones that fail the loop shape.
	got, err = harness.Default.Run(nil, 17, 1, Day17QuineExample)
	require.NoError(t, err)
	assert.Equal(t, "5,7,3,0", got)
}

// TestDay17_Part2Brute verifies the brute force method is selected by config.
func TestDay17_Part2Brute(t *testing.T) {
	m := manifest.Default()
	m.Solver.BruteForce = true
	m.Solver.BruteTimeout = time.Minute
	env := &harness.Env{Context: context.Background(), Manifest: m}

	got, err := harness.Default.Run(env, 17, 2, Day17QuineExample)
	require.NoError(t, err)
	assert.Equal(t, "117440", got)
}

// TestDay17_MalformedInput verifies loader errors surface from both parts.
func TestDay17_MalformedInput(t *testing.T) {
	for _, part := range []int{1, 2} {
		_, err := harness.Default.Run(nil, 17, part, "Register A: x\n")
		assert.ErrorIs(t, err, chrono.ErrMalformedInput, "part %d", part)
	}
}

// TestSeed verifies method selection and option plumbing.
func TestSeed(t *testing.T) {
	ctx := context.Background()

	quine, err := chrono.Parse(Day17QuineExample)
	require.NoError(t, err)
	a, err := Seed(ctx, quine, manifest.Default().Solver)
	require.NoError(t, err)
	assert.Equal(t, uint64(117440), a)

	_, err = Seed(ctx, quine, manifest.SolverConfig{MaxChunk: 4})
	assert.ErrorIs(t, err, solver.ErrNoSolution)

	example, err := chrono.Parse(Day17Example)
	require.NoError(t, err)
	_, err = Seed(ctx, example, manifest.Default().Solver)
	assert.ErrorIs(t, err, chrono.ErrShapeMismatch)

	_, err = Seed(ctx, example, manifest.SolverConfig{MaxChunk: 8, SkipShapeCheck: true})
	assert.ErrorIs(t, err, solver.ErrNoSolution)

	_, err = Seed(ctx, example, manifest.SolverConfig{BruteForce: true, BruteTimeout: 20 * time.Millisecond})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
