package shop

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanOutRunsAllBranches(t *testing.T) {
	var ran [3]bool

	results := FanOut(context.Background(),
		Branch{Name: "a", Run: func(ctx context.Context) error { ran[0] = true; return nil }},
		Branch{Name: "b", Run: func(ctx context.Context) error { ran[1] = true; return nil }},
		Branch{Name: "c", Run: func(ctx context.Context) error { ran[2] = true; return nil }},
	)

	require.Len(t, results, 3)
	for i, r := range ran {
		assert.True(t, r, "branch %d did not run", i)
	}
	assert.Equal(t, "a", results[0].Name)
	assert.Equal(t, "b", results[1].Name)
	assert.Equal(t, "c", results[2].Name)
}

func TestFanOutIsolatesBranchFailures(t *testing.T) {
	boom := errors.New("boom")
	var siblingRan bool

	results := FanOut(context.Background(),
		Branch{Name: "failing", Run: func(ctx context.Context) error { return boom }},
		Branch{Name: "healthy", Run: func(ctx context.Context) error { siblingRan = true; return nil }},
	)

	assert.True(t, siblingRan)
	assert.ErrorIs(t, results[0].Err, boom)
	assert.NoError(t, results[1].Err)
}

func TestFanOutNoBranches(t *testing.T) {
	assert.Empty(t, FanOut(context.Background()))
}
