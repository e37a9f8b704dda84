package navigation

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/flowpath/core"
)

func fieldFor(t *testing.T, w *GridWorld, sources []Source) *FlowField {
	t.Helper()
	f, err := GenerateField(w.Width(), w.Height(), sources)
	require.NoError(t, err)
	return f
}

func assertValidPath(t *testing.T, w *GridWorld, res Result, start, goal core.Point) {
	t.Helper()
	require.Equal(t, StatusFound, res.Status)
	require.NotEmpty(t, res.Path)
	assert.Equal(t, start, res.Path[0])
	assert.Equal(t, goal, res.Path[len(res.Path)-1])
	require.Len(t, res.GCosts, len(res.Path))
	assert.Equal(t, 0.0, res.GCosts[0])

	for i := 1; i < len(res.Path); i++ {
		assert.Equal(t, 1, res.Path[i].Manhattan(res.Path[i-1]), "step %d is not cardinal", i)
		assert.GreaterOrEqual(t, res.GCosts[i], res.GCosts[i-1], "g decreases at %d", i)
	}
	for _, p := range res.Path[1 : len(res.Path)-1] {
		assert.False(t, w.IsBlocked(p), "path crosses blocked %v", p)
	}
	assert.InDelta(t, res.Cost, res.GCosts[len(res.GCosts)-1], 1e-12)
}

func TestFindPathOpenGrid(t *testing.T) {
	start, goal := core.Point{X: 0, Y: 0}, core.Point{X: 9, Y: 9}
	sources := markers(start, goal)
	w := newTestWorld(t, 10, 10, sources...)
	field := fieldFor(t, w, sources)

	res, err := w.FindPath(context.Background(), start, goal, field, DefaultSearchOptions())
	require.NoError(t, err)
	assertValidPath(t, w, res, start, goal)
	assert.Len(t, res.Path, 19)
	assert.InDelta(t, PathCost(field, res.Path), res.Cost, 1e-9)
	assert.NotEmpty(t, res.ID)
}

func TestFindPathRepellerRaisesCost(t *testing.T) {
	start, goal := core.Point{X: 0, Y: 0}, core.Point{X: 9, Y: 9}

	base := markers(start, goal)
	w := newTestWorld(t, 10, 10, base...)
	open, err := w.FindPath(context.Background(), start, goal, fieldFor(t, w, base), DefaultSearchOptions())
	require.NoError(t, err)

	obstructed := append(markers(start, goal), Source{Position: core.Point{X: 5, Y: 5}, Strength: 5, Polarity: Repel})
	require.NoError(t, w.SetSources(obstructed))
	res, err := w.FindPath(context.Background(), start, goal, fieldFor(t, w, obstructed), DefaultSearchOptions())
	require.NoError(t, err)

	assertValidPath(t, w, res, start, goal)
	assert.NotContains(t, res.Path, core.Point{X: 5, Y: 5})
	assert.Greater(t, res.Cost, open.Cost)
}

func TestFindPathBlockedGoal(t *testing.T) {
	start, target := core.Point{X: 0, Y: 0}, core.Point{X: 9, Y: 9}
	wall := core.Point{X: 4, Y: 4}
	sources := markers(start, target, wall)
	w := newTestWorld(t, 10, 10, sources...)

	var calls int
	var got Result
	s, err := w.StartSearch(start, wall, fieldFor(t, w, sources), DefaultSearchOptions(), func(r Result) {
		calls++
		got = r
	})
	require.NoError(t, err)

	assert.Equal(t, StatusNoPath, s.Status(), "blocked goal finishes immediately")
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, got.Err(), ErrNoPathFound)
	assert.Nil(t, got.Path)
	assert.Nil(t, w.Active())
}

func TestFindPathUnreachable(t *testing.T) {
	start, goal := core.Point{X: 0, Y: 0}, core.Point{X: 4, Y: 4}
	// Wall off the goal corner
	sources := markers(start, goal, core.Point{X: 3, Y: 4}, core.Point{X: 4, Y: 3})
	w := newTestWorld(t, 5, 5, sources...)

	res, err := w.FindPath(context.Background(), start, goal, fieldFor(t, w, sources), DefaultSearchOptions())
	assert.ErrorIs(t, err, ErrNoPathFound)
	assert.Equal(t, StatusNoPath, res.Status)
	// Everything but the two walls and the sealed goal is reachable
	assert.Equal(t, 5*5-2-1, res.Expansions, "every reachable cell is expanded once")
}

func TestFindPathIterationCap(t *testing.T) {
	start, goal := core.Point{X: 0, Y: 0}, core.Point{X: 9, Y: 9}
	sources := markers(start, goal)
	w := newTestWorld(t, 10, 10, sources...)

	opts := DefaultSearchOptions()
	opts.IterationCap = 5
	res, err := w.FindPath(context.Background(), start, goal, fieldFor(t, w, sources), opts)
	assert.ErrorIs(t, err, ErrNoPathFound)
	assert.Equal(t, 5, res.Expansions)
}

func TestFindPathStartIsGoal(t *testing.T) {
	p := core.Point{X: 2, Y: 2}
	sources := markers(core.Point{}, core.Point{X: 4, Y: 4})
	w := newTestWorld(t, 5, 5, sources...)

	res, err := w.FindPath(context.Background(), p, p, fieldFor(t, w, sources), DefaultSearchOptions())
	require.NoError(t, err)
	assert.Equal(t, []core.Point{p}, res.Path)
	assert.Equal(t, 0.0, res.Cost)
}

func TestFindPathInvalidRequest(t *testing.T) {
	sources := markers(core.Point{}, core.Point{X: 4, Y: 4})
	w := newTestWorld(t, 5, 5, sources...)
	field := fieldFor(t, w, sources)

	_, err := w.StartSearch(core.Point{X: -1}, core.Point{X: 4, Y: 4}, field, DefaultSearchOptions(), nil)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = w.StartSearch(core.Point{}, core.Point{X: 5, Y: 4}, field, DefaultSearchOptions(), nil)
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = w.StartSearch(core.Point{}, core.Point{X: 4, Y: 4}, nil, DefaultSearchOptions(), nil)
	assert.ErrorIs(t, err, ErrConfiguration)

	small, err := GenerateField(3, 3, sources)
	require.NoError(t, err)
	_, err = w.StartSearch(core.Point{}, core.Point{X: 2, Y: 2}, small, DefaultSearchOptions(), nil)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestSearchStepGranularity(t *testing.T) {
	start, goal := core.Point{X: 1, Y: 0}, core.Point{X: 10, Y: 11}
	sources := markers(start, goal,
		core.Point{X: 5, Y: 5}, core.Point{X: 5, Y: 6}, core.Point{X: 6, Y: 5},
		core.Point{X: 2, Y: 8}, core.Point{X: 9, Y: 3},
	)
	w := newTestWorld(t, 12, 12, sources...)
	field := fieldFor(t, w, sources)

	run := func(budget int) Result {
		s, err := w.StartSearch(start, goal, field, DefaultSearchOptions(), nil)
		require.NoError(t, err)
		for s.Step(budget) == StatusRunning {
		}
		return s.Result()
	}

	reference := run(1)
	require.Equal(t, StatusFound, reference.Status)
	for _, budget := range []int{2, 7, 10, 1000} {
		got := run(budget)
		if diff := cmp.Diff(reference.Path, got.Path); diff != "" {
			t.Errorf("budget %d path mismatch (-want +got):\n%s", budget, diff)
		}
		assert.Equal(t, reference.Expansions, got.Expansions)
		assert.Equal(t, reference.GCosts, got.GCosts)
	}
}

func TestSearchNewSearchCancelsPrevious(t *testing.T) {
	start, goal := core.Point{X: 0, Y: 0}, core.Point{X: 9, Y: 9}
	sources := markers(start, goal)
	w := newTestWorld(t, 10, 10, sources...)
	field := fieldFor(t, w, sources)

	var first []Result
	s1, err := w.StartSearch(start, goal, field, DefaultSearchOptions(), func(r Result) { first = append(first, r) })
	require.NoError(t, err)
	require.Equal(t, StatusRunning, s1.Step(3))
	assert.Same(t, s1, w.Active())

	s2, err := w.StartSearch(start, goal, field, DefaultSearchOptions(), nil)
	require.NoError(t, err)
	assert.Same(t, s2, w.Active())

	require.Len(t, first, 1)
	assert.Equal(t, StatusCancelled, first[0].Status)
	assert.ErrorIs(t, first[0].Err(), ErrSearchCancelled)
	assert.Equal(t, StatusCancelled, s1.Step(10), "cancelled search stays cancelled")

	res := s2.Run(context.Background())
	assertValidPath(t, w, res, start, goal)
	assert.Len(t, first, 1, "callback fires once")
}

func TestSearchCancelledByWorldChange(t *testing.T) {
	start, goal := core.Point{X: 0, Y: 0}, core.Point{X: 9, Y: 9}
	sources := markers(start, goal)
	w := newTestWorld(t, 10, 10, sources...)

	s, err := w.StartSearch(start, goal, fieldFor(t, w, sources), DefaultSearchOptions(), nil)
	require.NoError(t, err)
	s.Step(1)

	require.NoError(t, w.SetSources(append(markers(start, goal), Source{Position: core.Point{X: 3, Y: 3}, Strength: 1, Polarity: Repel})))
	assert.Equal(t, StatusCancelled, s.Status())

	s, err = w.StartSearch(start, goal, fieldFor(t, w, sources), DefaultSearchOptions(), nil)
	require.NoError(t, err)
	require.NoError(t, w.Configure(10, 10, 1, 0))
	assert.Equal(t, StatusCancelled, s.Status())
	assert.Nil(t, w.Active())
}

func TestSearchRunContextCancel(t *testing.T) {
	start, goal := core.Point{X: 0, Y: 0}, core.Point{X: 19, Y: 19}
	sources := markers(start, goal)
	w := newTestWorld(t, 20, 20, sources...)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := w.StartSearch(start, goal, fieldFor(t, w, sources), DefaultSearchOptions(), nil)
	require.NoError(t, err)
	res := s.Run(ctx)
	assert.Equal(t, StatusCancelled, res.Status)
	assert.Equal(t, DefaultSearchOptions().StepBudget, res.Expansions, "one batch runs before the context is checked")
}

func TestSearchExplored(t *testing.T) {
	start, goal := core.Point{X: 0, Y: 0}, core.Point{X: 3, Y: 0}
	sources := markers(start, goal)
	w := newTestWorld(t, 4, 4, sources...)

	s, err := w.StartSearch(start, goal, fieldFor(t, w, sources), DefaultSearchOptions(), nil)
	require.NoError(t, err)
	res := s.Run(context.Background())
	require.True(t, res.Found())

	explored := s.Explored()
	assert.Len(t, explored, res.Expansions)
	assert.Equal(t, start, explored[0])
	assert.Equal(t, goal, explored[len(explored)-1])
}

func TestStrictHeuristicFindsPath(t *testing.T) {
	start, goal := core.Point{X: 0, Y: 0}, core.Point{X: 9, Y: 9}
	sources := markers(start, goal, core.Point{X: 5, Y: 5})
	w := newTestWorld(t, 10, 10, sources...)
	field := fieldFor(t, w, sources)

	biased, err := w.FindPath(context.Background(), start, goal, field, DefaultSearchOptions())
	require.NoError(t, err)

	opts := DefaultSearchOptions()
	opts.Strict = true
	strict, err := w.FindPath(context.Background(), start, goal, field, opts)
	require.NoError(t, err)

	assertValidPath(t, w, strict, start, goal)
	assert.LessOrEqual(t, strict.Cost, biased.Cost+1e-9, "admissible search is never worse")
}

func TestOpenSetOrdering(t *testing.T) {
	nodes := make([]node, 5)
	var h openSet
	h.reset(nodes)

	fs := []float64{3, 1, 2, 1, 0.5}
	for i, f := range fs {
		nodes[i] = node{f: f, seq: uint64(i + 1)}
		h.push(int32(i))
	}

	// Decrease-key keeps the original insertion sequence
	nodes[2].f = 1
	h.decreased(2)

	var order []int32
	for h.len() > 0 {
		order = append(order, h.pop())
	}
	assert.Equal(t, []int32{4, 1, 2, 3, 0}, order)
	for i := range nodes {
		assert.Equal(t, int32(-1), nodes[i].heapIdx)
	}
}
