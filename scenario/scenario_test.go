package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/flowpath/core"
	"github.com/lixenwraith/flowpath/maze"
	"github.com/lixenwraith/flowpath/navigation"
)

const detour = `
name: detour
width: 10
height: 10
start: {x: 0, y: 0}
target: {x: 9, y: 9}
sources:
  - {x: 5, y: 5, strength: 5}
  - {x: 2, y: 7, strength: 1.5, polarity: attract}
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(detour))
	require.NoError(t, err)
	assert.Equal(t, "detour", s.Name)

	sources, err := s.InfluenceSources()
	require.NoError(t, err)
	require.Len(t, sources, 4)
	assert.Equal(t, navigation.RoleStart, sources[0].Role)
	assert.Equal(t, 1.0, sources[0].Strength)
	assert.Equal(t, 2.0, sources[1].Strength)
	assert.Equal(t, navigation.Repel, sources[3].Polarity, "custom attract stored as repel")

	size, padding := s.Spacing()
	assert.Equal(t, 1.0, size)
	assert.Equal(t, 0.1, padding)
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"yaml":     "width: [",
		"polarity": "width: 3\nheight: 3\nsources:\n  - {x: 1, y: 1, strength: 1, polarity: sideways}\n",
		"strength": "width: 3\nheight: 3\nsources:\n  - {x: 1, y: 1, strength: 0}\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	s, err := Parse([]byte(detour))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "detour.yaml")
	require.NoError(t, s.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyAndPlan(t *testing.T) {
	s, err := Parse([]byte(detour))
	require.NoError(t, err)

	p, err := s.NewPlanner()
	require.NoError(t, err)
	assert.True(t, p.IsBlocked(core.Point{X: 5, Y: 5}))
	assert.True(t, p.IsBlocked(core.Point{X: 2, Y: 7}))

	res, segs, err := p.Plan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.Point{X: 9, Y: 9}, res.Path[len(res.Path)-1])
	assert.NotEmpty(t, segs)

	snap := FromPlanner("snap", p)
	assert.Equal(t, s.Width, snap.Width)
	assert.Len(t, snap.Sources, 2)
	assert.Equal(t, "repel", snap.Sources[1].Polarity)
}

func TestApplyRejectsMarkerOutsideGrid(t *testing.T) {
	s, err := Parse([]byte(detour))
	require.NoError(t, err)
	p, err := s.NewPlanner()
	require.NoError(t, err)
	before := p.Sources()

	shrunk := *s
	shrunk.Width, shrunk.Height = 4, 4
	assert.Error(t, shrunk.Apply(p))

	// The planner keeps its previous grid and sources
	assert.Equal(t, 10, p.World().Width())
	assert.Equal(t, 10, p.World().Height())
	assert.Equal(t, before, p.Sources())
	assert.True(t, p.IsBlocked(core.Point{X: 5, Y: 5}))
}

func TestFromLayout(t *testing.T) {
	l, err := maze.Generate(maze.Config{Width: 15, Height: 11, Braid: 0.5, Seed: 5})
	require.NoError(t, err)

	s := FromLayout("maze", l, 0.5)
	require.Len(t, s.Sources, len(l.Walls))

	p, err := s.NewPlanner()
	require.NoError(t, err)
	for _, w := range l.Walls {
		require.True(t, p.IsBlocked(w))
	}

	res, _, err := p.Plan(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(res.Path), len(l.Reference), "BFS reference is the shortest cell count")
	for _, c := range res.Path {
		assert.False(t, l.IsWall(c))
	}
}
