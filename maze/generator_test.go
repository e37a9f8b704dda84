package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePerfectMaze(t *testing.T) {
	l, err := Generate(Config{Width: 11, Height: 11, Seed: 42})
	require.NoError(t, err)

	// 25 rooms joined by a spanning tree of 24 passages
	assert.Len(t, l.Walls, 121-49)
	assert.False(t, l.IsWall(l.Start))
	assert.False(t, l.IsWall(l.Target))
	assert.Equal(t, 1, l.Start.X)
	assert.Equal(t, 9, l.Target.X)
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := Config{Width: 21, Height: 15, Braid: 0.5, Density: 0.6, Seed: 7}
	a, err := Generate(cfg)
	require.NoError(t, err)
	b, err := Generate(cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateReferencePath(t *testing.T) {
	for _, cfg := range []Config{
		{Width: 12, Height: 9, Seed: 1},
		{Width: 25, Height: 25, Braid: 1, Seed: 2},
		{Width: 16, Height: 30, Braid: 0.3, Density: 0.4, Seed: 3},
	} {
		l, err := Generate(cfg)
		require.NoError(t, err)
		require.NotEmpty(t, l.Reference)
		assert.Equal(t, l.Start, l.Reference[0])
		assert.Equal(t, l.Target, l.Reference[len(l.Reference)-1])
		for i, p := range l.Reference {
			assert.False(t, l.IsWall(p), "reference crosses wall at %v", p)
			if i > 0 {
				assert.Equal(t, 1, p.Manhattan(l.Reference[i-1]))
			}
		}
	}
}

func TestGenerateBraidAndDensityRemoveWalls(t *testing.T) {
	perfect, err := Generate(Config{Width: 31, Height: 31, Seed: 9})
	require.NoError(t, err)
	braided, err := Generate(Config{Width: 31, Height: 31, Braid: 1, Seed: 9})
	require.NoError(t, err)
	sparse, err := Generate(Config{Width: 31, Height: 31, Density: 0.3, Seed: 9})
	require.NoError(t, err)

	assert.Less(t, len(braided.Walls), len(perfect.Walls))
	assert.Less(t, len(sparse.Walls), len(perfect.Walls))
}

func TestGenerateTooSmall(t *testing.T) {
	_, err := Generate(Config{Width: 2, Height: 10})
	assert.ErrorIs(t, err, ErrTooSmall)
}
