package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/flowpath/motion"
	"github.com/lixenwraith/flowpath/navigation"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 10000, cfg.Search.IterationCap)
	assert.Equal(t, 10, cfg.Search.StepBudget)
	assert.Equal(t, 50*time.Millisecond, cfg.Sandbox.Tick)
	assert.Equal(t, motion.South, cfg.Smoothing.Heading())

	opts := cfg.Search.SearchOptions()
	assert.Equal(t, navigation.DefaultSearchOptions(), opts)
	assert.Len(t, cfg.PlannerOptions(), 2)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowpath.yaml")
	doc := `
search:
  heuristic: euclidean
  strict: true
  iteration_cap: 500
smoothing:
  initial_heading: NE
sandbox:
  tick: 20ms
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Search.IterationCap)
	assert.Equal(t, 10, cfg.Search.StepBudget, "unset keys keep defaults")
	assert.Equal(t, navigation.HeuristicEuclidean, cfg.Search.SearchOptions().Heuristic)
	assert.True(t, cfg.Search.SearchOptions().Strict)
	assert.Equal(t, motion.NorthEast, cfg.Smoothing.Heading())
	assert.Equal(t, 20*time.Millisecond, cfg.Sandbox.Tick)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FLOWPATH_SEARCH_STEP_BUDGET", "3")
	t.Setenv("FLOWPATH_LOGGER_LEVEL", "debug")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Search.StepBudget)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"heuristic": "search:\n  heuristic: chebyshev\n",
		"heading":   "smoothing:\n  initial_heading: up\n",
		"cap":       "search:\n  iteration_cap: 0\n",
		"tick":      "sandbox:\n  tick: 0s\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
			_, err := Load(viper.New(), path)
			assert.Error(t, err)
		})
	}

	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit file must exist")
}
