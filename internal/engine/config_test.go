package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Tuning(t *testing.T) {
	cfg, err := LoadConfig("../../configs/tuning.yaml")
	require.NoError(t, err)

	assert.Equal(t, 600*time.Millisecond, cfg.Rules.MinReactionWindow)
	assert.Equal(t, 0.9, cfg.Rules.ReactionScalePerLevel)
	assert.Equal(t, 100, cfg.Rules.StartingHealth)
	assert.Equal(t, 0.1, cfg.Pile.CreatureProbability)
	assert.Equal(t, 100, cfg.QueueSize)
	assert.Equal(t, 256, cfg.MaxSessions)

	stab := cfg.StabilityConfig()
	assert.Equal(t, 80.0, stab.CellHeight)
	assert.Equal(t, 0.75, stab.OverlapFraction)
	assert.Equal(t, 0.5, stab.AdjacencyFraction)
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	yml := "rules:\n  min_reaction_window: 1500ms\npile:\n  creature_probability: 0.3\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	def := NewConfig()
	assert.Equal(t, 1500*time.Millisecond, cfg.Rules.MinReactionWindow)
	assert.Equal(t, 0.3, cfg.Pile.CreatureProbability)
	// Все, чего нет в файле, остается по умолчанию
	assert.Equal(t, def.Rules.StartingHealth, cfg.Rules.StartingHealth)
	assert.Equal(t, def.Pile.CellWidth, cfg.Pile.CellWidth)
	assert.Equal(t, def.Stability, cfg.Stability)
	assert.Equal(t, def.QueueSize, cfg.QueueSize)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("broken yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("rules: [unterminated"), 0o644))
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, path)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("stability:\n  overlap_fraction: 2\n"), 0o644))
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "overlap fraction")
	})
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, NewConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   []string
	}{
		{
			name:   "zero cell",
			mutate: func(c *Config) { c.Pile.CellWidth = 0 },
			want:   []string{"cell dimensions"},
		},
		{
			name:   "margin as large as cell",
			mutate: func(c *Config) { c.Pile.PieceMargin = c.Pile.CellHeight },
			want:   []string{"piece margin"},
		},
		{
			name:   "creature probability above one",
			mutate: func(c *Config) { c.Pile.CreatureProbability = 1.5 },
			want:   []string{"creature probability"},
		},
		{
			name:   "zero adjacency fraction",
			mutate: func(c *Config) { c.Stability.AdjacencyFraction = 0 },
			want:   []string{"adjacency fraction"},
		},
		{
			name:   "short reaction window",
			mutate: func(c *Config) { c.Rules.MinReactionWindow = 50 * time.Millisecond },
			want:   []string{"reaction window"},
		},
		{
			name: "several problems joined",
			mutate: func(c *Config) {
				c.Stability.OverlapFraction = -1
				c.Rules.StartingHealth = 0
				c.QueueSize = 0
			},
			want: []string{"overlap fraction", "starting health", "queue size"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			for _, msg := range tt.want {
				assert.ErrorContains(t, err, msg)
			}
		})
	}
}
