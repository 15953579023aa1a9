package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParse(t *testing.T) {
	src := `
engine {
  deck_count = 8
  min_bet    = 500
  max_bet    = 50000
}

registry {
  idle_ttl      = "10m"
  reap_interval = "30s"
}

log {
  level = "debug"
}
`
	c, err := Parse([]byte(src), "blackjack.hcl")
	require.NoError(t, err)
	assert.Equal(t, 8, c.Engine.DeckCount)
	assert.Equal(t, int64(500), c.Engine.MinBet)
	assert.Equal(t, int64(50000), c.Engine.MaxBet)
	assert.Equal(t, 10*time.Minute, c.IdleTTL())
	assert.Equal(t, 30*time.Second, c.ReapInterval())
	assert.Equal(t, "debug", c.Log.Level)
}

func TestParseFillsDefaults(t *testing.T) {
	src := `
engine {}
registry {}
`
	c, err := Parse([]byte(src), "blackjack.hcl")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `engine {`},
		{"missing registry", `engine {}`},
		{"unknown attribute", "engine {\n decks = 2\n}\nregistry {}\n"},
		{"negative decks", "engine {\n deck_count = -1\n}\nregistry {}\n"},
		{"max below min", "engine {\n min_bet = 1000\n max_bet = 500\n}\nregistry {}\n"},
		{"bad ttl", "engine {}\nregistry {\n idle_ttl = \"soon\"\n}\n"},
		{"zero interval", "engine {}\nregistry {\n reap_interval = \"0s\"\n}\n"},
		{"bad log level", "engine {}\nregistry {}\nlog {\n level = \"loud\"\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "blackjack.hcl")
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte("engine {\n min_bet = 200\n}\nregistry {}\n"), 0o600))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(200), c.Engine.MinBet)
	assert.Equal(t, 6, c.Engine.DeckCount)
}

func TestNewLogger(t *testing.T) {
	c := Default()
	c.Log.Level = "warn"
	logger, err := c.NewLogger()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))
}
