package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/nk-nigeria/blackjack-engine/entity"
	"go.uber.org/zap"
)

// Config is the engine's HCL configuration.
type Config struct {
	Engine   EngineSettings   `hcl:"engine,block"`
	Registry RegistrySettings `hcl:"registry,block"`
	Log      *LogSettings     `hcl:"log,block"`
}

type EngineSettings struct {
	DeckCount int   `hcl:"deck_count,optional"`
	MinBet    int64 `hcl:"min_bet,optional"`
	MaxBet    int64 `hcl:"max_bet,optional"`
}

type RegistrySettings struct {
	IdleTTL      string `hcl:"idle_ttl,optional"`
	ReapInterval string `hcl:"reap_interval,optional"`
}

type LogSettings struct {
	Level string `hcl:"level,optional"`
}

const (
	DefaultMinBet       = 100
	DefaultMaxBet       = 1_000_000
	DefaultIdleTTL      = "30m"
	DefaultReapInterval = "1m"
	DefaultLogLevel     = "info"
)

func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads filename; a missing file yields the defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source, fills defaults and validates the result.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	var c Config
	if diags := gohcl.DecodeBody(file.Body, nil, &c); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Engine.DeckCount == 0 {
		c.Engine.DeckCount = entity.DefaultDeckCount
	}
	if c.Engine.MinBet == 0 {
		c.Engine.MinBet = DefaultMinBet
	}
	if c.Engine.MaxBet == 0 {
		c.Engine.MaxBet = DefaultMaxBet
	}
	if c.Registry.IdleTTL == "" {
		c.Registry.IdleTTL = DefaultIdleTTL
	}
	if c.Registry.ReapInterval == "" {
		c.Registry.ReapInterval = DefaultReapInterval
	}
	if c.Log == nil {
		c.Log = &LogSettings{}
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

func (c *Config) Validate() error {
	if c.Engine.DeckCount < 1 {
		return fmt.Errorf("engine: deck_count must be at least 1, got %d", c.Engine.DeckCount)
	}
	if c.Engine.MinBet <= 0 {
		return fmt.Errorf("engine: min_bet must be positive, got %d", c.Engine.MinBet)
	}
	if c.Engine.MaxBet < c.Engine.MinBet {
		return fmt.Errorf("engine: max_bet %d is below min_bet %d", c.Engine.MaxBet, c.Engine.MinBet)
	}
	ttl, err := time.ParseDuration(c.Registry.IdleTTL)
	if err != nil || ttl <= 0 {
		return fmt.Errorf("registry: invalid idle_ttl %q", c.Registry.IdleTTL)
	}
	interval, err := time.ParseDuration(c.Registry.ReapInterval)
	if err != nil || interval <= 0 {
		return fmt.Errorf("registry: invalid reap_interval %q", c.Registry.ReapInterval)
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// IdleTTL is only meaningful on a validated config.
func (c *Config) IdleTTL() time.Duration {
	d, _ := time.ParseDuration(c.Registry.IdleTTL)
	return d
}

func (c *Config) ReapInterval() time.Duration {
	d, _ := time.ParseDuration(c.Registry.ReapInterval)
	return d
}

// NewLogger builds a production zap logger at the configured level.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = level
	return zc.Build(zap.Fields(zap.String("module", entity.ModuleName)))
}
