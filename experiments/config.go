package experiments

import (
	"errors"
	"fmt"
	"mcts/experiments/metrics"
	"mcts/meta"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for experiment configurations that cannot be run.
var ErrInvalidConfig = errors.New("invalid experiment config")

type Matchup struct {
	First  int `yaml:"first"`  // AgentConfig.ID
	Second int `yaml:"second"` // AgentConfig.ID
}

type Config struct {
	Name     string                `yaml:"name"`
	Games    int                   `yaml:"games"`   // per matchup
	Workers  int                   `yaml:"workers"` // games played at once
	Seed     uint64                `yaml:"seed"`    // 0 seeds from the clock
	Agents   []metrics.AgentConfig `yaml:"agents"`
	Matchups []Matchup             `yaml:"matchups"`
}

// LoadConfig reads a YAML experiment configuration, e.g.
//
//	name: exploration
//	games: 20
//	agents:
//	  - {id: 1, iterations: 500, exploration: 1.0}
//	  - {id: 2, iterations: 500, exploration: 0.5}
//	matchups:
//	  - {first: 1, second: 2}
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg = cfg.withDefaults()
	return cfg, cfg.Validate()
}

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = "experiment"
	}
	if c.Games <= 0 {
		c.Games = meta.GAMES
	}
	if c.Workers <= 0 {
		c.Workers = meta.WORKERS
	}
	for i := range c.Agents {
		if c.Agents[i].Iterations <= 0 {
			c.Agents[i].Iterations = meta.ITERATIONS
		}
		if c.Agents[i].Exploration == 0 {
			c.Agents[i].Exploration = meta.EXPLORATION
		}
	}
	return c
}

func (c Config) Validate() error {
	if len(c.Matchups) == 0 {
		return fmt.Errorf("%w: no matchups", ErrInvalidConfig)
	}
	if c.Games <= 0 || c.Workers <= 0 {
		return fmt.Errorf("%w: games and workers must be positive", ErrInvalidConfig)
	}
	ids := make(map[int]bool, len(c.Agents))
	for _, a := range c.Agents {
		if ids[a.ID] {
			return fmt.Errorf("%w: duplicate agent %d", ErrInvalidConfig, a.ID)
		}
		if a.Exploration < 0 || a.Temperature < 0 {
			return fmt.Errorf("%w: agent %d has a negative exploration or temperature", ErrInvalidConfig, a.ID)
		}
		ids[a.ID] = true
	}
	for _, m := range c.Matchups {
		if !ids[m.First] || !ids[m.Second] {
			return fmt.Errorf("%w: matchup %d vs %d names an unknown agent", ErrInvalidConfig, m.First, m.Second)
		}
	}
	return nil
}

func (c Config) agent(id int) metrics.AgentConfig {
	for _, a := range c.Agents {
		if a.ID == id {
			return a
		}
	}
	return metrics.AgentConfig{ID: id, Iterations: meta.ITERATIONS, Exploration: meta.EXPLORATION}
}
