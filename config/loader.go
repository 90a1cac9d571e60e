package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pmorrigan/innersplit/common"
)

const (
	minDominantRatio = 0.51
	maxDominantRatio = 0.90
)

// Load reads a YAML tuning file on top of the defaults. Missing keys keep
// their default value; the result is sanitized before being returned.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	cfg.sanitize()
	return cfg, nil
}

// Parse is Load for in-memory bytes (embedded defaults, watcher reloads).
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.sanitize()
	return cfg, nil
}

func (c *Config) sanitize() {
	if c.Emotion.MaxJumps < 1 {
		c.Emotion.MaxJumps = 1
	}
	if c.Emotion.DashDurationFrames < 1 {
		c.Emotion.DashDurationFrames = 1
	}
	if c.Emotion.DashCooldownFrames < 0 {
		c.Emotion.DashCooldownFrames = 0
	}
	if c.Session.MaxLives < 1 {
		c.Session.MaxLives = 1
	}
	if c.Session.DeathLockFrames < 1 {
		c.Session.DeathLockFrames = 1
	}
	if c.Session.StartingPoints < 0 {
		c.Session.StartingPoints = 0
	}
	if c.Telemetry.MinActionsToInfer < 1 {
		c.Telemetry.MinActionsToInfer = 1
	}
	c.Telemetry.DominantRatio = common.Clamp(c.Telemetry.DominantRatio, minDominantRatio, maxDominantRatio)
	if c.Telemetry.DefaultWeight < 1 {
		c.Telemetry.DefaultWeight = 1
	}
}
