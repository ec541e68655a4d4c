package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the on-disk shape of a treedemo session: how many
// simulated replicas to start, which one the interactive TUI drives,
// and how chatty the demo's logging should be.
type Config struct {
	Replicas   int    `yaml:"replicas"`
	DriverName string `yaml:"driver"`
	LogLevel   string `yaml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		Replicas:   3,
		DriverName: "alice",
		LogLevel:   "info",
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Replicas < 1 {
		return Config{}, fmt.Errorf("parse config %s: replicas must be at least 1", path)
	}
	return cfg, nil
}
