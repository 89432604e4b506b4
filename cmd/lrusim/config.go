package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/urfave/cli/v2"
)

const (
	envPrefix       = "LRUSIM_"
	allPatterns     = "all"
	defaultCapacity = 512
	defaultSeed     = 1
	defaultWorkers  = 4
	defaultLogLevel = "info"
)

// Config is read from the environment first;
// flags given on the command line take precedence.
type Config struct {
	Capacity int    `env:"CAPACITY" envDefault:"512"`
	Length   int    `env:"LENGTH" envDefault:"0"`
	Seed     int64  `env:"SEED" envDefault:"1"`
	Workers  int    `env:"WORKERS" envDefault:"4"`
	Pattern  string `env:"PATTERN" envDefault:"all"`
	Metrics  bool   `env:"METRICS" envDefault:"false"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func loadConfig(c *cli.Context) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if c.IsSet(capacityFlag) {
		cfg.Capacity = c.Int(capacityFlag)
	}
	if c.IsSet(lengthFlag) {
		cfg.Length = c.Int(lengthFlag)
	}
	if c.IsSet(seedFlag) {
		cfg.Seed = c.Int64(seedFlag)
	}
	if c.IsSet(workersFlag) {
		cfg.Workers = c.Int(workersFlag)
	}
	if c.IsSet(patternFlag) {
		cfg.Pattern = c.String(patternFlag)
	}
	if c.IsSet(metricsFlag) {
		cfg.Metrics = c.Bool(metricsFlag)
	}
	if c.IsSet(logLevelFlag) {
		cfg.LogLevel = c.String(logLevelFlag)
	}
	return cfg, cfg.validate()
}

func (cfg Config) validate() error {
	switch {
	case cfg.Capacity <= 0:
		return fmt.Errorf("%s must be positive, got %d", capacityFlag, cfg.Capacity)
	case cfg.Length < 0:
		return fmt.Errorf("%s must not be negative, got %d", lengthFlag, cfg.Length)
	case cfg.Workers <= 0:
		return fmt.Errorf("%s must be positive, got %d", workersFlag, cfg.Workers)
	}
	return nil
}
