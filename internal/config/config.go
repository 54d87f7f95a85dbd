// Package config loads the demo's host-side configuration from YAML with
// environment overrides. On hardware there is no file system; the defaults
// compile in and this package stays host-only.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Duration is a time.Duration that unmarshals from YAML strings such as
// "500ms" or "10s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the complete maestro configuration.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Demo    DemoConfig    `yaml:"demo"`
	Logging LoggingConfig `yaml:"logging"`
}

// BoardConfig describes the simulated board.
type BoardConfig struct {
	LEDs int `yaml:"leds"`
}

// DemoConfig holds the demo cadences.
type DemoConfig struct {
	BlinkTimeout    Duration `yaml:"blinkTimeout"`
	MessengerPeriod Duration `yaml:"messengerPeriod"`
	Heartbeat       Duration `yaml:"heartbeat"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMb"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Board: BoardConfig{LEDs: 4},
		Demo: DemoConfig{
			BlinkTimeout:    Duration(500 * time.Millisecond),
			MessengerPeriod: Duration(10 * time.Second),
			Heartbeat:       Duration(time.Second),
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults;
// either way QUARK_LOG_LEVEL and QUARK_LOG_FILE override the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if level := os.Getenv("QUARK_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if file := os.Getenv("QUARK_LOG_FILE"); file != "" {
		cfg.Logging.File = file
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Board.LEDs < 1 || c.Board.LEDs > 32 {
		return fmt.Errorf("board.leds = %d, must be in [1, 32]", c.Board.LEDs)
	}
	if c.Demo.BlinkTimeout <= 0 {
		return fmt.Errorf("demo.blinkTimeout = %v, must be positive", c.Demo.BlinkTimeout)
	}
	if c.Demo.MessengerPeriod <= 0 {
		return fmt.Errorf("demo.messengerPeriod = %v, must be positive", c.Demo.MessengerPeriod)
	}
	if c.Demo.Heartbeat <= 0 {
		return fmt.Errorf("demo.heartbeat = %v, must be positive", c.Demo.Heartbeat)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level = %q, must be debug, info, warn or error", c.Logging.Level)
	}
	return nil
}
