// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Link   LinkConfig    `yaml:"link"`
	Motors []MotorConfig `yaml:"motors"`
	Scan   ScanConfig    `yaml:"scan"`
}

// ---- LINK ----

type LinkConfig struct {
	Port           string `yaml:"port"`
	Baud           int    `yaml:"baud"`
	TimeoutMs      int    `yaml:"timeout_ms"`
	PollIntervalUs int    `yaml:"poll_interval_us"`
	SettleDelayUs  int    `yaml:"settle_delay_us"`
	LegacyHeader   bool   `yaml:"legacy_header"`
}

// ---- MOTOR ----

type MotorConfig struct {
	ID   uint8   `yaml:"id"`
	Type string  `yaml:"type"`
	KP   float64 `yaml:"kp"`
	KD   float64 `yaml:"kd"`
}

// ---- SCAN ----

type ScanConfig struct {
	From    uint8 `yaml:"from"`
	To      uint8 `yaml:"to"`
	DelayMs int   `yaml:"delay_ms"`
}

// Load decodes the YAML file. It performs no validation or defaulting;
// callers run Validate and then Normalize.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}
