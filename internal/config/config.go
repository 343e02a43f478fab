package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FileName is the config file at the root of a group directory.
const FileName = "tally.yaml"

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Group      GroupConfig      `yaml:"group"`
	Settlement SettlementConfig `yaml:"settlement"`
	Git        GitConfig        `yaml:"git"`
}

// GroupConfig identifies the expense group.
type GroupConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"` // ISO 4217 code, display only
}

// SettlementConfig controls how settle treats inconsistent balances.
type SettlementConfig struct {
	Strict    bool   `yaml:"strict"`
	Tolerance string `yaml:"tolerance"` // decimal, e.g. "0.01"
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if _, err := cfg.Settlement.ToleranceAmount(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new group.
func Default(groupName, currency string) *Config {
	return &Config{
		Group: GroupConfig{
			Name:     groupName,
			Currency: currency,
		},
		Settlement: SettlementConfig{
			Strict:    false,
			Tolerance: "0.01",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Tally",
			AuthorEmail: "tally@localhost",
		},
	}
}

// ToleranceAmount parses Tolerance. An empty value means zero tolerance.
func (s SettlementConfig) ToleranceAmount() (decimal.Decimal, error) {
	if s.Tolerance == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s.Tolerance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing settlement tolerance %q: %w", s.Tolerance, err)
	}
	return d, nil
}
