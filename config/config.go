// Package config provides configuration loading and management for
// steering.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/steering/registry"
)

// Config represents the complete steering configuration.
type Config struct {
	Docs   DocsConfig           `yaml:"docs"`
	Watch  registry.WatchConfig `yaml:"watch"`
	Budget BudgetConfig         `yaml:"budget"`
	Server ServerConfig         `yaml:"server"`
}

// DocsConfig configures the document directory.
type DocsConfig struct {
	// Dir is the steering documents directory (default: .steering,
	// found by walking up from the current directory).
	Dir string `yaml:"dir"`
}

// BudgetConfig configures context budgets, in characters.
type BudgetConfig struct {
	// Default is the budget used when a request carries no explicit
	// budget and no known model.
	Default int `yaml:"default"`

	// Headroom is subtracted from model-derived budgets to leave room
	// for the assembler's own prompt text.
	Headroom int `yaml:"headroom"`

	// Models maps model names to their maximum context size in
	// characters.
	Models map[string]int `yaml:"models"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	// HTTPAddr is the HTTP listen address (default: :8466).
	HTTPAddr string `yaml:"http_addr"`

	// NATSURL is the NATS server URL. Empty disables the NATS endpoint.
	NATSURL string `yaml:"nats_url"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Docs: DocsConfig{
			Dir: "", // Auto-detect
		},
		Watch: registry.DefaultWatchConfig(),
		Budget: BudgetConfig{
			Default:  32000,
			Headroom: 4000,
			Models:   nil,
		},
		Server: ServerConfig{
			HTTPAddr: ":8466",
			NATSURL:  "",
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Budget.Default <= 0 {
		return fmt.Errorf("budget.default must be positive")
	}
	if c.Budget.Headroom < 0 {
		return fmt.Errorf("budget.headroom must not be negative")
	}
	for model, size := range c.Budget.Models {
		if size <= 0 {
			return fmt.Errorf("budget.models[%s] must be positive", model)
		}
	}
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}
	return nil
}

// MaxForModel returns the configured maximum context size for a model,
// or 0 if the model is unknown.
func (c *Config) MaxForModel(model string) int {
	return c.Budget.Models[model]
}

// Merge overlays non-zero fields from other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Docs.Dir != "" {
		c.Docs.Dir = other.Docs.Dir
	}
	if other.Watch.Enabled {
		c.Watch.Enabled = true
	}
	if other.Watch.DebounceDelay != "" {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
	if other.Budget.Default != 0 {
		c.Budget.Default = other.Budget.Default
	}
	if other.Budget.Headroom != 0 {
		c.Budget.Headroom = other.Budget.Headroom
	}
	if len(other.Budget.Models) > 0 {
		if c.Budget.Models == nil {
			c.Budget.Models = make(map[string]int, len(other.Budget.Models))
		}
		for model, size := range other.Budget.Models {
			c.Budget.Models[model] = size
		}
	}
	if other.Server.HTTPAddr != "" {
		c.Server.HTTPAddr = other.Server.HTTPAddr
	}
	if other.Server.NATSURL != "" {
		c.Server.NATSURL = other.Server.NATSURL
	}
}

// LoadFromFile loads configuration from a YAML file. The result holds
// only the file's values; callers merge it over defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}
