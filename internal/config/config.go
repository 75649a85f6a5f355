// Package config loads the oxsup configuration file.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR} or ${VAR:-default} patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Config represents the complete oxsup configuration
type Config struct {
	Version int `yaml:"version"`

	// Oxlint configures the external lint invocation.
	Oxlint OxlintConfig `yaml:"oxlint"`

	// BannedPaths lists directory names whose files are never patched,
	// regardless of diagnostics.
	BannedPaths []string `yaml:"banned_paths,omitempty"`

	// Policy configures the optional suppression policy gate.
	Policy PolicyConfig `yaml:"policy,omitempty"`
}

// OxlintConfig holds settings for the oxlint subprocess
type OxlintConfig struct {
	Path string   `yaml:"path,omitempty"`
	Args []string `yaml:"args,omitempty"`
}

// PolicyConfig holds settings for the Rego suppression policy
type PolicyConfig struct {
	Path string `yaml:"path,omitempty"`
}

// Load loads the configuration from the specified path
func Load(path string) (*Config, error) {
	if path == "" {
		path = ".oxsup.yaml"
	}

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	// Expand environment variables in the config
	expandedData := expandEnvVars(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars expands environment variables in the config content
// Supports ${VAR} and ${VAR:-default} syntax
func expandEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		// Extract the variable expression (without ${ and })
		expr := match[2 : len(match)-1]

		// Check for default value syntax: VAR:-default
		if idx := strings.Index(expr, ":-"); idx != -1 {
			varName := expr[:idx]
			defaultVal := expr[idx+2:]

			if val := os.Getenv(varName); val != "" {
				return val
			}
			return defaultVal
		}

		// Simple variable: ${VAR}
		return os.Getenv(expr)
	})
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Version == 0 {
		c.Version = 1
	}

	if c.Version != 1 {
		return fmt.Errorf("unsupported config version: %d", c.Version)
	}

	for _, p := range c.BannedPaths {
		if p == "" {
			return fmt.Errorf("banned path entry cannot be empty")
		}
		if strings.ContainsAny(p, "/\\") {
			return fmt.Errorf("banned path %q must be a directory name, not a path", p)
		}
	}

	return nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Oxlint: OxlintConfig{
			Path: "oxlint",
		},
		BannedPaths: []string{
			"node_modules",
			".git",
			".hg",
			".svn",
			"vendor",
			"dist",
			"build",
			"coverage",
		},
		Policy: PolicyConfig{
			Path: ".oxsup.rego",
		},
	}
}
