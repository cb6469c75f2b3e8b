package validation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxDepth = 64
	DefaultMaxNodes = 100000
)

// Config bounds traversal and selects rules
type Config struct {
	// MaxDepth is the deepest message nesting visited before the traversal aborts
	MaxDepth int `yaml:"max_depth"`
	// MaxNodes is the number of nodes visited before the traversal aborts
	MaxNodes int `yaml:"max_nodes"`
	// DisabledRules names rules that are skipped
	DisabledRules []string `yaml:"disabled_rules"`
}

// DefaultConfig returns the default engine configuration
func DefaultConfig() *Config {
	return &Config{
		MaxDepth: DefaultMaxDepth,
		MaxNodes: DefaultMaxNodes,
	}
}

// LoadConfig reads a YAML config file. Fields absent from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read validation config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse validation config %s: %w", path, err)
	}
	return config, nil
}

// Validate checks limits and that every disabled rule exists in registry
func (c *Config) Validate(registry *RuleRegistry) error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.MaxNodes < 1 {
		return fmt.Errorf("max_nodes must be at least 1, got %d", c.MaxNodes)
	}
	if registry == nil {
		return nil
	}
	for _, name := range c.DisabledRules {
		if _, ok := registry.GetRule(name); !ok {
			return fmt.Errorf("unknown rule %q in disabled_rules (known: %v)", name, registry.Names())
		}
	}
	return nil
}
