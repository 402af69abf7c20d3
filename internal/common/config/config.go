package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	ErrPayloadPathNotSet   = errors.New("payload path is not configured")
	ErrPayloadPathNotFound = errors.New("payload path does not exist")
)

// DefaultSelfBundleID is the bundle ID of the Fixum workflow itself.
// Workflows with this bundle ID are never modified.
const DefaultSelfBundleID = "net.awtools.fixum"

// Config represents the application configuration
type Config struct {
	Workflows WorkflowsConfig `yaml:"workflows"`
	Payload   PayloadConfig   `yaml:"payload"`
	Blacklist BlacklistConfig `yaml:"blacklist"`
}

// WorkflowsConfig holds workflow directory settings
type WorkflowsConfig struct {
	// Dir overrides automatic workflow directory discovery when set
	Dir string `yaml:"dir"`
	// SelfBundleID identifies this tool's own workflow bundle, which is
	// always skipped during scans
	SelfBundleID string `yaml:"self_bundle_id"`
}

// PayloadConfig holds settings for the patched library payload
type PayloadConfig struct {
	// Path is the directory containing the known-good library copy
	Path string `yaml:"path"`
}

// BlacklistConfig holds blacklist file settings
type BlacklistConfig struct {
	// Path overrides the default blacklist file location when set
	Path string `yaml:"path"`
}

// ConfigPaths returns all possible config file paths in priority order
// 1. ~/.config/fixum/config.yaml (XDG standard - priority)
// 2. ~/.fixum/config.yaml (legacy fallback)
func ConfigPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	// Check XDG_CONFIG_HOME first, fallback to ~/.config
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(xdgConfig, "fixum", "config.yaml"),
		filepath.Join(home, ".fixum", "config.yaml"),
	}, nil
}

// DefaultConfigPath returns the default config file path (XDG standard)
func DefaultConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

// DefaultBlacklistPath returns the default blacklist file path, which lives
// next to the config file
func DefaultBlacklistPath() (string, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(configPath), "blacklist.txt"), nil
}

// FindConfigPath returns the first existing config file path
// Returns the default path if no config file exists yet
func FindConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}

	// Return first existing config file
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	// No config exists, return default (XDG) path for creation
	return paths[0], nil
}

// Load reads configuration from the first available config file
// Priority: ~/.config/fixum/config.yaml > ~/.fixum/config.yaml
func Load() (*Config, error) {
	configPath, err := FindConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads configuration from a specific file path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Create default config
			cfg := &Config{
				Workflows: WorkflowsConfig{
					SelfBundleID: DefaultSelfBundleID,
				},
			}
			if saveErr := cfg.SaveTo(path); saveErr != nil {
				return nil, saveErr
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Workflows.SelfBundleID == "" {
		cfg.Workflows.SelfBundleID = DefaultSelfBundleID
	}

	return &cfg, nil
}

// Save writes configuration to the default config file
func (c *Config) Save() error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes configuration to a specific file path
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetPayloadPath returns the validated payload directory path.
// The configured path may start with ~ for the home directory.
func (c *Config) GetPayloadPath() (string, error) {
	if c.Payload.Path == "" {
		return "", ErrPayloadPathNotSet
	}

	path, err := ExpandHome(c.Payload.Path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrPayloadPathNotFound
		}
		return "", err
	}

	if !info.IsDir() {
		return "", ErrPayloadPathNotFound
	}

	return path, nil
}

// GetBlacklistPath returns the blacklist file path, falling back to the
// default location next to the config file
func (c *Config) GetBlacklistPath() (string, error) {
	if c.Blacklist.Path != "" {
		return ExpandHome(c.Blacklist.Path)
	}
	return DefaultBlacklistPath()
}

// ExpandHome expands a leading ~ in path to the user's home directory
func ExpandHome(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}
