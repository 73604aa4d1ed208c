package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

const ConfigFileName = "storekeep.json"

// Portal represents a portal backend the CLI can talk to
type Portal struct {
	URL   string `json:"url" validate:"required,url"`
	Alias string `json:"alias" validate:"required"`
}

// Config is the project configuration stored in storekeep.json
type Config struct {
	Portals []Portal `json:"portals" validate:"required,min=1,dive"`
}

var validate = validator.New()

// FindConfigFile searches for storekeep.json in the current directory and
// parent directories
func FindConfigFile() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	// Search upwards until we find storekeep.json or reach root
	dir := currentDir
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("storekeep.json not found in %s or any parent directory", currentDir)
}

// Load reads and validates the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return &cfg, nil
}

// LoadFromCurrentDir loads config from the current directory or parents
func LoadFromCurrentDir() (*Config, error) {
	configPath, err := FindConfigFile()
	if err != nil {
		return nil, err
	}

	return Load(configPath)
}

// Save writes the configuration to a file
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetPortalByAlias returns a portal by its alias
func (c *Config) GetPortalByAlias(alias string) (*Portal, error) {
	for _, portal := range c.Portals {
		if portal.Alias == alias {
			return &portal, nil
		}
	}
	return nil, fmt.Errorf("portal with alias %q not found in %s", alias, ConfigFileName)
}

// GetPortalByURL returns a portal by its URL
func (c *Config) GetPortalByURL(url string) (*Portal, error) {
	for _, portal := range c.Portals {
		if portal.URL == url {
			return &portal, nil
		}
	}
	return nil, fmt.Errorf("portal with URL %q not found in %s", url, ConfigFileName)
}
