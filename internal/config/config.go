package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Display DisplayConfig `yaml:"display"`
}

type CatalogConfig struct {
	Endpoint string `yaml:"endpoint"`
	Proxy    string `yaml:"proxy"`
}

type DisplayConfig struct {
	PageSize    int    `yaml:"page_size"`
	DefaultSort string `yaml:"default_sort"`
	NoImages    bool   `yaml:"no_images"`
}

var loaded *Config

// Load reads banghang.yaml; a missing file yields the defaults.
// Flags always win over file values.
func Load() (*Config, error) {
	if loaded != nil {
		return loaded, nil
	}

	data, err := os.ReadFile(findConfigPath())
	if err != nil {
		return defaultConfig(), nil
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	loaded = cfg
	return loaded, nil
}

func findConfigPath() string {
	paths := []string{"banghang.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "banghang", "config.yaml"))
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return "banghang.yaml"
}

func defaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Endpoint: "https://api.escuelajs.co/api/v1/products",
		},
		Display: DisplayConfig{
			PageSize:    10,
			DefaultSort: "none",
		},
	}
}
