// Package config provides configuration management for the speedfiles tools.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/turbospeed/speedfiles/pkg/hooks"
	"gopkg.in/yaml.v3"
)

// DefaultCatalogURL is the published location of the size list. The document
// lives one directory above the page that displays it.
const DefaultCatalogURL = "https://turbospeed.dev/file-sizes.yaml"

// Config holds the application configuration.
type Config struct {
	CatalogURL           string      `env:"CATALOG_URL"        env-default:"https://turbospeed.dev/file-sizes.yaml" yaml:"catalogURL"`
	BaseURL              string      `env:"BASE_URL"           env-default:""                                       yaml:"baseURL"`
	OutputDir            string      `env:"OUTPUTDIR"          env-default:"."                                      yaml:"outputDir"`
	WatchIntervalSeconds int         `env:"WATCH_INTERVAL_SEC" env-default:"30"                                     yaml:"watchIntervalSeconds"`
	NoColor              bool        `env:"NOCOLOR"            env-default:"false"                                  yaml:"noColor"`
	NoLogTime            bool        `env:"NOLOGTIME"          env-default:"false"                                  yaml:"noLogTime"`
	Hooks                hooks.Hooks `yaml:"hooks"`
}

// NewConfigFromFile returns a new Config struct from the given file.
func NewConfigFromFile(filePath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(filePath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from file %s: %w", filePath, err)
	}
	return &cfg, nil
}

// NewConfigFromEnv returns a new Config struct from the environment variables.
func NewConfigFromEnv() (*Config, error) {
	var cfg Config
	err := cleanenv.ReadEnv(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from environment: %w", err)
	}
	return &cfg, nil
}

// ShortLinkBase returns the base location that size tokens are appended to
// when building short URLs. It is BaseURL when set, otherwise the directory
// the catalog document lives in.
func (c *Config) ShortLinkBase() string {
	if c.BaseURL != "" {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	u, err := url.Parse(c.CatalogURL)
	if err != nil {
		return strings.TrimSuffix(c.CatalogURL, "/")
	}
	u.Path = path.Dir(u.Path)
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimSuffix(u.String(), "/")
}

// IsConfigValid returns true if the config is valid.
func (c *Config) IsConfigValid() bool {
	return len(c.CatalogURL) > 0 && c.WatchIntervalSeconds > 0
}

func (c *Config) String() string {
	cyaml, err := yaml.Marshal(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return string(cyaml)
}

// Usage prints the usage of the config.
func (c *Config) Usage() {
	f := cleanenv.Usage(c, nil)
	f()
}
