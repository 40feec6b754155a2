// Package config holds the scrape options: request timeout, browser-like
// headers, and the site/API base URLs. Options load from an optional YAML
// file with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL = "https://race.netkeiba.com"
	DefaultAPIURL  = "https://race.netkeiba.com/api/api_get_jra_odds.html"

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
	defaultAcceptLanguage = "ja,en-US;q=0.9,en;q=0.8"
	defaultTimeout        = 20 * time.Second
)

// Config controls how the scraper talks to the source site.
type Config struct {
	Timeout        time.Duration `yaml:"timeout"`
	UserAgent      string        `yaml:"user_agent"`
	AcceptLanguage string        `yaml:"accept_language"`
	BaseURL        string        `yaml:"base_url"`
	APIURL         string        `yaml:"api_url"`
}

// Default returns the built-in options.
func Default() *Config {
	return &Config{
		Timeout:        defaultTimeout,
		UserAgent:      defaultUserAgent,
		AcceptLanguage: defaultAcceptLanguage,
		BaseURL:        DefaultBaseURL,
		APIURL:         DefaultAPIURL,
	}
}

// UnmarshalYAML decodes the config file, leaving fields the file does not
// set untouched. Timeout accepts time.ParseDuration strings ("5s", "1m30s").
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Timeout        string `yaml:"timeout"`
		UserAgent      string `yaml:"user_agent"`
		AcceptLanguage string `yaml:"accept_language"`
		BaseURL        string `yaml:"base_url"`
		APIURL         string `yaml:"api_url"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("parsing timeout: %w", err)
		}
		c.Timeout = d
	}
	if raw.UserAgent != "" {
		c.UserAgent = raw.UserAgent
	}
	if raw.AcceptLanguage != "" {
		c.AcceptLanguage = raw.AcceptLanguage
	}
	if raw.BaseURL != "" {
		c.BaseURL = raw.BaseURL
	}
	if raw.APIURL != "" {
		c.APIURL = raw.APIURL
	}
	return nil
}

// Load builds the configuration from defaults, an optional YAML file, and
// KEIBA_* environment variables, in that precedence order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("KEIBA_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing KEIBA_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("KEIBA_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("KEIBA_ACCEPT_LANGUAGE"); v != "" {
		c.AcceptLanguage = v
	}
	if v := os.Getenv("KEIBA_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("KEIBA_API_URL"); v != "" {
		c.APIURL = v
	}
	return nil
}
