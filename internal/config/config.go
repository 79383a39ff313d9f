package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const configPathEnv = "FRAROLD_CONFIG"

const (
	ModeToken       = "token"
	ModeSubsequence = "subsequence"

	PolicyAllOrNothing = "all-or-nothing"
	PolicyPartial      = "partial"
)

type Config struct {
	ListenAddr string        `yaml:"listenAddr"`
	MenuAPI    MenuAPIConfig `yaml:"menuAPI"`
	Search     SearchConfig  `yaml:"search"`
	Log        LogConfig     `yaml:"log"`
}

// MenuAPIConfig describes how to reach the ASPC menu API.
type MenuAPIConfig struct {
	BaseURL   string `yaml:"baseURL"`
	AuthToken string `yaml:"authToken"`

	// Zero means no client-side timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// SearchConfig tunes food search across halls.
type SearchConfig struct {
	// Threshold is the largest accepted match distance, 0 (exact) to 1.
	Threshold float64 `yaml:"threshold"`
	Mode      string  `yaml:"mode"`
	Policy    string  `yaml:"policy"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Dev   bool   `yaml:"dev"`
}

func Default() Config {
	return Config{
		ListenAddr: ":8080",
		MenuAPI: MenuAPIConfig{
			BaseURL: "https://aspc.pomona.edu/api/menu/",
		},
		Search: SearchConfig{
			Threshold: 0.25,
			Mode:      ModeToken,
			Policy:    PolicyAllOrNothing,
		},
		Log: LogConfig{Level: "info"},
	}
}

// FromEnv loads defaults, then the YAML file named by FRAROLD_CONFIG (if set), then
// environment overrides, and validates the result.
func FromEnv() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv(configPathEnv)); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	c.ListenAddr = getenv("LISTEN_ADDR", c.ListenAddr)
	c.MenuAPI.BaseURL = getenv("ASPC_MENU_URL", c.MenuAPI.BaseURL)
	c.MenuAPI.AuthToken = getenv("ASPC_AUTH_TOKEN", c.MenuAPI.AuthToken)
	c.Search.Mode = getenv("FUZZY_MODE", c.Search.Mode)
	c.Search.Policy = getenv("SEARCH_POLICY", c.Search.Policy)
	c.Log.Level = getenv("LOG_LEVEL", c.Log.Level)

	if v := getenv("ASPC_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid ASPC_TIMEOUT %q (want a duration like 10s)", v)
		}
		c.MenuAPI.Timeout = d
	}
	if v := getenv("FUZZY_THRESHOLD", ""); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid FUZZY_THRESHOLD %q", v)
		}
		c.Search.Threshold = f
	}
	if v := getenv("LOG_DEV", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LOG_DEV %q", v)
		}
		c.Log.Dev = b
	}
	return nil
}

func (c Config) Validate() error {
	if c.Search.Threshold < 0 || c.Search.Threshold > 1 {
		return fmt.Errorf("search threshold must be within [0,1] (got %v)", c.Search.Threshold)
	}
	switch c.Search.Mode {
	case ModeToken, ModeSubsequence:
	default:
		return fmt.Errorf("unknown search mode %q", c.Search.Mode)
	}
	switch c.Search.Policy {
	case PolicyAllOrNothing, PolicyPartial:
	default:
		return fmt.Errorf("unknown search policy %q", c.Search.Policy)
	}
	if c.MenuAPI.Timeout < 0 {
		return fmt.Errorf("menu API timeout must not be negative")
	}
	return nil
}

// RequireToken fails when no menu API token is configured.
func (c Config) RequireToken() error {
	if strings.TrimSpace(c.MenuAPI.AuthToken) == "" {
		return fmt.Errorf("ASPC_AUTH_TOKEN is required")
	}
	return nil
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
