// Package config loads focusly settings from defaults, a YAML file and
// FOCUSLY_* environment variables.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "FOCUSLY_"

const maxConfigFileSize = 1024 * 1024

// Backends accepted by provider.backend
const (
	BackendGenAI     = "genai"
	BackendClaudeCLI = "claudecli"
)

const defaults = `
data:
  path: ""
log:
  level: info
  path: ""
provider:
  backend: genai
  api_key: ""
  base_url: ""
  roadmap_model: ""
  content_model: ""
  max_attempts: 4
  base_delay: 1s
  requests_per_minute: 0
timer:
  work_seconds: 1500
roadmap:
  unlock_all: false
metrics:
  addr: ""
editor:
  command: ""
search:
  url: ""
export:
  dir: "~/focusly-notes"
`

// Config is the full application configuration
type Config struct {
	Data     DataConfig     `koanf:"data"`
	Log      LogConfig      `koanf:"log"`
	Provider ProviderConfig `koanf:"provider"`
	Timer    TimerConfig    `koanf:"timer"`
	Roadmap  RoadmapConfig  `koanf:"roadmap"`
	Metrics  MetricsConfig  `koanf:"metrics"`
	Editor   EditorConfig   `koanf:"editor"`
	Search   SearchConfig   `koanf:"search"`
	Export   ExportConfig   `koanf:"export"`
}

// DataConfig locates the state database; empty means the XDG default
type DataConfig struct {
	Path string `koanf:"path"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level string `koanf:"level"`
	Path  string `koanf:"path"`
}

// ProviderConfig selects and tunes the content provider
type ProviderConfig struct {
	Backend           string        `koanf:"backend"`
	APIKey            Secret        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	RoadmapModel      string        `koanf:"roadmap_model"`
	ContentModel      string        `koanf:"content_model"`
	MaxAttempts       int           `koanf:"max_attempts"`
	BaseDelay         time.Duration `koanf:"base_delay"`
	RequestsPerMinute int           `koanf:"requests_per_minute"`
}

type TimerConfig struct {
	WorkSeconds int `koanf:"work_seconds"`
}

type RoadmapConfig struct {
	UnlockAll bool `koanf:"unlock_all"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set
type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

type EditorConfig struct {
	Command string `koanf:"command"`
}

type SearchConfig struct {
	URL string `koanf:"url"`
}

type ExportConfig struct {
	Dir string `koanf:"dir"`
}

// Secret hides its value from fmt and logs
type Secret string

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

func (s Secret) GoString() string {
	return "Secret([REDACTED])"
}

// Value returns the actual secret
func (s Secret) Value() string {
	return string(s)
}

// IsSet reports whether the secret is non-empty
func (s Secret) IsSet() bool {
	return s != ""
}

// DefaultPath returns $XDG_CONFIG_HOME/focusly/config.yaml
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "focusly", "config.yaml")
}

// Load reads the configuration. Precedence, highest first: FOCUSLY_*
// environment variables, the YAML file at path, built-in defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider([]byte(defaults)), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = DefaultPath()
	}
	content, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}
	if content != nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// FOCUSLY_PROVIDER_API_KEY -> provider.api_key
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		section, field, found := strings.Cut(lower, "_")
		if !found {
			return lower
		}
		return section + "." + field
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if !cfg.Provider.APIKey.IsSet() {
		for _, name := range []string{"GEMINI_API_KEY", "API_KEY"} {
			if v := os.Getenv(name); v != "" {
				cfg.Provider.APIKey = Secret(v)
				break
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path is a directory: %s", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	switch c.Provider.Backend {
	case BackendGenAI, BackendClaudeCLI:
	default:
		return fmt.Errorf("provider.backend must be %q or %q, got %q", BackendGenAI, BackendClaudeCLI, c.Provider.Backend)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}

	if c.Provider.MaxAttempts < 1 {
		return fmt.Errorf("provider.max_attempts must be at least 1, got %d", c.Provider.MaxAttempts)
	}
	if c.Provider.BaseDelay < 0 {
		return fmt.Errorf("provider.base_delay cannot be negative")
	}
	if c.Provider.RequestsPerMinute < 0 {
		return fmt.Errorf("provider.requests_per_minute cannot be negative")
	}
	if c.Timer.WorkSeconds < 1 {
		return fmt.Errorf("timer.work_seconds must be positive, got %d", c.Timer.WorkSeconds)
	}
	return nil
}
