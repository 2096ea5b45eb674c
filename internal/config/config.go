// Package config loads the egc configuration: a YAML file in the egc home
// directory, merged with defaults and overridden by environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/egeria-tools/egc/internal/format"
)

// ConfigFileName is the name of the egc configuration file.
const ConfigFileName = "config.yaml"

// HomeDirName is the name of the egc home directory under $HOME.
const HomeDirName = ".egc"

// Environment variables recognized by Load. They override file values.
const (
	EnvPlatformURL = "EGERIA_PLATFORM_URL"
	EnvViewServer  = "EGERIA_VIEW_SERVER"
	EnvUser        = "EGERIA_USER"
	EnvPassword    = "EGERIA_PASSWORD"
	EnvHome        = "EGC_HOME"
)

// Config holds all egc configuration.
type Config struct {
	Platform PlatformConfig `yaml:"platform"`
	Output   OutputConfig   `yaml:"output"`
	Cache    CacheConfig    `yaml:"cache"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PlatformConfig identifies the Egeria platform and view server.
type PlatformConfig struct {
	URL         string        `yaml:"url"`
	ViewServer  string        `yaml:"view_server"`
	UserID      string        `yaml:"user_id"`
	Password    string        `yaml:"password,omitempty"`
	Timeout     time.Duration `yaml:"timeout"`
	InsecureTLS bool          `yaml:"insecure_tls"`
}

// OutputConfig holds rendering defaults.
type OutputConfig struct {
	// DefaultMode is the output mode used when --format is not given.
	DefaultMode string `yaml:"default_mode"`

	// FormatSetFile, when set, is merged into the registry at startup.
	FormatSetFile string `yaml:"format_set_file,omitempty"`

	// DefaultKind is the format-set kind used when the caller does not know
	// the element type.
	DefaultKind string `yaml:"default_kind"`
}

// CacheConfig controls the local element/history store.
type CacheConfig struct {
	// Enabled is a pointer so a file that omits the field keeps the default
	// instead of decoding as false. Read it through IsEnabled.
	Enabled *bool         `yaml:"enabled"`
	MaxAge  time.Duration `yaml:"max_age"`
}

// IsEnabled reports whether caching is on. An unset field means enabled.
func (c CacheConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ErrConfigNotFound is returned when no config file can be found.
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// DefaultConfig returns configuration with sensible defaults. These are used
// when no config file exists or when the file omits specific fields.
func DefaultConfig() *Config {
	return &Config{
		Platform: PlatformConfig{
			URL:        "https://localhost:9443",
			ViewServer: "view-server",
			UserID:     "erinoverview",
			Timeout:    30 * time.Second,
		},
		Output: OutputConfig{
			DefaultMode: string(format.DefaultMode),
			DefaultKind: format.DefaultKind,
		},
		Cache: CacheConfig{
			Enabled: boolPtr(true),
			MaxAge:  7 * 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Home returns the egc home directory: $EGC_HOME if set, else ~/.egc.
// The directory is not created here.
func Home() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(userHome, HomeDirName), nil
}

// EnsureHome creates the egc home directory if it doesn't exist and returns
// its path.
func EnsureHome() (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("creating egc home: %w", err)
	}
	return home, nil
}

// Load reads config from the egc home (or an explicit path when non-empty),
// merges it with defaults, applies environment overrides and validates the
// result. A missing file is not an error: defaults plus env apply.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := Home()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ConfigFileName)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	applyEnv(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath reads config from a specific path and merges it with
// defaults. Environment overrides are not applied here.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return Merge(loaded, DefaultConfig()), nil
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvPlatformURL); v != "" {
		cfg.Platform.URL = v
	}
	if v := os.Getenv(EnvViewServer); v != "" {
		cfg.Platform.ViewServer = v
	}
	if v := os.Getenv(EnvUser); v != "" {
		cfg.Platform.UserID = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		cfg.Platform.Password = v
	}
}

// Validate checks that config values are usable.
func Validate(cfg *Config) error {
	if cfg.Platform.URL == "" {
		return fmt.Errorf("%w: platform url must not be empty", ErrInvalidConfig)
	}
	if cfg.Platform.ViewServer == "" {
		return fmt.Errorf("%w: view_server must not be empty", ErrInvalidConfig)
	}
	if cfg.Platform.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be non-negative, got %s", ErrInvalidConfig, cfg.Platform.Timeout)
	}
	if cfg.Cache.MaxAge < 0 {
		return fmt.Errorf("%w: cache max_age must be non-negative, got %s", ErrInvalidConfig, cfg.Cache.MaxAge)
	}
	return nil
}

// Merge merges loaded config with defaults. Loaded values take precedence;
// zero values fall back to the defaults.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}
	result.Platform = mergePlatform(loaded.Platform, defaults.Platform)
	result.Output = mergeOutput(loaded.Output, defaults.Output)
	result.Cache = mergeCache(loaded.Cache, defaults.Cache)
	result.Logging = mergeLogging(loaded.Logging, defaults.Logging)
	return result
}

func mergePlatform(loaded, defaults PlatformConfig) PlatformConfig {
	result := loaded
	if result.URL == "" {
		result.URL = defaults.URL
	}
	if result.ViewServer == "" {
		result.ViewServer = defaults.ViewServer
	}
	if result.UserID == "" {
		result.UserID = defaults.UserID
	}
	if result.Timeout == 0 {
		result.Timeout = defaults.Timeout
	}
	return result
}

func mergeOutput(loaded, defaults OutputConfig) OutputConfig {
	result := loaded
	if result.DefaultMode == "" {
		result.DefaultMode = defaults.DefaultMode
	}
	if result.DefaultKind == "" {
		result.DefaultKind = defaults.DefaultKind
	}
	return result
}

func mergeCache(loaded, defaults CacheConfig) CacheConfig {
	result := loaded
	if result.Enabled == nil {
		result.Enabled = defaults.Enabled
	}
	if result.MaxAge == 0 {
		result.MaxAge = defaults.MaxAge
	}
	return result
}

func boolPtr(b bool) *bool { return &b }

func mergeLogging(loaded, defaults LoggingConfig) LoggingConfig {
	result := loaded
	if result.Level == "" {
		result.Level = defaults.Level
	}
	return result
}

// SaveDefault writes the default configuration to the egc home, creating
// the directory if needed. Fails if the file already exists.
func SaveDefault() (string, error) {
	home, err := EnsureHome()
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(home, ConfigFileName)
	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	header := "# egc configuration\n# Environment overrides: EGERIA_PLATFORM_URL, EGERIA_VIEW_SERVER, EGERIA_USER, EGERIA_PASSWORD\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return configPath, nil
}
