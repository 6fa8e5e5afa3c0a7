// Package config provides configuration loading and validation for the
// extraction pipeline. It uses koanf to merge environment variables with
// optional file overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/redcarpet-collective/gala/internal/awards"
)

// Config holds all configuration values for an extraction run.
type Config struct {
	// Run settings
	Env       string `koanf:"env"`
	Year      string `koanf:"year"`
	OutputDir string `koanf:"output_dir"`

	// Metrics endpoint; empty disables the HTTP listener.
	MetricsAddr string `koanf:"metrics_addr"`

	// Award discovery knobs
	MinAwardMentions   int     `koanf:"min_award_mentions"`
	ClusterThreshold   float64 `koanf:"cluster_threshold"`
	ExpectedAwardCount int     `koanf:"expected_award_count"`

	// Selection thresholds
	WinnerMinMentions    int `koanf:"winner_min_mentions"`
	NomineeMinMentions   int `koanf:"nominee_min_mentions"`
	NomineeTopN          int `koanf:"nominee_top_n"`
	PresenterMinMentions int `koanf:"presenter_min_mentions"`
	PresenterTopN        int `koanf:"presenter_top_n"`
	HostMinMentions      int `koanf:"host_min_mentions"`
	HostTopN             int `koanf:"host_top_n"`

	// Template categories; defaults to the built-in ceremony list.
	Templates []string `koanf:"templates"`

	// Optional external services
	DatabaseURL string `koanf:"database_url"` // audit store, lib/pq
	RedisURL    string `koanf:"redis_url"`    // shared kb lookup cache

	// Knowledge-base validator
	KBRateLimitPerSecond float64 `koanf:"kb_rate_limit_per_second"`
	KBCacheTTLSeconds    int     `koanf:"kb_cache_ttl_seconds"`
}

// Configuration validation errors.
var (
	ErrNoTemplates             = errors.New("template award list must not be empty")
	ErrInvalidClusterThreshold = errors.New("cluster_threshold must be in (0, 1]")
	ErrInvalidMinMentions      = errors.New("mention thresholds must be positive")
	ErrInvalidTopN             = errors.New("top-n limits must be positive")
	ErrInvalidInteger          = errors.New("value must be a valid integer")
)

// Default values.
const (
	DefaultEnv                  = "development"
	DefaultYear                 = "2013"
	DefaultOutputDir            = "."
	DefaultMinAwardMentions     = 5
	DefaultClusterThreshold     = 0.85
	DefaultExpectedAwardCount   = 26
	DefaultWinnerMinMentions    = 3
	DefaultNomineeMinMentions   = 3
	DefaultNomineeTopN          = 5
	DefaultPresenterMinMentions = 3
	DefaultPresenterTopN        = 2
	DefaultHostMinMentions      = 30
	DefaultHostTopN             = 2
	DefaultKBRateLimit          = 10.0
	DefaultKBCacheTTLSeconds    = 300
)

// Load reads configuration from environment variables and an optional
// config file. Environment variables take precedence over file values.
// Returns the loaded config and a slice of validation errors (empty if
// valid). If a config file path is provided and the file cannot be loaded,
// an error is returned.
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	var loadErrs []error

	// Load from YAML file first if provided (lower precedence)
	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	intOf := func(envKey string, koanfKey string, def int) int {
		v, err := getEnvIntOrDefault(envKey, k.Int(koanfKey), def)
		if err != nil {
			loadErrs = append(loadErrs, err)
		}
		return v
	}
	floatOf := func(envKey string, koanfKey string, def float64) float64 {
		v, err := getEnvFloatOrDefault(envKey, k.Float64(koanfKey), def)
		if err != nil {
			loadErrs = append(loadErrs, err)
		}
		return v
	}

	templates := k.Strings("templates")
	if len(templates) == 0 && !k.Exists("templates") {
		templates = awards.DefaultTemplates
	}

	cfg := &Config{
		Env:                  getEnvOrDefault("GALA_ENV", k.String("env"), DefaultEnv),
		Year:                 getEnvOrDefault("GALA_YEAR", k.String("year"), DefaultYear),
		OutputDir:            getEnvOrDefault("GALA_OUTPUT_DIR", k.String("output_dir"), DefaultOutputDir),
		MetricsAddr:          getEnvOrKoanf("GALA_METRICS_ADDR", k, "metrics_addr"),
		MinAwardMentions:     intOf("GALA_MIN_AWARD_MENTIONS", "min_award_mentions", DefaultMinAwardMentions),
		ClusterThreshold:     floatOf("GALA_CLUSTER_THRESHOLD", "cluster_threshold", DefaultClusterThreshold),
		ExpectedAwardCount:   intOf("GALA_EXPECTED_AWARD_COUNT", "expected_award_count", DefaultExpectedAwardCount),
		WinnerMinMentions:    intOf("GALA_WINNER_MIN_MENTIONS", "winner_min_mentions", DefaultWinnerMinMentions),
		NomineeMinMentions:   intOf("GALA_NOMINEE_MIN_MENTIONS", "nominee_min_mentions", DefaultNomineeMinMentions),
		NomineeTopN:          intOf("GALA_NOMINEE_TOP_N", "nominee_top_n", DefaultNomineeTopN),
		PresenterMinMentions: intOf("GALA_PRESENTER_MIN_MENTIONS", "presenter_min_mentions", DefaultPresenterMinMentions),
		PresenterTopN:        intOf("GALA_PRESENTER_TOP_N", "presenter_top_n", DefaultPresenterTopN),
		HostMinMentions:      intOf("GALA_HOST_MIN_MENTIONS", "host_min_mentions", DefaultHostMinMentions),
		HostTopN:             intOf("GALA_HOST_TOP_N", "host_top_n", DefaultHostTopN),
		Templates:            templates,
		DatabaseURL:          getEnvOrKoanf("GALA_DATABASE_URL", k, "database_url"),
		RedisURL:             getEnvOrKoanf("GALA_REDIS_URL", k, "redis_url"),
		KBRateLimitPerSecond: floatOf("GALA_KB_RATE_LIMIT_PER_SECOND", "kb_rate_limit_per_second", DefaultKBRateLimit),
		KBCacheTTLSeconds:    intOf("GALA_KB_CACHE_TTL_SECONDS", "kb_cache_ttl_seconds", DefaultKBCacheTTLSeconds),
	}

	errs := cfg.Validate()
	errs = append(loadErrs, errs...)

	return cfg, errs
}

// getEnvOrKoanf returns the environment variable value if set, otherwise the koanf value.
func getEnvOrKoanf(envKey string, k *koanf.Koanf, koanfKey string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	return k.String(koanfKey)
}

// getEnvOrDefault returns the environment variable value if set, otherwise the koanf value, or default.
func getEnvOrDefault(envKey string, koanfVal string, defaultVal string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	if koanfVal != "" {
		return koanfVal
	}
	return defaultVal
}

// getEnvIntOrDefault returns the environment variable as int if set, otherwise the koanf value, or default.
// Returns an error if the environment variable is set but cannot be parsed as an integer.
func getEnvIntOrDefault(envKey string, koanfVal int, defaultVal int) (int, error) {
	if val := os.Getenv(envKey); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", envKey, ErrInvalidInteger)
		}
		return i, nil
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return defaultVal, nil
}

// getEnvFloatOrDefault returns the environment variable as float64 if set, otherwise the koanf value, or default.
// Returns an error if the environment variable is set but cannot be parsed as a float.
func getEnvFloatOrDefault(envKey string, koanfVal float64, defaultVal float64) (float64, error) {
	if val := os.Getenv(envKey); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be a valid float: %w", envKey, err)
		}
		return f, nil
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return defaultVal, nil
}

// Validate checks that all configuration values are usable.
// Returns a slice of validation errors (empty if valid).
func (c *Config) Validate() []error {
	var errs []error

	if len(c.Templates) == 0 {
		errs = append(errs, ErrNoTemplates)
	}
	if c.ClusterThreshold <= 0 || c.ClusterThreshold > 1 {
		errs = append(errs, ErrInvalidClusterThreshold)
	}
	if c.MinAwardMentions < 1 || c.WinnerMinMentions < 1 || c.NomineeMinMentions < 1 ||
		c.PresenterMinMentions < 1 || c.HostMinMentions < 1 {
		errs = append(errs, ErrInvalidMinMentions)
	}
	if c.NomineeTopN < 1 || c.PresenterTopN < 1 || c.HostTopN < 1 {
		errs = append(errs, ErrInvalidTopN)
	}

	return errs
}

// LogSummary returns a summary of the configuration suitable for logging.
// Connection strings are masked to prevent accidental credential exposure.
func (c *Config) LogSummary() map[string]string {
	return map[string]string{
		"env":                    c.Env,
		"year":                   c.Year,
		"output_dir":             c.OutputDir,
		"metrics_addr":           c.MetricsAddr,
		"templates":              fmt.Sprintf("%d", len(c.Templates)),
		"min_award_mentions":     fmt.Sprintf("%d", c.MinAwardMentions),
		"cluster_threshold":      fmt.Sprintf("%.2f", c.ClusterThreshold),
		"expected_award_count":   fmt.Sprintf("%d", c.ExpectedAwardCount),
		"winner_min_mentions":    fmt.Sprintf("%d", c.WinnerMinMentions),
		"nominee_min_mentions":   fmt.Sprintf("%d", c.NomineeMinMentions),
		"nominee_top_n":          fmt.Sprintf("%d", c.NomineeTopN),
		"presenter_min_mentions": fmt.Sprintf("%d", c.PresenterMinMentions),
		"presenter_top_n":        fmt.Sprintf("%d", c.PresenterTopN),
		"host_min_mentions":      fmt.Sprintf("%d", c.HostMinMentions),
		"host_top_n":             fmt.Sprintf("%d", c.HostTopN),
		"database_url":           maskConnectionString(c.DatabaseURL),
		"redis_url":              maskConnectionString(c.RedisURL),
	}
}

// maskConnectionString hides everything after the scheme of a connection
// URL. Empty values render as "<not set>".
func maskConnectionString(s string) string {
	if s == "" {
		return "<not set>"
	}
	for i := 0; i < len(s)-2; i++ {
		if s[i] == ':' && s[i+1] == '/' && s[i+2] == '/' {
			return s[:i+3] + "****"
		}
	}
	return "****"
}
