package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-leasedoc/internal/fileutil"
	"github.com/alnah/go-leasedoc/internal/logging"
	"github.com/alnah/go-leasedoc/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppName is the directory name used under the user config directory.
const AppName = "leasedoc"

// Field length limits.
const (
	MaxLanguages      = 32
	MaxLanguageLength = 64   // "Brazilian Portuguese", "zh-Hant"
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxModelLength    = 100
	MaxURLLength      = 2048 // Browser limit
	MaxEnvNameLength  = 100
	MaxRedisAddr      = 255
	MaxWorkers        = 64
)

// Default values applied by DefaultConfig and the accessor methods.
const (
	DefaultProvider  = "openai"
	DefaultModel     = "gpt-4o-mini"
	DefaultAPIKeyEnv = "OPENAI_API_KEY"
	DefaultTimeout   = 2 * time.Minute
	DefaultCacheTTL  = 24 * time.Hour
)

// Config holds all configuration for lease rendering.
type Config struct {
	Languages   []string          `yaml:"languages"`
	Output      OutputConfig      `yaml:"output"`
	LLM         LLMConfig         `yaml:"llm"`
	PDF         PDFConfig         `yaml:"pdf"`
	Translation TranslationConfig `yaml:"translation"`
	Assets      AssetsConfig      `yaml:"assets"`
	Log         LogConfig         `yaml:"log"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir string `yaml:"dir"` // Empty = current directory
}

// LLMConfig selects the translation model.
type LLMConfig struct {
	Provider  string `yaml:"provider"`  // "openai" or "mock"
	Model     string `yaml:"model"`     // e.g. "gpt-4o-mini"
	BaseURL   string `yaml:"baseURL"`   // Empty = provider default
	APIKeyEnv string `yaml:"apiKeyEnv"` // Environment variable holding the key
	Timeout   string `yaml:"timeout"`   // Per-call timeout, e.g. "2m"
}

// PDFConfig defines PDF rendering options.
type PDFConfig struct {
	FontSet       string `yaml:"fontSet"`       // "core" (default) or "ascii"
	Compress      *bool  `yaml:"compress"`      // nil = true
	UnicodeEngine string `yaml:"unicodeEngine"` // "none" (default) or "chrome"
}

// TranslationConfig defines the translation fan-out.
type TranslationConfig struct {
	Workers int         `yaml:"workers"` // 0 = derived from GOMAXPROCS
	Cache   CacheConfig `yaml:"cache"`
}

// CacheConfig defines the translation cache.
type CacheConfig struct {
	Backend   string `yaml:"backend"` // "none" (default), "memory" or "redis"
	RedisAddr string `yaml:"redisAddr"`
	TTL       string `yaml:"ttl"` // e.g. "24h"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// LogConfig defines logger options.
type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // json, console, pretty
}

// Validate checks enum values, durations and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if len(c.Languages) > MaxLanguages {
		return fmt.Errorf("%w: languages: %d entries (max %d)", ErrInvalidValue, len(c.Languages), MaxLanguages)
	}
	for i, lang := range c.Languages {
		name := fmt.Sprintf("languages[%d]", i)
		if strings.TrimSpace(lang) == "" {
			return fmt.Errorf("%w: %s: empty language", ErrInvalidValue, name)
		}
		if err := validateFieldLength(name, lang, MaxLanguageLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("output.dir", c.Output.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	// LLM
	if err := validateEnum("llm.provider", c.LLM.Provider, "openai", "mock"); err != nil {
		return err
	}
	if err := validateFieldLength("llm.model", c.LLM.Model, MaxModelLength); err != nil {
		return err
	}
	if err := validateFieldLength("llm.baseURL", c.LLM.BaseURL, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("llm.apiKeyEnv", c.LLM.APIKeyEnv, MaxEnvNameLength); err != nil {
		return err
	}
	if err := validateDuration("llm.timeout", c.LLM.Timeout); err != nil {
		return err
	}

	// PDF
	if err := validateEnum("pdf.fontSet", c.PDF.FontSet, "core", "ascii"); err != nil {
		return err
	}
	if err := validateEnum("pdf.unicodeEngine", c.PDF.UnicodeEngine, "none", "chrome"); err != nil {
		return err
	}

	// Translation
	if c.Translation.Workers < 0 || c.Translation.Workers > MaxWorkers {
		return fmt.Errorf("%w: translation.workers: must be between 0 and %d, got %d",
			ErrInvalidValue, MaxWorkers, c.Translation.Workers)
	}
	cache := c.Translation.Cache
	if err := validateEnum("translation.cache.backend", cache.Backend, "none", "memory", "redis"); err != nil {
		return err
	}
	if err := validateFieldLength("translation.cache.redisAddr", cache.RedisAddr, MaxRedisAddr); err != nil {
		return err
	}
	if strings.EqualFold(cache.Backend, "redis") && cache.RedisAddr == "" {
		return fmt.Errorf("%w: translation.cache.redisAddr: required when backend is redis", ErrInvalidValue)
	}
	if err := validateDuration("translation.cache.ttl", cache.TTL); err != nil {
		return err
	}

	// Log
	if c.Log.Level != "" && !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: log.level: %q", ErrInvalidValue, c.Log.Level)
	}
	if err := validateEnum("log.format", c.Log.Format, "json", "console", "pretty"); err != nil {
		return err
	}

	return nil
}

// LLMTimeout returns the per-call translation timeout.
func (c *Config) LLMTimeout() time.Duration {
	return parseDuration(c.LLM.Timeout, DefaultTimeout)
}

// CacheTTL returns the translation cache entry lifetime.
func (c *Config) CacheTTL() time.Duration {
	return parseDuration(c.Translation.Cache.TTL, DefaultCacheTTL)
}

// CompressPDF reports whether PDF streams are compressed.
func (c *Config) CompressPDF() bool {
	return c.PDF.Compress == nil || *c.PDF.Compress
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateEnum accepts an empty value or one of allowed, case-insensitively.
func validateEnum(fieldName, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be one of %s)", ErrInvalidValue, fieldName, value, strings.Join(allowed, ", "))
}

func validateDuration(fieldName, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, fieldName, err)
	}
	if d <= 0 {
		return fmt.Errorf("%w: %s: must be positive, got %s", ErrInvalidValue, fieldName, value)
	}
	return nil
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// DefaultConfig returns the configuration used when no file is given:
// no translations, core fonts, compressed PDFs, no cache.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Dir: ""},
		LLM: LLMConfig{
			Provider:  DefaultProvider,
			Model:     DefaultModel,
			APIKeyEnv: DefaultAPIKeyEnv,
			Timeout:   DefaultTimeout.String(),
		},
		PDF: PDFConfig{
			FontSet:       "core",
			UnicodeEngine: "none",
		},
		Translation: TranslationConfig{
			Cache: CacheConfig{Backend: "none"},
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/leasedoc/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// SearchedPaths lists the locations LoadConfig tries for a config name.
func SearchedPaths(name string) []string {
	paths := []string{name + ".yaml", name + ".yml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, AppName, name+".yaml"),
			filepath.Join(dir, AppName, name+".yml"))
	}
	return paths
}
