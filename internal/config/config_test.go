package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if len(cfg.Languages) != 0 {
		t.Errorf("Languages = %v, want empty", cfg.Languages)
	}
	if cfg.Output.Dir != "" {
		t.Errorf("Output.Dir = %q, want empty", cfg.Output.Dir)
	}
	if cfg.LLM.Provider != DefaultProvider {
		t.Errorf("LLM.Provider = %q, want %q", cfg.LLM.Provider, DefaultProvider)
	}
	if cfg.PDF.FontSet != "core" {
		t.Errorf("PDF.FontSet = %q, want core", cfg.PDF.FontSet)
	}
	if !cfg.CompressPDF() {
		t.Error("CompressPDF() = false, want true")
	}
	if cfg.LLMTimeout() != DefaultTimeout {
		t.Errorf("LLMTimeout() = %v, want %v", cfg.LLMTimeout(), DefaultTimeout)
	}
	if cfg.Translation.Cache.Backend != "none" {
		t.Errorf("Cache.Backend = %q, want none", cfg.Translation.Cache.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		fieldName string
		value     string
		maxLength int
		wantErr   bool
	}{
		{
			name:      "empty value is valid",
			fieldName: "test",
			value:     "",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value at limit is valid",
			fieldName: "test",
			value:     "1234567890",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value over limit returns error",
			fieldName: "test.field",
			value:     "12345678901",
			maxLength: 10,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength(tt.fieldName, tt.value, tt.maxLength)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if !strings.Contains(err.Error(), tt.fieldName) {
					t.Errorf("error %q should mention field %q", err, tt.fieldName)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
		field   string
	}{
		{
			name:   "languages accepted",
			mutate: func(c *Config) { c.Languages = []string{"Spanish", "French"} },
		},
		{
			name:    "blank language rejected",
			mutate:  func(c *Config) { c.Languages = []string{"Spanish", "  "} },
			wantErr: ErrInvalidValue,
			field:   "languages[1]",
		},
		{
			name:    "language too long",
			mutate:  func(c *Config) { c.Languages = []string{strings.Repeat("x", MaxLanguageLength+1)} },
			wantErr: ErrFieldTooLong,
			field:   "languages[0]",
		},
		{
			name: "too many languages",
			mutate: func(c *Config) {
				c.Languages = make([]string, MaxLanguages+1)
				for i := range c.Languages {
					c.Languages[i] = "Spanish"
				}
			},
			wantErr: ErrInvalidValue,
			field:   "languages",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.LLM.Provider = "anthropic-local" },
			wantErr: ErrInvalidValue,
			field:   "llm.provider",
		},
		{
			name:   "provider is case-insensitive",
			mutate: func(c *Config) { c.LLM.Provider = "Mock" },
		},
		{
			name:    "bad timeout",
			mutate:  func(c *Config) { c.LLM.Timeout = "two minutes" },
			wantErr: ErrInvalidValue,
			field:   "llm.timeout",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.LLM.Timeout = "-5s" },
			wantErr: ErrInvalidValue,
			field:   "llm.timeout",
		},
		{
			name:    "baseURL too long",
			mutate:  func(c *Config) { c.LLM.BaseURL = "https://" + strings.Repeat("a", MaxURLLength) },
			wantErr: ErrFieldTooLong,
			field:   "llm.baseURL",
		},
		{
			name:    "unknown font set",
			mutate:  func(c *Config) { c.PDF.FontSet = "helvetica" },
			wantErr: ErrInvalidValue,
			field:   "pdf.fontSet",
		},
		{
			name:   "chrome engine accepted",
			mutate: func(c *Config) { c.PDF.UnicodeEngine = "chrome" },
		},
		{
			name:    "unknown engine",
			mutate:  func(c *Config) { c.PDF.UnicodeEngine = "wkhtmltopdf" },
			wantErr: ErrInvalidValue,
			field:   "pdf.unicodeEngine",
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Translation.Workers = -1 },
			wantErr: ErrInvalidValue,
			field:   "translation.workers",
		},
		{
			name:    "too many workers",
			mutate:  func(c *Config) { c.Translation.Workers = MaxWorkers + 1 },
			wantErr: ErrInvalidValue,
			field:   "translation.workers",
		},
		{
			name:    "redis backend without address",
			mutate:  func(c *Config) { c.Translation.Cache.Backend = "redis" },
			wantErr: ErrInvalidValue,
			field:   "translation.cache.redisAddr",
		},
		{
			name: "redis backend with address",
			mutate: func(c *Config) {
				c.Translation.Cache.Backend = "redis"
				c.Translation.Cache.RedisAddr = "localhost:6379"
			},
		},
		{
			name:    "bad ttl",
			mutate:  func(c *Config) { c.Translation.Cache.TTL = "forever" },
			wantErr: ErrInvalidValue,
			field:   "translation.cache.ttl",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "loud" },
			wantErr: ErrInvalidValue,
			field:   "log.level",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: ErrInvalidValue,
			field:   "log.format",
		},
		{
			name:    "output dir too long",
			mutate:  func(c *Config) { c.Output.Dir = strings.Repeat("d", MaxPathLength+1) },
			wantErr: ErrFieldTooLong,
			field:   "output.dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q should mention %q", err, tt.field)
			}
		})
	}
}

func TestConfig_Durations(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.LLM.Timeout = "45s"
	cfg.Translation.Cache.TTL = "1h"

	if got := cfg.LLMTimeout(); got != 45*time.Second {
		t.Errorf("LLMTimeout() = %v, want 45s", got)
	}
	if got := cfg.CacheTTL(); got != time.Hour {
		t.Errorf("CacheTTL() = %v, want 1h", got)
	}

	cfg.LLM.Timeout = ""
	cfg.Translation.Cache.TTL = "garbage"
	if got := cfg.LLMTimeout(); got != DefaultTimeout {
		t.Errorf("LLMTimeout() with empty value = %v, want %v", got, DefaultTimeout)
	}
	if got := cfg.CacheTTL(); got != DefaultCacheTTL {
		t.Errorf("CacheTTL() with bad value = %v, want %v", got, DefaultCacheTTL)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "lease.yaml")
		content := `languages: [Spanish, French]
output:
  dir: "out"
llm:
  provider: mock
  timeout: 30s
pdf:
  fontSet: ascii
  compress: false
translation:
  workers: 3
  cache:
    backend: memory
    ttl: 10m
log:
  level: debug
  format: json
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if len(cfg.Languages) != 2 || cfg.Languages[0] != "Spanish" || cfg.Languages[1] != "French" {
			t.Errorf("Languages = %v, want [Spanish French]", cfg.Languages)
		}
		if cfg.Output.Dir != "out" {
			t.Errorf("Output.Dir = %q, want out", cfg.Output.Dir)
		}
		if cfg.LLM.Provider != "mock" {
			t.Errorf("LLM.Provider = %q, want mock", cfg.LLM.Provider)
		}
		if cfg.LLMTimeout() != 30*time.Second {
			t.Errorf("LLMTimeout() = %v, want 30s", cfg.LLMTimeout())
		}
		if cfg.PDF.FontSet != "ascii" {
			t.Errorf("PDF.FontSet = %q, want ascii", cfg.PDF.FontSet)
		}
		if cfg.CompressPDF() {
			t.Error("CompressPDF() = true, want false")
		}
		if cfg.Translation.Workers != 3 {
			t.Errorf("Translation.Workers = %d, want 3", cfg.Translation.Workers)
		}
		if cfg.CacheTTL() != 10*time.Minute {
			t.Errorf("CacheTTL() = %v, want 10m", cfg.CacheTTL())
		}
		if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
			t.Errorf("Log = %+v, want debug/json", cfg.Log)
		}
	})

	t.Run("absent fields keep defaults", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "partial.yaml")
		if err := os.WriteFile(configPath, []byte("languages: [German]\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.LLM.Model != DefaultModel {
			t.Errorf("LLM.Model = %q, want %q", cfg.LLM.Model, DefaultModel)
		}
		if !cfg.CompressPDF() {
			t.Error("CompressPDF() = false, want true")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(configPath, []byte("watermark:\n  enabled: true\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(configPath, []byte("pdf:\n  unicodeEngine: prince\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("config name resolves in current directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "work.yml"), []byte("languages: [Italian]\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("work")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if len(cfg.Languages) != 1 || cfg.Languages[0] != "Italian" {
			t.Errorf("Languages = %v, want [Italian]", cfg.Languages)
		}
	})

	t.Run("yaml preferred over yml", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "both.yaml"), []byte("languages: [Dutch]\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "both.yml"), []byte("languages: [Polish]\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("both")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Languages[0] != "Dutch" {
			t.Errorf("Languages = %v, want [Dutch]", cfg.Languages)
		}
	})

	t.Run("config name resolves in user config directory", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("XDG_CONFIG_HOME only drives os.UserConfigDir on linux")
		}
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", home)
		appDir := filepath.Join(home, AppName)
		if err := os.MkdirAll(appDir, 0o750); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(filepath.Join(appDir, "team.yaml"), []byte("languages: [Korean]\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Chdir(t.TempDir())

		cfg, err := LoadConfig("team")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Languages[0] != "Korean" {
			t.Errorf("Languages = %v, want [Korean]", cfg.Languages)
		}
	})

	t.Run("missing name lists searched paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("absent")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "absent.yaml") || !strings.Contains(err.Error(), "absent.yml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}

func TestSearchedPaths(t *testing.T) {
	t.Parallel()

	paths := SearchedPaths("lease")
	if len(paths) < 2 {
		t.Fatalf("SearchedPaths() = %v, want at least 2 entries", paths)
	}
	if paths[0] != "lease.yaml" || paths[1] != "lease.yml" {
		t.Errorf("SearchedPaths() local entries = %v", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, AppName) {
			t.Errorf("user path %q should be under %q", p, AppName)
		}
	}
}
