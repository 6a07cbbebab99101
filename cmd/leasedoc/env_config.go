package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-leasedoc/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // LEASEDOC_CONFIG: config file name or path
	OutputDir  string        // LEASEDOC_OUTPUT_DIR: output directory
	Languages  []string      // LEASEDOC_LANGUAGES: comma-separated languages
	Timeout    time.Duration // LEASEDOC_TIMEOUT: per-language translation timeout
	Workers    int           // LEASEDOC_WORKERS: concurrent translations
	RedisAddr  string        // LEASEDOC_REDIS_ADDR: translation cache address
}

// knownEnvVars lists valid LEASEDOC_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"LEASEDOC_CONFIG":     true,
	"LEASEDOC_OUTPUT_DIR": true,
	"LEASEDOC_LANGUAGES":  true,
	"LEASEDOC_TIMEOUT":    true,
	"LEASEDOC_WORKERS":    true,
	"LEASEDOC_REDIS_ADDR": true,
	"LEASEDOC_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("LEASEDOC_CONFIG"),
		OutputDir:  os.Getenv("LEASEDOC_OUTPUT_DIR"),
		Languages:  splitList(os.Getenv("LEASEDOC_LANGUAGES")),
		RedisAddr:  os.Getenv("LEASEDOC_REDIS_ADDR"),
	}

	if timeout := os.Getenv("LEASEDOC_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("LEASEDOC_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// splitList splits a comma-separated list, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// warnUnknownEnvVars logs warnings for unrecognized LEASEDOC_* variables.
// Helps catch typos like LEASEDOC_LANGUAGE instead of LEASEDOC_LANGUAGES.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "LEASEDOC_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > config file > env vars > defaults
// (CLI flags are applied later via mergeFlags; timeout is resolved
// separately in resolveTimeoutWithEnv).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" && cfg.Output.Dir == "" {
		cfg.Output.Dir = env.OutputDir
	}
	if len(env.Languages) > 0 && len(cfg.Languages) == 0 {
		cfg.Languages = env.Languages
	}
	if env.Workers > 0 && cfg.Translation.Workers == 0 {
		cfg.Translation.Workers = env.Workers
	}

	// Redis address (auto-enables the redis cache)
	if env.RedisAddr != "" && cfg.Translation.Cache.RedisAddr == "" {
		cfg.Translation.Cache.RedisAddr = env.RedisAddr
		if cfg.Translation.Cache.Backend == "" || cfg.Translation.Cache.Backend == "none" {
			cfg.Translation.Cache.Backend = "redis"
		}
	}
}
