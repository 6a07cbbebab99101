package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	"github.com/redis/go-redis/v9"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-leasedoc/internal/config"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status      string          `json:"status"` // "ready", "warnings", "errors"
	Translation translationInfo `json:"translation"`
	Chrome      chromeInfo      `json:"chrome"`
	Env         envInfo         `json:"environment"`
	System      systemInfo      `json:"system"`
	Warnings    []string        `json:"warnings,omitempty"`
	Errors      []string        `json:"errors,omitempty"`
}

// translationInfo holds model and cache check results.
type translationInfo struct {
	Provider     string `json:"provider"`
	Model        string `json:"model,omitempty"`
	APIKeyEnv    string `json:"api_key_env,omitempty"`
	APIKeySet    bool   `json:"api_key_set"`
	CacheBackend string `json:"cache_backend"`
	CacheOK      bool   `json:"cache_ok"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Required bool   `json:"required"` // pdf.unicodeEngine is chrome
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
	Version  string `json:"version,omitempty"`
	Sandbox  bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	var (
		jsonOutput bool
		configName string
	)
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.BoolVar(&jsonOutput, "json", false, "output as JSON")
	fs.StringVarP(&configName, "config", "c", "", "config file name or path")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(configName, envCfg)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", withHint(err, configName, ""))
		return exitCodeFor(err)
	}
	applyEnvConfig(envCfg, cfg)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	result := runDoctor(ctx, cfg)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, cfg *config.Config) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkTranslation(ctx, cfg, result)
	checkEnvironment(result)
	checkChrome(cfg, result)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkTranslation verifies the model credentials and the translation cache.
// A missing API key only warns: rendering without translations still works.
func checkTranslation(ctx context.Context, cfg *config.Config, result *doctorResult) {
	info := &result.Translation
	info.Provider = strings.ToLower(cfg.LLM.Provider)
	info.CacheBackend = strings.ToLower(cfg.Translation.Cache.Backend)
	if info.CacheBackend == "" {
		info.CacheBackend = "none"
	}

	if info.Provider != "mock" {
		info.Model = cfg.LLM.Model
		info.APIKeyEnv = cfg.LLM.APIKeyEnv
		info.APIKeySet = os.Getenv(cfg.LLM.APIKeyEnv) != ""
		if !info.APIKeySet {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s not set. Translations will fail; use --mock-llm for offline runs", cfg.LLM.APIKeyEnv))
		}
	}

	switch info.CacheBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Translation.Cache.RedisAddr})
		defer func() { _ = client.Close() }()

		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Redis cache at %s unreachable (%v). Translations run uncached", cfg.Translation.Cache.RedisAddr, err))
			return
		}
		info.CacheOK = true
	default:
		info.CacheOK = true
	}
}

// checkChrome detects Chrome/Chromium installation. Chrome is only an
// error when the chrome Unicode engine is configured.
func checkChrome(cfg *config.Config, result *doctorResult) {
	result.Chrome.Required = strings.EqualFold(cfg.PDF.UnicodeEngine, "chrome")
	report := func(msg string) {
		if result.Chrome.Required {
			result.Errors = append(result.Errors, msg)
		} else {
			result.Warnings = append(result.Warnings, msg+" (only needed for pdf.unicodeEngine: chrome)")
		}
	}

	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			report("Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		report(fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	// #nosec G204 -- path comes from ROD_BROWSER_BIN or the launcher lookup
	out, err := exec.Command(chromePath, "--version").Output()
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
	if result.Chrome.Required && (result.Env.Container || result.Env.CI) && result.Chrome.Sandbox {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("LEASEDOC_CONTAINER") == "1" {
		return true, "LEASEDOC_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used by the chrome engine is writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "leasedoc-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "leasedoc doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Translation")
	if r.Translation.Provider == "mock" {
		fmt.Fprintln(w, "  [OK] Provider: mock (offline)")
	} else {
		fmt.Fprintf(w, "  [OK] Provider: %s (%s)\n", r.Translation.Provider, r.Translation.Model)
		if r.Translation.APIKeySet {
			fmt.Fprintf(w, "  [OK] %s: set\n", r.Translation.APIKeyEnv)
		} else {
			fmt.Fprintf(w, "  [WARN] %s: not set\n", r.Translation.APIKeyEnv)
		}
	}
	if r.Translation.CacheOK {
		fmt.Fprintf(w, "  [OK] Cache: %s\n", r.Translation.CacheBackend)
	} else {
		fmt.Fprintf(w, "  [WARN] Cache: %s unreachable\n", r.Translation.CacheBackend)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else if r.Chrome.Required {
		fmt.Fprintln(w, "  [ERROR] Not found")
	} else {
		fmt.Fprintln(w, "  [WARN] Not found (core-font PDFs only)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to render")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
