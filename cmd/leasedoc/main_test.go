package main

// Notes:
// - isCommand / looksLikeLeaseInput: we test command and input detection.
// - runMain: we test exit codes and routing. Full renders are covered by
//   render_test.go.
// - resolveTimeoutWithEnv: we test duration parsing, validation, and priority.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-leasedoc/internal/config"
)

// newTestEnv returns an Environment writing to buffers.
func newTestEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    time.Now,
		Stdout: &stdout,
		Stderr: &stderr,
	}
	return env, &stdout, &stderr
}

// ---------------------------------------------------------------------------
// TestVersion - Version variable
// ---------------------------------------------------------------------------

func TestVersion(t *testing.T) {
	t.Parallel()

	if Version == "" {
		t.Error("Version should not be empty")
	}
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name detection
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"render", true},
		{"doctor", true},
		{"completion", true},
		{"version", true},
		{"help", true},
		{"foo", false},
		{"", false},
		{"lease.md", false},
		{"Render", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := isCommand(tt.input); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLooksLikeLeaseInput - Implicit render detection
// ---------------------------------------------------------------------------

func TestLooksLikeLeaseInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"lease.md", true},
		{"lease.markdown", true},
		{"/path/to/lease.md", true},
		{"draft.json", true},
		{"lease.txt", false},
		{"lease", false},
		{"", false},
		{"lease.MD", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := looksLikeLeaseInput(tt.input); got != tt.want {
				t.Errorf("looksLikeLeaseInput(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsVerbose - Verbose flag detection before flag parsing
// ---------------------------------------------------------------------------

func TestIsVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"short flag", []string{"leasedoc", "render", "-v"}, true},
		{"long flag", []string{"leasedoc", "render", "--verbose"}, true},
		{"absent", []string{"leasedoc", "render", "lease.md"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isVerbose(tt.args); got != tt.want {
				t.Errorf("isVerbose(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMaxprocsLogger - automaxprocs output only in verbose mode
// ---------------------------------------------------------------------------

func TestMaxprocsLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	maxprocsLogger(false, &buf)("GOMAXPROCS=%d", 4)
	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}

	maxprocsLogger(true, &buf)("GOMAXPROCS=%d", 4)
	if got := buf.String(); got != "GOMAXPROCS=4\n" {
		t.Errorf("verbose logger wrote %q, want %q", got, "GOMAXPROCS=4\n")
	}
}

// ---------------------------------------------------------------------------
// TestResolveTimeoutWithEnv - Timeout resolution with env var support
// ---------------------------------------------------------------------------

func TestResolveTimeoutWithEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		flagValue   string
		envValue    time.Duration
		configValue string
		want        time.Duration
		errSubstr   string
	}{
		{name: "all empty uses default", want: config.DefaultTimeout},
		{name: "flag only", flagValue: "2m", want: 2 * time.Minute},
		{name: "env only", envValue: 45 * time.Second, want: 45 * time.Second},
		{name: "config only", configValue: "30s", want: 30 * time.Second},
		{name: "flag overrides env and config", flagValue: "5m", envValue: 45 * time.Second, configValue: "30s", want: 5 * time.Minute},
		{name: "env overrides config", envValue: 2 * time.Minute, configValue: "30s", want: 2 * time.Minute},
		{name: "combined duration", flagValue: "1m30s", want: 90 * time.Second},
		{name: "fractional seconds", flagValue: "500ms", want: 500 * time.Millisecond},
		{name: "invalid flag format", flagValue: "abc", errSubstr: "invalid timeout"},
		{name: "invalid config format", configValue: "xyz", errSubstr: "invalid timeout"},
		{name: "negative duration", flagValue: "-5s", errSubstr: "must be positive"},
		{name: "zero duration", flagValue: "0s", errSubstr: "must be positive"},
		{name: "invalid flag overrides valid env and config", flagValue: "invalid", envValue: time.Minute, configValue: "30s", errSubstr: "invalid timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeoutWithEnv(tt.flagValue, tt.envValue, tt.configValue)
			if tt.errSubstr != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("error should contain %q, got: %v", tt.errSubstr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveTimeoutWithEnv(%q, %v, %q) = %v, want %v",
					tt.flagValue, tt.envValue, tt.configValue, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Main entry point routing and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage",
			args:         []string{"leasedoc"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: leasedoc"},
		},
		{
			name:         "version command",
			args:         []string{"leasedoc", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"leasedoc " + Version},
		},
		{
			name:         "version flag",
			args:         []string{"leasedoc", "--version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"leasedoc"},
		},
		{
			name:         "help command",
			args:         []string{"leasedoc", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: leasedoc", "Commands:"},
		},
		{
			name:         "help render",
			args:         []string{"leasedoc", "help", "render"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: leasedoc render"},
		},
		{
			name:         "unknown command",
			args:         []string{"leasedoc", "unknown"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: unknown"},
		},
		{
			name:         "implicit render of missing file",
			args:         []string{"leasedoc", "nonexistent.md"},
			wantCode:     ExitIO,
			wantInStderr: []string{"failed to read lease input"},
		},
		{
			name:         "render without input",
			args:         []string{"leasedoc", "render"},
			wantCode:     ExitIO,
			wantInStderr: []string{"no input specified"},
		},
		{
			name:         "render with two inputs",
			args:         []string{"leasedoc", "render", "a.md", "b.md"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"single input"},
		},
		{
			name:     "render bad flag",
			args:     []string{"leasedoc", "render", "--no-such-flag"},
			wantCode: ExitUsage,
		},
		{
			name:         "render help flag",
			args:         []string{"leasedoc", "render", "--help"},
			wantCode:     ExitSuccess,
			wantInStderr: []string{"Usage: leasedoc render"},
		},
		{
			name:         "invalid worker count",
			args:         []string{"leasedoc", "render", "-w", "1000", "lease.md"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid worker count"},
		},
		{
			name:         "invalid font set",
			args:         []string{"leasedoc", "render", "--font-set", "serif", "lease.md"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"fontSet"},
		},
		{
			name:         "config not found carries hint",
			args:         []string{"leasedoc", "render", "-c", "./missing-config.yaml", "lease.md"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"config file not found", "hint:"},
		},
		{
			name:     "unsupported shell",
			args:     []string{"leasedoc", "completion", "badshell"},
			wantCode: ExitUsage,
		},
		{
			name:         "completion without shell prints usage",
			args:         []string{"leasedoc", "completion"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: leasedoc completion"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv()
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}
