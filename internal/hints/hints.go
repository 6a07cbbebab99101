// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-leasedoc/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors of the
// chrome PDF engine. Detects CI/Docker and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow translations.
func ForTimeout() string {
	return format("for long leases or slow models, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(slashed(p), "/leasedoc/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForMissingAPIKey returns hints when the translation model has no API key.
func ForMissingAPIKey(envName string) string {
	if envName == "" {
		envName = "OPENAI_API_KEY"
	}
	return formatHints([]string{
		"export " + envName + " or add it to .env",
		"use --mock-llm to render without a model",
	})
}

// ForUnsupportedScript returns hints when a translation cannot be set in
// the PDF core fonts. The DOCX artifact is still produced.
func ForUnsupportedScript() string {
	return format("the DOCX file carries the full text; set pdf.unicodeEngine: chrome for a Unicode PDF")
}

// ForMalformedEnvelope returns hints when generator output is not a JSON object.
func ForMalformedEnvelope() string {
	return format(`expected {"lease": "...", "checklist": "...", "addenda": [...]}; pass Markdown without --envelope`)
}

// slashed normalizes Windows separators so path checks work on all platforms.
func slashed(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
