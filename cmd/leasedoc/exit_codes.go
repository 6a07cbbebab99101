package main

import (
	"errors"
	"os"

	leasedoc "github.com/alnah/go-leasedoc"
	"github.com/alnah/go-leasedoc/internal/assets"
	"github.com/alnah/go-leasedoc/internal/browserpdf"
	"github.com/alnah/go-leasedoc/internal/config"
	"github.com/alnah/go-leasedoc/internal/translate"
)

// Exit codes for the leasedoc CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All artifacts written
	ExitGeneral = 1 // General error, or some translations failed
	ExitUsage   = 2 // Invalid flags, config, or input
	ExitIO      = 3 // File not found, permission denied
	ExitRender  = 4 // Original lease could not be rendered, browser errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Rendering errors (exit 4)
	if errors.Is(err, browserpdf.ErrBrowserConnect) ||
		errors.Is(err, browserpdf.ErrPageCreate) ||
		errors.Is(err, browserpdf.ErrPageLoad) ||
		errors.Is(err, browserpdf.ErrPDFGeneration) ||
		errors.Is(err, leasedoc.ErrHTMLConversion) ||
		errors.Is(err, leasedoc.ErrDOCXGeneration) {
		return ExitRender
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteArtifact) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, leasedoc.ErrEmptyDraft) ||
		errors.Is(err, leasedoc.ErrInvalidDraft) ||
		errors.Is(err, leasedoc.ErrInvalidLanguage) ||
		errors.Is(err, leasedoc.ErrNoTranslator) ||
		errors.Is(err, leasedoc.ErrEmptyGeneration) ||
		errors.Is(err, leasedoc.ErrMalformedEnvelope) ||
		errors.Is(err, translate.ErrMissingAPIKey) ||
		errors.Is(err, translate.ErrMissingModel) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrIncompleteBoilerplate) ||
		errors.Is(err, assets.ErrInvalidFrontMatter) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrTooManyInputs) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
