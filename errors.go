package leasedoc

import (
	"errors"

	"github.com/alnah/go-leasedoc/internal/pdfdoc"
)

// Sentinel errors for library operations.
var (
	// Input errors.
	ErrEmptyDraft        = errors.New("lease body cannot be empty")
	ErrInvalidDraft      = errors.New("invalid lease draft")
	ErrInvalidLanguage   = errors.New("invalid language")
	ErrNoTranslator      = errors.New("no translator configured")
	ErrEmptyGeneration   = errors.New("generator produced no output")
	ErrMalformedEnvelope = errors.New("malformed lease envelope")

	// Rendering errors.
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrDOCXGeneration = errors.New("DOCX generation failed")
	ErrTranslation    = errors.New("translation failed")

	// ErrLanguageExcluded marks a PDF left absent because the language is on
	// the PDF exclusion list.
	ErrLanguageExcluded = errors.New("PDF not produced for this language")

	// ErrUnsupportedScript marks a PDF left absent because the text uses a
	// script the PDF fonts cannot draw.
	ErrUnsupportedScript = pdfdoc.ErrUnsupportedScript
)
