package leasedoc

import (
	"context"
	"time"

	"github.com/alnah/go-leasedoc/internal/assets"
	"github.com/alnah/go-leasedoc/internal/logging"
	"github.com/alnah/go-leasedoc/internal/translate"
)

// HTMLRenderer converts normalized Markdown to an HTML fragment.
type HTMLRenderer interface {
	ToHTML(ctx context.Context, markdown string) (string, error)
}

// PDFRenderer converts an HTML fragment to a complete lease PDF, fixed
// sections included.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// DOCXRenderer converts normalized Markdown to a complete lease DOCX.
type DOCXRenderer interface {
	RenderDOCX(ctx context.Context, markdown, language string) ([]byte, error)
}

// DefaultTranslationTimeout bounds one call to the text-generation service.
const DefaultTranslationTimeout = 2 * time.Minute

// Option configures an Assembler.
type Option func(*Assembler)

// WithTranslator sets the translation service. Assemble fails with
// ErrNoTranslator when languages are requested without one.
func WithTranslator(t translate.Translator) Option {
	return func(a *Assembler) {
		a.translator = t
	}
}

// WithHTMLRenderer replaces the goldmark HTML renderer.
func WithHTMLRenderer(r HTMLRenderer) Option {
	return func(a *Assembler) {
		a.html = r
	}
}

// WithPDFRenderer replaces the core-font PDF composer.
func WithPDFRenderer(r PDFRenderer) Option {
	return func(a *Assembler) {
		a.pdf = r
	}
}

// WithUnicodePDFRenderer sets a renderer used for excluded languages and
// for text the primary PDF renderer reports as ErrUnsupportedScript.
// Without it those PDFs are absent.
func WithUnicodePDFRenderer(r PDFRenderer) Option {
	return func(a *Assembler) {
		a.unicodePDF = r
	}
}

// WithDOCXRenderer replaces the DOCX composer.
func WithDOCXRenderer(r DOCXRenderer) Option {
	return func(a *Assembler) {
		a.docx = r
	}
}

// WithBoilerplate sets the fixed sections used by the default PDF and DOCX
// composers.
func WithBoilerplate(bp *assets.Boilerplate) Option {
	return func(a *Assembler) {
		a.boilerplate = bp
	}
}

// WithLogger sets the logger. Default: no-op.
func WithLogger(l logging.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithWorkers sets the number of concurrent translations. Zero or less
// derives the count from GOMAXPROCS (see ResolvePoolSize).
func WithWorkers(n int) Option {
	return func(a *Assembler) {
		a.workers = n
	}
}

// WithTranslationTimeout sets the per-language translation timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTranslationTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("leasedoc: WithTranslationTimeout duration must be positive")
	}
	return func(a *Assembler) {
		a.timeout = d
	}
}

// WithPDFExclusions replaces DefaultPDFExclusions. Pass no languages to
// produce a PDF for every language.
func WithPDFExclusions(languages ...string) Option {
	return func(a *Assembler) {
		a.exclusions = exclusionSet(languages)
	}
}

// WithSourceLanguage labels the original artifact set.
// Default: DefaultSourceLanguage.
func WithSourceLanguage(language string) Option {
	return func(a *Assembler) {
		a.sourceLanguage = language
	}
}
