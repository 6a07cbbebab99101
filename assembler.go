package leasedoc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-leasedoc/internal/assets"
	"github.com/alnah/go-leasedoc/internal/docx"
	"github.com/alnah/go-leasedoc/internal/logging"
	"github.com/alnah/go-leasedoc/internal/pdfdoc"
	"github.com/alnah/go-leasedoc/internal/pipeline"
	"github.com/alnah/go-leasedoc/internal/translate"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.Preprocessor)(nil)
	_ HTMLRenderer                  = (*pipeline.GoldmarkConverter)(nil)
	_ PDFRenderer                   = (*pdfdoc.Composer)(nil)
	_ DOCXRenderer                  = (*docx.Composer)(nil)
)

// Assembler renders lease drafts into artifact sets and fans translations
// out over a bounded worker pool. Create with NewAssembler and Close when done.
// Safe for concurrent use.
type Assembler struct {
	preprocessor   pipeline.MarkdownPreprocessor
	html           HTMLRenderer
	pdf            PDFRenderer
	unicodePDF     PDFRenderer
	docx           DOCXRenderer
	translator     translate.Translator
	boilerplate    *assets.Boilerplate
	logger         logging.Logger
	workers        int
	timeout        time.Duration
	exclusions     map[string]bool
	sourceLanguage string
}

// NewAssembler creates an Assembler. Renderers not supplied by options are
// built with the embedded boilerplate (or the one from WithBoilerplate).
func NewAssembler(opts ...Option) (*Assembler, error) {
	a := &Assembler{
		preprocessor:   &pipeline.Preprocessor{},
		logger:         logging.NoOp(),
		timeout:        DefaultTranslationTimeout,
		exclusions:     defaultExclusions,
		sourceLanguage: DefaultSourceLanguage,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.html == nil {
		a.html = pipeline.NewGoldmarkConverter()
	}
	if a.pdf == nil {
		c, err := pdfdoc.NewComposer(pdfdoc.WithBoilerplate(a.boilerplate))
		if err != nil {
			return nil, fmt.Errorf("initializing PDF composer: %w", err)
		}
		a.pdf = c
	}
	if a.docx == nil {
		c, err := docx.NewComposer(docx.WithBoilerplate(a.boilerplate))
		if err != nil {
			return nil, fmt.Errorf("initializing DOCX composer: %w", err)
		}
		a.docx = c
	}
	return a, nil
}

// Workers returns the resolved translation worker count.
func (a *Assembler) Workers() int {
	return ResolvePoolSize(a.workers)
}

// Render produces the artifact set of the original draft. HTML and DOCX
// failures are returned; a PDF failure leaves the PDF absent with the
// reason in PDFErr.
func (a *Assembler) Render(ctx context.Context, draft LeaseDraft) (*ArtifactSet, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	md := a.preprocessor.PreprocessMarkdown(ctx, draft.Markdown())
	return a.renderSet(ctx, a.logger, a.sourceLanguage, md)
}

// Assemble renders the original draft and one variant per requested
// language. It fails only for invalid input or when the original artifact
// set cannot be rendered; a failing translation is reported in its
// variant's Err and never aborts the others.
func (a *Assembler) Assemble(ctx context.Context, draft LeaseDraft, languages ...string) (*Result, error) {
	langs, err := dedupeLanguages(languages)
	if err != nil {
		return nil, err
	}
	if len(langs) > 0 && a.translator == nil {
		return nil, ErrNoTranslator
	}

	batchID := uuid.NewString()
	log := a.logger.WithFields(map[string]any{"batch_id": batchID})

	original, err := a.Render(ctx, draft)
	if err != nil {
		log.Error("original lease failed to render", "error", err)
		return nil, err
	}

	res := &Result{BatchID: batchID, Original: *original}
	if len(langs) == 0 {
		return res, nil
	}

	log.Info("translation batch started", "languages", len(langs), "workers", min(a.Workers(), len(langs)))
	start := time.Now()
	res.Translations = a.translateAll(ctx, log, original.Markdown, langs)

	failed := 0
	for _, v := range res.Translations {
		if v.Err != nil {
			failed++
		}
	}
	log.Info("translation batch finished",
		"languages", len(langs),
		"failed", failed,
		"duration_ms", time.Since(start).Milliseconds())

	return res, nil
}

// translateAll runs one job per language on a bounded pool. Results keep
// the order of langs.
func (a *Assembler) translateAll(ctx context.Context, log logging.Logger, source string, langs []string) []TranslationVariant {
	concurrency := a.Workers()
	if concurrency > len(langs) {
		concurrency = len(langs)
	}

	results := make([]TranslationVariant, len(langs))
	var wg sync.WaitGroup
	jobs := make(chan int, len(langs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = TranslationVariant{Language: langs[idx], Err: err}
					continue
				}
				results[idx] = a.translateOne(ctx, log, source, langs[idx])
			}
		}()
	}

	for i := range langs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// translateOne translates source into language and renders the result.
func (a *Assembler) translateOne(ctx context.Context, log logging.Logger, source, language string) TranslationVariant {
	log = log.WithFields(map[string]any{"language": language})
	v := TranslationVariant{Language: language}

	translated, err := a.translate(ctx, source, language)
	if err != nil {
		v.Err = fmt.Errorf("%w: %s: %w", ErrTranslation, language, err)
		log.Error("translation failed", "error", err)
		return v
	}

	md := a.preprocessor.PreprocessMarkdown(ctx, translated)
	if strings.TrimSpace(md) == "" {
		v.Err = fmt.Errorf("%w: %s: %w", ErrTranslation, language, ErrEmptyGeneration)
		log.Error("translation returned no text")
		return v
	}
	v.Draft = LeaseDraft{Body: md}

	set, err := a.renderSet(ctx, log, language, md)
	if err != nil {
		v.Err = err
		log.Error("translation failed to render", "error", err)
		return v
	}
	v.Artifacts = set

	log.Info("translation rendered", "pdf", set.HasPDF())
	return v
}

// translate calls the translator under the per-call timeout. A panic is
// returned as an error.
func (a *Assembler) translate(ctx context.Context, source, language string) (out string, err error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	err = guard("translator", func() error {
		var terr error
		out, terr = a.translator.Translate(ctx, source, language)
		return terr
	})
	if err != nil {
		return "", err
	}
	// A translator that ignores its context may still return after the deadline.
	if cerr := ctx.Err(); cerr != nil {
		return "", cerr
	}
	return out, nil
}

// renderSet renders normalized Markdown to HTML, DOCX and, when allowed, PDF.
func (a *Assembler) renderSet(ctx context.Context, log logging.Logger, language, md string) (*ArtifactSet, error) {
	set := &ArtifactSet{Language: language, Markdown: md}

	err := guard("HTML renderer", func() error {
		var herr error
		set.HTML, herr = a.html.ToHTML(ctx, md)
		return herr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrHTMLConversion, language, err)
	}

	err = guard("DOCX renderer", func() error {
		var derr error
		set.DOCX, derr = a.docx.RenderDOCX(ctx, md, language)
		return derr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDOCXGeneration, language, err)
	}

	set.PDF, set.PDFErr = a.renderPDF(ctx, language, set.HTML)
	if set.PDFErr != nil {
		if errors.Is(set.PDFErr, context.Canceled) || errors.Is(set.PDFErr, context.DeadlineExceeded) {
			return nil, set.PDFErr
		}
		log.Warn("PDF absent", "language", language, "reason", set.PDFErr.Error())
	}
	return set, nil
}

// renderPDF applies the exclusion policy and the Unicode fallback. It never
// returns bytes together with an error.
func (a *Assembler) renderPDF(ctx context.Context, language, html string) ([]byte, error) {
	if a.exclusions[canonicalLanguage(language)] {
		if a.unicodePDF == nil {
			return nil, ErrLanguageExcluded
		}
		return a.callPDF(ctx, a.unicodePDF, "Unicode PDF renderer", html)
	}

	out, err := a.callPDF(ctx, a.pdf, "PDF renderer", html)
	if err != nil && a.unicodePDF != nil && errors.Is(err, ErrUnsupportedScript) {
		return a.callPDF(ctx, a.unicodePDF, "Unicode PDF renderer", html)
	}
	return out, err
}

func (a *Assembler) callPDF(ctx context.Context, r PDFRenderer, name, html string) ([]byte, error) {
	var out []byte
	err := guard(name, func() error {
		var perr error
		out, perr = r.RenderPDF(ctx, html)
		return perr
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrPDFGeneration, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s returned no bytes", ErrPDFGeneration, name)
	}
	return out, nil
}

// Close releases renderer resources such as a headless browser.
// Returns an aggregated error if several renderers fail to close.
func (a *Assembler) Close() error {
	var errs []error
	seen := map[any]bool{}
	for _, r := range []any{a.pdf, a.unicodePDF, a.docx, a.html} {
		c, ok := r.(io.Closer)
		if !ok || seen[c] {
			continue
		}
		seen[c] = true
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// guard runs fn and converts a panic into an error.
func guard(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", name, r)
		}
	}()
	return fn()
}
