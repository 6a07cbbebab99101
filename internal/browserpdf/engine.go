package browserpdf

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/alnah/go-leasedoc/internal/assets"
	"github.com/alnah/go-leasedoc/internal/fileutil"
	"github.com/alnah/go-leasedoc/internal/pipeline"
)

// DefaultTimeout bounds page load when the context carries no deadline.
const DefaultTimeout = 30 * time.Second

// Engine renders lease HTML to PDF in headless Chrome. The title page,
// signature block and exhibits are added around the body, matching the
// document produced by internal/pdfdoc.
type Engine struct {
	renderer    renderer
	converter   pipeline.HTMLConverter
	injector    pipeline.CSSInjector
	boilerplate *assets.Boilerplate
	css         string
	timeout     time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the page load timeout. Default: DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithBoilerplate replaces the embedded fixed sections.
func WithBoilerplate(bp *assets.Boilerplate) Option {
	return func(e *Engine) {
		if bp != nil {
			e.boilerplate = bp
		}
	}
}

// WithCSS replaces the embedded lease stylesheet.
func WithCSS(css string) Option {
	return func(e *Engine) {
		e.css = css
	}
}

// New creates an Engine. No browser is started until the first RenderPDF.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		converter: pipeline.NewGoldmarkConverter(),
		injector:  &pipeline.CSSInjection{},
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.boilerplate == nil {
		bp, err := assets.LoadBoilerplate()
		if err != nil {
			return nil, err
		}
		e.boilerplate = bp
	}
	if e.css == "" {
		css, err := assets.LoadStyle(assets.DefaultStyleName)
		if err != nil {
			return nil, err
		}
		e.css = css
	}
	if e.renderer == nil {
		e.renderer = newRodRenderer(e.timeout)
	}
	return e, nil
}

// RenderPDF prints the lease whose body is the HTML fragment bodyHTML.
func (e *Engine) RenderPDF(ctx context.Context, bodyHTML string) ([]byte, error) {
	doc, err := e.Document(ctx, bodyHTML)
	if err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(doc, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	return e.renderer.RenderFromFile(ctx, path)
}

// Document builds the complete styled HTML document Chrome prints.
func (e *Engine) Document(ctx context.Context, bodyHTML string) (string, error) {
	var sb strings.Builder

	sb.WriteString(`<div class="title-page">`)
	sb.WriteString(html.EscapeString(e.boilerplate.Title))
	sb.WriteString("</div>\n")

	sb.WriteString(`<section class="lease-body">`)
	sb.WriteString(bodyHTML)
	sb.WriteString("</section>\n")

	fixed := append([]assets.Section{e.boilerplate.Signatures}, e.boilerplate.Exhibits...)
	for _, s := range fixed {
		fragment, err := e.converter.ToHTML(ctx, sectionMarkdown(s))
		if err != nil {
			return "", fmt.Errorf("rendering section %s: %w", s.Name, err)
		}
		sb.WriteString(`<section class="lease-section">`)
		sb.WriteString(fragment)
		sb.WriteString("</section>\n")
	}

	doc := pipeline.WrapDocument(e.boilerplate.Title, sb.String())
	return e.injector.InjectCSS(ctx, doc, e.css), nil
}

// Close shuts the browser down if it was started.
func (e *Engine) Close() error {
	if e.renderer == nil {
		return nil
	}
	return e.renderer.Close()
}

func sectionMarkdown(s assets.Section) string {
	if s.Body == "" {
		return "## " + s.Title
	}
	return "## " + s.Title + "\n\n" + s.Body
}
