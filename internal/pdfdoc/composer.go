package pdfdoc

import (
	"bytes"
	"context"
	"fmt"

	"github.com/alnah/go-leasedoc/internal/assets"
	"github.com/alnah/go-leasedoc/internal/blocks"
)

// Composer renders lease HTML to PDF bytes.
// Safe for concurrent use: each call builds its own measurement state.
type Composer struct {
	fonts       FontSet
	compress    bool
	boilerplate *assets.Boilerplate
}

// Option configures a Composer.
type Option func(*Composer)

// WithFontSet selects the fonts text is drawn with. Default: CoreFontSet.
func WithFontSet(fs FontSet) Option {
	return func(c *Composer) {
		if fs != nil {
			c.fonts = fs
		}
	}
}

// WithCompression toggles stream compression. Default: enabled.
func WithCompression(enabled bool) Option {
	return func(c *Composer) {
		c.compress = enabled
	}
}

// WithBoilerplate replaces the embedded fixed sections.
func WithBoilerplate(bp *assets.Boilerplate) Option {
	return func(c *Composer) {
		if bp != nil {
			c.boilerplate = bp
		}
	}
}

// NewComposer creates a Composer. The embedded boilerplate is loaded unless
// WithBoilerplate supplies one.
func NewComposer(opts ...Option) (*Composer, error) {
	c := &Composer{fonts: CoreFontSet{}, compress: true}
	for _, opt := range opts {
		opt(c)
	}
	if c.boilerplate == nil {
		bp, err := assets.LoadBoilerplate()
		if err != nil {
			return nil, err
		}
		c.boilerplate = bp
	}
	return c, nil
}

// FontSet returns the configured font set.
func (c *Composer) FontSet() FontSet {
	return c.fonts
}

// Layout classifies html and lays it out with footers stamped.
func (c *Composer) Layout(ctx context.Context, html string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m := NewMetrics(c.fonts)
	doc, err := Layout(blocks.FromHTML(html), c.boilerplate, c.fonts, m)
	if err != nil {
		return nil, err
	}
	StampFooters(doc, m)
	return doc, nil
}

// RenderPDF converts an HTML fragment or document to PDF bytes.
func (c *Composer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	doc, err := c.Layout(ctx, html)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := Write(doc, &buf, WriteOptions{Fonts: c.fonts, Compress: c.compress}); err != nil {
		return nil, fmt.Errorf("rendering %d pages: %w", len(doc.Pages), err)
	}
	return buf.Bytes(), nil
}
