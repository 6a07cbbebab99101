package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/alnah/go-leasedoc/internal/assets"
	"github.com/alnah/go-leasedoc/internal/blocks"
)

// entryDate is the modification time of every zip entry.
var entryDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Composer renders lease Markdown to DOCX bytes. Safe for concurrent use.
type Composer struct {
	boilerplate *assets.Boilerplate
	title       string
}

// Option configures a Composer.
type Option func(*Composer)

// WithBoilerplate replaces the embedded fixed sections.
func WithBoilerplate(bp *assets.Boilerplate) Option {
	return func(c *Composer) {
		if bp != nil {
			c.boilerplate = bp
		}
	}
}

// WithTitle sets the document title property. Default: the boilerplate title.
func WithTitle(title string) Option {
	return func(c *Composer) {
		c.title = title
	}
}

// NewComposer creates a Composer. The embedded boilerplate is loaded unless
// WithBoilerplate supplies one.
func NewComposer(opts ...Option) (*Composer, error) {
	c := &Composer{}
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
	if c.title == "" {
		c.title = c.boilerplate.Title
	}
	return c, nil
}

// RenderDOCX converts lease Markdown to a DOCX package. The language tag is
// recorded in the core properties and may be empty.
func (c *Composer) RenderDOCX(ctx context.Context, markdown, language string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d := newDocumentBuilder()
	document := d.build(blocks.FromMarkdown(markdown), c.boilerplate)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"docProps/core.xml", fmt.Sprintf(coreXMLTemplate, escape(c.title), escape(language))},
		{"docProps/app.xml", appXML},
		{"word/document.xml", document},
		{"word/styles.xml", stylesXML},
		{"word/numbering.xml", d.numberingXML()},
		{"word/settings.xml", settingsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: entryDate,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDOCXWrite, p.name, err)
		}
		if _, err := w.Write([]byte(p.content)); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDOCXWrite, p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDOCXWrite, err)
	}
	return buf.Bytes(), nil
}
