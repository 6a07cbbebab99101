package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
)

func render(t *testing.T, md string) map[string]string {
	t.Helper()
	c, err := NewComposer()
	if err != nil {
		t.Fatalf("NewComposer() error = %v", err)
	}
	data, err := c.RenderDOCX(context.Background(), md, "en")
	if err != nil {
		t.Fatalf("RenderDOCX() error = %v", err)
	}
	return unzip(t, data)
}

func unzip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		parts[f.Name] = string(b)
	}
	return parts
}

func wellFormed(t *testing.T, name, content string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(content))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("%s is not well-formed XML: %v", name, err)
		}
	}
}

func TestRenderDOCX_Parts(t *testing.T) {
	t.Parallel()

	parts := render(t, "# Lease Agreement\n\nThis is the body.")

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"word/document.xml",
		"word/styles.xml",
		"word/numbering.xml",
		"word/settings.xml",
		"word/_rels/document.xml.rels",
	} {
		content, ok := parts[name]
		if !ok {
			t.Errorf("missing part %s", name)
			continue
		}
		wellFormed(t, name, content)
	}
	for _, style := range []string{`w:styleId="Heading1"`, `w:styleId="Heading2"`, `w:styleId="ListParagraph"`, `w:styleId="Title"`} {
		if !strings.Contains(parts["word/styles.xml"], style) {
			t.Errorf("styles.xml missing %s", style)
		}
	}
	if !strings.Contains(parts["docProps/core.xml"], "<dc:language>en</dc:language>") {
		t.Error("core.xml missing language")
	}
}

func TestRenderDOCX_LeaseScenario(t *testing.T) {
	t.Parallel()

	doc := render(t, "# Lease Agreement\n\nThis is the body.\n\n- Clause one\n- Clause two")["word/document.xml"]

	for _, want := range []string{
		`<w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t xml:space="preserve">Lease Agreement</w:t>`,
		`<w:p><w:r><w:t xml:space="preserve">This is the body.</w:t></w:r></w:p>`,
		`<w:pStyle w:val="ListParagraph"/><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr></w:pPr><w:r><w:t xml:space="preserve">Clause one</w:t>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}
}

func TestRenderDOCX_FixedSections(t *testing.T) {
	t.Parallel()

	for _, md := range []string{"", "# A\n\nB", strings.Repeat("Para.\n\n", 50)} {
		doc := render(t, md)["word/document.xml"]

		if got := strings.Count(doc, `<w:br w:type="page"/>`); got != 5 {
			t.Errorf("page breaks = %d, want 5", got)
		}
		if got := strings.Count(doc, `<w:pStyle w:val="Title"/>`); got != 1 {
			t.Errorf("title paragraphs = %d, want 1", got)
		}
		for _, label := range []string{"Signature:", "Printed Name:", "Date:"} {
			if got := strings.Count(doc, ">"+label); got != 2 {
				t.Errorf("%q occurs %d times, want 2", label, got)
			}
		}

		order := []string{
			"RESIDENTIAL LEASE AGREEMENT",
			"SIGNATURES",
			"EXHIBIT A: MOVE-IN/MOVE-OUT CHECKLIST",
			"EXHIBIT B: PET AGREEMENT",
			"EXHIBIT C: LEAD-BASED PAINT DISCLOSURE",
		}
		pos := -1
		for _, s := range order {
			i := strings.Index(doc, s)
			if i <= pos {
				t.Errorf("%q missing or out of order", s)
			}
			pos = i
		}
	}
}

func TestRenderDOCX_Formatting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		md   string
		want []string
	}{
		{
			name: "heading levels",
			md:   "## Rent\n\n#### Late fees",
			want: []string{
				`<w:pStyle w:val="Heading2"/></w:pPr><w:r><w:t xml:space="preserve">Rent</w:t>`,
				`<w:pStyle w:val="Heading2"/></w:pPr><w:r><w:t xml:space="preserve">Late fees</w:t>`,
			},
		},
		{
			name: "bold and italic runs",
			md:   "The **Tenant** pays *monthly*.",
			want: []string{
				`<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">Tenant</w:t></w:r>`,
				`<w:r><w:rPr><w:i/></w:rPr><w:t xml:space="preserve">monthly</w:t></w:r>`,
			},
		},
		{
			name: "hard break",
			md:   "Line one\nLine two",
			want: []string{`Line one</w:t><w:br/><w:t xml:space="preserve">Line two`},
		},
		{
			name: "escaping",
			md:   "Smith &amp; Sons <unit>",
			want: []string{"Smith &amp; Sons"},
		},
		{
			name: "nested bullet level",
			md:   "- Parent\n  - Child",
			want: []string{`<w:ilvl w:val="1"/><w:numId w:val="1"/>`},
		},
		{
			name: "unicode kept",
			md:   "# 賃貸借契約\n\nعقد إيجار",
			want: []string{"賃貸借契約", "عقد إيجار"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := render(t, tt.md)["word/document.xml"]
			wellFormed(t, "document.xml", doc)
			for _, want := range tt.want {
				if !strings.Contains(doc, want) {
					t.Errorf("document.xml missing %q", want)
				}
			}
		})
	}
}

func TestRenderDOCX_OrderedLists(t *testing.T) {
	t.Parallel()

	parts := render(t, "1. Rent\n2. Deposit\n\nBetween.\n\n3. Utilities\n4. Parking")
	doc := parts["word/document.xml"]
	numbering := parts["word/numbering.xml"]

	if !strings.Contains(doc, `<w:numId w:val="2"/>`) || !strings.Contains(doc, `<w:numId w:val="3"/>`) {
		t.Error("each ordered list should get its own numbering instance")
	}
	for _, want := range []string{
		`<w:num w:numId="2"><w:abstractNumId w:val="1"/><w:lvlOverride w:ilvl="0"><w:startOverride w:val="1"/>`,
		`<w:num w:numId="3"><w:abstractNumId w:val="1"/><w:lvlOverride w:ilvl="0"><w:startOverride w:val="3"/>`,
	} {
		if !strings.Contains(numbering, want) {
			t.Errorf("numbering.xml missing %q", want)
		}
	}
	wellFormed(t, "numbering.xml", numbering)
}

func TestRenderDOCX_Deterministic(t *testing.T) {
	t.Parallel()

	c, err := NewComposer()
	if err != nil {
		t.Fatalf("NewComposer() error = %v", err)
	}
	md := "# Lease\n\n- a\n- b\n\n1. one"
	a, err := c.RenderDOCX(context.Background(), md, "")
	if err != nil {
		t.Fatalf("RenderDOCX() error = %v", err)
	}
	b, err := c.RenderDOCX(context.Background(), md, "")
	if err != nil {
		t.Fatalf("RenderDOCX() error = %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("RenderDOCX() output differs between identical calls")
	}
}

func TestRenderDOCX_ContextCancelled(t *testing.T) {
	t.Parallel()

	c, err := NewComposer()
	if err != nil {
		t.Fatalf("NewComposer() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.RenderDOCX(ctx, "# Lease", ""); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderDOCX() error = %v, want context.Canceled", err)
	}
}

func TestEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "a & b", want: "a &amp; b"},
		{in: "<x>", want: "&lt;x&gt;"},
		{in: "bell\x07char", want: "bellchar"},
		{in: "ok\ufffeok", want: "okok"},
	}
	for _, tt := range tests {
		if got := escape(tt.in); got != tt.want {
			t.Errorf("escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
