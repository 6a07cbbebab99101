package pdfdoc

import (
	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// fontFamily is the core PDF font used for every line.
const fontFamily = "Times"

// Style selects the font face of a line.
type Style int

const (
	Regular Style = iota
	Bold
)

func (s Style) fpdf() string {
	if s == Bold {
		return "B"
	}
	return ""
}

// FontSet describes the glyph coverage of the fonts a document is drawn with.
type FontSet interface {
	Name() string
	// CanRender reports whether r has a glyph.
	CanRender(r rune) bool
	// Encode converts UTF-8 text to the byte encoding the fonts expect.
	// Runes without a glyph must have been removed beforehand.
	Encode(s string) string
}

// CoreFontSet draws with the standard Times faces in WinAnsi encoding,
// which covers Western European scripts.
type CoreFontSet struct{}

// Name implements FontSet.
func (CoreFontSet) Name() string { return "core" }

// CanRender implements FontSet.
func (CoreFontSet) CanRender(r rune) bool {
	if r < 0x20 {
		return false
	}
	_, ok := charmap.Windows1252.EncodeRune(r)
	return ok
}

// Encode implements FontSet.
func (CoreFontSet) Encode(s string) string {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			out = append(out, b)
		}
	}
	return string(out)
}

// ASCIIFontSet restricts output to printable ASCII.
type ASCIIFontSet struct{}

// Name implements FontSet.
func (ASCIIFontSet) Name() string { return "ascii" }

// CanRender implements FontSet.
func (ASCIIFontSet) CanRender(r rune) bool { return r >= 0x20 && r < 0x7f }

// Encode implements FontSet.
func (ASCIIFontSet) Encode(s string) string { return s }

// FontSetByName returns the font set registered under name: "core" (the
// default for an empty name) or "ascii".
func FontSetByName(name string) (FontSet, bool) {
	switch name {
	case "", "core":
		return CoreFontSet{}, true
	case "ascii":
		return ASCIIFontSet{}, true
	}
	return nil, false
}

// Metrics measures text widths in points.
type Metrics interface {
	Width(text string, style Style, size float64) float64
}

// fpdfMetrics measures with the same font tables Write draws with.
// Not safe for concurrent use.
type fpdfMetrics struct {
	pdf   *fpdf.Fpdf
	fonts FontSet
}

// NewMetrics returns Metrics backed by fpdf core font tables.
func NewMetrics(fonts FontSet) Metrics {
	return &fpdfMetrics{pdf: fpdf.New("P", "pt", "Letter", ""), fonts: fonts}
}

func (m *fpdfMetrics) Width(text string, style Style, size float64) float64 {
	m.pdf.SetFont(fontFamily, style.fpdf(), size)
	return m.pdf.GetStringWidth(m.fonts.Encode(text))
}

var (
	_ FontSet = CoreFontSet{}
	_ FontSet = ASCIIFontSet{}
)
