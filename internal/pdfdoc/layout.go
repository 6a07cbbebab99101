package pdfdoc

import (
	"fmt"
	"strings"

	"github.com/alnah/go-leasedoc/internal/assets"
	"github.com/alnah/go-leasedoc/internal/blocks"
)

// Page geometry and typography, in points.
const (
	PageWidth    = 612.0
	PageHeight   = 792.0
	Margin       = 72.0
	ContentWidth = PageWidth - 2*Margin

	BodySize       = 12.0
	BodyLeading    = 16.0
	HeadingSize    = 16.0
	HeadingLeading = 26.0
	TitleSize      = 24.0
	TitleLeading   = 30.0
	BulletIndent   = 18.0

	FooterSize   = 9.0
	FooterOffset = 36.0

	// ParagraphGap is the extra space after a paragraph or bullet, as a
	// fraction of its leading.
	ParagraphGap = 0.4
)

// Section names recorded in Document.Sections besides the exhibit names.
const (
	SectionTitle      = assets.SectionTitle
	SectionBody       = "body"
	SectionSignatures = assets.SectionSignatures
)

// Line is one positioned run of text. Y is the baseline.
type Line struct {
	Text   string
	X, Y   float64
	Width  float64
	Style  Style
	Size   float64
	Footer bool
}

// Page holds the lines drawn on one page.
type Page struct {
	Lines []Line
}

// SectionRange records the 1-based pages a section occupies.
type SectionRange struct {
	Name      string
	FirstPage int
	LastPage  int
}

// Document is the result of Layout.
type Document struct {
	Pages    []Page
	Sections []SectionRange
}

// Section returns the range recorded for name.
func (d *Document) Section(name string) (SectionRange, bool) {
	for _, s := range d.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return SectionRange{}, false
}

// Text returns the non-footer text of every page joined by newlines.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, p := range d.Pages {
		for _, l := range p.Lines {
			if l.Footer {
				continue
			}
			sb.WriteString(l.Text)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Layout places the title page, the body blocks, the signature block and the
// exhibits, each starting on a new page.
func Layout(body []blocks.Block, bp *assets.Boilerplate, fonts FontSet, m Metrics) (*Document, error) {
	if bp == nil {
		return nil, fmt.Errorf("%w: no boilerplate", assets.ErrIncompleteBoilerplate)
	}
	l := &layouter{doc: &Document{}, fonts: fonts, m: m}

	l.beginSection(SectionTitle)
	if err := l.titlePage(bp.Title); err != nil {
		return nil, err
	}
	l.endSection()

	l.beginSection(SectionBody)
	if err := l.blocks(body); err != nil {
		return nil, err
	}
	l.endSection()

	sections := append([]assets.Section{bp.Signatures}, bp.Exhibits...)
	for _, s := range sections {
		l.beginSection(s.Name)
		if err := l.heading(s.Title); err != nil {
			return nil, err
		}
		if err := l.blocks(s.Blocks); err != nil {
			return nil, err
		}
		l.endSection()
	}
	return l.doc, nil
}

// StampFooters adds a centered "Page N of TOTAL" line to every page.
func StampFooters(doc *Document, m Metrics) {
	total := len(doc.Pages)
	for i := range doc.Pages {
		text := fmt.Sprintf("Page %d of %d", i+1, total)
		w := m.Width(text, Regular, FooterSize)
		doc.Pages[i].Lines = append(doc.Pages[i].Lines, Line{
			Text:   text,
			X:      (PageWidth - w) / 2,
			Y:      PageHeight - FooterOffset,
			Width:  w,
			Style:  Regular,
			Size:   FooterSize,
			Footer: true,
		})
	}
}

type layouter struct {
	doc   *Document
	fonts FontSet
	m     Metrics
	// y is the top of the next line box.
	y float64
}

func (l *layouter) newPage() {
	l.doc.Pages = append(l.doc.Pages, Page{})
	l.y = Margin
}

func (l *layouter) page() *Page {
	return &l.doc.Pages[len(l.doc.Pages)-1]
}

func (l *layouter) atTop() bool {
	return l.y == Margin
}

func (l *layouter) fits(height float64) bool {
	return l.y+height <= PageHeight-Margin
}

// ensure starts a new page unless height fits below the cursor.
func (l *layouter) ensure(height float64) {
	if !l.fits(height) && !l.atTop() {
		l.newPage()
	}
}

func (l *layouter) beginSection(name string) {
	l.newPage()
	l.doc.Sections = append(l.doc.Sections, SectionRange{Name: name, FirstPage: len(l.doc.Pages)})
}

func (l *layouter) endSection() {
	l.doc.Sections[len(l.doc.Sections)-1].LastPage = len(l.doc.Pages)
}

// place appends a line at the cursor and advances it by leading.
func (l *layouter) place(text string, x float64, style Style, size, leading float64) {
	l.ensure(leading)
	l.page().Lines = append(l.page().Lines, Line{
		Text:  text,
		X:     x,
		Y:     l.y + size,
		Width: l.m.Width(text, style, size),
		Style: style,
		Size:  size,
	})
	l.y += leading
}

func (l *layouter) titlePage(title string) error {
	text, err := Sanitize(title, l.fonts)
	if err != nil {
		return err
	}
	lines := l.wrap(text, ContentWidth, Bold, TitleSize)
	top := (PageHeight - float64(len(lines))*TitleLeading) / 2
	for i, s := range lines {
		w := l.m.Width(s, Bold, TitleSize)
		l.page().Lines = append(l.page().Lines, Line{
			Text:  s,
			X:     (PageWidth - w) / 2,
			Y:     top + float64(i)*TitleLeading + TitleSize,
			Width: w,
			Style: Bold,
			Size:  TitleSize,
		})
	}
	return nil
}

func (l *layouter) blocks(bs []blocks.Block) error {
	for _, b := range bs {
		var err error
		switch b.Kind {
		case blocks.KindHeading:
			err = l.heading(b.Text)
		case blocks.KindBullet:
			err = l.bullet(b)
		default:
			err = l.paragraph(b)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *layouter) heading(raw string) error {
	text, err := Sanitize(raw, l.fonts)
	if err != nil {
		return err
	}
	lines := l.wrapText(text, ContentWidth, Bold, HeadingSize)
	if len(lines) == 0 {
		return nil
	}
	// Keep the heading with the first line that follows it.
	l.ensure(HeadingLeading + BodyLeading)
	for _, s := range lines {
		l.place(s, Margin, Bold, HeadingSize, HeadingLeading)
	}
	return nil
}

func (l *layouter) paragraph(b blocks.Block) error {
	text, err := Sanitize(b.Text, l.fonts)
	if err != nil {
		return err
	}
	style := blockStyle(b)
	lines := l.wrapText(text, ContentWidth, style, BodySize)
	if len(lines) == 0 {
		return nil
	}
	for _, s := range lines {
		l.place(s, Margin, style, BodySize, BodyLeading)
	}
	l.y += ParagraphGap * BodyLeading
	return nil
}

func (l *layouter) bullet(b blocks.Block) error {
	text, err := Sanitize(b.Text, l.fonts)
	if err != nil {
		return err
	}
	marker, err := Sanitize(b.Marker, l.fonts)
	if err != nil {
		return err
	}

	markerX := Margin + float64(b.Level)*BulletIndent
	textX := markerX + BulletIndent
	style := blockStyle(b)
	lines := l.wrapText(text, PageWidth-Margin-textX, style, BodySize)
	if len(lines) == 0 {
		return nil
	}

	l.ensure(BodyLeading)
	l.page().Lines = append(l.page().Lines, Line{
		Text:  marker,
		X:     markerX,
		Y:     l.y + BodySize,
		Width: l.m.Width(marker, Regular, BodySize),
		Style: Regular,
		Size:  BodySize,
	})
	for _, s := range lines {
		l.place(s, textX, style, BodySize, BodyLeading)
	}
	l.y += ParagraphGap * BodyLeading
	return nil
}

// blockStyle is Bold when every span of the block is bold.
func blockStyle(b blocks.Block) Style {
	if len(b.Spans) == 0 {
		return Regular
	}
	for _, s := range b.Spans {
		if !s.Bold {
			return Regular
		}
	}
	return Bold
}

// wrapText wraps each hard-broken segment of text to width.
func (l *layouter) wrapText(text string, width float64, style Style, size float64) []string {
	var out []string
	for _, seg := range strings.Split(text, "\n") {
		out = append(out, l.wrap(seg, width, style, size)...)
	}
	return out
}

// wrap breaks text greedily on whitespace. Words wider than width are split
// between runes.
func (l *layouter) wrap(text string, width float64, style Style, size float64) []string {
	var lines []string
	cur := ""
	for _, word := range strings.Fields(text) {
		if l.m.Width(word, style, size) > width {
			if cur != "" {
				lines = append(lines, cur)
			}
			parts := l.breakWord(word, width, style, size)
			lines = append(lines, parts[:len(parts)-1]...)
			cur = parts[len(parts)-1]
			continue
		}
		candidate := word
		if cur != "" {
			candidate = cur + " " + word
		}
		if cur == "" || l.m.Width(candidate, style, size) <= width {
			cur = candidate
			continue
		}
		lines = append(lines, cur)
		cur = word
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

func (l *layouter) breakWord(word string, width float64, style Style, size float64) []string {
	var parts []string
	var cur []rune
	for _, r := range word {
		next := append(cur, r)
		if len(cur) > 0 && l.m.Width(string(next), style, size) > width {
			parts = append(parts, string(cur))
			cur = []rune{r}
			continue
		}
		cur = next
	}
	return append(parts, string(cur))
}
