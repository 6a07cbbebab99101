package docx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-leasedoc/internal/assets"
	"github.com/alnah/go-leasedoc/internal/blocks"
)

const (
	bulletAbstract  = 0
	decimalAbstract = 1
	bulletNumID     = 1
	maxListLevel    = 8
)

// listInstance is a w:num entry. Each run of ordered bullets gets its own so
// numbering restarts where the source list does.
type listInstance struct {
	id       int
	abstract int
	start    int
}

// documentBuilder accumulates word/document.xml and the list instances it
// references.
type documentBuilder struct {
	sb    strings.Builder
	lists []listInstance
	// current ordered list, reset by any non-bullet block
	ordered int
}

func newDocumentBuilder() *documentBuilder {
	d := &documentBuilder{}
	d.lists = append(d.lists, listInstance{id: bulletNumID, abstract: bulletAbstract, start: 1})
	return d
}

func (d *documentBuilder) build(body []blocks.Block, bp *assets.Boilerplate) string {
	d.sb.WriteString(xmlHeader)
	d.sb.WriteString(`<w:document xmlns:w="` + nsMain + `" xmlns:r="` + nsRel + `"><w:body>`)

	d.paragraph("Title", "", []blocks.Span{{Text: bp.Title}})
	d.pageBreak()

	d.blocks(body)

	d.pageBreak()
	d.paragraph("Heading1", "", []blocks.Span{{Text: bp.Signatures.Title}})
	d.blocks(bp.Signatures.Blocks)

	for _, ex := range bp.Exhibits {
		d.pageBreak()
		d.paragraph("Heading1", "", []blocks.Span{{Text: ex.Title}})
		d.blocks(ex.Blocks)
	}

	d.sb.WriteString(sectionProperties)
	d.sb.WriteString(`</w:body></w:document>`)
	return d.sb.String()
}

func (d *documentBuilder) blocks(bs []blocks.Block) {
	for _, b := range bs {
		switch b.Kind {
		case blocks.KindHeading:
			d.ordered = 0
			style := "Heading2"
			if b.Level <= 1 {
				style = "Heading1"
			}
			d.paragraph(style, "", b.Spans)
		case blocks.KindBullet:
			d.paragraph("ListParagraph", d.numbering(b), b.Spans)
		default:
			d.ordered = 0
			d.paragraph("", "", b.Spans)
		}
	}
}

// numbering returns the w:numPr element for a bullet.
func (d *documentBuilder) numbering(b blocks.Block) string {
	level := min(b.Level, maxListLevel)
	numID := bulletNumID

	if n, ok := orderedNumber(b.Marker); ok {
		if d.ordered == 0 || (b.Level == 0 && n == 1) {
			d.ordered = len(d.lists) + 1
			d.lists = append(d.lists, listInstance{id: d.ordered, abstract: decimalAbstract, start: n})
		}
		numID = d.ordered
	}
	return fmt.Sprintf(`<w:numPr><w:ilvl w:val="%d"/><w:numId w:val="%d"/></w:numPr>`, level, numID)
}

func orderedNumber(marker string) (int, bool) {
	if !strings.HasSuffix(marker, ".") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(marker, "."))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (d *documentBuilder) paragraph(style, numPr string, spans []blocks.Span) {
	d.sb.WriteString("<w:p>")
	if style != "" || numPr != "" {
		d.sb.WriteString("<w:pPr>")
		if style != "" {
			d.sb.WriteString(`<w:pStyle w:val="` + style + `"/>`)
		}
		d.sb.WriteString(numPr)
		d.sb.WriteString("</w:pPr>")
	}
	for _, s := range spans {
		d.run(s)
	}
	d.sb.WriteString("</w:p>")
}

// run writes one span; hard breaks become w:br.
func (d *documentBuilder) run(s blocks.Span) {
	d.sb.WriteString("<w:r>")
	if s.Bold || s.Italic {
		d.sb.WriteString("<w:rPr>")
		if s.Bold {
			d.sb.WriteString("<w:b/>")
		}
		if s.Italic {
			d.sb.WriteString("<w:i/>")
		}
		d.sb.WriteString("</w:rPr>")
	}
	for i, part := range strings.Split(s.Text, "\n") {
		if i > 0 {
			d.sb.WriteString("<w:br/>")
		}
		if part == "" {
			continue
		}
		d.sb.WriteString(`<w:t xml:space="preserve">`)
		d.sb.WriteString(escape(part))
		d.sb.WriteString("</w:t>")
	}
	d.sb.WriteString("</w:r>")
}

func (d *documentBuilder) pageBreak() {
	d.ordered = 0
	d.sb.WriteString(`<w:p><w:r><w:br w:type="page"/></w:r></w:p>`)
}

// numberingXML renders word/numbering.xml for the lists used.
func (d *documentBuilder) numberingXML() string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<w:numbering xmlns:w="` + nsMain + `">`)
	writeAbstract(&sb, bulletAbstract, "bullet", func(int) string { return "•" })
	writeAbstract(&sb, decimalAbstract, "decimal", func(lvl int) string { return "%" + strconv.Itoa(lvl+1) + "." })
	for _, l := range d.lists {
		fmt.Fprintf(&sb, `<w:num w:numId="%d"><w:abstractNumId w:val="%d"/>`, l.id, l.abstract)
		if l.abstract == decimalAbstract {
			fmt.Fprintf(&sb, `<w:lvlOverride w:ilvl="0"><w:startOverride w:val="%d"/></w:lvlOverride>`, l.start)
		}
		sb.WriteString(`</w:num>`)
	}
	sb.WriteString(`</w:numbering>`)
	return sb.String()
}

func writeAbstract(sb *strings.Builder, id int, format string, text func(int) string) {
	fmt.Fprintf(sb, `<w:abstractNum w:abstractNumId="%d"><w:multiLevelType w:val="hybridMultilevel"/>`, id)
	for lvl := 0; lvl <= maxListLevel; lvl++ {
		indent := 720 * (lvl + 1)
		fmt.Fprintf(sb, `<w:lvl w:ilvl="%d"><w:start w:val="1"/><w:numFmt w:val="%s"/><w:lvlText w:val="%s"/><w:lvlJc w:val="left"/><w:pPr><w:ind w:left="%d" w:hanging="360"/></w:pPr></w:lvl>`,
			lvl, format, escape(text(lvl)), indent)
	}
	sb.WriteString(`</w:abstractNum>`)
}
