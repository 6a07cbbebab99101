// Package blocks turns Markdown or rendered HTML into a flat sequence of
// classified text blocks (heading, paragraph, bullet).
//
// Both constructors classify by document structure rather than by text
// heuristics, so the HTML that goldmark renders for a Markdown source yields
// the same blocks as the Markdown itself. The PDF and DOCX composers consume
// this representation, which keeps their interpretation of a lease identical.
package blocks

import "strings"

// Kind classifies a block.
type Kind int

const (
	KindParagraph Kind = iota
	KindHeading
	KindBullet
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindBullet:
		return "bullet"
	default:
		return "paragraph"
	}
}

// Span is a run of inline text sharing the same emphasis.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
}

// Block is one classified unit of document text.
type Block struct {
	Kind Kind
	// Level is the heading level (1-6) for headings and the list nesting
	// depth (0 = top level) for bullets.
	Level int
	// Marker is "-" for unordered bullets and "N." for ordered ones.
	Marker string
	Spans  []Span
	// Text is the whitespace-normalized concatenation of Spans. Hard line
	// breaks are kept as "\n".
	Text string
}

// Count tallies blocks per kind.
func Count(bs []Block) map[Kind]int {
	counts := make(map[Kind]int, 3)
	for _, b := range bs {
		counts[b.Kind]++
	}
	return counts
}

// builder accumulates spans for the block under construction.
type builder struct {
	spans []Span
}

func (b *builder) add(text string, bold, italic bool) {
	if text == "" {
		return
	}
	if n := len(b.spans); n > 0 && b.spans[n-1].Bold == bold && b.spans[n-1].Italic == italic {
		b.spans[n-1].Text += text
		return
	}
	b.spans = append(b.spans, Span{Text: text, Bold: bold, Italic: italic})
}

func (b *builder) empty() bool {
	for _, s := range b.spans {
		if strings.TrimSpace(s.Text) != "" {
			return false
		}
	}
	return true
}

// finish normalizes whitespace and returns the block, or false when the
// block carries no visible text.
func (b *builder) finish(kind Kind, level int, marker string) (Block, bool) {
	if b.empty() {
		b.spans = nil
		return Block{}, false
	}
	spans := normalizeSpans(b.spans)
	b.spans = nil

	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return Block{
		Kind:   kind,
		Level:  level,
		Marker: marker,
		Spans:  spans,
		Text:   sb.String(),
	}, true
}

// normalizeSpans collapses whitespace runs to single spaces, trims spaces
// around hard breaks, and trims the block edges. Spans left empty are dropped.
func normalizeSpans(in []Span) []Span {
	out := make([]Span, 0, len(in))
	lastSpace := true // suppress leading whitespace
	for _, s := range in {
		var sb strings.Builder
		for _, r := range s.Text {
			switch {
			case r == '\n':
				trimTrailingSpace(&sb, &out)
				sb.WriteRune('\n')
				lastSpace = true
			case r == ' ' || r == '\t' || r == '\r' || r == '\f' || r == '\v':
				if !lastSpace {
					sb.WriteRune(' ')
					lastSpace = true
				}
			default:
				sb.WriteRune(r)
				lastSpace = false
			}
		}
		if sb.Len() > 0 {
			out = append(out, Span{Text: sb.String(), Bold: s.Bold, Italic: s.Italic})
		}
	}

	for len(out) > 0 {
		out[0].Text = strings.TrimLeft(out[0].Text, " \n")
		if out[0].Text != "" {
			break
		}
		out = out[1:]
	}
	for len(out) > 0 {
		last := &out[len(out)-1]
		last.Text = strings.TrimRight(last.Text, " \n")
		if last.Text != "" {
			break
		}
		out = out[:len(out)-1]
	}

	kept := out[:0]
	for _, s := range out {
		if s.Text != "" {
			kept = append(kept, s)
		}
	}
	return kept
}

// trimTrailingSpace removes a single trailing space before a hard break,
// looking into the previous span when the current one is still empty.
func trimTrailingSpace(sb *strings.Builder, out *[]Span) {
	if sb.Len() > 0 {
		s := sb.String()
		if strings.HasSuffix(s, " ") {
			sb.Reset()
			sb.WriteString(strings.TrimSuffix(s, " "))
		}
		return
	}
	if n := len(*out); n > 0 {
		(*out)[n-1].Text = strings.TrimSuffix((*out)[n-1].Text, " ")
	}
}
