package blocks

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// parser matches the block grammar of the HTML renderer in internal/pipeline.
var parser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// FromMarkdown classifies Markdown source into blocks by walking the
// goldmark AST. Unknown node types degrade to their text content.
func FromMarkdown(src string) []Block {
	source := []byte(src)
	doc := parser.Parse(text.NewReader(source))

	w := &mdWalker{source: source}
	w.container(doc, 0)
	return w.out
}

type mdWalker struct {
	source []byte
	out    []Block
	b      builder
}

func (w *mdWalker) emit(kind Kind, level int, marker string) {
	if blk, ok := w.b.finish(kind, level, marker); ok {
		w.out = append(w.out, blk)
	}
}

// container walks block-level children of n. depth is the list nesting depth.
func (w *mdWalker) container(n ast.Node, depth int) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.block(c, depth)
	}
}

func (w *mdWalker) block(n ast.Node, depth int) {
	switch node := n.(type) {
	case *ast.Heading:
		w.inlines(node, false, false)
		w.emit(KindHeading, node.Level, "")
	case *ast.Paragraph, *ast.TextBlock:
		w.inlines(node, false, false)
		w.emit(KindParagraph, 0, "")
	case *ast.List:
		w.list(node, depth)
	case *ast.Blockquote:
		w.container(node, depth)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		w.rawLines(node)
		w.emit(KindParagraph, 0, "")
	case *east.Table:
		for row := node.FirstChild(); row != nil; row = row.NextSibling() {
			w.tableRow(row)
			w.emit(KindParagraph, 0, "")
		}
	case *ast.ThematicBreak, *ast.HTMLBlock:
		// no text content
	default:
		if node.Type() == ast.TypeBlock && node.HasChildren() && node.FirstChild().Type() == ast.TypeBlock {
			w.container(node, depth)
			return
		}
		w.inlines(node, false, false)
		w.emit(KindParagraph, 0, "")
	}
}

func (w *mdWalker) list(l *ast.List, depth int) {
	index := l.Start
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "-"
		if l.IsOrdered() {
			marker = strconv.Itoa(index) + "."
			index++
		}

		bulletDone := false
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch c.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				if !bulletDone {
					w.inlines(c, false, false)
					w.emit(KindBullet, depth, marker)
					bulletDone = true
					continue
				}
				w.block(c, depth)
			case *ast.List:
				w.block(c, depth+1)
			default:
				w.block(c, depth)
			}
		}
	}
}

func (w *mdWalker) tableRow(row ast.Node) {
	cell := 0
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		if cell > 0 {
			w.b.add(" | ", false, false)
		}
		w.inlines(c, false, false)
		cell++
	}
}

func (w *mdWalker) rawLines(n ast.Node) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(w.source)), "\r\n")
		if i > 0 {
			w.b.add("\n", false, false)
		}
		w.b.add(line, false, false)
	}
}

// inlines appends the inline content of n to the current builder.
func (w *mdWalker) inlines(n ast.Node, bold, italic bool) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			w.b.add(resolve(node.Segment.Value(w.source)), bold, italic)
			if node.SoftLineBreak() || node.HardLineBreak() {
				w.b.add("\n", bold, italic)
			}
		case *ast.String:
			w.b.add(string(node.Value), bold, italic)
		case *ast.CodeSpan:
			for t := node.FirstChild(); t != nil; t = t.NextSibling() {
				if seg, ok := t.(*ast.Text); ok {
					w.b.add(string(seg.Segment.Value(w.source)), bold, italic)
				}
			}
		case *ast.Emphasis:
			if node.Level >= 2 {
				w.inlines(node, true, italic)
			} else {
				w.inlines(node, bold, true)
			}
		case *ast.AutoLink:
			w.b.add(string(node.Label(w.source)), bold, italic)
		case *east.TaskCheckBox:
			if node.IsChecked {
				w.b.add("[x] ", bold, italic)
			} else {
				w.b.add("[ ] ", bold, italic)
			}
		case *ast.RawHTML:
			// omitted by the HTML renderer as well
		default:
			w.inlines(node, bold, italic)
		}
	}
}

// resolve applies the same escape and entity handling the goldmark HTML
// renderer performs on text segments.
func resolve(b []byte) string {
	b = util.UnescapePunctuations(b)
	b = util.ResolveNumericReferences(b)
	b = util.ResolveEntityNames(b)
	return string(b)
}
