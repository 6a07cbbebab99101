package blocks

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// listState tracks an open <ul>/<ol>.
type listState struct {
	ordered bool
	next    int
}

// itemState tracks an open <li>.
type itemState struct {
	marker string
	depth  int
	done   bool // bullet text already emitted
}

// FromHTML flattens an HTML fragment into blocks. Headings come from h1-h6,
// bullets from li, paragraphs from p, table rows and loose text. Tags it does
// not know are stripped and their text kept.
func FromHTML(fragment string) []Block {
	z := html.NewTokenizer(strings.NewReader(fragment))
	w := &htmlWalker{}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			w.flushLoose()
			return w.out
		case html.TextToken:
			w.text(string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			w.start(tok, tt == html.SelfClosingTagToken)
		case html.EndTagToken:
			tok := z.Token()
			w.end(tok.Data)
		}
	}
}

type htmlWalker struct {
	out []Block
	b   builder

	lists []listState
	items []itemState

	heading  int // open heading level, 0 when none
	inPara   bool
	pre      int
	bold     int
	italic   int
	cells    int
	skipText int // inside <script>, <style>, <title>
}

func (w *htmlWalker) emit(kind Kind, level int, marker string) {
	if blk, ok := w.b.finish(kind, level, marker); ok {
		w.out = append(w.out, blk)
	}
}

func (w *htmlWalker) currentItem() *itemState {
	if len(w.items) == 0 {
		return nil
	}
	return &w.items[len(w.items)-1]
}

// flushItem emits the pending bullet text of the innermost open list item.
func (w *htmlWalker) flushItem() {
	it := w.currentItem()
	if it == nil || it.done {
		return
	}
	if !w.b.empty() {
		w.emit(KindBullet, it.depth, it.marker)
		it.done = true
	}
}

// flushLoose emits text that sits outside any block element.
func (w *htmlWalker) flushLoose() {
	if w.b.empty() {
		w.b.spans = nil
		return
	}
	if it := w.currentItem(); it != nil && !it.done {
		w.flushItem()
		return
	}
	w.emit(KindParagraph, 0, "")
}

func (w *htmlWalker) start(tok html.Token, selfClosing bool) {
	switch tok.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		w.flushLoose()
		w.heading = int(tok.Data[1] - '0')
	case "p":
		if it := w.currentItem(); it != nil && !it.done {
			w.inPara = true
			return
		}
		w.flushLoose()
		w.inPara = true
	case "ul", "ol":
		w.flushItem()
		w.flushLoose()
		ls := listState{ordered: tok.Data == "ol", next: 1}
		if ls.ordered {
			if v, ok := attr(tok, "start"); ok {
				if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
					ls.next = n
				}
			}
		}
		w.lists = append(w.lists, ls)
	case "li":
		w.flushItem()
		w.flushLoose()
		marker := "-"
		depth := 0
		if n := len(w.lists); n > 0 {
			depth = n - 1
			ls := &w.lists[n-1]
			if ls.ordered {
				marker = strconv.Itoa(ls.next) + "."
				ls.next++
			}
		}
		w.items = append(w.items, itemState{marker: marker, depth: depth})
	case "br":
		w.b.add("\n", w.bold > 0, w.italic > 0)
	case "tr":
		w.flushLoose()
		w.cells = 0
	case "td", "th":
		if w.cells > 0 {
			w.b.add(" | ", false, false)
		}
		w.cells++
	case "pre":
		w.flushLoose()
		w.pre++
	case "blockquote", "div", "table", "hr":
		w.flushLoose()
	case "strong", "b":
		w.bold++
	case "em", "i":
		w.italic++
	case "img":
		if alt, ok := attr(tok, "alt"); ok {
			w.b.add(alt, w.bold > 0, w.italic > 0)
		}
	case "input":
		if typ, _ := attr(tok, "type"); strings.EqualFold(typ, "checkbox") {
			if _, checked := attr(tok, "checked"); checked {
				w.b.add("[x] ", w.bold > 0, w.italic > 0)
			} else {
				w.b.add("[ ] ", w.bold > 0, w.italic > 0)
			}
		}
	case "script", "style", "title":
		if !selfClosing {
			w.skipText++
		}
	}
}

func (w *htmlWalker) end(name string) {
	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if w.heading > 0 {
			w.emit(KindHeading, w.heading, "")
			w.heading = 0
		}
	case "p":
		w.inPara = false
		if it := w.currentItem(); it != nil && !it.done {
			w.flushItem()
			return
		}
		w.emit(KindParagraph, 0, "")
	case "li":
		w.flushLoose()
		if n := len(w.items); n > 0 {
			w.items = w.items[:n-1]
		}
	case "ul", "ol":
		w.flushLoose()
		if n := len(w.lists); n > 0 {
			w.lists = w.lists[:n-1]
		}
	case "tr":
		w.emit(KindParagraph, 0, "")
		w.cells = 0
	case "pre":
		w.flushLoose()
		if w.pre > 0 {
			w.pre--
		}
	case "blockquote", "div", "table":
		w.flushLoose()
	case "strong", "b":
		if w.bold > 0 {
			w.bold--
		}
	case "em", "i":
		if w.italic > 0 {
			w.italic--
		}
	case "script", "style", "title":
		if w.skipText > 0 {
			w.skipText--
		}
	}
}

func (w *htmlWalker) text(raw string) {
	if w.skipText > 0 {
		return
	}
	if w.pre == 0 {
		raw = strings.ReplaceAll(raw, "\n", " ")
	}
	// Whitespace between block tags carries no content.
	if strings.TrimSpace(raw) == "" && w.b.empty() {
		return
	}
	w.b.add(raw, w.bold > 0, w.italic > 0)
}

func attr(tok html.Token, key string) (string, bool) {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
