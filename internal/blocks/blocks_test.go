package blocks

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// renderHTML mirrors the renderer configuration used by internal/pipeline
// without importing it (pipeline depends on nothing here, but keeping the
// test self-contained avoids a cycle if that ever changes).
func renderHTML(t *testing.T, src string) string {
	t.Helper()
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		t.Fatalf("goldmark convert: %v", err)
	}
	return buf.String()
}

type shape struct {
	Kind   Kind
	Level  int
	Marker string
	Text   string
}

func shapes(bs []Block) []shape {
	out := make([]shape, len(bs))
	for i, b := range bs {
		out[i] = shape{Kind: b.Kind, Level: b.Level, Marker: b.Marker, Text: b.Text}
	}
	return out
}

func TestFromMarkdown_LeaseScenario(t *testing.T) {
	t.Parallel()

	src := "# Lease Agreement\n\nThis is the body.\n\n- Clause one\n- Clause two"
	got := shapes(FromMarkdown(src))
	want := []shape{
		{Kind: KindHeading, Level: 1, Text: "Lease Agreement"},
		{Kind: KindParagraph, Text: "This is the body."},
		{Kind: KindBullet, Marker: "-", Text: "Clause one"},
		{Kind: KindBullet, Marker: "-", Text: "Clause two"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromMarkdown() = %+v, want %+v", got, want)
	}
}

func TestFromMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []shape
	}{
		{
			name: "empty input",
			src:  "",
			want: []shape{},
		},
		{
			name: "heading levels",
			src:  "# One\n\n## Two\n\n###### Six",
			want: []shape{
				{Kind: KindHeading, Level: 1, Text: "One"},
				{Kind: KindHeading, Level: 2, Text: "Two"},
				{Kind: KindHeading, Level: 6, Text: "Six"},
			},
		},
		{
			name: "ordered list keeps numbering",
			src:  "3. Rent\n4. Deposit",
			want: []shape{
				{Kind: KindBullet, Marker: "3.", Text: "Rent"},
				{Kind: KindBullet, Marker: "4.", Text: "Deposit"},
			},
		},
		{
			name: "nested list depth",
			src:  "- Parent\n  - Child",
			want: []shape{
				{Kind: KindBullet, Marker: "-", Text: "Parent"},
				{Kind: KindBullet, Level: 1, Marker: "-", Text: "Child"},
			},
		},
		{
			name: "soft break becomes hard break",
			src:  "Line one\nLine two",
			want: []shape{{Kind: KindParagraph, Text: "Line one\nLine two"}},
		},
		{
			name: "emphasis flattened in text",
			src:  "The **Tenant** shall *not* sublet.",
			want: []shape{{Kind: KindParagraph, Text: "The Tenant shall not sublet."}},
		},
		{
			name: "task list",
			src:  "- [x] Keys returned\n- [ ] Walls painted",
			want: []shape{
				{Kind: KindBullet, Marker: "-", Text: "[x] Keys returned"},
				{Kind: KindBullet, Marker: "-", Text: "[ ] Walls painted"},
			},
		},
		{
			name: "table rows",
			src:  "| Item | Fee |\n|---|---|\n| Rent | $1200 |",
			want: []shape{
				{Kind: KindParagraph, Text: "Item | Fee"},
				{Kind: KindParagraph, Text: "Rent | $1200"},
			},
		},
		{
			name: "raw html dropped",
			src:  "<div>hidden</div>\n\nVisible",
			want: []shape{{Kind: KindParagraph, Text: "Visible"}},
		},
		{
			name: "escapes and entities resolved",
			src:  `Fee \*waived\* &amp; noted`,
			want: []shape{{Kind: KindParagraph, Text: "Fee *waived* & noted"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := shapes(FromMarkdown(tt.src))
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromMarkdown(%q) = %+v, want %+v", tt.src, got, tt.want)
			}
		})
	}
}

func TestFromMarkdown_Spans(t *testing.T) {
	t.Parallel()

	bs := FromMarkdown("The **Tenant** pays *monthly*.")
	if len(bs) != 1 {
		t.Fatalf("got %d blocks, want 1", len(bs))
	}
	want := []Span{
		{Text: "The "},
		{Text: "Tenant", Bold: true},
		{Text: " pays "},
		{Text: "monthly", Italic: true},
		{Text: "."},
	}
	if !reflect.DeepEqual(bs[0].Spans, want) {
		t.Errorf("Spans = %+v, want %+v", bs[0].Spans, want)
	}
}

func TestFromHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want []shape
	}{
		{
			name: "headings paragraphs bullets",
			html: `<h2 id="x">Rent</h2><p>Due monthly.</p><ul><li>First</li><li>Second</li></ul>`,
			want: []shape{
				{Kind: KindHeading, Level: 2, Text: "Rent"},
				{Kind: KindParagraph, Text: "Due monthly."},
				{Kind: KindBullet, Marker: "-", Text: "First"},
				{Kind: KindBullet, Marker: "-", Text: "Second"},
			},
		},
		{
			name: "br splits lines inside a paragraph",
			html: "<p>one<br />\ntwo</p>",
			want: []shape{{Kind: KindParagraph, Text: "one\ntwo"}},
		},
		{
			name: "ordered list with start",
			html: `<ol start="7"><li>Seven</li><li>Eight</li></ol>`,
			want: []shape{
				{Kind: KindBullet, Marker: "7.", Text: "Seven"},
				{Kind: KindBullet, Marker: "8.", Text: "Eight"},
			},
		},
		{
			name: "entities decoded and unknown tags stripped",
			html: `<p><span>Smith &amp; Sons</span></p>`,
			want: []shape{{Kind: KindParagraph, Text: "Smith & Sons"}},
		},
		{
			name: "loose text becomes paragraph",
			html: `plain words`,
			want: []shape{{Kind: KindParagraph, Text: "plain words"}},
		},
		{
			name: "script content ignored",
			html: `<script>alert(1)</script><p>ok</p>`,
			want: []shape{{Kind: KindParagraph, Text: "ok"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := shapes(FromHTML(tt.html))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FromHTML(%q) = %+v, want %+v", tt.html, got, tt.want)
			}
		})
	}
}

func TestFromHTML_MatchesMarkdown(t *testing.T) {
	t.Parallel()

	sources := []string{
		"# Lease Agreement\n\nThis is the body.\n\n- Clause one\n- Clause two",
		"## 1. PARTIES\n\nThe **Landlord** and the *Tenant*.\nSecond line.\n\n1. Rent\n2. Deposit\n   - refundable\n\n> Quoted clause\n\n| A | B |\n|---|---|\n| 1 | 2 |",
		"- [x] Smoke detector\n- [ ] Carpet\n\n```\ncode line\nsecond\n```\n\nSee <https://example.com> and ![floor plan](plan.png).",
		"- loose item\n\n  second paragraph\n\n- another",
	}

	for _, src := range sources {
		md := shapes(FromMarkdown(src))
		fromHTML := shapes(FromHTML(renderHTML(t, src)))
		if !reflect.DeepEqual(md, fromHTML) {
			t.Errorf("structure mismatch for %q\nmarkdown: %+v\nhtml:     %+v", src, md, fromHTML)
		}
	}
}

func TestCount(t *testing.T) {
	t.Parallel()

	src := "# A\n\n## B\n\npara\n\n- x\n- y\n- z"
	counts := Count(FromMarkdown(src))
	if counts[KindHeading] != 2 || counts[KindParagraph] != 1 || counts[KindBullet] != 3 {
		t.Errorf("Count() = %v, want 2 headings, 1 paragraph, 3 bullets", counts)
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	for kind, want := range map[Kind]string{KindHeading: "heading", KindBullet: "bullet", KindParagraph: "paragraph"} {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
	if !strings.EqualFold(Kind(99).String(), "paragraph") {
		t.Error("unknown kind should read as paragraph")
	}
}
