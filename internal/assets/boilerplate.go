package assets

import (
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-leasedoc/internal/blocks"
)

// Section names, in document order.
const (
	SectionTitle      = "title"
	SectionSignatures = "signatures"
	SectionExhibitA   = "exhibit-a"
	SectionExhibitB   = "exhibit-b"
	SectionExhibitC   = "exhibit-c"
)

// ExhibitNames lists the exhibit sections in the order they are appended.
var ExhibitNames = []string{SectionExhibitA, SectionExhibitB, SectionExhibitC}

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "lease"

// Section is one fixed boilerplate section.
type Section struct {
	Name   string
	Title  string
	Body   string
	Blocks []blocks.Block
}

// Boilerplate holds the fixed sections appended to every lease. It is
// shared between renderers and must not be modified.
type Boilerplate struct {
	Title      string
	Signatures Section
	Exhibits   []Section
}

type sectionMeta struct {
	Title string `yaml:"title"`
	Kind  string `yaml:"kind"`
}

// LoadBoilerplateFrom reads and parses every section from loader.
// Returns ErrIncompleteBoilerplate when a section is missing or untitled.
func LoadBoilerplateFrom(loader AssetLoader) (*Boilerplate, error) {
	title, err := loadSection(loader, SectionTitle)
	if err != nil {
		return nil, err
	}
	sigs, err := loadSection(loader, SectionSignatures)
	if err != nil {
		return nil, err
	}

	bp := &Boilerplate{Title: title.Title, Signatures: sigs}
	for _, name := range ExhibitNames {
		ex, err := loadSection(loader, name)
		if err != nil {
			return nil, err
		}
		bp.Exhibits = append(bp.Exhibits, ex)
	}
	return bp, nil
}

func loadSection(loader AssetLoader, name string) (Section, error) {
	raw, err := loader.LoadSection(name)
	if err != nil {
		return Section{}, fmt.Errorf("%w: %w", ErrIncompleteBoilerplate, err)
	}

	var meta sectionMeta
	body, err := frontmatter.Parse(strings.NewReader(raw), &meta)
	if err != nil {
		return Section{}, fmt.Errorf("%w: %s: %v", ErrInvalidFrontMatter, name, err)
	}
	if strings.TrimSpace(meta.Title) == "" {
		return Section{}, fmt.Errorf("%w: %s has no title", ErrIncompleteBoilerplate, name)
	}

	text := strings.TrimSpace(string(body))
	return Section{
		Name:   name,
		Title:  strings.TrimSpace(meta.Title),
		Body:   text,
		Blocks: blocks.FromMarkdown(text),
	}, nil
}

// Markdown renders the boilerplate as Markdown: the signature block and
// each exhibit under a level-2 heading.
func (b *Boilerplate) Markdown() string {
	var sb strings.Builder
	writeSection(&sb, b.Signatures)
	for _, ex := range b.Exhibits {
		sb.WriteString("\n\n")
		writeSection(&sb, ex)
	}
	return sb.String()
}

func writeSection(sb *strings.Builder, s Section) {
	sb.WriteString("## ")
	sb.WriteString(s.Title)
	if s.Body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(s.Body)
	}
}
