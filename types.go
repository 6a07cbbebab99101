package leasedoc

import (
	"errors"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Draft size limits, in characters.
const (
	MaxBodyLength    = 200_000
	MaxSectionLength = 50_000
	MaxAddenda       = 20
)

// Generated headings for draft parts that arrive without one.
const (
	ChecklistHeading = "Move-In/Move-Out Checklist"
	AddendumHeading  = "Addendum"
)

// LeaseDraft is the generated lease text for one language: a Markdown body
// plus an optional checklist and addenda. Treat it as immutable.
type LeaseDraft struct {
	Body      string
	Checklist string
	Addenda   []string
}

// Validate checks that the body is present and every part is within limits.
func (d LeaseDraft) Validate() error {
	if strings.TrimSpace(d.Body) == "" {
		return ErrEmptyDraft
	}
	err := validation.ValidateStruct(&d,
		validation.Field(&d.Body, validation.Length(0, MaxBodyLength)),
		validation.Field(&d.Checklist, validation.Length(0, MaxSectionLength)),
		validation.Field(&d.Addenda,
			validation.Length(0, MaxAddenda),
			validation.Each(validation.Length(0, MaxSectionLength)),
		),
	)
	if err != nil {
		return errors.Join(ErrInvalidDraft, err)
	}
	return nil
}

// Markdown composes the full document: body, then checklist, then addenda
// in order. A checklist or addendum that does not open with a heading gets
// a generated level-2 heading. Blank parts are skipped.
func (d LeaseDraft) Markdown() string {
	parts := make([]string, 0, 2+len(d.Addenda))
	if body := strings.TrimSpace(d.Body); body != "" {
		parts = append(parts, body)
	}
	if cl := strings.TrimSpace(d.Checklist); cl != "" {
		parts = append(parts, withHeading(cl, ChecklistHeading))
	}
	n := 0
	for _, add := range d.Addenda {
		add = strings.TrimSpace(add)
		if add == "" {
			continue
		}
		n++
		parts = append(parts, withHeading(add, AddendumHeading+" "+strconv.Itoa(n)))
	}
	return strings.Join(parts, "\n\n")
}

// withHeading prefixes text with "## heading" unless its first line is
// already an ATX heading.
func withHeading(text, heading string) string {
	first, _, _ := strings.Cut(text, "\n")
	first = strings.TrimSpace(first)
	if strings.HasPrefix(first, "#") {
		level := len(first) - len(strings.TrimLeft(first, "#"))
		rest := first[level:]
		if level <= 6 && (rest == "" || rest[0] == ' ' || rest[0] == '\t') {
			return text
		}
	}
	return "## " + heading + "\n\n" + text
}

// ArtifactSet holds the rendered outputs of one language variant.
type ArtifactSet struct {
	Language string
	Markdown string
	HTML     string // HTML fragment of Markdown
	PDF      []byte // nil when absent; see PDFErr
	DOCX     []byte

	// PDFErr explains an absent PDF: ErrLanguageExcluded, or an error
	// wrapping ErrPDFGeneration (and ErrUnsupportedScript when the fonts
	// could not draw the text).
	PDFErr error
}

// HasPDF reports whether a PDF was produced.
func (a *ArtifactSet) HasPDF() bool {
	return a != nil && a.PDF != nil
}

// TranslationVariant is one requested translation and its artifacts.
// Err is set when translation, HTML or DOCX rendering failed; Artifacts is
// nil in that case.
type TranslationVariant struct {
	Language  string
	Draft     LeaseDraft
	Artifacts *ArtifactSet
	Err       error
}

// OK reports whether the variant was fully translated and rendered. The PDF
// may still be absent.
func (v TranslationVariant) OK() bool {
	return v.Err == nil && v.Artifacts != nil
}

// Result is the output of Assemble.
type Result struct {
	BatchID      string
	Original     ArtifactSet
	Translations []TranslationVariant // in request order
}

// Variant returns the translation for language, matched case-insensitively
// and through the same aliases as the exclusion list.
func (r *Result) Variant(language string) (TranslationVariant, bool) {
	key := canonicalLanguage(language)
	for _, v := range r.Translations {
		if canonicalLanguage(v.Language) == key {
			return v, true
		}
	}
	return TranslationVariant{}, false
}
