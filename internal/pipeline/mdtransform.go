package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Opening or closing code fence on its own line, optional info string.
	fenceLine = regexp.MustCompile("^\\s*(```+|~~~+)\\s*([\\w+-]*)\\s*$")
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// Preprocessor cleans generator output before conversion.
type Preprocessor struct{}

// PreprocessMarkdown applies all transformations to prepare Markdown for conversion.
func (p *Preprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}
	return NormalizeMarkdown(content)
}

// NormalizeMarkdown normalizes line endings, unwraps an outer code fence and
// compresses blank lines. Empty input yields an empty string.
func NormalizeMarkdown(content string) string {
	content = normalizeLineEndings(content)
	content = UnwrapFence(content)
	content = compressBlankLines(content)
	return strings.TrimSpace(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// UnwrapFence returns the content of the outermost fenced block when the
// document is wrapped in one, e.g. "```markdown\n# Lease\n```". A fence
// declaring markdown or md may be surrounded by prose, which is dropped. A
// bare fence only counts as a wrapper when nothing but blank lines surrounds
// it. Documents that merely contain code blocks are returned unchanged.
func UnwrapFence(content string) string {
	lines := strings.Split(content, "\n")

	first, last := -1, -1
	for i, line := range lines {
		if fenceLine.MatchString(line) {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 || first == last {
		return content
	}

	closer := fenceLine.FindStringSubmatch(lines[last])
	if closer[2] != "" {
		return content
	}

	// Inner fence lines must pair up; otherwise the first and last fence
	// lines belong to separate code blocks. A bare opener cannot contain
	// nested fences at all.
	opener := fenceLine.FindStringSubmatch(lines[first])
	markdown := isMarkdownInfo(opener[2])
	inner := 0
	for _, line := range lines[first+1 : last] {
		if fenceLine.MatchString(line) {
			inner++
		}
	}
	if inner%2 != 0 || (inner > 0 && !markdown) {
		return content
	}

	// Prose around the fence is only dropped when the fence declares
	// Markdown; otherwise the fence is an ordinary code block.
	if !markdown && (hasText(lines[:first]) || hasText(lines[last+1:])) {
		return content
	}

	return strings.Join(lines[first+1:last], "\n")
}

func isMarkdownInfo(info string) bool {
	switch strings.ToLower(info) {
	case "markdown", "md":
		return true
	}
	return false
}

func hasText(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}
