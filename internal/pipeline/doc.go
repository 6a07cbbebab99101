// Package pipeline implements the Markdown side of lease rendering.
//
// This package handles the stages shared by every output format:
//   - Markdown preprocessing (line normalization, code-fence unwrapping)
//   - Markdown to HTML conversion via Goldmark
//   - Wrapping fragments into standalone HTML documents and CSS injection
//
// Layout for PDF and DOCX lives in internal/pdfdoc and internal/docx. Both
// consume internal/blocks, which classifies the same Markdown (or the HTML
// produced here) into headings, paragraphs and bullets.
package pipeline
