// Package pdfdoc lays out lease text on US Letter pages and writes the
// result as PDF.
//
// Rendering runs in two phases. Layout places every line of the title page,
// the body, the signature block and the exhibits, recording page and section
// boundaries in a Document. StampFooters then adds "Page N of TOTAL" to each
// page, which requires the final page count, and Write emits the PDF with
// go-pdf/fpdf.
//
// Text passes through a FontSet before layout. The set decides which runes
// can be drawn; Sanitize substitutes common typographic symbols, and a
// letter the set cannot draw fails the document with ErrUnsupportedScript
// instead of silently disappearing.
package pdfdoc
