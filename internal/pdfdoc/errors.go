package pdfdoc

import "errors"

// Sentinel errors for PDF composition.
var (
	// ErrUnsupportedScript indicates the text contains letters the font set
	// cannot draw.
	ErrUnsupportedScript = errors.New("script not supported by PDF fonts")

	// ErrPDFWrite indicates the PDF writer failed.
	ErrPDFWrite = errors.New("PDF write failed")
)
