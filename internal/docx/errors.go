package docx

import "errors"

// ErrDOCXWrite indicates the package could not be written.
var ErrDOCXWrite = errors.New("DOCX write failed")
