package pdfdoc

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// documentDate is stamped into every PDF so identical input produces
// identical bytes.
var documentDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// WriteOptions controls PDF serialization.
type WriteOptions struct {
	Fonts    FontSet
	Compress bool
}

// Write draws doc page by page. Lines are drawn at their laid-out positions;
// Write performs no layout of its own.
func Write(doc *Document, w io.Writer, opts WriteOptions) error {
	fonts := opts.Fonts
	if fonts == nil {
		fonts = CoreFontSet{}
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCompression(opts.Compress)
	pdf.SetCreationDate(documentDate)
	pdf.SetModificationDate(documentDate)
	pdf.SetCatalogSort(true)
	pdf.SetCreator("leasedoc", true)

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, ln := range page.Lines {
			pdf.SetFont(fontFamily, ln.Style.fpdf(), ln.Size)
			pdf.Text(ln.X, ln.Y, fonts.Encode(ln.Text))
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrPDFWrite, err)
	}
	return nil
}
