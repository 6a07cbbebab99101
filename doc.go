// Package leasedoc renders generated residential leases to Markdown, HTML,
// PDF and DOCX, and fans a lease out into translated variants.
//
// # Quick Start
//
// Create an assembler, render a draft, and close when done:
//
//	asm, err := leasedoc.NewAssembler()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer asm.Close()
//
//	set, err := asm.Render(ctx, leasedoc.LeaseDraft{
//	    Body: "# Lease Agreement\n\nThis is the body.",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("lease.pdf", set.PDF, 0644)
//
// Every PDF and DOCX carries the same fixed sections: a title page, the
// lease body, a signature block for Landlord and Tenant, and three exhibits
// (move-in/move-out checklist, pet agreement, lead-based paint disclosure).
// PDF pages are stamped "Page N of TOTAL".
//
// # Rendering Pipeline
//
//  1. Markdown normalization (line endings, outer code-fence unwrapping)
//  2. Markdown to HTML via Goldmark (GFM, raw HTML omitted)
//  3. PDF via the core-font composer (internal/pdfdoc), laid out from the
//     HTML, then footers stamped once the page count is known
//  4. DOCX via the WordprocessingML composer (internal/docx), from the Markdown
//
// PDF and DOCX classify blocks with the same classifier, so a heading,
// paragraph or list item in one format is the same block in the other.
//
// # Translations
//
// Assemble renders the original and one variant per requested language.
// Translations run concurrently on a bounded pool, each under its own
// timeout. A failing language never fails the batch:
//
//	asm, _ := leasedoc.NewAssembler(
//	    leasedoc.WithTranslator(translator),
//	    leasedoc.WithWorkers(4),
//	)
//	res, err := asm.Assemble(ctx, draft, "Spanish", "Japanese")
//	for _, v := range res.Translations {
//	    if v.Err != nil {
//	        continue // translation or rendering failed
//	    }
//	    if !v.Artifacts.HasPDF() {
//	        fmt.Println(v.Language, "PDF absent:", v.Artifacts.PDFErr)
//	    }
//	}
//
// The core fonts cover Latin scripts only. Languages in DefaultPDFExclusions
// get no PDF (PDFErr is ErrLanguageExcluded) unless a Unicode renderer is
// configured with WithUnicodePDFRenderer; DOCX is always produced.
//
// # Generator Envelopes
//
// ParseDraft reads the JSON envelope a text generator returns, tolerating
// code fences and surrounding prose, and reports empty or malformed output
// through ErrEmptyGeneration and ErrMalformedEnvelope.
//
// # Error Handling
//
// Sentinel errors are matched with errors.Is:
//
//	if errors.Is(err, leasedoc.ErrEmptyDraft) {
//	    // nothing to render
//	}
package leasedoc
