package leasedoc_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	leasedoc "github.com/alnah/go-leasedoc"
	"github.com/alnah/go-leasedoc/internal/translate"
)

// Example renders a lease into its original artifact set.
func Example() {
	asm, err := leasedoc.NewAssembler()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer asm.Close()

	set, err := asm.Render(context.Background(), leasedoc.LeaseDraft{
		Body: "# Lease Agreement\n\nThis is the body.",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("pdf:", bytes.HasPrefix(set.PDF, []byte("%PDF-")))
	fmt.Println("docx:", bytes.HasPrefix(set.DOCX, []byte("PK")))
	// Output:
	// pdf: true
	// docx: true
}

// Example_translations fans a lease out into translations. Japanese has no
// PDF because the core fonts cannot draw its script.
func Example_translations() {
	asm, err := leasedoc.NewAssembler(
		leasedoc.WithTranslator(&translate.MockTranslator{}),
		leasedoc.WithWorkers(2),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer asm.Close()

	draft := leasedoc.LeaseDraft{Body: "# Lease Agreement\n\nThis is the body."}
	res, err := asm.Assemble(context.Background(), draft, "Spanish", "Japanese")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, v := range res.Translations {
		fmt.Printf("%s: pdf=%v docx=%v excluded=%v\n",
			v.Language,
			v.Artifacts.HasPDF(),
			len(v.Artifacts.DOCX) > 0,
			errors.Is(v.Artifacts.PDFErr, leasedoc.ErrLanguageExcluded))
	}
	// Output:
	// Spanish: pdf=true docx=true excluded=false
	// Japanese: pdf=false docx=true excluded=true
}

// ExampleParseDraft reads a generator envelope wrapped in a code fence.
func ExampleParseDraft() {
	raw := "```json\n{\"lease\": \"# Lease\\n\\nBody.\", \"addenda\": [\"No smoking.\"]}\n```"

	draft, err := leasedoc.ParseDraft(raw)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(draft.Markdown())
	// Output:
	// # Lease
	//
	// Body.
	//
	// ## Addendum 1
	//
	// No smoking.
}
