package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	leasedoc "github.com/alnah/go-leasedoc"
	"github.com/alnah/go-leasedoc/internal/fileutil"
	"github.com/alnah/go-leasedoc/internal/hints"
	"github.com/alnah/go-leasedoc/internal/pipeline"
)

// languageReport summarizes what was written for one language.
type languageReport struct {
	Language string // "" for the original lease
	Files    []string
	PDFErr   error
	Err      error
}

// artifactWriter writes artifact sets to an output directory.
type artifactWriter struct {
	dir  string
	base string
	css  string
}

// writeResult writes the original lease and every successful translation.
// Failed translations are reported without touching the disk.
func (w *artifactWriter) writeResult(ctx context.Context, res *leasedoc.Result) ([]languageReport, error) {
	reports := make([]languageReport, 0, 1+len(res.Translations))

	files, err := w.writeSet(ctx, "", &res.Original)
	if err != nil {
		return nil, err
	}
	reports = append(reports, languageReport{Files: files, PDFErr: res.Original.PDFErr})

	for _, v := range res.Translations {
		if !v.OK() {
			reports = append(reports, languageReport{Language: v.Language, Err: v.Err})
			continue
		}
		files, err := w.writeSet(ctx, v.Language, v.Artifacts)
		if err != nil {
			return nil, err
		}
		reports = append(reports, languageReport{Language: v.Language, Files: files, PDFErr: v.Artifacts.PDFErr})
	}
	return reports, nil
}

// writeSet writes .md, .html, .pdf (when produced) and .docx for one set.
func (w *artifactWriter) writeSet(ctx context.Context, language string, set *leasedoc.ArtifactSet) ([]string, error) {
	title := firstHeading(set.Markdown)
	if title == "" {
		title = w.base
	}
	injector := &pipeline.CSSInjection{}
	page := injector.InjectCSS(ctx, pipeline.WrapDocument(title, set.HTML), w.css)

	outputs := []struct {
		ext  string
		data []byte
	}{
		{"md", []byte(set.Markdown)},
		{"html", []byte(page)},
		{"pdf", set.PDF},
		{"docx", set.DOCX},
	}

	var files []string
	for _, o := range outputs {
		if o.data == nil {
			continue
		}
		name, err := fileutil.ArtifactName(w.base, language, o.ext)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWriteArtifact, err)
		}
		path, err := fileutil.WriteFile(w.dir, name, o.data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrWriteArtifact, err)
		}
		files = append(files, path)
	}
	return files, nil
}

// firstHeading returns the text of the first ATX heading, or "".
func firstHeading(md string) string {
	for _, line := range strings.Split(md, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "#") {
			continue
		}
		text := strings.TrimLeft(line, "#")
		if text == "" || text[0] == ' ' || text[0] == '\t' {
			return strings.TrimSpace(text)
		}
	}
	return ""
}

// printReports prints one summary block per language and returns the number
// of failed translations. Failures always go to stderr, even in quiet mode.
func printReports(reports []languageReport, quiet bool, env *Environment) int {
	failed := 0
	for _, r := range reports {
		label := r.Language
		if label == "" {
			label = "original"
		}

		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", label, r.Err)
			continue
		}
		if quiet {
			continue
		}

		fmt.Fprintf(env.Stdout, "%s:\n", label)
		for _, f := range r.Files {
			fmt.Fprintf(env.Stdout, "  %s\n", f)
		}
		if r.PDFErr != nil {
			fmt.Fprintf(env.Stdout, "  (no PDF: %v)%s\n", r.PDFErr, pdfHint(r.PDFErr))
		}
	}
	return failed
}

// pdfHint suggests the Unicode engine when the core fonts were the problem.
func pdfHint(err error) string {
	if errors.Is(err, leasedoc.ErrLanguageExcluded) || errors.Is(err, leasedoc.ErrUnsupportedScript) {
		return hints.ForUnsupportedScript()
	}
	return ""
}
