package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// translationFlags holds translation-related flags.
type translationFlags struct {
	languages []string
	mockLLM   bool
	workers   int
	timeout   string
	noCache   bool
}

// pdfFlags holds PDF rendering flags.
type pdfFlags struct {
	fontSet       string
	unicodeEngine string
	noCompress    bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common      commonFlags
	output      string
	envelope    bool
	assetPath   string
	printConfig bool
	translation translationFlags
	pdf         pdfFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and debug logs")
}

// addTranslationFlags adds translation flags to a FlagSet.
func addTranslationFlags(fs *flag.FlagSet, f *translationFlags) {
	fs.StringArrayVarP(&f.languages, "lang", "l", nil, "translate into language (repeatable)")
	fs.BoolVar(&f.mockLLM, "mock-llm", false, "use the offline mock translator")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent translations (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-language translation timeout (e.g., 90s, 2m)")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the translation cache")
}

// addPDFFlags adds PDF flags to a FlagSet.
func addPDFFlags(fs *flag.FlagSet, f *pdfFlags) {
	fs.StringVar(&f.fontSet, "font-set", "", "PDF fonts: core, ascii")
	fs.StringVar(&f.unicodeEngine, "unicode-engine", "", "PDF engine for non-Latin scripts: none, chrome")
	fs.BoolVar(&f.noCompress, "no-compress", false, "write uncompressed PDF streams")
}

// newRenderFlagSet registers every render flag on a fresh FlagSet.
// Shared by parseRenderFlags and shell completion.
func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.BoolVar(&f.envelope, "envelope", false, "input is a generator JSON envelope")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom boilerplate directory")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the resolved config and exit")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addTranslationFlags(fs, &f.translation)
	addPDFFlags(fs, &f.pdf)

	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, usage io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet(f)
	fs.SetOutput(usage)
	fs.Usage = func() { printRenderUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
