package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: leasedoc <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render      Render a lease to Markdown, HTML, PDF and DOCX")
	fmt.Fprintln(w, "  doctor      Check translation and PDF engine setup")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'leasedoc help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: leasedoc render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a lease and its translations.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Lease Markdown file, or a JSON envelope (.json or --envelope)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --envelope            Input is a generator JSON envelope")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom boilerplate directory")
	fmt.Fprintln(w, "      --print-config        Print the resolved config and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Translation:")
	fmt.Fprintln(w, "  -l, --lang <name>         Translate into language (repeatable)")
	fmt.Fprintln(w, "      --mock-llm            Use the offline mock translator")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent translations (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-language timeout (e.g., 90s, 2m)")
	fmt.Fprintln(w, "      --no-cache            Disable the translation cache")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --font-set <s>        Fonts: core, ascii")
	fmt.Fprintln(w, "      --unicode-engine <s>  Engine for non-Latin scripts: none, chrome")
	fmt.Fprintln(w, "      --no-compress         Write uncompressed PDF streams")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  LEASEDOC_CONFIG, LEASEDOC_OUTPUT_DIR, LEASEDOC_LANGUAGES,")
	fmt.Fprintln(w, "  LEASEDOC_TIMEOUT, LEASEDOC_WORKERS, LEASEDOC_REDIS_ADDR")
	fmt.Fprintln(w, "  OPENAI_API_KEY (or llm.apiKeyEnv), read from .env when present")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: leasedoc doctor [--json] [-c <config>]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check the API key, translation cache and Chrome setup.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: leasedoc version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: leasedoc help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
	}
}
